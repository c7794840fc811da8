package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/ranilearn/rani/internal/i18n"
)

// memDocs implements store.DocumentRepo in memory.
type memDocs struct {
	values map[string][]byte
}

func newMemDocs() *memDocs { return &memDocs{values: map[string][]byte{}} }

func (m *memDocs) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memDocs) Put(_ context.Context, key string, value []byte) error {
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memDocs) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func testPolicy() LoginPolicy {
	return LoginPolicy{
		AdminPhone:     "9999999999",
		MinDigits:      10,
		SignupBonus:    100,
		StartingStreak: 1,
	}
}

func newTestService(t *testing.T, policy LoginPolicy) (*Service, *memDocs, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	docs := newMemDocs()
	svc := NewService(NewRepository(docs, logger), policy, logger)
	n := 0
	svc.newID = func() string {
		n++
		return "id-" + string(rune('0'+n))
	}
	return svc, docs, hook
}

func TestLogin_CreatesProfile(t *testing.T) {
	svc, docs, _ := newTestService(t, testPolicy())
	ctx := context.Background()

	p, created, err := svc.Login(ctx, "98765 43210", i18n.HI)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !created {
		t.Error("expected a new profile")
	}
	if p.Name != DefaultName || p.XP != 100 || p.Streak != 1 || p.IsAdmin {
		t.Errorf("new profile = %+v", p)
	}
	if p.Phone != "9876543210" {
		t.Errorf("phone = %q, want digits only", p.Phone)
	}
	if _, ok := docs.values[ProfileKey]; !ok {
		t.Error("profile not persisted")
	}
	if got := string(docs.values[LanguageKey]); got != "hi" {
		t.Errorf("stored language = %q, want hi", got)
	}
}

func TestLogin_AdminSentinel(t *testing.T) {
	svc, _, _ := newTestService(t, testPolicy())
	p, _, err := svc.Login(context.Background(), "9999999999", i18n.EN)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !p.IsAdmin {
		t.Error("admin phone should create an admin profile")
	}
}

func TestLogin_ResumesMatchingPhone(t *testing.T) {
	svc, _, _ := newTestService(t, testPolicy())
	ctx := context.Background()

	first, _, err := svc.Login(ctx, "9876543210", i18n.EN)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	first.Completed["l1_smartphone"] = struct{}{}
	first.XP = 130
	if err := svc.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, created, err := svc.Login(ctx, "9876543210", i18n.BN)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if created {
		t.Error("matching phone should resume the profile")
	}
	if again.ID != first.ID || again.XP != 130 || !again.HasCompleted("l1_smartphone") {
		t.Errorf("resumed profile = %+v", again)
	}
	if again.Language != i18n.BN {
		t.Errorf("language = %q, want bn", again.Language)
	}
}

func TestLogin_DifferentPhoneReplacesProfile(t *testing.T) {
	svc, _, _ := newTestService(t, testPolicy())
	ctx := context.Background()

	first, _, _ := svc.Login(ctx, "9876543210", i18n.EN)
	second, created, err := svc.Login(ctx, "1234567890", i18n.EN)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !created || second.ID == first.ID {
		t.Error("different phone should create a new profile")
	}
	cur, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if cur.ID != second.ID {
		t.Errorf("stored profile id = %q, want %q", cur.ID, second.ID)
	}
}

func TestLogin_InvalidPhone(t *testing.T) {
	svc, docs, _ := newTestService(t, testPolicy())
	_, _, err := svc.Login(context.Background(), "12345", i18n.EN)
	if !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("error = %v, want ErrInvalidPhone", err)
	}
	if len(docs.values) != 0 {
		t.Error("invalid login must not persist anything")
	}
	if svc.ValidPhone("12345") {
		t.Error("ValidPhone(12345) = true, want false")
	}
}

func TestLogin_DelayHonoursContext(t *testing.T) {
	policy := testPolicy()
	policy.Delay = time.Hour
	svc, _, _ := newTestService(t, policy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := svc.Login(ctx, "9876543210", i18n.EN)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestCurrent_UnreadableDocument(t *testing.T) {
	svc, docs, hook := newTestService(t, testPolicy())
	docs.values[ProfileKey] = []byte("{broken")

	_, err := svc.Current(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
		t.Error("expected a warning for the unreadable document")
	}
}

func TestSetLanguage(t *testing.T) {
	svc, docs, _ := newTestService(t, testPolicy())
	ctx := context.Background()

	got, err := svc.SetLanguage(ctx, nil, i18n.BN)
	if err != nil || got != nil {
		t.Fatalf("SetLanguage(nil) = %v, %v", got, err)
	}
	lang, ok, _ := svc.StoredLanguage(ctx)
	if !ok || lang != i18n.BN {
		t.Errorf("stored language = %q, %v; want bn", lang, ok)
	}

	p, _, _ := svc.Login(ctx, "9876543210", i18n.EN)
	next, err := svc.SetLanguage(ctx, p, i18n.HI)
	if err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	if p.Language != i18n.EN {
		t.Error("SetLanguage mutated its input")
	}
	if next.Language != i18n.HI || next.XP != p.XP || next.Streak != p.Streak {
		t.Errorf("next = %+v", next)
	}
	stored, _ := Decode(docs.values[ProfileKey])
	if stored.Language != i18n.HI {
		t.Errorf("stored language = %q, want hi", stored.Language)
	}
}

func TestReset(t *testing.T) {
	svc, docs, _ := newTestService(t, testPolicy())
	ctx := context.Background()
	svc.Login(ctx, "9876543210", i18n.EN)

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(docs.values) != 0 {
		t.Errorf("documents left after reset: %v", docs.values)
	}
}
