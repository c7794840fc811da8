// Package learnertest builds learner sessions on a throwaway database for
// screen and command tests.
package learnertest

import (
	"context"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/learner"
	"github.com/ranilearn/rani/internal/profile"
	"github.com/ranilearn/rani/internal/rewards"
	"github.com/ranilearn/rani/internal/store"
)

const (
	// Phone logs in as a regular learner.
	Phone = "9876543210"
	// AdminPhone logs in as an admin.
	AdminPhone = "9999999999"
	DemoPIN    = "1234"
)

// Deps returns session collaborators backed by a SQLite file in a test
// temp directory. Logins resolve without delay.
func Deps(t testing.TB) (learner.Deps, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "rani.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger, _ := logtest.NewNullLogger()
	policy := rewards.DefaultPolicy()
	repo := profile.NewRepository(st.DocumentRepo(), logger)
	return learner.Deps{
		Profiles: profile.NewService(repo, profile.LoginPolicy{
			AdminPhone:     AdminPhone,
			MinDigits:      10,
			SignupBonus:    policy.SignupBonus,
			StartingStreak: policy.StartingStreak,
		}, logger),
		Catalog: catalog.Default(),
		Tables:  i18n.Default(),
		Ledger:  rewards.NewLedger(st.EventRepo(), logger),
		Events:  st.EventRepo(),
		Policy:  policy,
		DemoPIN: DemoPIN,
		Logger:  logger,
	}, st
}

// New returns a session that has been begun but not logged in.
func New(t testing.TB) *learner.Session {
	t.Helper()
	deps, _ := Deps(t)
	s := learner.New(deps)
	if _, err := s.Begin(context.Background()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	return s
}

// LoggedIn returns a session logged in with phone.
func LoggedIn(t testing.TB, phone string) *learner.Session {
	t.Helper()
	s := New(t)
	if err := s.Login(context.Background(), phone); err != nil {
		t.Fatalf("login: %v", err)
	}
	return s
}
