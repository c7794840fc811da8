package profile

import (
	"testing"

	"github.com/ranilearn/rani/internal/i18n"
)

func sampleProfile() *Profile {
	return &Profile{
		ID:         "p1",
		Phone:      "9876543210",
		Name:       DefaultName,
		Language:   i18n.HI,
		Completed:  map[string]struct{}{"l1_smartphone": {}, "l2_payments_intro": {}},
		QuizScores: map[string]int{"l1_smartphone": 1, "l2_payments_intro": 2},
		XP:         150,
		Streak:     3,
	}
}

func TestClone_IsDeep(t *testing.T) {
	p := sampleProfile()
	c := p.Clone()
	c.Completed["l3_upi_sim"] = struct{}{}
	c.QuizScores["l1_smartphone"] = 0
	c.XP = 999

	if p.HasCompleted("l3_upi_sim") {
		t.Error("clone shares the completed set")
	}
	if p.QuizScores["l1_smartphone"] != 1 {
		t.Error("clone shares quiz scores")
	}
	if p.XP != 150 {
		t.Error("clone shares xp")
	}
	if (*Profile)(nil).Clone() != nil {
		t.Error("nil clone should be nil")
	}
}

func TestTotalScore(t *testing.T) {
	if got := sampleProfile().TotalScore(); got != 3 {
		t.Errorf("TotalScore() = %d, want 3", got)
	}
	if got := (&Profile{}).TotalScore(); got != 0 {
		t.Errorf("empty TotalScore() = %d, want 0", got)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	p := sampleProfile()
	p.LastActiveLessonID = "l3_upi_sim"
	data, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.XP != 150 || got.Streak != 3 {
		t.Errorf("xp/streak = %d/%d, want 150/3", got.XP, got.Streak)
	}
	if !got.HasCompleted("l2_payments_intro") || len(got.Completed) != 2 {
		t.Errorf("completed = %v", got.CompletedIDs())
	}
	if got.LastActiveLessonID != "l3_upi_sim" {
		t.Errorf("last active = %q, want l3_upi_sim", got.LastActiveLessonID)
	}
	if got.Language != i18n.HI {
		t.Errorf("language = %q, want hi", got.Language)
	}
}

func TestDecode_BackfillsOldDocuments(t *testing.T) {
	old := `{"id":"1","phone":"12345","name":"Rina","language":"bn","completedLessons":["l1_smartphone"],"quizScores":{"l1_smartphone":1},"isAdmin":false}`
	p, err := Decode([]byte(old))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.XP != 0 {
		t.Errorf("XP = %d, want 0", p.XP)
	}
	if p.Streak != 1 {
		t.Errorf("Streak = %d, want 1", p.Streak)
	}
	if p.Language != i18n.BN {
		t.Errorf("Language = %q, want bn", p.Language)
	}

	bare, err := Decode([]byte(`{"id":"2","language":"xx"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if bare.Completed == nil || bare.QuizScores == nil {
		t.Error("collections should be empty, not nil")
	}
	if bare.Language != i18n.EN {
		t.Errorf("unknown language decoded as %q, want en", bare.Language)
	}
}

func TestDecode_Garbage(t *testing.T) {
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed document")
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"98765 43210", "9876543210"},
		{"+91-98765-43210", "919876543210"},
		{"abc", ""},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
