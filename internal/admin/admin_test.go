package admin

import (
	"testing"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/profile"
)

func TestDirectory(t *testing.T) {
	if got := len(Directory(nil)); got != 3 {
		t.Errorf("Directory(nil) has %d users, want 3", got)
	}

	me := &profile.Profile{ID: "me", Name: "Rani User", Language: i18n.EN}
	users := Directory(me)
	if len(users) != 4 {
		t.Fatalf("Directory(me) has %d users, want 4", len(users))
	}
	if users[3].ID != "me" {
		t.Errorf("last user = %q, want current profile", users[3].ID)
	}
	if users[3] == me {
		t.Error("Directory should copy the current profile")
	}
}

func TestCompute(t *testing.T) {
	me := &profile.Profile{
		ID:        "me",
		Completed: map[string]struct{}{"l1_smartphone": {}},
	}
	stats := Compute(Directory(me), catalog.Default().Track(catalog.TrackCore))

	if stats.TotalUsers != 4 {
		t.Errorf("TotalUsers = %d, want 4", stats.TotalUsers)
	}
	// Rina 2 + Sita 1 + Gita 3 + me 1.
	if stats.Engagements != 7 {
		t.Errorf("Engagements = %d, want 7", stats.Engagements)
	}

	want := map[string]int{
		"l1_smartphone":     4,
		"l2_payments_intro": 2,
		"l3_upi_sim":        1,
		"l4_paytm_sim":      0,
	}
	if len(stats.Lessons) != 6 {
		t.Fatalf("got %d lesson counts, want 6", len(stats.Lessons))
	}
	for _, lc := range stats.Lessons {
		if w, ok := want[lc.LessonID]; ok && lc.Users != w {
			t.Errorf("%s completed by %d users, want %d", lc.LessonID, lc.Users, w)
		}
	}
	if stats.Lessons[0].LessonID != "l1_smartphone" {
		t.Errorf("first lesson = %q, want catalog order", stats.Lessons[0].LessonID)
	}
}

func TestDemoUsersAreFresh(t *testing.T) {
	a := DemoUsers()
	a[0].XP = 9999
	if DemoUsers()[0].XP != 150 {
		t.Error("DemoUsers should return new profiles each call")
	}
}
