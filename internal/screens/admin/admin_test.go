package admin

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/ranilearn/rani/internal/learner/learnertest"
)

func TestNew_IncludesCurrentUser(t *testing.T) {
	a := New(learnertest.LoggedIn(t, learnertest.AdminPhone))
	st := a.Stats()

	if st.TotalUsers != 4 {
		t.Errorf("TotalUsers = %d, want 4", st.TotalUsers)
	}
	// demo users complete 2 + 1 + 3 lessons; the new admin none
	if st.Engagements != 6 {
		t.Errorf("Engagements = %d, want 6", st.Engagements)
	}
	if len(st.Lessons) != 6 {
		t.Fatalf("Lessons = %d, want the six core lessons", len(st.Lessons))
	}
	if st.Lessons[0].LessonID != "l1_smartphone" || st.Lessons[0].Users != 3 {
		t.Errorf("first lesson = %+v, want l1_smartphone done by 3", st.Lessons[0])
	}
}

func TestView(t *testing.T) {
	a := New(learnertest.LoggedIn(t, learnertest.AdminPhone))
	view := a.View(100, 40)
	for _, want := range []string{"Total Users", "User Directory", "Rina", learnertest.AdminPhone} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestScrollClamped(t *testing.T) {
	a := New(learnertest.LoggedIn(t, learnertest.AdminPhone))
	a.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if a.offset != 0 {
		t.Errorf("offset = %d, want 0", a.offset)
	}
	for range 10 {
		a.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if a.offset != 3 {
		t.Errorf("offset = %d, want 3", a.offset)
	}
}
