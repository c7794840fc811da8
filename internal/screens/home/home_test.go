package home

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/ranilearn/rani/internal/learner/learnertest"
	"github.com/ranilearn/rani/internal/progress"
	"github.com/ranilearn/rani/internal/router"
	"github.com/ranilearn/rani/internal/screens/lesson"
	"github.com/ranilearn/rani/internal/screens/pathway"
)

func labels(h *HomeScreen) []string {
	out := make([]string, len(h.menu.Items))
	for i, it := range h.menu.Items {
		out[i] = it.Label
	}
	return out
}

func TestMenu_RegularLearner(t *testing.T) {
	h := New(learnertest.LoggedIn(t, learnertest.Phone))

	// six core lessons, English course, profile, exit
	if got := len(h.menu.Items); got != 9 {
		t.Fatalf("items = %d (%v), want 9", got, labels(h))
	}
	for _, l := range labels(h) {
		if l == "Admin Console" {
			t.Error("regular learners must not see the admin console")
		}
	}
	if h.menu.Items[0].Disabled {
		t.Error("first lesson should be open")
	}
	if !h.menu.Items[1].Disabled {
		t.Error("second lesson should be locked")
	}
}

func TestMenu_AdminSeesConsole(t *testing.T) {
	h := New(learnertest.LoggedIn(t, learnertest.AdminPhone))
	found := false
	for _, l := range labels(h) {
		found = found || l == "Admin Console"
	}
	if !found {
		t.Errorf("admin console missing from %v", labels(h))
	}
}

func TestMenu_SkipsLockedLessons(t *testing.T) {
	h := New(learnertest.LoggedIn(t, learnertest.Phone))
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected the English course to open")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected a push")
	}
	if _, ok := push.Screen.(*pathway.PathwayScreen); !ok {
		t.Errorf("pushed %T, want pathway", push.Screen)
	}
}

func TestStartKey_OpensActiveLesson(t *testing.T) {
	h := New(learnertest.LoggedIn(t, learnertest.Phone))
	_, cmd := h.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected a push")
	}
	ls, ok := push.Screen.(*lesson.LessonScreen)
	if !ok || ls.Player().Lesson().ID != "l1_smartphone" {
		t.Errorf("pushed %T, want the first lesson", push.Screen)
	}
}

func TestOpenFailed_ShowsError(t *testing.T) {
	h := New(learnertest.LoggedIn(t, learnertest.Phone))
	h.Update(lesson.OpenFailedMsg{Err: errors.New("lesson is locked")})
	if !strings.Contains(h.View(100, 40), "lesson is locked") {
		t.Error("error should be shown")
	}
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if strings.Contains(h.View(100, 40), "lesson is locked") {
		t.Error("error should clear on the next key")
	}
}

func TestStatusDetail(t *testing.T) {
	tr := func(k string) string { return k }
	h := New(learnertest.LoggedIn(t, learnertest.Phone))
	first := h.summary.Lessons[0]

	tests := []struct {
		name string
		st   progress.LessonState
		want string
	}{
		{"active", first, "▶"},
		{"locked", progress.LessonState{Lesson: first.Lesson, Status: progress.Locked}, "🔒 locked"},
		{"completed no score", progress.LessonState{Lesson: first.Lesson, Status: progress.Completed}, "✓ completed"},
		{"completed with score", progress.LessonState{Lesson: first.Lesson, Status: progress.Completed, HasScore: true, Score: 1}, "✓ completed  1/1"},
		{"open", progress.LessonState{Lesson: first.Lesson, Status: progress.Unlocked}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusDetail(tt.st, tr); got != tt.want {
				t.Errorf("StatusDetail = %q, want %q", got, tt.want)
			}
		})
	}
}
