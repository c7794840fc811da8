package pathway

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/ranilearn/rani/internal/learner/learnertest"
	"github.com/ranilearn/rani/internal/progress"
	"github.com/ranilearn/rani/internal/router"
	"github.com/ranilearn/rani/internal/screens/lesson"
)

func TestNew_FirstUnitActive(t *testing.T) {
	p := New(learnertest.LoggedIn(t, learnertest.Phone))
	sum := p.Summary()

	if sum.Total != 8 {
		t.Fatalf("Total = %d, want 8", sum.Total)
	}
	if sum.ActiveID != "e_unit1_a_e" {
		t.Errorf("ActiveID = %q, want e_unit1_a_e", sum.ActiveID)
	}
	for i, st := range sum.Lessons[1:] {
		if st.Status != progress.Locked {
			t.Errorf("unit %d status = %v, want locked", i+2, st.Status)
		}
	}
	if p.menu.Selected != 0 {
		t.Errorf("cursor = %d, want the active unit", p.menu.Selected)
	}
}

func TestEnter_OpensUnit(t *testing.T) {
	p := New(learnertest.LoggedIn(t, learnertest.Phone))
	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected a push")
	}
	if ls, ok := push.Screen.(*lesson.LessonScreen); !ok || ls.Player().Lesson().ID != "e_unit1_a_e" {
		t.Errorf("pushed %T, want unit 1", push.Screen)
	}
}

func TestDown_StaysOnOnlyOpenUnit(t *testing.T) {
	p := New(learnertest.LoggedIn(t, learnertest.Phone))
	p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if p.menu.Selected != 0 {
		t.Errorf("cursor moved onto a locked unit: %d", p.menu.Selected)
	}
}

func TestNode(t *testing.T) {
	tests := []struct {
		st   progress.LessonState
		want string
	}{
		{progress.LessonState{Status: progress.Completed}, "●"},
		{progress.LessonState{Status: progress.Unlocked, Active: true}, "◉"},
		{progress.LessonState{Status: progress.Locked}, "○"},
		{progress.LessonState{Status: progress.Unlocked}, "◌"},
	}
	for _, tt := range tests {
		if got := node(tt.st); got != tt.want {
			t.Errorf("node(%v) = %q, want %q", tt.st.Status, got, tt.want)
		}
	}
}
