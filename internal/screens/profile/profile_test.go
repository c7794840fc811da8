package profile

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/learner/learnertest"
	"github.com/ranilearn/rani/internal/screen"
)

func press(s *ProfileScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func TestSwitchLanguage(t *testing.T) {
	session := learnertest.LoggedIn(t, learnertest.Phone)
	s := New(session)

	press(s, tea.KeyDown)
	cmd := press(s, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	s.Update(cmd())

	if session.Language() != i18n.HI {
		t.Errorf("language = %s, want hi", session.Language())
	}
	if session.Profile().Language != i18n.HI {
		t.Errorf("profile language = %s, want hi", session.Profile().Language)
	}
	if !strings.HasPrefix(s.menu.Items[1].Label, "✓") {
		t.Errorf("current language should be ticked: %q", s.menu.Items[1].Label)
	}
	if s.Title() == "My Profile" {
		t.Error("title should follow the new language")
	}
}

func TestLogout(t *testing.T) {
	session := learnertest.LoggedIn(t, learnertest.Phone)
	s := New(session)
	for range 3 {
		press(s, tea.KeyDown)
	}

	cmd := press(s, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected navigation")
	}
	if nav, ok := cmd().(screen.NavigateMsg); !ok || nav.To != screen.DestLanguage {
		t.Errorf("got %#v, want navigate to language", cmd())
	}
	if session.LoggedIn() {
		t.Error("session should be logged out")
	}
}

func TestView_ShowsStats(t *testing.T) {
	s := New(learnertest.LoggedIn(t, learnertest.Phone))
	view := s.View(100, 40)
	for _, want := range []string{"100", "XP", learnertest.Phone} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
