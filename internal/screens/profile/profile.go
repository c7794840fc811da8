// Package profile shows the learner's stats and lets them switch language
// or log out.
package profile

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/learner"
	"github.com/ranilearn/rani/internal/screen"
	"github.com/ranilearn/rani/internal/ui/components"
	"github.com/ranilearn/rani/internal/ui/layout"
	"github.com/ranilearn/rani/internal/ui/theme"
)

type languageSavedMsg struct{ err error }

// ProfileScreen shows stats for the logged-in learner.
type ProfileScreen struct {
	session *learner.Session
	menu    components.Menu
	errMsg  string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)
var _ screen.Refresher = (*ProfileScreen)(nil)

// New creates a ProfileScreen.
func New(session *learner.Session) *ProfileScreen {
	s := &ProfileScreen{session: session}
	s.Refresh()
	return s
}

// Refresh rebuilds the menu, whose labels follow the UI language.
func (s *ProfileScreen) Refresh() {
	s.menu.SetItems(s.items())
}

func (s *ProfileScreen) items() []components.MenuItem {
	session := s.session
	current := session.Language()

	items := make([]components.MenuItem, 0, len(i18n.All())+1)
	for _, lang := range i18n.All() {
		label := "  " + lang.NativeName()
		if lang == current {
			label = "✓ " + lang.NativeName()
		}
		items = append(items, components.MenuItem{
			Label: label,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return languageSavedMsg{err: session.SetLanguage(context.Background(), lang)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label: session.Translator().T("logout"),
		Action: func() tea.Cmd {
			session.Logout()
			return screen.Navigate(screen.DestLanguage)
		},
	})
	return items
}

func (s *ProfileScreen) Init() tea.Cmd { return nil }

func (s *ProfileScreen) Title() string {
	return s.session.Translator().T("my_profile")
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: s.session.Translator().T("back")},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case languageSavedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			s.session.Logger().WithError(msg.err).Warn("failed to save language")
		}
		s.Refresh()
		return s, nil
	case tea.KeyPressMsg:
		s.errMsg = ""
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ProfileScreen) View(width, height int) string {
	tr := s.session.Translator()
	p := s.session.Profile()
	if p == nil {
		return ""
	}

	stat := func(value int, label string) string {
		return lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprint(value)),
			theme.Hint.Render(label))
	}
	cell := lipgloss.NewStyle().Width(16).Align(lipgloss.Center)
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		cell.Render(stat(len(p.Completed), tr.T("lessons_done"))),
		cell.Render(stat(p.TotalScore(), tr.T("total_score"))),
		cell.Render(stat(p.XP, tr.T("xp"))),
		cell.Render(stat(p.Streak, tr.T("streak"))),
	)

	who := p.Phone
	if p.Name != "" {
		who = p.Name + "  " + p.Phone
	}

	sections := []string{
		theme.Title.Render(tr.T("my_profile")),
		theme.Hint.Render(who),
		"",
		stats,
		"",
		theme.Subtitle.Render(tr.T("choose_language")),
		s.menu.View(),
	}
	if s.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(s.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}
