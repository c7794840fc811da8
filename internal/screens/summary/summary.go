// Package summary is shown after a lesson's quiz completes.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/learner"
	"github.com/ranilearn/rani/internal/progress"
	"github.com/ranilearn/rani/internal/screen"
	"github.com/ranilearn/rani/internal/ui/components"
	"github.com/ranilearn/rani/internal/ui/layout"
	"github.com/ranilearn/rani/internal/ui/theme"
)

// Result is the outcome of a completed attempt.
type Result struct {
	LessonID string
	Title    i18n.Text
	Score    int
	Total    int
	Scored   bool
	// XP is everything earned in the attempt, practice included.
	XP    int
	Route progress.Route
}

// SummaryScreen displays the lesson result.
type SummaryScreen struct {
	session *learner.Session
	result  Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.BackHandler = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(session *learner.Session, result Result) *SummaryScreen {
	return &SummaryScreen{session: session, result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return s.session.Translator().T("lesson_completed")
}

// HandlesBack is true so that Esc follows the lesson's route instead of
// popping back into the finished attempt.
func (s *SummaryScreen) HandlesBack() bool { return true }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: s.session.Translator().T("continue")},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "space":
			return s, screen.Navigate(screen.DestinationFor(s.result.Route))
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	tr := s.session.Translator()
	r := s.result
	cw := components.ContentWidth(width)

	lines := []string{
		theme.Title.Render("🎉 " + tr.T("congrats")),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(r.Title.In(s.session.Language())),
		theme.Subtitle.Render(tr.T("lesson_completed")),
		"",
	}
	if r.Scored {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("%s: %d/%d", tr.T("score"), r.Score, r.Total)))
	}
	lines = append(lines,
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("+%d %s", r.XP, tr.T("xp"))),
		"",
		components.Button(tr.T("continue"), true),
	)

	card := lipgloss.NewStyle().Width(cw - 6).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
	return components.Centered(components.Card(card, cw, true), width, height)
}
