// Package home is the learner dashboard: the core track, the active lesson
// and entry points to the English pathway, profile and admin console.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/learner"
	"github.com/ranilearn/rani/internal/progress"
	"github.com/ranilearn/rani/internal/router"
	"github.com/ranilearn/rani/internal/screen"
	adminscreen "github.com/ranilearn/rani/internal/screens/admin"
	"github.com/ranilearn/rani/internal/screens/lesson"
	"github.com/ranilearn/rani/internal/screens/pathway"
	profilescreen "github.com/ranilearn/rani/internal/screens/profile"
	"github.com/ranilearn/rani/internal/ui/components"
	"github.com/ranilearn/rani/internal/ui/layout"
	"github.com/ranilearn/rani/internal/ui/theme"
)

// HomeScreen is the main screen once logged in.
type HomeScreen struct {
	session *learner.Session
	summary progress.TrackSummary
	menu    components.Menu
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a HomeScreen for the logged-in session.
func New(session *learner.Session) *HomeScreen {
	h := &HomeScreen{session: session}
	h.Refresh()
	return h
}

// Refresh recomputes the track and menu from the session.
func (h *HomeScreen) Refresh() {
	h.summary = h.session.Summary(catalog.TrackCore)
	h.menu.SetItems(h.items())
}

func (h *HomeScreen) items() []components.MenuItem {
	tr := h.session.Translator()
	lang := h.session.Language()
	session := h.session

	items := make([]components.MenuItem, 0, len(h.summary.Lessons)+4)
	for _, st := range h.summary.Lessons {
		id := st.Lesson.ID
		items = append(items, components.MenuItem{
			Label:    fmt.Sprintf("%s %s", components.Icon(st.Lesson.Icon), st.Lesson.Title.In(lang)),
			Detail:   StatusDetail(st, tr.T),
			Disabled: st.Status == progress.Locked,
			Action:   func() tea.Cmd { return lesson.Open(session, id) },
		})
	}

	items = append(items,
		components.MenuItem{
			Label:  tr.T("english_course"),
			Detail: tr.T("english_desc"),
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: pathway.New(session)} }
			},
		},
		components.MenuItem{
			Label: tr.T("my_profile"),
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: profilescreen.New(session)} }
			},
		},
	)
	if p := session.Profile(); p != nil && p.IsAdmin {
		items = append(items, components.MenuItem{
			Label: tr.T("admin_console"),
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: adminscreen.New(session)} }
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  tr.T("exit"),
		Action: func() tea.Cmd { return tea.Quit },
	})
	return items
}

// StatusDetail is the short status text shown next to a lesson.
func StatusDetail(st progress.LessonState, t func(string) string) string {
	switch st.Status {
	case progress.Completed:
		if st.HasScore && len(st.Lesson.Quiz) > 0 {
			return fmt.Sprintf("✓ %s  %d/%d", t("completed"), st.Score, len(st.Lesson.Quiz))
		}
		return "✓ " + t("completed")
	case progress.Locked:
		return "🔒 " + t("locked")
	}
	if st.Active {
		return "▶"
	}
	return ""
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return h.session.Translator().T("nav_lessons")
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "s", Description: h.session.Translator().T("start_lesson")},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lesson.OpenFailedMsg:
		h.errMsg = msg.Err.Error()
		return h, nil
	case tea.KeyPressMsg:
		h.errMsg = ""
		if msg.String() == "s" && h.summary.ActiveID != "" {
			return h, lesson.Open(h.session, h.summary.ActiveID)
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	tr := h.session.Translator()
	lang := h.session.Language()
	cw := components.ContentWidth(width)

	var sections []string

	// The active card repeats a menu row, so compact terminals skip it.
	active, ok := h.session.ActiveLesson(catalog.TrackCore)
	if ok && !layout.IsCompactHeight(height+6) {
		card := strings.Join([]string{
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
				Render(fmt.Sprintf("%s  %s", components.Icon(active.Icon), active.Title.In(lang))),
			theme.Hint.Render(active.Description.In(lang)),
			"",
			components.Button(tr.T("start_lesson"), true),
		}, "\n")
		sections = append(sections, components.Card(card, cw, true))
	}

	sections = append(sections, components.ProgressBar{
		Label:     tr.T("my_progress"),
		Done:      h.summary.Completed,
		Total:     h.summary.Total,
		ShowCount: true,
		Width:     cw,
	}.View())

	sections = append(sections, h.menu.View())
	if h.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(h.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}
