// Package pathway shows the English course as a path of units, each unit
// unlocking after the one before it.
package pathway

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/learner"
	"github.com/ranilearn/rani/internal/progress"
	"github.com/ranilearn/rani/internal/screen"
	"github.com/ranilearn/rani/internal/screens/lesson"
	"github.com/ranilearn/rani/internal/ui/components"
	"github.com/ranilearn/rani/internal/ui/layout"
	"github.com/ranilearn/rani/internal/ui/theme"
)

// PathwayScreen lists the English units.
type PathwayScreen struct {
	session *learner.Session
	summary progress.TrackSummary
	menu    components.Menu
	errMsg  string
}

var _ screen.Screen = (*PathwayScreen)(nil)
var _ screen.KeyHintProvider = (*PathwayScreen)(nil)
var _ screen.Refresher = (*PathwayScreen)(nil)

// New creates a PathwayScreen with the cursor on the active unit.
func New(session *learner.Session) *PathwayScreen {
	p := &PathwayScreen{session: session}
	p.Refresh()
	for i, st := range p.summary.Lessons {
		if st.Active {
			p.menu.Select(i)
		}
	}
	return p
}

// Refresh recomputes unit states from the session.
func (p *PathwayScreen) Refresh() {
	p.summary = p.session.Summary(catalog.TrackEnglish)
	p.menu.SetItems(p.items())
}

// Summary returns the unit states shown.
func (p *PathwayScreen) Summary() progress.TrackSummary { return p.summary }

func (p *PathwayScreen) items() []components.MenuItem {
	tr := p.session.Translator()
	lang := p.session.Language()
	session := p.session

	items := make([]components.MenuItem, 0, len(p.summary.Lessons))
	for i, st := range p.summary.Lessons {
		id := st.Lesson.ID
		items = append(items, components.MenuItem{
			Label:    fmt.Sprintf("%s %s %d  %s", node(st), tr.T("unit"), i+1, st.Lesson.Title.In(lang)),
			Detail:   detail(st, tr.T),
			Disabled: st.Status == progress.Locked,
			Action:   func() tea.Cmd { return lesson.Open(session, id) },
		})
	}
	return items
}

func node(st progress.LessonState) string {
	switch {
	case st.Status == progress.Completed:
		return "●"
	case st.Active:
		return "◉"
	case st.Status == progress.Locked:
		return "○"
	}
	return "◌"
}

func detail(st progress.LessonState, t func(string) string) string {
	switch {
	case st.Status == progress.Completed:
		return "✓"
	case st.Status == progress.Locked:
		return "🔒"
	case st.Active:
		return t("start_path")
	}
	return ""
}

func (p *PathwayScreen) Init() tea.Cmd { return nil }

func (p *PathwayScreen) Title() string {
	return p.session.Translator().T("english_course")
}

func (p *PathwayScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "s", Description: p.session.Translator().T("start_path")},
		{Key: "Esc", Description: p.session.Translator().T("back")},
	}
}

func (p *PathwayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lesson.OpenFailedMsg:
		p.errMsg = msg.Err.Error()
		return p, nil
	case tea.KeyPressMsg:
		p.errMsg = ""
		if msg.String() == "s" && p.summary.ActiveID != "" {
			return p, lesson.Open(p.session, p.summary.ActiveID)
		}
	}

	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PathwayScreen) View(width, height int) string {
	tr := p.session.Translator()
	cw := components.ContentWidth(width)

	heading := strings.Join([]string{
		theme.Title.Render(tr.T("english_course")),
		theme.Hint.Render(tr.T("english_desc")),
	}, "\n")

	sections := []string{
		heading,
		components.ProgressBar{
			Done:      p.summary.Completed,
			Total:     p.summary.Total,
			ShowCount: true,
			Width:     cw,
		}.View(),
		"",
		p.menu.View(),
	}
	if p.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(p.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}
