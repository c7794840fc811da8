// Package admin is the console screen: user totals, completions per core
// lesson and the user directory.
package admin

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ranilearn/rani/internal/admin"
	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/learner"
	"github.com/ranilearn/rani/internal/profile"
	"github.com/ranilearn/rani/internal/screen"
	"github.com/ranilearn/rani/internal/ui/components"
	"github.com/ranilearn/rani/internal/ui/layout"
	"github.com/ranilearn/rani/internal/ui/theme"
)

// AdminScreen shows console aggregates. It is read-only.
type AdminScreen struct {
	session *learner.Session
	users   []*profile.Profile
	stats   admin.Stats
	offset  int // first directory row shown
}

var _ screen.Screen = (*AdminScreen)(nil)
var _ screen.KeyHintProvider = (*AdminScreen)(nil)

// New computes the console for the current session.
func New(session *learner.Session) *AdminScreen {
	users := admin.Directory(session.Profile())
	return &AdminScreen{
		session: session,
		users:   users,
		stats:   admin.Compute(users, session.Catalog().Track(catalog.TrackCore)),
	}
}

// Stats returns the aggregates shown.
func (a *AdminScreen) Stats() admin.Stats { return a.stats }

func (a *AdminScreen) Init() tea.Cmd { return nil }

func (a *AdminScreen) Title() string {
	return a.session.Translator().T("admin_console")
}

func (a *AdminScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: a.session.Translator().T("back")},
	}
}

func (a *AdminScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "up", "k":
			a.offset = max(a.offset-1, 0)
		case "down", "j":
			a.offset = min(a.offset+1, max(len(a.users)-1, 0))
		}
	}
	return a, nil
}

func (a *AdminScreen) View(width, height int) string {
	tr := a.session.Translator()
	lang := a.session.Language()
	cw := components.ContentWidth(width)

	big := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	cell := lipgloss.NewStyle().Width(cw / 2).Align(lipgloss.Center)
	totals := lipgloss.JoinHorizontal(lipgloss.Top,
		cell.Render(lipgloss.JoinVertical(lipgloss.Center,
			big.Render(fmt.Sprint(a.stats.TotalUsers)), theme.Hint.Render(tr.T("total_users")))),
		cell.Render(lipgloss.JoinVertical(lipgloss.Center,
			big.Render(fmt.Sprint(a.stats.Engagements)), theme.Hint.Render(tr.T("engagements")))),
	)

	var bars []string
	for _, lc := range a.stats.Lessons {
		bars = append(bars, components.ProgressBar{
			Label:     lc.Title.In(lang),
			Done:      lc.Users,
			Total:     a.stats.TotalUsers,
			ShowCount: true,
			Width:     cw,
		}.View())
	}

	sections := []string{
		theme.Title.Render(tr.T("admin_console")),
		"",
		totals,
		"",
		strings.Join(bars, "\n"),
	}

	// Compact terminals drop the directory; the totals matter more.
	if !layout.IsCompactHeight(height + 6) {
		sections = append(sections, "", theme.Subtitle.Render(tr.T("user_directory")), a.directory(cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (a *AdminScreen) directory(width int) string {
	current := a.session.Profile()
	rows := make([]string, 0, len(a.users))
	for _, u := range a.users[a.offset:] {
		line := fmt.Sprintf("%-10s %-12s %-4s %4d XP  %2d ✓", u.Name, u.Phone, u.Language, u.XP, len(u.Completed))
		style := theme.Body
		if current != nil && u.ID == current.ID {
			style = theme.Selected
		}
		rows = append(rows, style.MaxWidth(width).Render(line))
	}
	return strings.Join(rows, "\n")
}
