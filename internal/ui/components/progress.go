package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ranilearn/rani/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar of done out of total.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	// ShowCount appends "done/total" instead of a percentage.
	ShowCount bool
	Width     int
}

// Percent returns completion as 0..100.
func (p ProgressBar) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return min(max(p.Done*100/p.Total, 0), 100)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := fmt.Sprintf("  %d%%", p.Percent())
	if p.ShowCount {
		suffix = fmt.Sprintf("  %d/%d", p.Done, p.Total)
	}

	barWidth := max(p.Width-lipgloss.Width(result)-lipgloss.Width(suffix), 4)
	filled := barWidth * p.Percent() / 100

	result += lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))

	return result + lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
}
