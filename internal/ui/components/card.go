package components

import (
	"charm.land/lipgloss/v2"

	"github.com/ranilearn/rani/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards so
// they line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

// Card wraps content in a rounded card at width cw. An active card is
// drawn with the highlight border.
func Card(content string, cw int, active bool) string {
	style := theme.Card
	if active {
		style = theme.ActiveCard
	}
	return style.Width(cw - 2).Render(content)
}

// Centered places content in the middle of the given area.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Stack joins sections vertically, centered on the widest.
func Stack(sections ...string) string {
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}
