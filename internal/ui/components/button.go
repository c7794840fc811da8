package components

import "github.com/ranilearn/rani/internal/ui/theme"

// Button renders a call-to-action label. Buttons carry no state; the
// owning screen decides what Enter does.
func Button(label string, active bool) string {
	if active {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}
