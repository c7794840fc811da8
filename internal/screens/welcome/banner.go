package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/ranilearn/rani/internal/ui/theme"
)

const bannerArt = `
 ██████╗  █████╗ ███╗   ██╗██╗
 ██╔══██╗██╔══██╗████╗  ██║██║
 ██████╔╝███████║██╔██╗ ██║██║
 ██╔══██╗██╔══██║██║╚██╗██║██║
 ██║  ██║██║  ██║██║ ╚████║██║
 ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝`

const bannerCompact = "R A N I"

// RenderBanner returns the RANI banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 36 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 36 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
