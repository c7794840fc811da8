package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/ranilearn/rani/internal/progress"
	"github.com/ranilearn/rani/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is implemented by screens that show learner state which may
// have changed while another screen was on top. The router calls Refresh
// when the screen becomes active again.
type Refresher interface {
	Refresh()
}

// BackHandler is implemented by screens that handle Esc themselves
// instead of letting the app pop them.
type BackHandler interface {
	HandlesBack() bool
}

// Destination is a top-level place the app can navigate to. Navigating
// replaces the whole screen stack.
type Destination int

const (
	DestLanguage Destination = iota
	DestLogin
	DestHome
	DestPathway
)

func (d Destination) String() string {
	switch d {
	case DestLanguage:
		return "language"
	case DestLogin:
		return "login"
	case DestPathway:
		return "pathway"
	}
	return "home"
}

// NavigateMsg asks the app to rebuild the stack for a destination.
type NavigateMsg struct {
	To Destination
}

// Navigate returns a command emitting NavigateMsg.
func Navigate(to Destination) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: to} }
}

// DestinationFor maps a post-lesson route to its destination.
func DestinationFor(r progress.Route) Destination {
	if r == progress.RoutePathway {
		return DestPathway
	}
	return DestHome
}
