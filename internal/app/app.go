// Package app is the root Bubble Tea model: it owns the screen stack,
// frames the active screen and routes top-level navigation.
package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/ranilearn/rani/internal/learner"
	"github.com/ranilearn/rani/internal/router"
	"github.com/ranilearn/rani/internal/screen"
	"github.com/ranilearn/rani/internal/screens/home"
	"github.com/ranilearn/rani/internal/screens/language"
	"github.com/ranilearn/rani/internal/screens/login"
	"github.com/ranilearn/rani/internal/screens/pathway"
	"github.com/ranilearn/rani/internal/screens/welcome"
	"github.com/ranilearn/rani/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	session *learner.Session
	router  *router.Router
	width   int
	height  int
}

// New creates the model. The welcome splash hands over to the screen
// for start.
func New(session *learner.Session, start learner.Start) AppModel {
	m := AppModel{session: session}
	m.router = router.New(welcome.New(func() screen.Screen {
		return m.stackFor(destinationFor(start))[0]
	}))
	return m
}

func destinationFor(s learner.Start) screen.Destination {
	switch s {
	case learner.StartHome:
		return screen.DestHome
	case learner.StartLogin:
		return screen.DestLogin
	}
	return screen.DestLanguage
}

// stackFor builds the screens for a destination, bottom first. Destinations
// behind login fall back to the language picker when logged out.
func (m AppModel) stackFor(to screen.Destination) []screen.Screen {
	if (to == screen.DestHome || to == screen.DestPathway) && !m.session.LoggedIn() {
		to = screen.DestLanguage
	}
	switch to {
	case screen.DestLogin:
		return []screen.Screen{login.New(m.session)}
	case screen.DestHome:
		return []screen.Screen{home.New(m.session)}
	case screen.DestPathway:
		return []screen.Screen{home.New(m.session), pathway.New(m.session)}
	}
	return []screen.Screen{language.New(m.session)}
}

// Active returns the screen on top of the stack.
func (m AppModel) Active() screen.Screen { return m.router.Active() }

// Depth returns the stack depth.
func (m AppModel) Depth() int { return m.router.Depth() }

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.NavigateMsg:
		m.session.Logger().WithField("to", msg.To.String()).Debug("navigate")
		return m, m.router.Reset(m.stackFor(msg.To)...)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the framed active screen, or nothing before the first
// window size arrives.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var stats *layout.Stats
	if p := m.session.Profile(); p != nil {
		stats = &layout.Stats{XP: p.XP, Streak: p.Streak}
	}
	header := layout.RenderHeader(title, stats, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
// Cancelling ctx stops it.
func Run(ctx context.Context, session *learner.Session, start learner.Start) error {
	p := tea.NewProgram(New(session, start), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrInterrupted) {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
