package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ranilearn/rani/internal/router"
	"github.com/ranilearn/rani/internal/screen"
	"github.com/ranilearn/rani/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 400 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

const phoneArt = `  ╭─────────╮
  │ ▁▁▁▁▁▁▁ │
  │ │ ₹  ✓│ │
  │ │ ▔▔▔ │ │
  │ ▔▔▔▔▔▔▔ │
  │    ○    │
  ╰─────────╯`

// tagline is shown in every supported script before a language is chosen.
const tagline = "Learn digital skills  ·  डिजिटल कौशल सीखें  ·  ডিজিটাল দক্ষতা শিখুন"

var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation, then hands over to the screen
// produced by next on a key press or when the animation ends.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	rendered := lipgloss.NewStyle().Foreground(theme.Secondary).Render(phoneArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Primary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		lines[0] = s1 + "  " + lines[0] + "  " + s2
		if len(lines) > 5 {
			lines[5] = s2 + "  " + lines[5] + "  " + s1
		}
		rendered = strings.Join(lines, "\n")
	}

	sections := []string{
		rendered,
		"",
		RenderBanner(width),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
		"",
		lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key"),
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
