package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/ranilearn/rani/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label string
	// Detail is shown dimmed after the label, e.g. a lesson's status.
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu. Disabled items are shown but
// skipped by the cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Select(0)
	return m
}

// Select moves the cursor to item i, or to the next enabled item after it.
func (m *Menu) Select(i int) {
	for j := max(i, 0); j < len(m.Items); j++ {
		if !m.Items[j].Disabled {
			m.Selected = j
			return
		}
	}
	for j := min(i, len(m.Items)-1); j >= 0; j-- {
		if !m.Items[j].Disabled {
			m.Selected = j
			return
		}
	}
	m.Selected = 0
}

// SetItems replaces the items, keeping the cursor where it was when
// possible.
func (m *Menu) SetItems(items []MenuItem) {
	m.Items = items
	m.Select(m.Selected)
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		var line string
		switch {
		case item.Disabled:
			line = theme.Disabled.Render("    " + item.Label)
		case i == m.Selected:
			line = theme.Selected.Render("  ▸ " + item.Label)
		default:
			line = theme.Unselected.Render("    " + item.Label)
		}
		if item.Detail != "" {
			line += "  " + theme.Hint.Render(item.Detail)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
