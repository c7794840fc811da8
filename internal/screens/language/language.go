// Package language is the first onboarding step: picking the UI language.
package language

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/learner"
	"github.com/ranilearn/rani/internal/screen"
	"github.com/ranilearn/rani/internal/ui/components"
	"github.com/ranilearn/rani/internal/ui/layout"
	"github.com/ranilearn/rani/internal/ui/theme"
)

type savedMsg struct {
	err error
}

// LanguageScreen lists the supported languages by their native names.
type LanguageScreen struct {
	session *learner.Session
	langs   []i18n.Language
	cursor  int
	saving  bool
	errMsg  string
}

var _ screen.Screen = (*LanguageScreen)(nil)
var _ screen.KeyHintProvider = (*LanguageScreen)(nil)

// New creates a LanguageScreen with the cursor on the current language.
func New(session *learner.Session) *LanguageScreen {
	l := &LanguageScreen{session: session, langs: i18n.All()}
	for i, lang := range l.langs {
		if lang == session.Language() {
			l.cursor = i
		}
	}
	return l
}

func (l *LanguageScreen) Init() tea.Cmd { return nil }

func (l *LanguageScreen) Title() string {
	return l.session.Translator().T("choose_language")
}

func (l *LanguageScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: l.session.Translator().T("continue")},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Selected returns the language under the cursor.
func (l *LanguageScreen) Selected() i18n.Language { return l.langs[l.cursor] }

func (l *LanguageScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		l.saving = false
		if msg.err != nil {
			l.errMsg = msg.err.Error()
			return l, nil
		}
		if l.session.LoggedIn() {
			return l, screen.Navigate(screen.DestHome)
		}
		return l, screen.Navigate(screen.DestLogin)

	case tea.KeyPressMsg:
		if l.saving {
			return l, nil
		}
		switch msg.String() {
		case "up", "k":
			l.cursor = max(l.cursor-1, 0)
		case "down", "j":
			l.cursor = min(l.cursor+1, len(l.langs)-1)
		case "enter":
			l.saving = true
			l.errMsg = ""
			return l, l.save(l.Selected())
		}
	}
	return l, nil
}

func (l *LanguageScreen) save(lang i18n.Language) tea.Cmd {
	session := l.session
	return func() tea.Msg {
		return savedMsg{err: session.SetLanguage(context.Background(), lang)}
	}
}

func (l *LanguageScreen) View(width, height int) string {
	var rows []string
	for i, lang := range l.langs {
		rows = append(rows, components.Button(lang.NativeName(), i == l.cursor))
	}

	sections := []string{
		theme.Title.Render(l.session.Translator().T("choose_language")),
		"",
		lipgloss.JoinVertical(lipgloss.Center, rows...),
	}
	if l.errMsg != "" {
		sections = append(sections, "", theme.ErrorText.Render(l.errMsg))
	}
	return components.Centered(strings.Join(sections, "\n"), width, height)
}
