// Package login asks for the learner's phone number and signs them in.
package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/ranilearn/rani/internal/learner"
	"github.com/ranilearn/rani/internal/profile"
	"github.com/ranilearn/rani/internal/screen"
	"github.com/ranilearn/rani/internal/ui/components"
	"github.com/ranilearn/rani/internal/ui/layout"
	"github.com/ranilearn/rani/internal/ui/theme"
)

const phoneCharLimit = 15

type loginMsg struct {
	err error
}

// LoginScreen collects a phone number. Login resolves asynchronously
// because it includes a short cosmetic delay.
type LoginScreen struct {
	session   *learner.Session
	input     components.TextInput
	loggingIn bool
	errMsg    string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen.
func New(session *learner.Session) *LoginScreen {
	return &LoginScreen{
		session: session,
		input:   components.NewTextInput(session.Translator().T("phone_placeholder"), true, phoneCharLimit),
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LoginScreen) Title() string {
	return l.session.Translator().T("welcome")
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	tr := l.session.Translator()
	return []layout.KeyHint{
		{Key: "Enter", Description: tr.T("login_btn")},
		{Key: "Esc", Description: tr.T("choose_language")},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginMsg:
		l.loggingIn = false
		switch {
		case errors.Is(msg.err, profile.ErrInvalidPhone):
			l.errMsg = l.session.Translator().T("invalid_phone")
		case msg.err != nil:
			l.errMsg = msg.err.Error()
		default:
			return l, screen.Navigate(screen.DestHome)
		}
		return l, nil

	case tea.KeyPressMsg:
		if l.loggingIn {
			return l, nil
		}
		switch msg.String() {
		case "enter":
			return l, l.submit()
		case "esc":
			return l, screen.Navigate(screen.DestLanguage)
		}
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

// submit rejects a short number locally and otherwise starts the login.
func (l *LoginScreen) submit() tea.Cmd {
	phone := l.input.Value()
	if !l.session.Profiles().ValidPhone(phone) {
		l.errMsg = l.session.Translator().T("invalid_phone")
		return nil
	}
	l.errMsg = ""
	l.loggingIn = true
	session := l.session
	return func() tea.Msg {
		return loginMsg{err: session.Login(context.Background(), phone)}
	}
}

func (l *LoginScreen) View(width, height int) string {
	tr := l.session.Translator()
	cw := components.ContentWidth(width)

	status := theme.Hint.Render(" ")
	switch {
	case l.loggingIn:
		status = theme.Hint.Render(tr.T("logging_in"))
	case l.errMsg != "":
		status = theme.ErrorText.Render(l.errMsg)
	}

	body := strings.Join([]string{
		theme.Title.Render(tr.T("welcome")),
		theme.Subtitle.Render(tr.T("login_subtitle")),
		"",
		l.input.View(),
		"",
		status,
		"",
		components.Button(tr.T("login_btn"), !l.loggingIn),
	}, "\n")

	return components.Centered(components.Card(body, cw, true), width, height)
}
