package lesson

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ranilearn/rani/internal/simulation"
	"github.com/ranilearn/rani/internal/ui/components"
	"github.com/ranilearn/rani/internal/ui/theme"
)

const phoneWidth = 30

const qrArt = `█▀▀▀█ ▄▀▄ █▀▀▀█
█ █ █ ▀▄█ █ █ █
▀▀▀▀▀ █▄▀ ▀▀▀▀▀
▀▄█▀▄▀ ▄█▀▄ ▀▄
█▀▀▀█ ▄▀█▄▀ ▄▀
█ █ █ █▀▄ ▀█▄▀
▀▀▀▀▀ ▀ ▀▀ ▀▀▀`

const mapArt = `┌───────┬──────┐
│  ▲    │      │
│ Bank  │  ◉   │
├───────┼─CSC──┤
│       │      │
└───────┴──────┘`

// renderSimulation draws the simulated app inside a phone frame.
func (l *LessonScreen) renderSimulation() string {
	tr := l.session.Translator()
	f := l.flow
	if f == nil || f.Done() {
		return theme.Correct.Render("✓ " + tr.T("completed"))
	}

	title := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(f.AppName())
	var lines []string

	switch f.Stage() {
	case simulation.StageLauncher:
		lines = []string{
			theme.Hint.Render(tr.T("check_balance")),
			"",
			components.Button(tr.T("open_app"), true),
		}
	case simulation.StageScanQR:
		lines = []string{
			theme.Hint.Render(tr.T("scan_qr")),
			qrArt,
			"",
			components.Button(tr.T("scan_qr"), true),
		}
	case simulation.StageAmount:
		amount := f.Amount()
		if amount == "" {
			amount = "0"
		}
		lines = []string{
			theme.Hint.Render(simulation.Payee),
			theme.Hint.Render(tr.T("enter_amount")),
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("₹ " + amount),
			"",
			components.Button(tr.T("pay"), f.Amount() != ""),
		}
	case simulation.StagePIN:
		dots := strings.Repeat("● ", f.PINDigits()) +
			strings.Repeat("○ ", simulation.PINLength-f.PINDigits())
		lines = []string{
			theme.Hint.Render(tr.T("pin_enter")),
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(strings.TrimSpace(dots)),
			"",
			theme.Hint.Render(tr.T("demo_pin") + ": " + l.session.DemoPIN()),
			components.Button(tr.T("submit"), f.PINDigits() == simulation.PINLength),
		}
	case simulation.StageSuccess:
		lines = []string{
			theme.Correct.Render("✓ " + tr.T("success")),
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("₹ " + f.Amount()),
			theme.Hint.Render(simulation.Payee),
			theme.Hint.Render("Txn " + simulation.TransactionID),
			"",
			components.Button(tr.T("finish"), true),
		}
	case simulation.StageMap:
		lines = []string{
			theme.Hint.Render(tr.T("find_center")),
			mapArt,
			theme.Hint.Render(tr.T("found_center")),
			"",
			components.Button(tr.T("finish"), true),
		}
	}

	inner := lipgloss.JoinVertical(lipgloss.Center, append([]string{title, ""}, lines...)...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Width(phoneWidth).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(inner)
}
