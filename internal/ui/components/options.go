package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ranilearn/rani/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// OptionList renders a multiple-choice question. Before an answer the
// cursor is highlighted; after it the correct option turns green and a
// wrong choice red.
type OptionList struct {
	Question string
	Options  []string
	Cursor   int
	Answered bool
	Chosen   int
	Correct  int
}

// View renders the question and its options.
func (o OptionList) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(o.Question))
	b.WriteString("\n\n")

	for i, opt := range o.Options {
		label := fmt.Sprint(i + 1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == o.Cursor && !o.Answered {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		style := theme.Unselected
		switch {
		case o.Answered && i == o.Correct:
			style = theme.Correct
		case o.Answered && i == o.Chosen:
			style = theme.Incorrect
		case o.Answered:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == o.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
