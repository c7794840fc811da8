package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/player"
	"github.com/ranilearn/rani/internal/ui/components"
	"github.com/ranilearn/rani/internal/ui/theme"
)

func (l *LessonScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch l.player.Phase() {
	case player.PhaseStep:
		body = l.renderStep(cw)
	case player.PhaseQuiz:
		body = l.renderQuiz(cw)
	default:
		body = theme.Hint.Render(l.session.Translator().T("saving"))
	}

	sections := []string{l.renderProgress(cw), "", body}
	if l.notice != "" {
		sections = append(sections, "", theme.ErrorText.Render(l.notice))
	}
	if l.errMsg != "" {
		sections = append(sections, "", theme.ErrorText.Render(l.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (l *LessonScreen) renderProgress(cw int) string {
	tr := l.session.Translator()
	if l.player.Phase() == player.PhaseQuiz {
		return components.ProgressBar{
			Label:     tr.T("quiz"),
			Done:      l.player.QuestionIndex() + 1,
			Total:     l.player.QuestionCount(),
			ShowCount: true,
			Width:     cw,
		}.View()
	}
	return components.ProgressBar{
		Label:     fmt.Sprintf("%s %s", components.Icon(l.player.Lesson().Icon), l.Title()),
		Done:      l.player.StepIndex() + 1,
		Total:     l.player.StepCount(),
		ShowCount: true,
		Width:     cw,
	}.View()
}

func (l *LessonScreen) renderStep(cw int) string {
	lang := l.session.Language()
	step, ok := l.player.Step()
	if !ok {
		return ""
	}
	base := step.Base()

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(base.Title.In(lang)),
	}
	if d := base.Description.In(lang); d != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(cw-6).Foreground(theme.Text).Render(d))
	}

	switch s := step.(type) {
	case *catalog.InfoStep:
		if s.Image != "" {
			lines = append(lines, "", theme.Hint.Render("🖼  "+s.Image))
		}
		if v := s.Video.In(lang); v != "" {
			lines = append(lines, "", theme.Hint.Render("▶  "+v))
		}
	case *catalog.SimulationStep:
		lines = append(lines, "", l.renderSimulation())
	case *catalog.PracticeStep:
		lines = append(lines, "", l.renderPractice(s, lang))
	}

	if l.player.CanAdvance() {
		lines = append(lines, "", components.Button(l.session.Translator().T("next"), true))
	}
	return components.Card(strings.Join(lines, "\n"), cw, false)
}

func (l *LessonScreen) renderPractice(s *catalog.PracticeStep, lang i18n.Language) string {
	tr := l.session.Translator()
	pr, ok := l.player.Practice()
	if !ok {
		return ""
	}

	lines := []string{
		theme.Hint.Render(tr.T("translate_sentence")),
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.SourceText.In(lang)),
		"",
	}

	answer := pr.Sentence()
	if answer == "" {
		answer = "…"
	}
	lines = append(lines, theme.Hint.Render(tr.T("your_answer")+": ")+
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(answer), "")

	tokens := make([]string, 0, len(pr.Bank))
	for i, tok := range pr.Bank {
		label := fmt.Sprintf("%d %s", i+1, tok.Word)
		if tok.Used {
			tokens = append(tokens, theme.TokenUsed.Render(label))
		} else {
			tokens = append(tokens, theme.Token.Render(label))
		}
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tokens...))

	if pr.Checked {
		if pr.Correct {
			lines = append(lines, "", theme.Correct.Render("✓ "+tr.T("correct_msg")))
		} else {
			lines = append(lines, "",
				theme.Incorrect.Render("✗ "+tr.T("wrong_msg")),
				lipgloss.NewStyle().Foreground(theme.Success).Render(pr.Expected))
		}
	}
	return strings.Join(lines, "\n")
}

func (l *LessonScreen) renderQuiz(cw int) string {
	tr := l.session.Translator()
	lang := l.session.Language()
	q, ok := l.player.Question()
	if !ok {
		return ""
	}

	opts := make([]string, len(q.Options))
	for i, o := range q.Options {
		opts[i] = o.In(lang)
	}
	selected, correct, answered := l.player.Answer()
	list := components.OptionList{
		Question: q.Question.In(lang),
		Options:  opts,
		Cursor:   l.cursor,
		Answered: answered,
		Chosen:   selected,
		Correct:  q.CorrectIndex,
	}

	lines := []string{list.View()}
	if answered {
		if correct {
			lines = append(lines, theme.Correct.Render("✓ "+tr.T("correct_ans")))
		} else {
			lines = append(lines, theme.Incorrect.Render("✗ "+tr.T("wrong_ans")))
		}
		if e := q.Explanation.In(lang); e != "" {
			lines = append(lines, theme.Hint.Width(cw-6).Render(e))
		}
		label := tr.T("next_question")
		if l.player.QuestionIndex() == l.player.QuestionCount()-1 {
			label = tr.T("finish_quiz")
		}
		lines = append(lines, "", components.Button(label, true))
	} else {
		lines = append(lines, components.Button(tr.T("submit"), true))
	}
	return components.Card(strings.Join(lines, "\n"), cw, false)
}
