// Package lesson is the lesson player screen. It renders the player's
// state and turns key presses into player and simulation intents; every
// event the player emits is persisted through the learner session.
package lesson

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/learner"
	"github.com/ranilearn/rani/internal/player"
	"github.com/ranilearn/rani/internal/router"
	"github.com/ranilearn/rani/internal/screen"
	"github.com/ranilearn/rani/internal/screens/summary"
	"github.com/ranilearn/rani/internal/simulation"
	"github.com/ranilearn/rani/internal/ui/layout"
)

// Open starts an attempt at lesson id and pushes the lesson screen.
func Open(session *learner.Session, id string, opts ...player.Option) tea.Cmd {
	return func() tea.Msg {
		p, err := session.OpenLesson(context.Background(), id, opts...)
		if err != nil {
			return OpenFailedMsg{Err: err}
		}
		return router.PushScreenMsg{Screen: New(session, p)}
	}
}

// LessonScreen plays one lesson attempt.
type LessonScreen struct {
	session *learner.Session
	player  *player.Player

	// flow is the simulated app of the current simulation step.
	flow     *simulation.Flow
	flowStep int

	cursor   int // quiz option under the cursor
	notice   string
	applying bool
	errMsg   string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.BackHandler = (*LessonScreen)(nil)

// New creates a LessonScreen for an attempt already opened on session.
func New(session *learner.Session, p *player.Player) *LessonScreen {
	l := &LessonScreen{session: session, player: p, flowStep: -1}
	l.syncFlow()
	return l
}

// Init delivers the completion of a lesson that had nothing to play.
func (l *LessonScreen) Init() tea.Cmd {
	return l.do(l.player.Start())
}

func (l *LessonScreen) Title() string {
	return l.player.Lesson().Title.In(l.session.Language())
}

// HandlesBack is true: Esc abandons the attempt, which must be recorded.
func (l *LessonScreen) HandlesBack() bool { return true }

// Player exposes the attempt, mainly for tests.
func (l *LessonScreen) Player() *player.Player { return l.player }

// Flow returns the simulated app of the current step, if any.
func (l *LessonScreen) Flow() *simulation.Flow { return l.flow }

func (l *LessonScreen) KeyHints() []layout.KeyHint {
	tr := l.session.Translator()
	hints := []layout.KeyHint{{Key: "Esc", Description: tr.T("exit")}}

	switch l.player.Phase() {
	case player.PhaseQuiz:
		if _, _, answered := l.player.Answer(); answered {
			return append(hints, layout.KeyHint{Key: "Enter", Description: tr.T("next")})
		}
		return append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Choose"},
			layout.KeyHint{Key: "Enter", Description: tr.T("submit")})
	case player.PhaseStep:
		step, _ := l.player.Step()
		if pr, ok := l.player.Practice(); ok && !pr.Checked {
			return append(hints,
				layout.KeyHint{Key: "1-9", Description: "Pick word"},
				layout.KeyHint{Key: "⌫", Description: "Remove"},
				layout.KeyHint{Key: "Enter", Description: tr.T("check")})
		}
		if _, isSim := step.(*catalog.SimulationStep); isSim && l.flow != nil && !l.flow.Done() {
			return append(hints, layout.KeyHint{Key: "Enter", Description: tr.T("continue")})
		}
		if l.player.CanGoBack() {
			hints = append(hints, layout.KeyHint{Key: "←", Description: tr.T("back")})
		}
		return append(hints, layout.KeyHint{Key: "Enter/→", Description: tr.T("next")})
	}
	return hints
}

func (l *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case appliedMsg:
		return l, l.handleApplied(msg)
	case tea.KeyPressMsg:
		if l.applying {
			return l, nil
		}
		l.notice = ""
		return l, l.handleKey(msg)
	}
	return l, nil
}

func (l *LessonScreen) handleKey(k tea.KeyPressMsg) tea.Cmd {
	if k.String() == "esc" {
		return l.do(l.player.Exit())
	}

	switch l.player.Phase() {
	case player.PhaseQuiz:
		return l.handleQuizKey(k)
	case player.PhaseStep:
		step, _ := l.player.Step()
		switch step.(type) {
		case *catalog.SimulationStep:
			if l.flow != nil && !l.flow.Done() {
				return l.handleSimKey(k)
			}
		case *catalog.PracticeStep:
			if pr, ok := l.player.Practice(); ok && !pr.Checked {
				return l.handlePracticeKey(k, pr)
			}
		}
		return l.handleNavKey(k)
	}
	return nil
}

func (l *LessonScreen) handleNavKey(k tea.KeyPressMsg) tea.Cmd {
	switch k.String() {
	case "enter", "right", "l", "n":
		return l.do(l.player.Advance())
	case "left", "h", "b":
		return l.do(l.player.Back())
	}
	return nil
}

func (l *LessonScreen) handlePracticeKey(k tea.KeyPressMsg, pr player.Practice) tea.Cmd {
	switch k.String() {
	case "enter":
		return l.do(l.player.CheckPractice())
	case "backspace":
		return l.do(l.player.RemoveToken(len(pr.Selected) - 1))
	}
	if d, ok := digit(k); ok && d > 0 {
		return l.do(l.player.PickToken(d - 1))
	}
	return nil
}

func (l *LessonScreen) handleQuizKey(k tea.KeyPressMsg) tea.Cmd {
	q, ok := l.player.Question()
	if !ok {
		return nil
	}
	_, _, answered := l.player.Answer()

	switch k.String() {
	case "up", "k":
		if !answered {
			l.cursor = max(l.cursor-1, 0)
		}
	case "down", "j":
		if !answered {
			l.cursor = min(l.cursor+1, len(q.Options)-1)
		}
	case "enter":
		if !answered {
			return l.do(l.player.SelectOption(l.cursor))
		}
		l.cursor = 0
		return l.do(l.player.NextQuestion())
	}
	return nil
}

func (l *LessonScreen) handleSimKey(k tea.KeyPressMsg) tea.Cmd {
	tr := l.session.Translator()
	f := l.flow

	// Back moves within the simulated app; the lesson itself only goes
	// forward from here.
	if k.String() == "left" {
		_ = f.Back()
		return nil
	}

	switch f.Stage() {
	case simulation.StageLauncher:
		if k.String() == "enter" {
			_ = f.Open()
		}
	case simulation.StageScanQR:
		if k.String() == "enter" {
			_ = f.Scan()
		}
	case simulation.StageAmount:
		switch k.String() {
		case "enter":
			if errors.Is(f.Pay(), simulation.ErrAmountRequired) {
				l.notice = tr.T("amount_required")
			}
		case "backspace":
			f.EraseAmount()
		default:
			if _, ok := digit(k); ok {
				f.TypeAmount([]rune(k.Text)[0])
			}
		}
	case simulation.StagePIN:
		switch k.String() {
		case "enter":
			if errors.Is(f.SubmitPIN(), simulation.ErrIncorrectPIN) {
				l.notice = tr.T("incorrect_pin")
			}
		case "backspace":
			f.ErasePIN()
		default:
			if _, ok := digit(k); ok {
				f.TypePIN([]rune(k.Text)[0])
			}
		}
	case simulation.StageSuccess, simulation.StageMap:
		if k.String() == "enter" && f.Finish() {
			return l.do(l.player.CompleteSimulation())
		}
	}
	return nil
}

// do applies the result of a player intent. Rejected intents are ignored:
// the view never offers them, so they only come from stray keys.
func (l *LessonScreen) do(events []player.Event, err error) tea.Cmd {
	if err != nil {
		return nil
	}
	l.syncFlow()
	if len(events) == 0 {
		return nil
	}
	l.applying = true
	session := l.session
	return func() tea.Msg {
		route, err := session.Apply(context.Background(), events...)
		return appliedMsg{Events: events, Route: route, Err: err}
	}
}

func (l *LessonScreen) handleApplied(msg appliedMsg) tea.Cmd {
	l.applying = false
	if msg.Err != nil {
		l.errMsg = msg.Err.Error()
		l.session.Logger().WithError(msg.Err).Error("failed to save lesson progress")
	}
	for _, ev := range msg.Events {
		switch ev := ev.(type) {
		case player.LessonFinished:
			result := summary.Result{
				LessonID: ev.LessonID,
				Title:    l.player.Lesson().Title,
				Score:    ev.Score,
				Total:    ev.Total,
				Scored:   ev.Scored,
				XP:       l.player.SessionXP(),
				Route:    msg.Route,
			}
			return func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: summary.New(l.session, result)}
			}
		case player.LessonAbandoned:
			return screen.Navigate(screen.DestinationFor(msg.Route))
		}
	}
	return nil
}

// syncFlow starts a simulated app when the player lands on a simulation
// step that has not completed yet.
func (l *LessonScreen) syncFlow() {
	step, ok := l.player.Step()
	sim, isSim := step.(*catalog.SimulationStep)
	if !ok || !isSim || l.player.SimulationDone() {
		if !isSim || l.player.StepIndex() != l.flowStep {
			l.flow, l.flowStep = nil, -1
		}
		return
	}
	if l.flow != nil && l.flowStep == l.player.StepIndex() {
		return
	}
	f, err := simulation.New(sim.Kind, l.session.DemoPIN())
	if err != nil {
		l.errMsg = err.Error()
		return
	}
	l.flow, l.flowStep = f, l.player.StepIndex()
}

func digit(k tea.KeyPressMsg) (int, bool) {
	r := []rune(k.Text)
	if len(r) != 1 || r[0] < '0' || r[0] > '9' {
		return 0, false
	}
	return int(r[0] - '0'), true
}
