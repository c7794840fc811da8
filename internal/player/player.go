// Package player drives one attempt at a lesson: its steps in order, then
// its quiz, then completion. The player performs no I/O; every intent
// returns the events the caller must persist.
package player

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/rewards"
)

// ErrNotAllowed is returned for an intent that is invalid in the current
// state, such as advancing past an unfinished simulation.
var ErrNotAllowed = errors.New("not allowed in current state")

// Phase is the coarse state of an attempt.
type Phase int

const (
	PhaseStep     Phase = iota // showing a content step
	PhaseQuiz                  // answering quiz questions
	PhaseComplete              // quiz finished (terminal)
	PhaseExited                // left early (terminal)
)

func (p Phase) String() string {
	switch p {
	case PhaseStep:
		return "step"
	case PhaseQuiz:
		return "quiz"
	case PhaseComplete:
		return "complete"
	case PhaseExited:
		return "exited"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Option configures a Player.
type Option func(*Player)

// WithShuffle replaces the word-bank shuffle.
func WithShuffle(fn func([]string) []string) Option {
	return func(p *Player) { p.shuffle = fn }
}

// WithAttemptID sets the attempt id instead of generating one.
func WithAttemptID(id string) Option {
	return func(p *Player) { p.attemptID = id }
}

// Player is the state machine of a single lesson attempt.
type Player struct {
	lesson    catalog.Lesson
	policy    rewards.Policy
	attemptID string
	shuffle   func([]string) []string

	phase    Phase
	step     int
	question int

	// Quiz state.
	answered bool
	selected int
	score    int
	quizXP   int

	practiceXP int
	simDone    map[int]bool
	practices  map[int]*Practice
	awarded    map[int]bool

	// pending holds the completion of a lesson with nothing to play until
	// Start hands it out.
	pending []Event
}

// New starts an attempt at lesson. A lesson without steps starts in the
// quiz; one with neither steps nor quiz is complete at once and its
// completion is delivered by Start.
func New(lesson catalog.Lesson, policy rewards.Policy, opts ...Option) *Player {
	p := &Player{
		lesson:    lesson,
		policy:    policy,
		shuffle:   defaultShuffle,
		simDone:   map[int]bool{},
		practices: map[int]*Practice{},
		awarded:   map[int]bool{},
	}
	for _, o := range opts {
		o(p)
	}
	if p.attemptID == "" {
		p.attemptID = uuid.NewString()
	}
	if len(lesson.Steps) == 0 {
		p.phase = PhaseQuiz
		if len(lesson.Quiz) == 0 {
			p.pending = p.finish()
		}
	}
	p.enterStep()
	return p
}

// Start returns events produced while the attempt was being set up, once.
func (p *Player) Start() ([]Event, error) {
	events := p.pending
	p.pending = nil
	return events, nil
}

func (p *Player) Lesson() catalog.Lesson { return p.lesson }
func (p *Player) AttemptID() string      { return p.attemptID }
func (p *Player) Phase() Phase           { return p.phase }
func (p *Player) StepIndex() int         { return p.step }
func (p *Player) StepCount() int         { return len(p.lesson.Steps) }
func (p *Player) QuestionIndex() int     { return p.question }
func (p *Player) QuestionCount() int     { return len(p.lesson.Quiz) }
func (p *Player) Score() int             { return p.score }

// SessionXP is all experience earned in this attempt so far, practice
// included.
func (p *Player) SessionXP() int { return p.quizXP + p.practiceXP }

// Step returns the current step while in PhaseStep.
func (p *Player) Step() (catalog.Step, bool) {
	if p.phase != PhaseStep || p.step >= len(p.lesson.Steps) {
		return nil, false
	}
	return p.lesson.Steps[p.step], true
}

// Question returns the current question while in PhaseQuiz.
func (p *Player) Question() (catalog.QuizQuestion, bool) {
	if p.phase != PhaseQuiz || p.question >= len(p.lesson.Quiz) {
		return catalog.QuizQuestion{}, false
	}
	return p.lesson.Quiz[p.question], true
}

// Answer returns the option chosen for the current question, if any.
func (p *Player) Answer() (selected int, correct bool, ok bool) {
	q, has := p.Question()
	if !has || !p.answered {
		return 0, false, false
	}
	return p.selected, q.IsCorrect(p.selected), true
}

// Practice returns a copy of the current practice step's state.
func (p *Player) Practice() (Practice, bool) {
	if p.phase != PhaseStep {
		return Practice{}, false
	}
	pr, ok := p.practices[p.step]
	if !ok {
		return Practice{}, false
	}
	return pr.clone(), true
}

// SimulationDone reports whether the current simulation step has
// signalled completion.
func (p *Player) SimulationDone() bool {
	return p.phase == PhaseStep && p.simDone[p.step]
}

// CanAdvance reports whether Advance would succeed.
func (p *Player) CanAdvance() bool {
	s, ok := p.Step()
	if !ok {
		return false
	}
	switch s.(type) {
	case *catalog.SimulationStep:
		return p.simDone[p.step]
	case *catalog.PracticeStep:
		return p.practices[p.step].Checked
	}
	return true
}

// CanGoBack reports whether Back would succeed. Only info steps step
// back; simulations and practice move forward only.
func (p *Player) CanGoBack() bool {
	s, ok := p.Step()
	if !ok || p.step == 0 {
		return false
	}
	_, isInfo := s.(*catalog.InfoStep)
	return isInfo
}

// enterStep prepares per-step state the first time a step is shown.
func (p *Player) enterStep() {
	s, ok := p.Step()
	if !ok {
		return
	}
	if ps, isPractice := s.(*catalog.PracticeStep); isPractice {
		if _, seen := p.practices[p.step]; !seen {
			p.practices[p.step] = newPractice(ps.WordBank, ps.CorrectSentence, p.shuffle)
		}
	}
}

// Advance moves to the next step, or into the quiz after the last step.
// A simulation step must have completed and a practice step must have
// been checked. When the lesson has no quiz, finishing the steps
// completes the lesson.
func (p *Player) Advance() ([]Event, error) {
	if !p.CanAdvance() {
		return nil, fmt.Errorf("advance: %w", ErrNotAllowed)
	}
	p.step++
	if p.step < len(p.lesson.Steps) {
		p.enterStep()
		return nil, nil
	}
	p.phase = PhaseQuiz
	if len(p.lesson.Quiz) == 0 {
		return p.finish(), nil
	}
	return nil, nil
}

// Back returns from an info step to the previous step. There is no way
// back once the quiz has begun.
func (p *Player) Back() ([]Event, error) {
	if !p.CanGoBack() {
		return nil, fmt.Errorf("back: %w", ErrNotAllowed)
	}
	p.step--
	return nil, nil
}

// CompleteSimulation delivers the completion signal of the current
// simulation step. It is accepted once per step.
func (p *Player) CompleteSimulation() ([]Event, error) {
	s, ok := p.Step()
	if !ok {
		return nil, fmt.Errorf("complete simulation: %w", ErrNotAllowed)
	}
	if _, isSim := s.(*catalog.SimulationStep); !isSim || p.simDone[p.step] {
		return nil, fmt.Errorf("complete simulation: %w", ErrNotAllowed)
	}
	p.simDone[p.step] = true
	return nil, nil
}

func (p *Player) currentPractice() (*Practice, *catalog.PracticeStep, bool) {
	s, ok := p.Step()
	if !ok {
		return nil, nil, false
	}
	ps, isPractice := s.(*catalog.PracticeStep)
	if !isPractice {
		return nil, nil, false
	}
	return p.practices[p.step], ps, true
}

// PickToken moves bank word i to the end of the sentence.
func (p *Player) PickToken(i int) ([]Event, error) {
	pr, _, ok := p.currentPractice()
	if !ok || !pr.pick(i) {
		return nil, fmt.Errorf("pick token %d: %w", i, ErrNotAllowed)
	}
	return nil, nil
}

// RemoveToken returns the word at sentence position pos to the bank.
func (p *Player) RemoveToken(pos int) ([]Event, error) {
	pr, _, ok := p.currentPractice()
	if !ok || !pr.remove(pos) {
		return nil, fmt.Errorf("remove token %d: %w", pos, ErrNotAllowed)
	}
	return nil, nil
}

// CheckPractice compares the assembled sentence with the expected one.
// A wrong answer still lets the learner advance. The first correct check
// of a step awards practice experience.
func (p *Player) CheckPractice() ([]Event, error) {
	pr, ps, ok := p.currentPractice()
	if !ok || pr.Checked || len(pr.Selected) == 0 {
		return nil, fmt.Errorf("check practice: %w", ErrNotAllowed)
	}
	if !pr.check() || p.awarded[p.step] {
		return nil, nil
	}
	p.awarded[p.step] = true
	p.practiceXP += p.policy.PracticeXP
	return []Event{PracticeAwarded{
		LessonID: p.lesson.ID,
		StepID:   ps.ID,
		XP:       p.policy.PracticeXP,
	}}, nil
}

// SelectOption answers the current question. Only the first selection
// per question counts; later ones are ignored.
func (p *Player) SelectOption(i int) ([]Event, error) {
	q, ok := p.Question()
	if !ok || i < 0 || i >= len(q.Options) {
		return nil, fmt.Errorf("select option %d: %w", i, ErrNotAllowed)
	}
	if p.answered {
		return nil, nil
	}
	p.answered = true
	p.selected = i
	if q.IsCorrect(i) {
		p.score++
		p.quizXP += p.policy.QuestionXP
	}
	return nil, nil
}

// NextQuestion moves past an answered question; after the last one it
// completes the lesson.
func (p *Player) NextQuestion() ([]Event, error) {
	if p.phase != PhaseQuiz {
		return nil, fmt.Errorf("next question: %w", ErrNotAllowed)
	}
	if p.question < len(p.lesson.Quiz) && !p.answered {
		return nil, fmt.Errorf("next question: %w", ErrNotAllowed)
	}
	p.question++
	p.answered = false
	if p.question < len(p.lesson.Quiz) {
		return nil, nil
	}
	return p.finish(), nil
}

func (p *Player) finish() []Event {
	p.phase = PhaseComplete
	p.quizXP += p.policy.CompletionBonus
	total := len(p.lesson.Quiz)
	return []Event{LessonFinished{
		LessonID: p.lesson.ID,
		Score:    p.score,
		Total:    total,
		Scored:   total > 0,
		XP:       p.quizXP,
	}}
}

// Exit abandons the attempt. Nothing but already-awarded practice
// experience survives it.
func (p *Player) Exit() ([]Event, error) {
	if p.phase != PhaseStep && p.phase != PhaseQuiz {
		return nil, fmt.Errorf("exit: %w", ErrNotAllowed)
	}
	inQuiz := p.phase == PhaseQuiz
	p.phase = PhaseExited
	return []Event{LessonAbandoned{
		LessonID:  p.lesson.ID,
		StepIndex: p.step,
		InQuiz:    inQuiz,
	}}, nil
}
