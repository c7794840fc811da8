package player

// Event is something that happened in a lesson attempt which the caller
// must persist or react to. The set of implementations is closed.
type Event interface {
	isEvent()
}

// PracticeAwarded is emitted once when a practice step is first solved.
// Its experience persists immediately, even if the lesson is abandoned.
type PracticeAwarded struct {
	LessonID string
	StepID   string
	XP       int
}

// LessonFinished is emitted when the quiz completes.
type LessonFinished struct {
	LessonID string
	// Score is the number of correct answers; only meaningful when Scored.
	Score  int
	Total  int
	Scored bool
	// XP is question experience plus the completion bonus. Practice
	// experience is not included; it was awarded as it happened.
	XP int
}

// LessonAbandoned is emitted when the learner leaves before finishing.
type LessonAbandoned struct {
	LessonID  string
	StepIndex int
	InQuiz    bool
}

func (PracticeAwarded) isEvent() {}
func (LessonFinished) isEvent()  {}
func (LessonAbandoned) isEvent() {}
