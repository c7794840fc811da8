package progress

import (
	"github.com/samber/lo"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/profile"
)

// Status is a lesson's state from the learner's point of view.
type Status int

const (
	Locked Status = iota
	Unlocked
	Completed
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case Unlocked:
		return "unlocked"
	default:
		return "locked"
	}
}

// LessonState pairs a lesson with its status.
type LessonState struct {
	Lesson catalog.Lesson
	Status Status
	// Score is the recorded quiz score, when HasScore is set.
	Score    int
	HasScore bool
	Active   bool
}

// TrackSummary describes a learner's position in one track.
type TrackSummary struct {
	Lessons   []LessonState
	Completed int
	Total     int
	// ActiveID is the id of the active lesson, "" for an empty track.
	ActiveID string
}

// Percent returns completion as 0..100.
func (s TrackSummary) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Completed * 100 / s.Total
}

// Summarize computes the state of every lesson in a track.
func Summarize(p *profile.Profile, lessons []catalog.Lesson) TrackSummary {
	active, _ := ActiveLesson(p, lessons)
	states := lo.Map(lessons, func(l catalog.Lesson, i int) LessonState {
		st := LessonState{Lesson: l, Active: l.ID == active.ID}
		switch {
		case completed(p, l.ID):
			st.Status = Completed
		case IsUnlocked(p, lessons, i):
			st.Status = Unlocked
		}
		if p != nil {
			st.Score, st.HasScore = p.QuizScores[l.ID]
		}
		return st
	})
	return TrackSummary{
		Lessons: states,
		Completed: lo.CountBy(states, func(s LessonState) bool {
			return s.Status == Completed
		}),
		Total:    len(lessons),
		ActiveID: active.ID,
	}
}
