// Package profile holds the single learner profile, its persisted document
// form and the login rules that create or resume it.
package profile

import (
	"slices"

	"github.com/samber/lo"

	"github.com/ranilearn/rani/internal/i18n"
)

// Profile is the one learner record of an installation.
type Profile struct {
	ID       string
	Phone    string
	Name     string
	Language i18n.Language
	// Completed is a set of lesson ids.
	Completed map[string]struct{}
	// QuizScores holds the last quiz score per lesson.
	QuizScores map[string]int
	IsAdmin    bool
	XP         int
	Streak     int
	// LastActiveLessonID bookmarks the lesson last opened, if any.
	LastActiveLessonID string
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Completed = make(map[string]struct{}, len(p.Completed))
	for id := range p.Completed {
		c.Completed[id] = struct{}{}
	}
	c.QuizScores = make(map[string]int, len(p.QuizScores))
	for id, s := range p.QuizScores {
		c.QuizScores[id] = s
	}
	return &c
}

// HasCompleted reports whether lesson id is in the completed set.
func (p *Profile) HasCompleted(id string) bool {
	_, ok := p.Completed[id]
	return ok
}

// CompletedIDs returns the completed lesson ids sorted.
func (p *Profile) CompletedIDs() []string {
	ids := lo.Keys(p.Completed)
	slices.Sort(ids)
	return ids
}

// TotalScore sums every recorded quiz score.
func (p *Profile) TotalScore() int {
	return lo.Sum(lo.Values(p.QuizScores))
}
