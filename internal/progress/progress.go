// Package progress answers where a learner is in each lesson track and
// applies lesson outcomes to the profile. Every function is pure: inputs
// are never mutated and new profile states are returned for the caller to
// persist.
//
// Lesson ids passed in are assumed to exist in the catalog.
package progress

import (
	"github.com/samber/lo"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/profile"
)

// Route is where the presentation should go after a lesson completes.
type Route int

const (
	RouteHome Route = iota
	RoutePathway
)

func (r Route) String() string {
	if r == RoutePathway {
		return "pathway"
	}
	return "home"
}

// Result is the outcome of one finished lesson attempt.
type Result struct {
	// Score is recorded only when Scored is set (lessons with a quiz).
	Score  int
	Scored bool
	// XP is added to the profile's experience; negative values are ignored.
	XP int
}

func completed(p *profile.Profile, id string) bool {
	return p != nil && p.HasCompleted(id)
}

// ActiveLesson returns the lesson the learner should continue with in a
// single track: the bookmarked lesson if it belongs to lessons, else the
// first lesson not yet completed, else the last lesson. ok is false only
// when lessons is empty.
func ActiveLesson(p *profile.Profile, lessons []catalog.Lesson) (catalog.Lesson, bool) {
	if len(lessons) == 0 {
		return catalog.Lesson{}, false
	}
	if p != nil && p.LastActiveLessonID != "" {
		if l, found := lo.Find(lessons, func(l catalog.Lesson) bool {
			return l.ID == p.LastActiveLessonID
		}); found {
			return l, true
		}
	}
	if l, found := lo.Find(lessons, func(l catalog.Lesson) bool {
		return !completed(p, l.ID)
	}); found {
		return l, true
	}
	return lessons[len(lessons)-1], true
}

// IsUnlocked reports whether lessons[index] may be opened: the first lesson
// of a track always can, every other one once its predecessor is completed.
func IsUnlocked(p *profile.Profile, lessons []catalog.Lesson, index int) bool {
	if index < 0 || index >= len(lessons) {
		return false
	}
	if index == 0 {
		return true
	}
	return completed(p, lessons[index-1].ID)
}

// ApplyLessonResult returns the next profile state after finishing
// lessonID and the route to take. Completion is idempotent, a recorded
// score overwrites the previous one, and the bookmark is cleared.
func ApplyLessonResult(p *profile.Profile, lessonID string, r Result) (*profile.Profile, Route) {
	next := p.Clone()
	next.Completed[lessonID] = struct{}{}
	if r.Scored {
		next.QuizScores[lessonID] = r.Score
	}
	if r.XP > 0 {
		next.XP += r.XP
	}
	next.LastActiveLessonID = ""
	return next, RouteFor(lessonID)
}

// RouteFor returns the route back to the list a lesson is shown in.
func RouteFor(lessonID string) Route {
	if catalog.TrackOf(lessonID) == catalog.TrackEnglish {
		return RoutePathway
	}
	return RouteHome
}

// SetLastActive bookmarks lessonID as the one the learner is in.
func SetLastActive(p *profile.Profile, lessonID string) *profile.Profile {
	next := p.Clone()
	next.LastActiveLessonID = lessonID
	return next
}

// AddExperience adds xp to the profile. Non-positive amounts leave it as is.
func AddExperience(p *profile.Profile, xp int) *profile.Profile {
	next := p.Clone()
	if xp > 0 {
		next.XP += xp
	}
	return next
}
