// Package catalog defines the static lesson catalog: lessons, their ordered
// steps and their quizzes.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/ranilearn/rani/internal/i18n"
)

// ErrLessonNotFound is returned when a lesson id is not in the catalog.
var ErrLessonNotFound = errors.New("lesson not found")

// Track is an independent unlock chain of lessons.
type Track string

const (
	TrackCore    Track = "core"
	TrackEnglish Track = "english"
)

// englishPrefix namespaces English pathway lesson ids.
const englishPrefix = "e_"

// TrackOf returns the track a lesson id belongs to.
func TrackOf(lessonID string) Track {
	if strings.HasPrefix(lessonID, englishPrefix) {
		return TrackEnglish
	}
	return TrackCore
}

// ParseTrack parses "core" or "english".
func ParseTrack(s string) (Track, error) {
	switch Track(strings.ToLower(s)) {
	case TrackCore:
		return TrackCore, nil
	case TrackEnglish:
		return TrackEnglish, nil
	}
	return "", fmt.Errorf("unknown track %q", s)
}

// Lesson is an immutable unit of content: ordered steps followed by an
// optional quiz.
type Lesson struct {
	ID          string
	Icon        string
	Title       i18n.Text
	Description i18n.Text
	Steps       []Step
	Quiz        []QuizQuestion
}

// Track returns the lesson's track, derived from its id prefix.
func (l Lesson) Track() Track { return TrackOf(l.ID) }

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	ID           string
	Question     i18n.Text
	Options      []i18n.Text
	CorrectIndex int
	Explanation  i18n.Text
}

// IsCorrect reports whether option i is the correct answer.
func (q QuizQuestion) IsCorrect(i int) bool { return i == q.CorrectIndex }

// Catalog is a read-only, ordered lesson collection. Order within a track
// is the unlock order.
type Catalog struct {
	lessons []Lesson
	byID    map[string]int
}

// New validates lessons and builds a catalog from them.
func New(lessons []Lesson) (*Catalog, error) {
	if err := Validate(lessons); err != nil {
		return nil, err
	}
	c := &Catalog{
		lessons: lessons,
		byID:    make(map[string]int, len(lessons)),
	}
	for i, l := range lessons {
		c.byID[l.ID] = i
	}
	return c, nil
}

// Lessons returns every lesson in catalog order.
func (c *Catalog) Lessons() []Lesson {
	out := make([]Lesson, len(c.lessons))
	copy(out, c.lessons)
	return out
}

// Get returns the lesson with the given id.
func (c *Catalog) Get(id string) (Lesson, error) {
	i, ok := c.byID[id]
	if !ok {
		return Lesson{}, fmt.Errorf("%w: %q", ErrLessonNotFound, id)
	}
	return c.lessons[i], nil
}

// Track returns the lessons of track t in unlock order.
func (c *Catalog) Track(t Track) []Lesson {
	return lo.Filter(c.lessons, func(l Lesson, _ int) bool {
		return l.Track() == t
	})
}

// IndexIn returns the position of lesson id within track t, or -1.
func (c *Catalog) IndexIn(t Track, id string) int {
	_, i, ok := lo.FindIndexOf(c.Track(t), func(l Lesson) bool {
		return l.ID == id
	})
	if !ok {
		return -1
	}
	return i
}

// IDs returns every lesson id in catalog order.
func (c *Catalog) IDs() []string {
	return lo.Map(c.lessons, func(l Lesson, _ int) string { return l.ID })
}
