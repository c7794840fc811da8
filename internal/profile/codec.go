package profile

import (
	"encoding/json"
	"fmt"

	"github.com/ranilearn/rani/internal/i18n"
)

// Storage keys of the persisted documents.
const (
	ProfileKey  = "rani_user"
	LanguageKey = "rani_language"
)

// Defaults applied to fields missing from older documents.
const (
	defaultXP     = 0
	defaultStreak = 1
)

// document is the persisted JSON shape. Pointer fields distinguish absent
// values from zero values so they can be backfilled.
type document struct {
	ID                 string         `json:"id"`
	Phone              string         `json:"phone"`
	Name               string         `json:"name"`
	Language           string         `json:"language"`
	CompletedLessons   []string       `json:"completedLessons"`
	QuizScores         map[string]int `json:"quizScores"`
	IsAdmin            bool           `json:"isAdmin"`
	XP                 *int           `json:"xp"`
	Streak             *int           `json:"streak"`
	LastActiveLessonID string         `json:"lastActiveLessonId,omitempty"`
}

// Encode serializes p into its document form.
func Encode(p *Profile) ([]byte, error) {
	xp, streak := p.XP, p.Streak
	doc := document{
		ID:                 p.ID,
		Phone:              p.Phone,
		Name:               p.Name,
		Language:           string(p.Language),
		CompletedLessons:   p.CompletedIDs(),
		QuizScores:         p.QuizScores,
		IsAdmin:            p.IsAdmin,
		XP:                 &xp,
		Streak:             &streak,
		LastActiveLessonID: p.LastActiveLessonID,
	}
	if doc.QuizScores == nil {
		doc.QuizScores = map[string]int{}
	}
	return json.Marshal(doc)
}

// Decode parses a document, filling fields absent in older documents:
// xp defaults to 0, streak to 1, collections to empty and an unknown
// language to English.
func Decode(data []byte) (*Profile, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	p := &Profile{
		ID:                 doc.ID,
		Phone:              doc.Phone,
		Name:               doc.Name,
		Language:           i18n.EN,
		Completed:          make(map[string]struct{}, len(doc.CompletedLessons)),
		QuizScores:         make(map[string]int, len(doc.QuizScores)),
		IsAdmin:            doc.IsAdmin,
		XP:                 defaultXP,
		Streak:             defaultStreak,
		LastActiveLessonID: doc.LastActiveLessonID,
	}
	if lang, err := i18n.ParseLanguage(doc.Language); err == nil {
		p.Language = lang
	}
	for _, id := range doc.CompletedLessons {
		p.Completed[id] = struct{}{}
	}
	for id, s := range doc.QuizScores {
		p.QuizScores[id] = s
	}
	if doc.XP != nil && *doc.XP >= 0 {
		p.XP = *doc.XP
	}
	if doc.Streak != nil && *doc.Streak >= 1 {
		p.Streak = *doc.Streak
	}
	return p, nil
}
