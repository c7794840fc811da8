package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/ranilearn/rani/internal/i18n"
)

// Validate performs structural checks on a lesson list and returns every
// problem found joined into one error, or nil.
func Validate(lessons []Lesson) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}
	needText := func(where string, t i18n.Text) {
		if t[i18n.EN] == "" {
			add("%s: missing english text", where)
		}
	}

	seen := make(map[string]bool, len(lessons))
	for _, l := range lessons {
		if l.ID == "" {
			add("lesson with empty id")
			continue
		}
		if seen[l.ID] {
			add("duplicate lesson id %q", l.ID)
		}
		seen[l.ID] = true
		needText(l.ID+" title", l.Title)

		stepIDs := make(map[string]bool, len(l.Steps))
		for i, s := range l.Steps {
			if s == nil {
				add("%s step %d: nil step", l.ID, i)
				continue
			}
			b := s.Base()
			where := fmt.Sprintf("%s/%s", l.ID, b.ID)
			if b.ID == "" {
				add("%s step %d: empty id", l.ID, i)
			} else if stepIDs[b.ID] {
				add("%s: duplicate step id", where)
			}
			stepIDs[b.ID] = true
			needText(where+" title", b.Title)

			switch st := s.(type) {
			case *SimulationStep:
				if !lo.Contains(SimulationKinds(), st.Kind) {
					add("%s: unknown simulation kind %q", where, st.Kind)
				}
			case *PracticeStep:
				if st.CorrectSentence == "" {
					add("%s: empty correct sentence", where)
				}
				if len(st.WordBank) == 0 {
					add("%s: empty word bank", where)
				}
				for _, w := range strings.Fields(st.CorrectSentence) {
					if !lo.Contains(st.WordBank, w) {
						add("%s: word %q not in word bank", where, w)
					}
				}
			}
		}

		for i, q := range l.Quiz {
			where := fmt.Sprintf("%s quiz %d", l.ID, i)
			needText(where+" question", q.Question)
			if len(q.Options) < 2 {
				add("%s: needs at least two options", where)
			}
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				add("%s: correct index %d out of range", where, q.CorrectIndex)
			}
		}
	}
	return errors.Join(errs...)
}
