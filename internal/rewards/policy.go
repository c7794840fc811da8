// Package rewards defines how much experience each learner action earns
// and keeps a ledger of awarded experience.
package rewards

import (
	"errors"
	"fmt"
)

// Policy holds the experience point values. They are policy, so they come
// from configuration rather than being fixed in code.
type Policy struct {
	SignupBonus     int `mapstructure:"signup_bonus"`
	PracticeXP      int `mapstructure:"practice_xp"`
	QuestionXP      int `mapstructure:"question_xp"`
	CompletionBonus int `mapstructure:"completion_bonus"`
	StartingStreak  int `mapstructure:"starting_streak"`
}

// DefaultPolicy returns the stock values.
func DefaultPolicy() Policy {
	return Policy{
		SignupBonus:     100,
		PracticeXP:      10,
		QuestionXP:      10,
		CompletionBonus: 20,
		StartingStreak:  1,
	}
}

// Validate rejects negative awards and a streak below one.
func (p Policy) Validate() error {
	var errs []error
	for name, v := range map[string]int{
		"signup_bonus":     p.SignupBonus,
		"practice_xp":      p.PracticeXP,
		"question_xp":      p.QuestionXP,
		"completion_bonus": p.CompletionBonus,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("rewards.%s must not be negative (got %d)", name, v))
		}
	}
	if p.StartingStreak < 1 {
		errs = append(errs, fmt.Errorf("rewards.starting_streak must be at least 1 (got %d)", p.StartingStreak))
	}
	return errors.Join(errs...)
}

// LessonXP is the experience for finishing a quiz with correct answers.
func (p Policy) LessonXP(correct int) int {
	return correct*p.QuestionXP + p.CompletionBonus
}
