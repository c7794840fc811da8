package rewards

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/ranilearn/rani/internal/store"
)

// Kind classifies an award.
type Kind string

const (
	KindSignup     Kind = store.RewardSignup
	KindPractice   Kind = store.RewardPractice
	KindQuestion   Kind = store.RewardQuestion
	KindCompletion Kind = store.RewardCompletion
)

// Award is one grant of experience.
type Award struct {
	ProfileID string
	LessonID  string
	Kind      Kind
	Amount    int
}

// LessonAwards splits the experience of a finished lesson into its
// per-question and completion parts.
func (p Policy) LessonAwards(profileID, lessonID string, correct int) []Award {
	awards := []Award{}
	if correct > 0 && p.QuestionXP > 0 {
		awards = append(awards, Award{profileID, lessonID, KindQuestion, correct * p.QuestionXP})
	}
	if p.CompletionBonus > 0 {
		awards = append(awards, Award{profileID, lessonID, KindCompletion, p.CompletionBonus})
	}
	return awards
}

// Totals maps each kind to the experience awarded for it.
type Totals map[Kind]int

// Sum returns the total over every kind.
func (t Totals) Sum() int {
	return lo.Sum(lo.Values(t))
}

// Ledger records awards in the event log. The profile's XP is the source
// of truth; the ledger is history.
type Ledger struct {
	events store.EventRepo
	logger logrus.FieldLogger
}

// NewLedger creates a Ledger.
func NewLedger(events store.EventRepo, logger logrus.FieldLogger) *Ledger {
	return &Ledger{events: events, logger: logger}
}

// Record appends awards with a positive amount. Failures are logged and
// never returned.
func (l *Ledger) Record(ctx context.Context, awards ...Award) {
	for _, a := range awards {
		if a.Amount <= 0 {
			continue
		}
		err := l.events.AppendRewardEvent(ctx, store.RewardEventData{
			ProfileID: a.ProfileID,
			LessonID:  a.LessonID,
			Kind:      string(a.Kind),
			Amount:    a.Amount,
		})
		fields := logrus.Fields{
			"profile_id": a.ProfileID,
			"lesson_id":  a.LessonID,
			"kind":       a.Kind,
			"xp":         a.Amount,
		}
		if err != nil {
			l.logger.WithError(err).WithFields(fields).Warn("failed to record reward")
			continue
		}
		l.logger.WithFields(fields).Debug("reward recorded")
	}
}

// Totals returns the recorded experience per kind for a profile.
func (l *Ledger) Totals(ctx context.Context, profileID string) (Totals, error) {
	raw, err := l.events.RewardTotals(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("reward totals: %w", err)
	}
	totals := make(Totals, len(raw))
	for k, v := range raw {
		totals[Kind(k)] = v
	}
	return totals, nil
}
