package rewards

import (
	"context"
	"errors"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/ranilearn/rani/internal/store"
)

// fakeEvents implements the reward half of store.EventRepo.
type fakeEvents struct {
	store.EventRepo
	rewards []store.RewardEventData
	fail    bool
}

func (f *fakeEvents) AppendRewardEvent(_ context.Context, data store.RewardEventData) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.rewards = append(f.rewards, data)
	return nil
}

func (f *fakeEvents) RewardTotals(_ context.Context, profileID string) (map[string]int, error) {
	out := map[string]int{}
	for _, r := range f.rewards {
		if r.ProfileID == profileID {
			out[r.Kind] += r.Amount
		}
	}
	return out, nil
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if err := p.Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}
	if got := p.LessonXP(3); got != 50 {
		t.Errorf("LessonXP(3) = %d, want 50", got)
	}
	if got := p.LessonXP(0); got != 20 {
		t.Errorf("LessonXP(0) = %d, want 20", got)
	}
}

func TestPolicyValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Policy)
		wantErr bool
	}{
		{"negative practice", func(p *Policy) { p.PracticeXP = -1 }, true},
		{"zero streak", func(p *Policy) { p.StartingStreak = 0 }, true},
		{"zero bonus ok", func(p *Policy) { p.CompletionBonus = 0 }, false},
	}
	for _, tt := range tests {
		p := DefaultPolicy()
		tt.mutate(&p)
		if err := p.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestLessonAwards(t *testing.T) {
	awards := DefaultPolicy().LessonAwards("p", "l2_payments_intro", 2)
	if len(awards) != 2 {
		t.Fatalf("got %d awards, want 2", len(awards))
	}
	if awards[0].Kind != KindQuestion || awards[0].Amount != 20 {
		t.Errorf("question award = %+v", awards[0])
	}
	if awards[1].Kind != KindCompletion || awards[1].Amount != 20 {
		t.Errorf("completion award = %+v", awards[1])
	}

	if got := DefaultPolicy().LessonAwards("p", "l1", 0); len(got) != 1 {
		t.Errorf("zero correct: got %d awards, want 1", len(got))
	}
}

func TestLedger_RecordAndTotals(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	events := &fakeEvents{}
	l := NewLedger(events, logger)
	ctx := context.Background()

	l.Record(ctx,
		Award{ProfileID: "p", Kind: KindSignup, Amount: 100},
		Award{ProfileID: "p", LessonID: "e_unit7_intro", Kind: KindPractice, Amount: 10},
		Award{ProfileID: "p", LessonID: "e_unit7_intro", Kind: KindQuestion, Amount: 0},
	)
	if len(events.rewards) != 2 {
		t.Fatalf("recorded %d events, want 2 (zero amounts skipped)", len(events.rewards))
	}

	totals, err := l.Totals(ctx, "p")
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals[KindSignup] != 100 || totals[KindPractice] != 10 {
		t.Errorf("totals = %v", totals)
	}
	if totals.Sum() != 110 {
		t.Errorf("Sum() = %d, want 110", totals.Sum())
	}
}

func TestLedger_FailureIsLogged(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	l := NewLedger(&fakeEvents{fail: true}, logger)
	l.Record(context.Background(), Award{ProfileID: "p", Kind: KindSignup, Amount: 100})
	if len(hook.Entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(hook.Entries))
	}
}
