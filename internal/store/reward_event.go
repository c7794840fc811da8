package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendRewardEvent(ctx context.Context, data RewardEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(RewardEventsTable.Name).
		Columns("sequence", "timestamp", "profile_id", "lesson_id", "kind", "amount").
		Values(seqNum, time.Now().UTC(), data.ProfileID, data.LessonID, data.Kind, data.Amount).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save reward event: %w", err)
	}
	return nil
}

func (r *eventRepo) RewardTotals(ctx context.Context, profileID string) (map[string]int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("kind", entsql.As(entsql.Sum("amount"), "total")).
		From(entsql.Table(RewardEventsTable.Name)).
		Where(entsql.EQ("profile_id", profileID)).
		GroupBy("kind").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reward totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var kind string
		var total int
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, fmt.Errorf("scan reward totals: %w", err)
		}
		totals[kind] = total
	}
	return totals, rows.Err()
}
