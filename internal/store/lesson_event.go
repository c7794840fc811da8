package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLessonEvent(ctx context.Context, data LessonEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(LessonEventsTable.Name).
		Columns("sequence", "timestamp", "attempt_id", "profile_id", "lesson_id",
			"action", "step_index", "score", "total_questions", "xp").
		Values(seqNum, time.Now().UTC(), data.AttemptID, data.ProfileID, data.LessonID,
			data.Action, data.StepIndex, data.Score, data.TotalQuestions, data.XP).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save lesson event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLessonEvents(ctx context.Context, opts QueryOpts) ([]LessonEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "attempt_id", "profile_id", "lesson_id",
			"action", "step_index", "score", "total_questions", "xp").
		From(entsql.Table(LessonEventsTable.Name))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lesson events: %w", err)
	}
	defer rows.Close()

	var records []LessonEventRecord
	for rows.Next() {
		var e LessonEventRecord
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.AttemptID, &e.ProfileID, &e.LessonID,
			&e.Action, &e.StepIndex, &e.Score, &e.TotalQuestions, &e.XP); err != nil {
			return nil, fmt.Errorf("scan lesson event: %w", err)
		}
		records = append(records, e)
	}
	return records, rows.Err()
}

func (r *eventRepo) LessonCompletions(ctx context.Context) (map[string]int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("lesson_id", entsql.As(entsql.Count("*"), "n")).
		From(entsql.Table(LessonEventsTable.Name)).
		Where(entsql.EQ("action", LessonCompleted)).
		GroupBy("lesson_id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lesson completions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan lesson completions: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
