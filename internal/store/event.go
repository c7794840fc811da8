package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder over the declared
// event tables and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// sequenceCounter hands out one global, monotonically increasing sequence
// number shared by every event table, so events of different kinds can be
// ordered against each other.
//
// The counter lives in its own single-row table. The mutex serializes
// callers within the process; UPDATE ... RETURNING makes each increment
// atomic in the database.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next returns the next sequence number and advances the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// applyQueryOpts adds ordering (newest first), range filters and the
// limit to a selector.
func applyQueryOpts(s *entsql.Selector, opts QueryOpts) *entsql.Selector {
	if opts.After > 0 {
		s.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		s.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		s.Where(entsql.GTE("timestamp", opts.From))
	}
	if !opts.To.IsZero() {
		s.Where(entsql.LTE("timestamp", opts.To))
	}
	s.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		s.Limit(opts.Limit)
	}
	return s
}
