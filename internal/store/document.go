package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type documentRepo struct {
	db *sql.DB
}

func (r *documentRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(DocumentsTable.Name)).
		Where(entsql.EQ("key", key)).
		Query()

	var value string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get document %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (r *documentRepo) Put(ctx context.Context, key string, value []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(DocumentsTable.Name).
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put document %q: %w", key, err)
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(DocumentsTable.Name).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete document %q: %w", key, err)
	}
	return nil
}
