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

// SlotRepo is a string key/value store. Each key holds one serialized blob
// that is replaced wholesale on every write.
type SlotRepo struct {
	db *sql.DB
}

// Get returns the value stored under key. The boolean is false when the key
// has never been written.
func (r *SlotRepo) Get(ctx context.Context, key string) (string, bool, error) {
	t := entsql.Table(slotsTable)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(t.C(slotValue)).
		From(t).
		Where(entsql.EQ(t.C(slotKey), key)).
		Query()

	var value string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get slot %q: %w", key, err)
	}
	return value, true, nil
}

// Put replaces the value stored under key.
func (r *SlotRepo) Put(ctx context.Context, key, value string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(slotsTable).
		Columns(slotKey, slotValue, slotUpdatedAt).
		Values(key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns(slotKey),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put slot %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *SlotRepo) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(slotsTable).
		Where(entsql.EQ(slotKey, key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}
