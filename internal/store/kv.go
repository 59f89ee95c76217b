package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Well-known keys.
const (
	KeyWardrobe    = "wardrobe"
	KeyUserProfile = "userProfile"
	KeyJWTSecret   = "jwt_secret"
)

type loadResult int

const (
	loadFound loadResult = iota
	loadMissing
	loadCorrupt
)

// Load returns the value stored under key, or def when there is no row or the
// row no longer decodes into T. A corrupt row is logged and otherwise
// ignored. The error is non-nil only for database failures.
func Load[T any](ctx context.Context, db *sql.DB, key string, def T) (T, error) {
	v, _, err := load(ctx, db, key, def)
	return v, err
}

func load[T any](ctx context.Context, db *sql.DB, key string, def T) (T, loadResult, error) {
	var raw string
	err := db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return def, loadMissing, nil
	}
	if err != nil {
		return def, loadMissing, fmt.Errorf("loading %q: %w", key, err)
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		slog.Warn("stored value does not decode, using default", "key", key, "error", err)
		return def, loadCorrupt, nil
	}
	return v, loadFound, nil
}

// Save stores v under key, replacing any previous value. The write is a
// single statement, so readers see either the old or the new value.
func Save[T any](ctx context.Context, db *sql.DB, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("saving %q: %w", key, err)
	}
	return nil
}

// Cell holds the current value of one key in memory and writes every change
// through to the database.
type Cell[T any] struct {
	db  *sql.DB
	key string

	mu  sync.RWMutex
	val T
}

// OpenCell loads key into a new cell. When the key has never been stored,
// def is persisted as its initial value. A corrupt row yields def but is
// left untouched until the next Set.
func OpenCell[T any](ctx context.Context, db *sql.DB, key string, def T) (*Cell[T], error) {
	v, res, err := load(ctx, db, key, def)
	if err != nil {
		return nil, err
	}
	if res == loadMissing {
		if err := Save(ctx, db, key, def); err != nil {
			return nil, err
		}
	}
	return &Cell[T]{db: db, key: key, val: v}, nil
}

// Key returns the key the cell is stored under.
func (c *Cell[T]) Key() string {
	return c.key
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.val
}

// Set persists v and then makes it the current value. On error the current
// value is unchanged.
func (c *Cell[T]) Set(ctx context.Context, v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := Save(ctx, c.db, c.key, v); err != nil {
		return err
	}
	c.val = v
	return nil
}
