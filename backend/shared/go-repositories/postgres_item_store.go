package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v4"
)

/* ------------------------------------------------------------------
   Implementation backed by a single key/value table
------------------------------------------------------------------ */

const createBrowserItemsTable = `
	CREATE TABLE IF NOT EXISTS browser_items (
		storage_key TEXT PRIMARY KEY,
		value       TEXT        NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

type postgresItemStore struct {
	db      DB
	closeFn func()
}

// NewPostgresItemStore uses the browser_items table. closeFn releases the
// underlying pool and may be nil.
func NewPostgresItemStore(db DB, closeFn func()) ItemStore {
	return &postgresItemStore{db: db, closeFn: closeFn}
}

// EnsureBrowserItemsSchema creates the browser_items table when missing.
func EnsureBrowserItemsSchema(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, createBrowserItemsTable)
	return err
}

/* ---------- Reads ---------- */

func (s *postgresItemStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(ctx, `SELECT value FROM browser_items WHERE storage_key=$1`, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *postgresItemStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT storage_key FROM browser_items WHERE storage_key LIKE $1 ESCAPE '\'`,
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

/* ---------- Writes ---------- */

func (s *postgresItemStore) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO browser_items (storage_key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (storage_key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value)
	return err
}

func (s *postgresItemStore) Ping(ctx context.Context) error {
	var one int
	return s.db.QueryRow(ctx, `SELECT 1`).Scan(&one)
}

func (s *postgresItemStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
