package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Sqlite is a single-file backend for local runs: no external service to
// stand up, state survives restarts. Writes are serialized through a mutex
// since the sqlite3 driver dislikes concurrent writers.
type Sqlite struct {
	mu sync.Mutex
	db *sql.DB
}

func NewSqlite(path string) (*Sqlite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS kv_state (
	key		TEXT PRIMARY KEY,
	value	BLOB NOT NULL
);`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Sqlite{db: db}, nil
}

func (s *Sqlite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(
		ctx, "SELECT value FROM kv_state WHERE key = ?", key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *Sqlite) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
INSERT INTO kv_state (key, value)
VALUES (?, ?)
ON CONFLICT (key)
DO UPDATE SET value = excluded.value;`,
		key, value)
	return err
}

func (s *Sqlite) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_state WHERE key = ?", key)
	return err
}

func (s *Sqlite) Close() error {
	return s.db.Close()
}
