package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores values in the kv_state table owned by the repository
// migrations. Upserts keep last-write-wins semantics per key.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(
		ctx, "SELECT value FROM kv_state WHERE key = $1", key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *Postgres) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(
		ctx,
		`INSERT INTO kv_state (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key)
		DO UPDATE SET value = excluded.value, updated_at = now()`,
		key, value,
	)
	return err
}

func (s *Postgres) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM kv_state WHERE key = $1", key)
	return err
}
