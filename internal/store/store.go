// Package store is the persistence boundary: an opaque-bytes key-value
// interface the move handler reads game state from and writes it back to.
// Durability, consistency and latency are the backend's business; the
// engine only assumes get/put/delete and last-write-wins.
package store

import (
	"context"
	"errors"
)

// ErrNotFound reports an absent key. Every backend maps its own notion of
// "no such row" to this error.
var ErrNotFound = errors.New("key not found")

type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put inserts or overwrites the value under key.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// GameKey builds the storage key for a player session's game.
func GameKey(sessionID string) string {
	return "game:" + sessionID
}
