package service

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by KVStorage when the key is absent or expired.
var ErrKeyNotFound = errors.New("key not found")

// KVStorage is a small key/value store with per-key expiry, used for the
// persisted session, OAuth state and password reset tokens.
type KVStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value; a zero ttl keeps the key until deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Take returns the value and deletes it atomically (single use tokens).
	Take(ctx context.Context, key string) ([]byte, error)
}
