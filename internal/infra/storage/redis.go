package storage

import (
	"context"
	"time"

	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/service"
	"agora/internal/errors"

	"github.com/redis/go-redis/v9"
)

// RedisStorage implements service.KVStorage on Redis. Keys are namespaced by prefix.
type RedisStorage struct {
	rdb    redis.Cmdable
	prefix string
}

// NewRedisStorage wraps an existing client.
func NewRedisStorage(rdb redis.Cmdable, prefix string) *RedisStorage {
	return &RedisStorage{
		rdb:    rdb,
		prefix: prefix,
	}
}

func (s *RedisStorage) key(key string) string {
	return s.prefix + key
}

// Get returns the value or service.ErrKeyNotFound.
func (s *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		return nil, mapRedisError(err, "failed to read key")
	}

	return value, nil
}

// Set stores value. A zero ttl keeps the key until deleted.
func (s *RedisStorage) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return domainerrors.NewTransportError(err, "failed to write key")
	}

	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return domainerrors.NewTransportError(err, "failed to delete key")
	}

	return nil
}

// Take reads and deletes key with GETDEL.
func (s *RedisStorage) Take(ctx context.Context, key string) ([]byte, error) {
	value, err := s.rdb.GetDel(ctx, s.key(key)).Bytes()
	if err != nil {
		return nil, mapRedisError(err, "failed to take key")
	}

	return value, nil
}

func mapRedisError(err error, details string) error {
	if errors.Is(err, redis.Nil) {
		return service.ErrKeyNotFound
	}

	return domainerrors.NewTransportError(err, details)
}
