// Package storage provides the key/value stores behind service.KVStorage.
package storage

import (
	"context"
	"log/slog"

	"agora/config"
	"agora/internal/domain/lifecycle"
	"agora/internal/domain/service"
	"agora/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New selects Redis when redis.addr is set and the in-memory store otherwise.
func New(params Params) service.KVStorage {
	redisCfg := params.Config.Redis
	if redisCfg == nil || redisCfg.Addr == "" {
		params.Logger.Warn("redis.addr not set, sessions are kept in memory and lost on restart")

		return NewMemoryStorage()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}
			params.Logger.Info("Redis storage connected", slog.String("addr", redisCfg.Addr))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return NewRedisStorage(client, redisCfg.KeyPrefix)
}
