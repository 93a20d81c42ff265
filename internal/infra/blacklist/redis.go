// Package blacklist provides the Redis-backed token revocation list.
package blacklist

import (
	"context"
	"log/slog"
	"time"

	"tally/config"
	"tally/internal/domain/lifecycle"
	"tally/internal/domain/service"
	"tally/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// keyPrefix namespaces revocation keys inside the shared Redis database.
const keyPrefix = "blacklist:"

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewClient creates the Redis client used for token revocation.
func NewClient(params Params) (*redis.Client, error) {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		return nil, errors.New("redis address must be provided")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return errors.Wrap(client.Close(), "failed to close Redis client")
		},
	})

	return client, nil
}

// redisBlacklist implements the TokenBlacklist interface on a Redis key space.
// Entries expire with the token they revoke, so the set never needs sweeping.
type redisBlacklist struct {
	client *redis.Client
}

// NewRedisBlacklist is the constructor for redisBlacklist.
func NewRedisBlacklist(client *redis.Client) service.TokenBlacklist {
	return &redisBlacklist{client: client}
}

// Add marks a token ID as revoked for the token's remaining lifetime.
func (b *redisBlacklist) Add(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already past expiry; the verifier rejects it without our help.
		return nil
	}

	if err := b.client.Set(ctx, keyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to add token to blacklist")
	}

	return nil
}

// Contains reports whether a token ID has been revoked.
func (b *redisBlacklist) Contains(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to check token blacklist")
	}

	return n > 0, nil
}
