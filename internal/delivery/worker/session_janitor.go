// Package worker hosts background deliveries that run beside the HTTP server.
package worker

import (
	"context"
	"log/slog"
	"time"

	"tally/config"
	"tally/internal/delivery"
	"tally/internal/domain/repository"

	"go.uber.org/fx"
)

type sessionJanitor struct {
	interval  time.Duration
	logger    *slog.Logger
	tokenRepo repository.RefreshTokenRepository
	done      chan struct{}
}

// JanitorParams holds dependencies for the session janitor
type JanitorParams struct {
	fx.In

	Lc        fx.Lifecycle
	Cfg       *config.Config
	Logger    *slog.Logger
	TokenRepo repository.RefreshTokenRepository
}

// NewSessionJanitor creates a background sweeper that purges expired
// refresh tokens on a fixed interval.
func NewSessionJanitor(params JanitorParams) (delivery.Delivery, error) {
	janitor := &sessionJanitor{
		interval:  params.Cfg.Auth.SessionSweepInterval,
		logger:    params.Logger,
		tokenRepo: params.TokenRepo,
		done:      make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: janitor.stop,
	})

	return janitor, nil
}

// Serve runs the sweep loop until the janitor is stopped.
func (j *sessionJanitor) Serve(ctx context.Context) error {
	j.logger.Info("Starting session janitor", slog.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep(ctx)
		case <-j.done:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func (j *sessionJanitor) sweep(ctx context.Context) {
	if err := j.tokenRepo.DeleteExpired(ctx); err != nil {
		j.logger.Error("Failed to purge expired refresh tokens", slog.Any("error", err))

		return
	}

	j.logger.Debug("Purged expired refresh tokens")
}

func (j *sessionJanitor) stop(ctx context.Context) error {
	j.logger.Info("Stopping session janitor")
	close(j.done)

	return nil
}
