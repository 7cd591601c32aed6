package limiter

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/olusolaa/lambda-deployer/internal/core/ports"
)

const (
	defaultRateLimitRPS = 20
	minRateLimitRPS     = 1
	maxRateLimitRPS     = 100
)

// Limiter throttles outgoing AWS API calls. Each adapter owns its own
// instance; there is no ambient shared limiter.
type Limiter struct {
	rl     *rate.Limiter
	logger ports.Logger
}

func New(rps int, logger ports.Logger) *Limiter {
	limit := defaultRateLimitRPS
	if rps >= minRateLimitRPS && rps <= maxRateLimitRPS {
		limit = rps
	} else if rps != 0 {
		logger.Warnf(context.Background(), "Invalid AWS API RPS configured (%d), using default %d RPS. Valid range: %d-%d.",
			rps, defaultRateLimitRPS, minRateLimitRPS, maxRateLimitRPS)
	}
	return &Limiter{
		rl:     rate.NewLimiter(rate.Limit(limit), limit),
		logger: logger,
	}
}

func (l *Limiter) Wait(ctx context.Context) error {
	err := l.rl.Wait(ctx)
	if err != nil && ctx.Err() == nil {
		l.logger.Warnf(ctx, "Error waiting for AWS API rate limiter: %v", err)
	}
	return err
}
