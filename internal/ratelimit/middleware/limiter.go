package middleware

import (
	"context"
	"log/slog"
	"time"

	"symposium/internal/ratelimit/metrics"
	"symposium/internal/ratelimit/models"
	"symposium/pkg/platform/circuit"
)

// Limiter decides whether one more request against key fits in limit per
// window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}

// FallbackLimiter answers from primary while it is healthy. After repeated
// primary errors the breaker opens and answers come from fallback, marked
// Degraded, until primary succeeds enough times in a row.
type FallbackLimiter struct {
	primary  Limiter
	fallback Limiter
	breaker  *circuit.Breaker
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewFallbackLimiter(primary, fallback Limiter, logger *slog.Logger, m *metrics.Metrics, opts ...circuit.Option) *FallbackLimiter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FallbackLimiter{
		primary:  primary,
		fallback: fallback,
		breaker:  circuit.New("ratelimit", opts...),
		logger:   logger,
		metrics:  m,
	}
}

func (f *FallbackLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	result, err := f.primary.Allow(ctx, key, limit, window)
	if err != nil {
		useFallback, change := f.breaker.RecordFailure()
		if change.Opened {
			f.logger.WarnContext(ctx, "rate limit store failing, switching to in-process fallback", "error", err)
			f.metrics.SetDegraded(true)
		}
		if !useFallback {
			return nil, err
		}
		return f.fromFallback(ctx, key, limit, window)
	}

	usePrimary, change := f.breaker.RecordSuccess()
	if change.Closed {
		f.logger.InfoContext(ctx, "rate limit store recovered")
		f.metrics.SetDegraded(false)
	}
	if !usePrimary {
		return f.fromFallback(ctx, key, limit, window)
	}
	return result, nil
}

func (f *FallbackLimiter) fromFallback(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	result, err := f.fallback.Allow(ctx, key, limit, window)
	if err != nil {
		return nil, err
	}
	result.Degraded = true
	return result, nil
}
