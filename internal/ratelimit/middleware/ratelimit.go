package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"symposium/internal/ratelimit/metrics"
	"symposium/internal/ratelimit/models"
	"symposium/pkg/platform/httputil"
	"symposium/pkg/requestcontext"
)

const exceededMessage = "Too many requests. Please try again later."

type Middleware struct {
	limiter  Limiter
	limit    int
	window   time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

type Option func(*Middleware)

// WithDisabled disables rate limiting entirely.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func WithWindow(window time.Duration) Option {
	return func(m *Middleware) {
		m.window = window
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = mt
	}
}

// New limits each client IP to limit requests per window (one minute
// unless WithWindow is given). A limit of zero or less disables limiting.
func New(limiter Limiter, limit int, logger *slog.Logger, opts ...Option) *Middleware {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &Middleware{
		limiter:  limiter,
		limit:    limit,
		window:   time.Minute,
		logger:   logger,
		disabled: limit <= 0 || limiter == nil,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimit applies the per-IP limit under scope. Limiter errors let the
// request through.
func (m *Middleware) RateLimit(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			result, err := m.limiter.Allow(ctx, models.NewIPKey(scope, ip), m.limit, m.window)
			if err != nil {
				m.logger.ErrorContext(ctx, "failed to check rate limit", "scope", scope, "error", err)
				m.metrics.IncrementDecision(scope, metrics.ResultError)
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, result)

			if !result.Allowed {
				m.metrics.IncrementDecision(scope, metrics.ResultDenied)
				m.logger.WarnContext(ctx, "rate limit exceeded", "scope", scope, "client_ip", ip)
				writeRateLimitExceeded(w, result)
				return
			}

			m.metrics.IncrementDecision(scope, metrics.ResultAllowed)
			next.ServeHTTP(w, r)
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
	if result.Degraded {
		w.Header().Set("X-RateLimit-Status", "degraded")
	}
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.ExceededResponse{
		Error:      exceededMessage,
		RetryAfter: result.RetryAfter,
	})
}
