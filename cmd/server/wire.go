package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"symposium/internal/alert"
	"symposium/internal/catalog"
	"symposium/internal/email"
	jwttoken "symposium/internal/jwt_token"
	"symposium/internal/platform/config"
	"symposium/internal/platform/metrics"
	"symposium/internal/platform/middleware"
	"symposium/internal/platform/redis"
	ratemetrics "symposium/internal/ratelimit/metrics"
	ratelimit "symposium/internal/ratelimit/middleware"
	"symposium/internal/ratelimit/store/bucket"
	"symposium/internal/registration"
	"symposium/internal/registration/handler"
	regmetrics "symposium/internal/registration/metrics"
	"symposium/internal/registration/store"
	"symposium/internal/sheets"
	httptransport "symposium/internal/transport/http"
	"symposium/pkg/platform/sentinel"
)

// app holds everything run needs after wiring.
type app struct {
	router  http.Handler
	service *registration.Service
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func build(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	a := &app{}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.LoadFile(cfg.EventCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load event catalog: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	st, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() {
		if err := st.Close(); err != nil {
			log.Warn("failed to close registrations store", "error", err)
		}
	})

	health := httptransport.NewHealth(2*time.Second).Add("store", st.Ping)

	var producer alert.Producer
	kafka, err := alert.NewClient(cfg.Alert)
	switch {
	case err != nil:
		log.Warn("organizer alerts disabled", "error", err)
	case kafka != nil:
		producer = kafka
		a.closers = append(a.closers, kafka.Close)
		health.Add("kafka", kafka.Ping)
	default:
		health.Add("kafka", notConfigured("kafka"))
	}

	rlMetrics := ratemetrics.New(reg)
	limiter, redisClient := rateLimiter(ctx, cfg.Redis, log, rlMetrics)
	if redisClient != nil {
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		health.Add("redis", redisClient.Health)
	} else {
		health.Add("redis", notConfigured("redis"))
	}

	sheetAppender := sheets.New(cfg.Sheets, cat, sheets.WithLogger(log), sheets.WithLocation(loc))
	notifier := email.New(cfg.Email, cat, email.WithLogger(log), email.WithLocation(loc))
	alerts := alert.NewPublisher(producer, cfg.Alert.Topic, cat, alert.WithLogger(log))

	dispatch := registration.DispatchDetach
	if cfg.SideEffectMode == config.DispatchAwait {
		dispatch = registration.DispatchAwait
	}
	svc, err := registration.NewService(st,
		registration.WithSpreadsheet(sheetAppender),
		registration.WithNotifier(notifier),
		registration.WithAlerts(alerts),
		registration.WithLogger(log),
		registration.WithMetrics(regmetrics.New(reg)),
		registration.WithDispatch(dispatch),
		registration.WithDetachedTimeout(cfg.SideEffectTimeout),
	)
	if err != nil {
		return nil, err
	}
	a.service = svc

	log.Info("side effects configured",
		"sheets", sheetAppender.Enabled(),
		"email", notifier.Enabled(),
		"organizer_email", cfg.Email.OrganizerEmail != "",
		"alerts", alerts.Enabled(),
		"rate_limit_per_minute", cfg.RateLimit.PerMinute,
	)

	proxies, err := cfg.Proxies()
	if err != nil {
		return nil, err
	}

	var exportGuard func(http.Handler) http.Handler
	if cfg.Export.SigningKey != "" {
		exportGuard = middleware.RequireScope(jwttoken.NewJWTService(cfg.Export.SigningKey), jwttoken.ScopeExport, log)
	} else {
		log.Warn("EXPORT_SIGNING_KEY not set, /api/export is unauthenticated")
	}

	a.router = httptransport.NewRouter(httptransport.Deps{
		Handler:     handler.New(svc, st, cat, log, handler.WithLocation(loc)),
		RateLimit:   ratelimit.New(limiter, cfg.RateLimit.PerMinute, log, ratelimit.WithMetrics(rlMetrics)),
		ExportGuard: exportGuard,
		Health:      health,
		Metrics:     metrics.New(reg),
		Gatherer:    reg,
		Logger:      log,

		TrustedProxies: proxies,
	})
	return a, nil
}

// openStore falls back to a store that skips persistence when no database
// is configured. Any other open error is fatal.
func openStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (store.Store, error) {
	st, err := store.Open(ctx, cfg)
	if errors.Is(err, sentinel.ErrNotConfigured) {
		log.Warn("DATABASE_URL not set, registrations will not be persisted")
		return store.Unconfigured{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open registrations store: %w", err)
	}
	if err := st.Ping(ctx); err != nil {
		log.Warn("registrations store unreachable at startup", "driver", cfg.Driver, "error", err)
	}
	return st, nil
}

func rateLimiter(ctx context.Context, cfg config.RedisConfig, log *slog.Logger, m *ratemetrics.Metrics) (ratelimit.Limiter, *redis.Client) {
	memory := bucket.New()
	client, err := redis.New(ctx, cfg)
	if err != nil {
		log.Warn("redis unavailable, rate limiting per process", "error", err)
		return memory, nil
	}
	if client == nil {
		return memory, nil
	}
	return ratelimit.NewFallbackLimiter(bucket.NewRedisStore(client), memory, log, m), client
}

func notConfigured(name string) httptransport.Check {
	return func(context.Context) error {
		return fmt.Errorf("%s: %w", name, sentinel.ErrNotConfigured)
	}
}
