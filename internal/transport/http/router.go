package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"symposium/internal/platform/metrics"
	"symposium/internal/platform/middleware"
	ratelimit "symposium/internal/ratelimit/middleware"
	"symposium/internal/registration/handler"
	"symposium/pkg/platform/httputil"
	"symposium/pkg/platform/middleware/metadata"
	"symposium/pkg/platform/middleware/requesttime"
)

// RateLimitScopeRegister keys the per-IP budget of POST /api/register.
const RateLimitScopeRegister = "register"

// Deps are the collaborators the router mounts.
type Deps struct {
	Handler   *handler.Handler
	RateLimit *ratelimit.Middleware
	// ExportGuard protects GET /api/export. Nil leaves the export open.
	ExportGuard func(http.Handler) http.Handler
	Health      *Health
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	Logger      *slog.Logger
	// TrustedProxies may set X-Forwarded-For. Empty keys clients by socket peer.
	TrustedProxies metadata.TrustedProxies
}

// NewRouter wires every public endpoint.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.Middleware(d.TrustedProxies))
	r.Use(middleware.AccessLog(d.Logger, d.Metrics))
	r.Use(middleware.Recover(d.Logger))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{Error: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{Error: "Method not allowed"})
	})

	if d.Health != nil {
		r.Get("/healthz", d.Health.ServeHTTP)
	}
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", d.Handler.HandleListEvents)
		r.Get("/events/{slug}", d.Handler.HandleGetEvent)

		r.Group(func(r chi.Router) {
			if d.RateLimit != nil {
				r.Use(d.RateLimit.RateLimit(RateLimitScopeRegister))
			}
			r.Post("/register", d.Handler.HandleRegister)
		})

		r.Group(func(r chi.Router) {
			if d.ExportGuard != nil {
				r.Use(d.ExportGuard)
			}
			r.Get("/export", d.Handler.HandleExport)
		})
	})

	return r
}
