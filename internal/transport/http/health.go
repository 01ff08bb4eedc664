package httptransport

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"symposium/pkg/platform/httputil"
	"symposium/pkg/platform/sentinel"
)

const (
	checkOK            = "ok"
	checkNotConfigured = "not_configured"
	checkError         = "error"

	statusDegraded = "degraded"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// Health reports dependency status. Every dependency is best-effort: a
// registration is accepted while any of them is down or unconfigured, so a
// failing check marks the instance degraded but still answers 200.
type Health struct {
	checks  map[string]Check
	timeout time.Duration
}

func NewHealth(timeout time.Duration) *Health {
	return &Health{checks: make(map[string]Check), timeout: timeout}
}

// Add registers a named check. It is not safe to call once serving.
func (h *Health) Add(name string, check Check) *Health {
	h.checks[name] = check
	return h
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := healthResponse{Status: checkOK, Checks: make(map[string]string, len(names))}
	for _, name := range names {
		err := h.checks[name](ctx)
		switch {
		case err == nil:
			resp.Checks[name] = checkOK
		case errors.Is(err, sentinel.ErrNotConfigured):
			resp.Checks[name] = checkNotConfigured
		default:
			resp.Checks[name] = checkError
			resp.Status = statusDegraded
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
