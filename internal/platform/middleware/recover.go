package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"symposium/pkg/platform/httputil"
	"symposium/pkg/requestcontext"
)

// Recover converts panics into a generic 500 JSON response. The stack trace
// is logged and never sent to the client.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				ctx := r.Context()
				logger.ErrorContext(ctx, "panic while handling request",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{Error: httputil.GenericErrorMessage})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
