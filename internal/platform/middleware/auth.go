package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	jwttoken "symposium/internal/jwt_token"
	"symposium/pkg/platform/httputil"
	"symposium/pkg/requestcontext"
)

// ScopeValidator validates a bearer token for a scope.
type ScopeValidator interface {
	ValidateScope(tokenString, scope string) (*jwttoken.Claims, error)
}

// RequireScope rejects requests without a bearer token carrying scope.
func RequireScope(validator ScopeValidator, scope string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{Error: "Missing or invalid Authorization header"})
				return
			}

			claims, err := validator.ValidateScope(token, scope)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}

			logger.InfoContext(ctx, "organizer token accepted",
				"request_id", requestcontext.RequestID(ctx),
				"subject", claims.Subject,
				"scope", scope,
			)
			next.ServeHTTP(w, r)
		})
	}
}
