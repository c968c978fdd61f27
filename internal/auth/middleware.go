package auth

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "anonid/pkg/domain-errors"
	"anonid/pkg/platform/httputil"
	"anonid/pkg/requestcontext"
)

// TokenValidator validates bearer tokens presented on disclosure endpoints.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// RequireOrganization gates an endpoint behind a valid organization token and
// stores the organization name in the request context for audit logging.
func RequireOrganization(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			const bearerPrefix = "Bearer "

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx = requestcontext.WithOrgName(ctx, claims.OrganizationName)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
