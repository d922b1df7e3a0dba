package middleware

import (
	"net/http"

	"github.com/frahmantamala/workforce-ops/internal/auth"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

// UserContext tags the request logger with the authenticated user. It must run
// after the auth middleware.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.With(r.Context(), "user_id", user.ID, "role", user.Role.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
