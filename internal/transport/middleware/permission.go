package middleware

import (
	"net/http"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/auth"
	"github.com/frahmantamala/workforce-ops/internal/core/role"
	"github.com/frahmantamala/workforce-ops/internal/transport"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

// RequireRole lets the request through when the authenticated user holds one of
// the given roles. Missing users get 401, everyone else 403.
func RequireRole(roles ...role.Role) func(http.Handler) http.Handler {
	h := transport.NewBaseHandler(nil)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				h.HandleError(w, r, apperrors.ErrMissingToken)
				return
			}

			for _, allowed := range roles {
				if user.Role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.From(r.Context()).Warn("access denied: role not allowed",
				"user_id", user.ID,
				"role", user.Role,
				"required_roles", roles)
			h.HandleError(w, r, apperrors.ErrAdminRequired)
		})
	}
}

// RequireAdmin is RequireRole(role.Admin).
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(role.Admin)(next)
}
