package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/frahmantamala/workforce-ops/internal/transport"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

// RecoveryMiddleware turns panics into a generic 500 and logs the stack.
func RecoveryMiddleware(next http.Handler) http.Handler {
	h := transport.NewBaseHandler(nil)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.From(r.Context()).Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"url", r.URL.String(),
					"stack", string(debug.Stack()))

				h.WriteError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
