package middleware

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"

	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

const TraceHeader = "X-Trace-ID"

// RequestID propagates the caller's trace id (or a new one) on the response and
// in the request logger. It reuses chi's request id when one was assigned.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		fields := []any{"trace_id", traceID}
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			fields = append(fields, "request_id", reqID)
		}
		ctx := logger.With(r.Context(), fields...)

		w.Header().Set(TraceHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
