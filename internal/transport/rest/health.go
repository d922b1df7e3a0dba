package rest

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/transport"
)

const healthCheckTimeout = 2 * time.Second

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	DurationMs int64        `json:"duration_ms"`
}

// Pinger is satisfied by *sql.DB and *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	*transport.BaseHandler
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: transport.NewBaseHandler(nil),
		checks:      checks,
	}
}

// Ping is the liveness probe.
func (h *HealthHandler) Ping(w http.ResponseWriter, _ *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// Health is the readiness probe. Any failing component makes it 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{
		Status:     HealthHealthy,
		Components: make(map[string]CheckEntry, len(names)),
	}

	for _, name := range names {
		entry := h.check(r.Context(), h.checks[name])
		if entry.Status == HealthUnhealthy {
			resp.Status = HealthUnhealthy
			h.Logger.Warn("health check failed", "component", name, "error", entry.Message)
		}
		resp.Components[name] = entry
	}
	resp.CheckedAt = time.Now()

	status := http.StatusOK
	if resp.Status == HealthUnhealthy {
		status = http.StatusServiceUnavailable
	}
	h.WriteJSON(w, status, resp)
}

func (h *HealthHandler) check(ctx context.Context, p Pinger) CheckEntry {
	ctx, cancel := internal.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := p.PingContext(ctx)

	entry := CheckEntry{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	}
	return entry
}
