package performance

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/workforce-ops/internal/transport"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

type ServiceAPI interface {
	History(ctx context.Context, userID string) ([]Record, error)
	Report(ctx context.Context, userID, timeRange string) (*Report, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
	}
}

// GetPerformance serves GET /performance/{userId}.
func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	records, err := h.Service.History(r.Context(), userID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"performance": records})
}

// GetReport serves GET /performance/{userId}/report?range=.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	report, err := h.Service.Report(r.Context(), userID, r.URL.Query().Get("range"))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}
