package dashboard

import (
	"context"
	"net/http"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/auth"
	"github.com/frahmantamala/workforce-ops/internal/transport"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

type ServiceAPI interface {
	Stats(ctx context.Context, userID string) (*Stats, error)
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

// GetDashboard serves GET /dashboard.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, apperrors.ErrMissingToken)
		return
	}

	stats, err := h.Service.Stats(r.Context(), user.ID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}
