package notification

import (
	"net/http"

	"github.com/go-chi/chi"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/auth"
	"github.com/frahmantamala/workforce-ops/internal/transport"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Hub:         hub,
	}
}

// List serves GET /notifications.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, apperrors.ErrMissingToken)
		return
	}

	log := h.Hub.Touch(user.ID, user.Role)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"active": log.Active(),
		"recent": log.Recent(h.Hub.clock()),
	})
}

// Dismiss serves POST /notifications/{id}/dismiss.
func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, apperrors.ErrMissingToken)
		return
	}

	if err := h.Hub.Dismiss(user.ID, chi.URLParam(r, "id")); err != nil {
		h.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DismissAll serves POST /notifications/dismiss.
func (h *Handler) DismissAll(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, apperrors.ErrMissingToken)
		return
	}

	h.Hub.DismissAll(user.ID)
	w.WriteHeader(http.StatusNoContent)
}
