package user

import (
	"context"
	"net/http"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/auth"
	"github.com/frahmantamala/workforce-ops/internal/transport"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

type ServiceAPI interface {
	Profile(ctx context.Context, id string) (*auth.Principal, error)
	List(ctx context.Context) ([]auth.Principal, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     svc,
	}
}

// GetProfile serves GET /profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, apperrors.ErrMissingToken)
		return
	}

	profile, err := h.Service.Profile(r.Context(), user.ID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

// ListUsers serves GET /users. The router restricts it to admins.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}
