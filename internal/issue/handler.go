package issue

import (
	"context"
	"net/http"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/auth"
	"github.com/frahmantamala/workforce-ops/internal/transport"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, userID string, req CreateIssueRequest) (*Issue, error)
	ListForUser(ctx context.Context, userID, status, sort string) ([]Issue, error)
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

// CreateIssue serves POST /issues.
func (h *Handler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, apperrors.ErrMissingToken)
		return
	}

	var req CreateIssueRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleError(w, r, err)
		return
	}

	is, err := h.Service.Create(r.Context(), user.ID, req)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CreateIssueResponse{Success: true, Issue: is})
}

// ListIssues serves GET /issues?status=&sort=.
func (h *Handler) ListIssues(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, apperrors.ErrMissingToken)
		return
	}

	q := r.URL.Query()
	issues, err := h.Service.ListForUser(r.Context(), user.ID, q.Get("status"), q.Get("sort"))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"issues": issues})
}
