package checklist

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/auth"
	"github.com/frahmantamala/workforce-ops/internal/transport"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

const defaultRecentLimit = 20

type ServiceAPI interface {
	Template(ctx context.Context, roleName string) (*Template, error)
	Submit(ctx context.Context, userID string, req SubmitRequest) (*Submission, error)
	Recent(ctx context.Context, userID string, limit int) ([]Submission, error)
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

// GetChecklist serves GET /checklist/{role}.
func (h *Handler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.Service.Template(r.Context(), chi.URLParam(r, "role"))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"checklists": tmpl.Items,
		"role":       tmpl.Role,
		"title":      tmpl.Title,
	})
}

// Submit serves POST /checklist/submit.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, apperrors.ErrMissingToken)
		return
	}

	var req SubmitRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleError(w, r, err)
		return
	}

	sub, err := h.Service.Submit(r.Context(), user.ID, req)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, SubmitResponse{Success: true, SubmissionID: sub.ID})
}

// ListSubmissions serves GET /checklist/submissions?limit=.
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, apperrors.ErrMissingToken)
		return
	}

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			h.HandleError(w, r, apperrors.NewValidationFieldError("limit", "limit must be between 1 and 100", apperrors.ErrCodeValidationFailed))
			return
		}
		limit = n
	}

	subs, err := h.Service.Recent(r.Context(), user.ID, limit)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"submissions": subs})
}
