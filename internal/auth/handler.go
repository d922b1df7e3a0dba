package auth

import (
	"context"
	"net/http"

	"github.com/frahmantamala/workforce-ops/internal/transport"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

type ServiceAPI interface {
	Signup(ctx context.Context, req SignupRequest) (*Principal, error)
	Login(ctx context.Context, req LoginRequest) (Tokens, error)
	Refresh(ctx context.Context, req RefreshRequest) (Tokens, error)
	Resolve(ctx context.Context, token string) (*Principal, error)
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

// Signup serves POST /signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleError(w, r, err)
		return
	}

	user, err := h.Service.Signup(r.Context(), req)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, SignupResponse{User: user})
}

// Login serves POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleError(w, r, err)
		return
	}

	tokens, err := h.Service.Login(r.Context(), req)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// RefreshToken serves POST /auth/refresh.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleError(w, r, err)
		return
	}

	tokens, err := h.Service.Refresh(r.Context(), req)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// AuthMiddleware resolves the bearer token to a profile and stores it in the
// request context. Any failure ends the request with 401.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)

		user, err := h.Service.Resolve(r.Context(), token)
		if err != nil {
			logger.From(r.Context()).Warn("auth middleware: rejected request", "error", err, "path", r.URL.Path)
			h.HandleError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}
