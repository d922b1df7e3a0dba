package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

const maxBodyBytes = 1 << 20

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes the {"code", "error"} envelope used by every endpoint.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.writeError(w, status, message, nil)
}

func (h *BaseHandler) writeError(w http.ResponseWriter, status int, message string, details interface{}) {
	body := map[string]interface{}{
		"code":  status,
		"error": message,
	}
	if details != nil {
		body["details"] = details
	}
	h.WriteJSON(w, status, body)
}

// HandleError translates service errors into responses. Anything that is not an
// AppError is logged and reported as a generic 500.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	lg := logger.From(r.Context())

	appErr, ok := apperrors.IsAppError(err)
	if !ok {
		lg.Error("unhandled error", "error", err, "path", r.URL.Path)
		h.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch {
	case appErr.StatusCode >= http.StatusInternalServerError:
		lg.Error("request failed", "type", appErr.Type, "code", appErr.Code, "error", appErr.Cause, "path", r.URL.Path)
	default:
		lg.Warn("request rejected", "type", appErr.Type, "code", appErr.Code, "message", appErr.GetDetailedMessage(), "path", r.URL.Path)
	}

	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	h.writeError(w, status, appErr.Message, appErr.Details)
}

// DecodeJSON reads a JSON request body into dst. Malformed bodies are reported
// as validation errors.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apperrors.NewValidationError("Request body is required", apperrors.ErrCodeValidationFailed)
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewValidationError("Request body is required", apperrors.ErrCodeValidationFailed)
		}
		return apperrors.NewValidationError("Invalid request body", apperrors.ErrCodeValidationFailed).WithCause(err)
	}
	return nil
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	return BearerToken(r)
}

func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}
