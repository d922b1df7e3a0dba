package internal

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeUpstream     ErrorType = "UPSTREAM_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidRole      ErrorCode = "INVALID_ROLE"
	ErrCodeNoResponses      ErrorCode = "NO_RESPONSES"
	ErrCodeInvalidPriority  ErrorCode = "INVALID_PRIORITY"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidSort      ErrorCode = "INVALID_SORT"
	ErrCodeInvalidRange     ErrorCode = "INVALID_TIME_RANGE"

	ErrCodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	ErrCodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"
	ErrCodeEmailTaken           ErrorCode = "EMAIL_TAKEN"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeMissingToken       ErrorCode = "MISSING_TOKEN"
	ErrCodeRoleRequired       ErrorCode = "ROLE_REQUIRED"
	ErrCodeUnsupported        ErrorCode = "UNSUPPORTED_OPERATION"

	ErrCodeUpstreamFailure ErrorCode = "UPSTREAM_FAILURE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if verrs, ok := e.Details.(ValidationErrors); ok && len(verrs.Errors) > 0 {
		return verrs.Errors[0].Message
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// GetDetailedMessage joins every field message; it falls back to Message.
func (e *AppError) GetDetailedMessage() string {
	verrs, ok := e.Details.(ValidationErrors)
	if !ok || len(verrs.Errors) == 0 {
		return e.Message
	}
	messages := make([]string, len(verrs.Errors))
	for i, v := range verrs.Errors {
		messages[i] = v.Message
	}
	return strings.Join(messages, "; ")
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on type and code so wrapped copies of a sentinel still compare equal.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

func (e *AppError) WithCause(cause error) *AppError {
	cp := *e
	cp.Cause = cause
	return &cp
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func newAppError(kind ErrorType, status int, code ErrorCode, message string) *AppError {
	return &AppError{Type: kind, Code: code, Message: message, StatusCode: status}
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, code, message)
}

// NewValidationFieldError reports a single bad field in the same shape the
// validator produces for struct tags.
func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return NewValidationError("Validation failed", ErrCodeValidationFailed).WithDetails(ValidationErrors{
		Errors: []ValidationError{{Field: field, Message: message, Code: string(code)}},
	})
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, code, message)
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, code, message)
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, code, message)
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, code, message)
}

// NewUpstreamError reports a store or identity provider failure. The message is
// what the caller sees; the cause is only logged.
func NewUpstreamError(message string, cause error) *AppError {
	return newAppError(ErrorTypeUpstream, http.StatusInternalServerError, ErrCodeUpstreamFailure, message).WithCause(cause)
}

var (
	ErrMissingToken       = NewUnauthorizedError("Unauthorized", ErrCodeMissingToken)
	ErrInvalidToken       = NewUnauthorizedError("Unauthorized", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrAdminRequired      = NewForbiddenError("Admin access required", ErrCodeRoleRequired)
	ErrEmailTaken         = NewConflictError("A user with this email address has already been registered", ErrCodeEmailTaken)
	ErrUserNotFound       = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrUnsupported        = NewValidationError("Operation not supported by the configured identity provider", ErrCodeUnsupported)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
