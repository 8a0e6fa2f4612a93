package domain

import (
	"errors"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("resource already exists")
	ErrAuth         = errors.New("invalid credentials")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("resource not found")
	ErrServerConfig = errors.New("server configuration error")
	ErrInternal     = errors.New("internal error")
)

// AppError carries the HTTP status and the short message returned to the
// client. Err is the taxonomy sentinel or the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg, Err: ErrValidation}
}

// Duplicate keys are answered with 400, matching the client contract.
func NewConflictError(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg, Err: ErrConflict}
}

// NewAuthError is a rejected login. It is a 400, unlike a rejected token.
func NewAuthError(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg, Err: ErrAuth}
}

func NewUnauthorizedError(msg string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: msg, Err: ErrUnauthorized}
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: msg, Err: ErrNotFound}
}

func NewServerConfigError(msg string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: msg, Err: ErrServerConfig}
}

// NewInternalError keeps cause in the chain for logging; only msg reaches
// the client.
func NewInternalError(msg string, cause error) *AppError {
	if cause == nil {
		cause = ErrInternal
	}
	return &AppError{Code: http.StatusInternalServerError, Message: msg, Err: errors.Join(ErrInternal, cause)}
}

// StatusOf returns the HTTP status for err and the client-facing message.
// Errors outside the taxonomy are reported as internal.
func StatusOf(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}
	return http.StatusInternalServerError, "Server error"
}
