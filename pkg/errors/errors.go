package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code onto an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrValidation:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrConstraint:
		return http.StatusUnprocessableEntity
	case ErrPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrConstraint
	ErrInternal
	ErrPayloadTooLarge
	ErrTimeout
)

// Validation reports a missing or malformed input field.
func Validation(field, message string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Field:   field,
	}
}

// NotFound reports a referenced record that does not exist.
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

// Constraint reports a value that violates a data constraint, such as a negative quantity.
func Constraint(message string, err error) *AppError {
	return &AppError{
		Code:    ErrConstraint,
		Message: message,
		Err:     err,
	}
}

// Internal hides err behind a generic message.
func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// PayloadTooLarge reports a request body over limit bytes.
func PayloadTooLarge(limit int64) *AppError {
	return &AppError{
		Code:    ErrPayloadTooLarge,
		Message: fmt.Sprintf("request body exceeds %d bytes", limit),
	}
}

func Timeout(err error) *AppError {
	return &AppError{
		Code:    ErrTimeout,
		Message: "request timed out",
		Err:     err,
	}
}

func codeOf(err error) (ErrorCode, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code, true
	}
	return 0, false
}

func IsValidation(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrValidation
}

func IsNotFound(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrNotFound
}

func IsConstraint(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrConstraint
}

// HTTPStatus returns the status for any error; unknown errors map to 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to show a client.
func PublicMessage(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.Code != ErrInternal {
		return appErr.Message
	}
	return "internal server error"
}
