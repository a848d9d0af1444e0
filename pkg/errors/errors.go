package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrConflict             = errors.New("conflict")
	ErrInternal             = errors.New("internal error")
	ErrServiceUnavail       = errors.New("service unavailable")
	ErrBackend              = errors.New("backend request failed")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrDuplicateSubmission  = errors.New("duplicate submission")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, key string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s %s not found", resource, key),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Conflict creates a 409 error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// BackendFailure creates a 502 error for a failed mutation against the content
// backend. The message is shown to the operator as-is, so it stays generic;
// the cause is kept for logs only.
func BackendFailure(code, message string, err error) *AppError {
	if err == nil {
		err = ErrBackend
	} else {
		err = fmt.Errorf("%w: %w", ErrBackend, err)
	}
	return &AppError{
		Code:    code,
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// ConfirmationRequired creates a 428 error for destructive operations the
// caller has not confirmed.
func ConfirmationRequired(message string) *AppError {
	return &AppError{
		Code:    "CONFIRMATION_REQUIRED",
		Message: message,
		Status:  http.StatusPreconditionRequired,
		Err:     ErrConfirmationRequired,
	}
}

// DuplicateSubmission creates a 409 error for a form payload that is already
// being submitted.
func DuplicateSubmission(message string) *AppError {
	return &AppError{
		Code:    "DUPLICATE_SUBMISSION",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrDuplicateSubmission,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicateSubmission):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrConfirmationRequired):
		return http.StatusPreconditionRequired
	case errors.Is(err, ErrBackend):
		return http.StatusBadGateway
	case errors.Is(err, ErrServiceUnavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
