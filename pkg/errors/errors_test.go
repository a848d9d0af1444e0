package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Sentinel error identity ---

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrInvalidInput, ErrConflict, ErrInternal,
		ErrServiceUnavail, ErrBackend, ErrConfirmationRequired, ErrDuplicateSubmission,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

// --- AppError behavior ---

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	appErr := &AppError{Code: "SAVE_FAILED", Message: "error saving product", Err: inner}
	assert.Contains(t, appErr.Error(), "SAVE_FAILED")
	assert.Contains(t, appErr.Error(), "error saving product")
	assert.Contains(t, appErr.Error(), "connection refused")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "product x not found"}
	assert.Equal(t, "NOT_FOUND: product x not found", appErr.Error())
}

func TestAppError_Unwrap_Nil(t *testing.T) {
	appErr := &AppError{Code: "TEST", Message: "test"}
	assert.Nil(t, appErr.Unwrap())
}

// --- Constructor functions ---

func TestNotFound(t *testing.T) {
	err := NotFound("product", "premium-california-almonds")
	require.NotNil(t, err)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Contains(t, err.Message, "premium-california-almonds")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("unknown sort key")
	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestBackendFailure_KeepsCauseAndSentinel(t *testing.T) {
	cause := fmt.Errorf("dial tcp: refused")
	err := BackendFailure("DELETE_FAILED", "error deleting item", cause)

	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.Equal(t, "error deleting item", err.Message)
	assert.True(t, errors.Is(err, ErrBackend))
	assert.True(t, errors.Is(err, cause))
}

func TestBackendFailure_NilCause(t *testing.T) {
	err := BackendFailure("SEED_FAILED", "error seeding data", nil)
	assert.True(t, errors.Is(err, ErrBackend))
}

func TestConfirmationRequired(t *testing.T) {
	err := ConfirmationRequired("confirm=true is required to delete")
	assert.Equal(t, "CONFIRMATION_REQUIRED", err.Code)
	assert.Equal(t, http.StatusPreconditionRequired, err.Status)
	assert.True(t, errors.Is(err, ErrConfirmationRequired))
}

func TestDuplicateSubmission(t *testing.T) {
	err := DuplicateSubmission("inquiry already in progress")
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.True(t, errors.Is(err, ErrDuplicateSubmission))
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "find product")
	assert.Contains(t, wrapped.Error(), "find product")
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

// --- HTTPStatus ---

func TestHTTPStatus_SentinelErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrConflict, http.StatusConflict},
		{ErrDuplicateSubmission, http.StatusConflict},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrConfirmationRequired, http.StatusPreconditionRequired},
		{ErrBackend, http.StatusBadGateway},
		{ErrServiceUnavail, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_WrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("unknown")))
}
