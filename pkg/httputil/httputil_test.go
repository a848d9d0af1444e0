package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/prakhar2b/sm-dryfruto/pkg/errors"
	"github.com/prakhar2b/sm-dryfruto/pkg/logger"
	"github.com/prakhar2b/sm-dryfruto/pkg/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// --- WriteJSON ---

func TestWriteJSON_SetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, Response{Data: "hello"})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWriteData_WrapsEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusCreated, map[string]string{"slug": "premium-almonds"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var raw map[string]map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.Equal(t, "premium-almonds", raw["data"]["slug"])
}

func TestResponse_OmitsEmptyFields(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, Response{Data: "ok"})

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	_, hasError := raw["error"]
	assert.False(t, hasError, "error field should be omitted when nil")
}

// --- WriteError ---

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/nope", nil)

	WriteError(rec, req, apperrors.NotFound("product", "nope"), testLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestWriteError_BackendFailure_HidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", nil)

	err := apperrors.BackendFailure("SAVE_FAILED", "error saving product", fmt.Errorf("dial tcp 10.0.0.1:8001: refused"))
	WriteError(rec, req, err, testLogger())

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "SAVE_FAILED", resp.Error.Code)
	assert.Equal(t, "error saving product", resp.Error.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.1")
}

func TestWriteError_Sentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"invalid input", apperrors.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"backend", apperrors.ErrBackend, http.StatusBadGateway, "BACKEND_UNAVAILABLE"},
		{"unknown", fmt.Errorf("something unexpected"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)

			WriteError(rec, req, tt.err, testLogger())

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeResponse(t, rec).Error.Code)
		})
	}
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx := logger.WithCorrelationID(context.Background(), "corr-123")
	req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)

	WriteError(rec, req, apperrors.ErrNotFound, testLogger())

	assert.Equal(t, "corr-123", decodeResponse(t, rec).Error.RequestID)
}

func TestWriteError_NoCorrelationID_OmitsRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	WriteError(rec, req, apperrors.ErrNotFound, testLogger())

	var raw map[string]map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	_, hasRequestID := raw["error"]["request_id"]
	assert.False(t, hasRequestID)
}

// --- WriteValidationError ---

type inquiryForm struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

func TestWriteValidationError_FieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bulk-orders", nil)

	WriteValidationError(rec, req, validator.Validate(inquiryForm{Name: "Asha"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "is required", resp.Error.Fields["phone"])
}

func TestWriteValidationError_NonValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)

	WriteValidationError(rec, req, fmt.Errorf("decode request body: unexpected EOF"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decodeResponse(t, rec).Error.Code)
}

// --- Query helpers ---

func TestQueryFloat(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?min_price=99.5&max_price=abc", nil)

	v, err := QueryFloat(req, "min_price", 0)
	require.NoError(t, err)
	assert.Equal(t, 99.5, v)

	v, err = QueryFloat(req, "missing", 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, v)

	_, err = QueryFloat(req, "max_price", 1000)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
}

func TestQueryBool(t *testing.T) {
	assert.True(t, QueryBool(httptest.NewRequest(http.MethodDelete, "/x?confirm=true", nil), "confirm"))
	assert.True(t, QueryBool(httptest.NewRequest(http.MethodDelete, "/x?confirm=1", nil), "confirm"))
	assert.False(t, QueryBool(httptest.NewRequest(http.MethodDelete, "/x?confirm=yes", nil), "confirm"))
	assert.False(t, QueryBool(httptest.NewRequest(http.MethodDelete, "/x", nil), "confirm"))
}
