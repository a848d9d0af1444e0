package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/prakhar2b/sm-dryfruto/pkg/errors"
)

// DownstreamErrorResponse covers the error bodies the content backend may
// return: the service envelope ({"error":{"code","message"}}) and the
// framework default ({"detail": "..."}).
type DownstreamErrorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

func (d DownstreamErrorResponse) message() (code, msg string, ok bool) {
	if d.Error != nil {
		return d.Error.Code, d.Error.Message, true
	}
	if len(d.Detail) == 0 || string(d.Detail) == "null" {
		return "", "", false
	}
	var s string
	if json.Unmarshal(d.Detail, &s) == nil {
		return "", s, true
	}
	// Validation errors come back as a list of objects; keep them verbatim.
	return "", string(d.Detail), true
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an appropriate error. The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: %s returned status %d (failed to read body: %w)",
			apperrors.ErrBackend, serviceName, resp.StatusCode, err)
	}

	var downstream DownstreamErrorResponse
	if json.Unmarshal(bodyBytes, &downstream) == nil {
		if code, msg, ok := downstream.message(); ok {
			return mapDownstreamError(resp.StatusCode, code, msg, serviceName)
		}
	}

	return mapDownstreamError(resp.StatusCode, "", string(bodyBytes), serviceName)
}

// mapDownstreamError translates a backend status code into an error that
// keeps its semantics. Server-side failures wrap ErrBackend.
func mapDownstreamError(status int, code, message, serviceName string) error {
	qualifiedMsg := fmt.Sprintf("%s: %s", serviceName, message)
	if code == "" {
		code = http.StatusText(status)
	}

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(serviceName, message)
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return apperrors.InvalidInput(qualifiedMsg)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualifiedMsg)
	case status == http.StatusServiceUnavailable:
		return &apperrors.AppError{
			Code:    "SERVICE_UNAVAILABLE",
			Message: qualifiedMsg,
			Status:  http.StatusServiceUnavailable,
			Err:     apperrors.ErrServiceUnavail,
		}
	case status >= 500:
		return fmt.Errorf("%w: %s server error (%d/%s): %s", apperrors.ErrBackend, serviceName, status, code, message)
	default:
		return &apperrors.AppError{
			Code:    code,
			Message: qualifiedMsg,
			Status:  status,
			Err:     apperrors.ErrBackend,
		}
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
