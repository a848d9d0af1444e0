package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GetJSON issues a GET and decodes a 2xx JSON body into dst. Non-2xx
// responses are translated with ParseResponseError.
func GetJSON(ctx context.Context, d Doer, url, serviceName string, dst any) error {
	return SendJSON(ctx, d, http.MethodGet, url, serviceName, nil, dst)
}

// SendJSON issues a request with an optional JSON body and decodes a 2xx
// response into dst when dst is non-nil.
func SendJSON(ctx context.Context, d Doer, method, url, serviceName string, body, dst any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", serviceName, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return Exchange(ctx, d, req, serviceName, dst)
}

// Exchange sends a prepared request and decodes a 2xx JSON response into dst.
func Exchange(ctx context.Context, d Doer, req *http.Request, serviceName string, dst any) error {
	resp, err := d.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("%s %s %s: %w", serviceName, req.Method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ParseResponseError(resp, serviceName)
	}
	defer func() { _ = resp.Body.Close() }()

	if dst == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", serviceName, err)
	}
	return nil
}
