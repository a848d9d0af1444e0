// Package backend is the client for the external content REST API. It reads
// the content collections for the store and forwards admin mutations.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/prakhar2b/sm-dryfruto/internal/domain"
	"github.com/prakhar2b/sm-dryfruto/pkg/httpclient"
)

const serviceName = "content-backend"

// Config locates the backend. BaseURL is the backend origin; the API lives
// under /api.
type Config struct {
	BaseURL        string
	HTTP           httpclient.Config
	CircuitBreaker httpclient.CircuitBreakerConfig
}

// Client talks to the content backend.
type Client struct {
	origin string
	api    string
	http   httpclient.Doer
	logger *slog.Logger
}

// New builds a client with retries and a circuit breaker in front of the
// backend.
func New(cfg Config, logger *slog.Logger) *Client {
	doer := httpclient.NewCircuitBreakerClient(httpclient.New(cfg.HTTP), cfg.CircuitBreaker, logger)
	return NewWithDoer(cfg.BaseURL, doer, logger)
}

// NewWithDoer builds a client on an existing transport.
func NewWithDoer(baseURL string, doer httpclient.Doer, logger *slog.Logger) *Client {
	origin := strings.TrimRight(baseURL, "/")
	return &Client{
		origin: origin,
		api:    origin + "/api",
		http:   doer,
		logger: logger,
	}
}

// Origin returns the backend origin that relative upload URLs are resolved
// against.
func (c *Client) Origin() string { return c.origin }

func (c *Client) url(parts ...string) string {
	escaped := make([]string, 0, len(parts)+1)
	escaped = append(escaped, c.api)
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return strings.Join(escaped, "/")
}

// List decodes GET /api/{resource} into dst.
func (c *Client) List(ctx context.Context, resource string, dst any) error {
	return httpclient.GetJSON(ctx, c.http, c.url(resource), serviceName, dst)
}

// Create issues POST /api/{resource}. dst may be nil.
func (c *Client) Create(ctx context.Context, resource string, body, dst any) error {
	return httpclient.SendJSON(ctx, c.http, http.MethodPost, c.url(resource), serviceName, body, dst)
}

// Update issues PUT /api/{resource}/{id}, replacing the record. dst may be nil.
func (c *Client) Update(ctx context.Context, resource, id string, body, dst any) error {
	return httpclient.SendJSON(ctx, c.http, http.MethodPut, c.url(resource, id), serviceName, body, dst)
}

// Delete issues DELETE /api/{resource}/{id}.
func (c *Client) Delete(ctx context.Context, resource, id string) error {
	return httpclient.SendJSON(ctx, c.http, http.MethodDelete, c.url(resource, id), serviceName, nil, nil)
}

// --- content.Source ---

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	return out, c.List(ctx, "categories", &out)
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	return out, c.List(ctx, "products", &out)
}

func (c *Client) HeroSlides(ctx context.Context) ([]domain.HeroSlide, error) {
	var out []domain.HeroSlide
	return out, c.List(ctx, "hero-slides", &out)
}

func (c *Client) Testimonials(ctx context.Context) ([]domain.Testimonial, error) {
	var out []domain.Testimonial
	return out, c.List(ctx, "testimonials", &out)
}

func (c *Client) GiftBoxes(ctx context.Context) ([]domain.GiftBox, error) {
	var out []domain.GiftBox
	return out, c.List(ctx, "gift-boxes", &out)
}

// SiteSettings returns the settings object undecoded.
func (c *Client) SiteSettings(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	return raw, httpclient.GetJSON(ctx, c.http, c.url("site-settings"), serviceName, &raw)
}

// UpdateSiteSettings sends a full or partial settings object and returns the
// stored record.
func (c *Client) UpdateSiteSettings(ctx context.Context, patch json.RawMessage) (json.RawMessage, error) {
	var raw json.RawMessage
	err := httpclient.SendJSON(ctx, c.http, http.MethodPut, c.url("site-settings"), serviceName, patch, &raw)
	return raw, err
}

// Seed asks the backend to insert its demo content.
func (c *Client) Seed(ctx context.Context) error {
	return httpclient.SendJSON(ctx, c.http, http.MethodPost, c.url("seed-data"), serviceName, nil, nil)
}

// CreateBulkOrder records a bulk-order inquiry.
func (c *Client) CreateBulkOrder(ctx context.Context, in domain.BulkOrderInquiry) error {
	return c.Create(ctx, "bulk-orders", in, nil)
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload sends an image as multipart field "file" and returns the path the
// backend stored it under, relative to Origin.
func (c *Client) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write multipart part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("upload"), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var resp uploadResponse
	if err := httpclient.Exchange(ctx, c.http, req, serviceName, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", fmt.Errorf("%s upload: response has no url", serviceName)
	}
	return resp.URL, nil
}

// Ping checks that the backend answers on its API root.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.api+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return httpclient.ParseResponseError(resp, serviceName)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}
