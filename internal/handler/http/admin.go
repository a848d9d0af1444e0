package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prakhar2b/sm-dryfruto/internal/admin"
	"github.com/prakhar2b/sm-dryfruto/internal/domain"
	apperrors "github.com/prakhar2b/sm-dryfruto/pkg/errors"
	"github.com/prakhar2b/sm-dryfruto/pkg/httputil"
	"github.com/prakhar2b/sm-dryfruto/pkg/pagination"
	"github.com/prakhar2b/sm-dryfruto/pkg/validator"
)

// multipartOverhead is allowed on top of the image itself for form framing.
const multipartOverhead = 2 << 20

// maxSettingsBody bounds a settings document.
const maxSettingsBody = 1 << 20

// resourceHandler serves list, save and delete for one admin resource.
type resourceHandler[T domain.Entity] struct {
	manager *admin.Manager[T]
	logger  *slog.Logger
}

// mountResource registers the CRUD routes of m under /{name}.
func mountResource[T domain.Entity](r chi.Router, m *admin.Manager[T], logger *slog.Logger) {
	h := &resourceHandler[T]{manager: m, logger: logger}
	r.Route("/"+m.Name(), func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Save)
		r.Put("/{id}", h.Replace)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /api/v1/admin/{resource}
// Products accept search and category filters; every resource accepts
// page/per_page.
func (h *resourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items := h.manager.List(r.Context(), r.URL.Query())
	if params, ok := pagination.FromRequest(r); ok {
		httputil.WriteData(w, http.StatusOK, pagination.Slice(items, params))
		return
	}
	httputil.WriteData(w, http.StatusOK, items)
}

// Save handles POST /api/v1/admin/{resource}
// A body without id creates the record; with id it replaces it.
func (h *resourceHandler[T]) Save(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	status := http.StatusCreated
	if item.GetID() != "" {
		status = http.StatusOK
	}

	saved, err := h.manager.Save(r.Context(), item)
	if err != nil {
		h.writeSaveError(w, r, err)
		return
	}
	httputil.WriteData(w, status, saved)
}

// Replace handles PUT /api/v1/admin/{resource}/{id}
func (h *resourceHandler[T]) Replace(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	saved, err := h.manager.Replace(r.Context(), chi.URLParam(r, "id"), item)
	if err != nil {
		h.writeSaveError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, saved)
}

// Delete handles DELETE /api/v1/admin/{resource}/{id}?confirm=true
func (h *resourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.manager.Remove(r.Context(), id, httputil.QueryBool(r, "confirm")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

func (h *resourceHandler[T]) writeSaveError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		httputil.WriteValidationError(w, r, err)
		return
	}
	httputil.WriteError(w, r, err, h.logger)
}

// AdminHandler serves the admin endpoints that are not plain CRUD.
type AdminHandler struct {
	service *admin.Service
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(service *admin.Service, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{service: service, logger: logger}
}

// GetSettings handles GET /api/v1/admin/site-settings
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Settings())
}

// UpdateSettings handles PUT /api/v1/admin/site-settings
// The body is forwarded as-is; partial objects are merged by the backend.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSettingsBody))
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	saved, err := h.service.UpdateSettings(r.Context(), json.RawMessage(body))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, saved)
}

// Upload handles POST /api/v1/admin/upload (multipart field "file").
func (h *AdminHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, admin.MaxUploadBytes+multipartOverhead)

	if err := r.ParseMultipartForm(admin.MaxUploadBytes); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("failed to parse multipart form: "+err.Error()), h.logger)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("file is required"), h.logger)
		return
	}
	defer file.Close()

	location, err := h.service.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, map[string]string{"url": location})
}

// Seed handles POST /api/v1/admin/seed-data
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Seed(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]any{"message": "sample data seeded", "counts": counts})
}

// Refresh handles POST /api/v1/admin/refresh
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Refresh(r.Context())
	httputil.WriteData(w, http.StatusOK, map[string]any{
		"counts":   snap.Counts(),
		"degraded": snap.Degraded,
		"loadedAt": snap.LoadedAt,
	})
}

// Dashboard handles GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Dashboard())
}
