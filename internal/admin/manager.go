// Package admin implements the content management operations. One generic
// Manager serves every record type; it forwards changes to the content
// backend and refreshes the store once the backend has accepted them.
package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/prakhar2b/sm-dryfruto/internal/content"
	"github.com/prakhar2b/sm-dryfruto/internal/domain"
	"github.com/prakhar2b/sm-dryfruto/internal/event"
	apperrors "github.com/prakhar2b/sm-dryfruto/pkg/errors"
	"github.com/prakhar2b/sm-dryfruto/pkg/logger"
	"github.com/prakhar2b/sm-dryfruto/pkg/validator"
)

// Backend is the part of the content backend client the admin uses.
type Backend interface {
	List(ctx context.Context, resource string, dst any) error
	Create(ctx context.Context, resource string, body, dst any) error
	Update(ctx context.Context, resource, id string, body, dst any) error
	Delete(ctx context.Context, resource, id string) error
	UpdateSiteSettings(ctx context.Context, patch json.RawMessage) (json.RawMessage, error)
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
	Seed(ctx context.Context) error
	Origin() string
}

// Store is the part of the content store the admin uses.
type Store interface {
	Snapshot() *content.Snapshot
	Refresh(ctx context.Context) *content.Snapshot
	Loading() bool
}

// Resource describes one manageable record type.
type Resource[T domain.Entity] struct {
	// Name is both the backend path segment and the admin route segment.
	Name string
	// Label names a single record in user-facing messages.
	Label string
	// Prepare, if set, fills derived fields before validation. create is
	// true when the record does not exist yet.
	Prepare func(item *T, create bool)
	// Filter, if set, narrows List results by query parameters.
	Filter func(items []T, q url.Values) []T
	// Select reads the collection from a snapshot when the backend is
	// unreachable.
	Select func(s *content.Snapshot) []T
}

// Manager performs list, save and remove for one Resource.
type Manager[T domain.Entity] struct {
	res     Resource[T]
	backend Backend
	store   Store
	events  event.Publisher
	logger  *slog.Logger
}

// NewManager creates a manager for res.
func NewManager[T domain.Entity](res Resource[T], backend Backend, store Store, events event.Publisher, logger *slog.Logger) *Manager[T] {
	return &Manager[T]{res: res, backend: backend, store: store, events: events, logger: logger}
}

// Name returns the resource name.
func (m *Manager[T]) Name() string { return m.res.Name }

// List returns the records as the backend currently holds them. If the
// backend can't be read the last snapshot is served instead.
func (m *Manager[T]) List(ctx context.Context, q url.Values) []T {
	var items []T
	if err := m.backend.List(ctx, m.res.Name, &items); err != nil {
		logger.WithContext(ctx, m.logger).WarnContext(ctx, "admin list read failed, serving snapshot",
			slog.String("resource", m.res.Name),
			slog.String("error", err.Error()),
		)
		items = m.res.Select(m.store.Snapshot())
	}
	if items == nil {
		items = []T{}
	}
	if m.res.Filter != nil {
		items = m.res.Filter(items, q)
	}
	return items
}

// Save creates item when it has no ID and replaces it otherwise. On success
// the store is refreshed before Save returns.
func (m *Manager[T]) Save(ctx context.Context, item T) (T, error) {
	return m.save(ctx, item.GetID(), item)
}

// Replace updates the record with the given id. An ID in item, if present,
// must match.
func (m *Manager[T]) Replace(ctx context.Context, id string, item T) (T, error) {
	if id == "" {
		return item, apperrors.InvalidInput("id is required")
	}
	if got := item.GetID(); got != "" && got != id {
		return item, apperrors.InvalidInput("id in body does not match path")
	}
	return m.save(ctx, id, item)
}

func (m *Manager[T]) save(ctx context.Context, id string, item T) (T, error) {
	if m.res.Prepare != nil {
		m.res.Prepare(&item, id == "")
	}
	if err := validator.Validate(item); err != nil {
		return item, err
	}

	var (
		saved  T
		err    error
		action = "create"
	)
	if id != "" {
		action = "update"
		err = m.backend.Update(ctx, m.res.Name, id, item, &saved)
	} else {
		err = m.backend.Create(ctx, m.res.Name, item, &saved)
	}
	if err != nil {
		return item, apperrors.BackendFailure("SAVE_FAILED", "error saving "+m.res.Label, err)
	}
	if saved.GetID() == "" {
		saved = item
	}

	m.changed(ctx, action, saved.GetID())
	return saved, nil
}

// Remove deletes the record with the given id. Deletion is irreversible, so
// the caller must pass confirmed; otherwise nothing is sent.
func (m *Manager[T]) Remove(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return apperrors.ConfirmationRequired("deleting a " + m.res.Label + " cannot be undone; repeat the request with confirm=true")
	}
	if id == "" {
		return apperrors.InvalidInput("id is required")
	}
	if err := m.backend.Delete(ctx, m.res.Name, id); err != nil {
		return apperrors.BackendFailure("DELETE_FAILED", "error deleting item", err)
	}

	m.changed(ctx, "delete", id)
	return nil
}

func (m *Manager[T]) changed(ctx context.Context, action, id string) {
	notifyChanged(ctx, m.store, m.events, m.logger, event.ContentChangedData{
		Resource: m.res.Name,
		Action:   action,
		ID:       id,
	})
}

// notifyChanged refreshes the local store and tells the other replicas. A
// failed publish only costs the other replicas freshness, so it is logged.
func notifyChanged(ctx context.Context, store Store, events event.Publisher, l *slog.Logger, data event.ContentChangedData) {
	store.Refresh(ctx)
	if err := events.ContentChanged(ctx, data); err != nil {
		logger.WithContext(ctx, l).WarnContext(ctx, "content change event not published",
			slog.String("resource", data.Resource),
			slog.String("action", data.Action),
			slog.String("error", err.Error()),
		)
	}
}
