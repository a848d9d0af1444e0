package admin

import (
	"context"
	"time"

	"github.com/prakhar2b/sm-dryfruto/internal/content"
	"github.com/prakhar2b/sm-dryfruto/internal/event"
	apperrors "github.com/prakhar2b/sm-dryfruto/pkg/errors"
)

// Dashboard summarises the current content.
type Dashboard struct {
	Counts   content.Counts `json:"counts"`
	Loading  bool           `json:"loading"`
	Degraded []string       `json:"degraded,omitempty"`
	LoadedAt time.Time      `json:"loadedAt"`
}

// Dashboard returns counts from the current snapshot.
func (s *Service) Dashboard() Dashboard {
	snap := s.store.Snapshot()
	return Dashboard{
		Counts:   snap.Counts(),
		Loading:  s.store.Loading(),
		Degraded: snap.Degraded,
		LoadedAt: snap.LoadedAt,
	}
}

// Seed asks the backend to populate its sample data and reloads the store.
func (s *Service) Seed(ctx context.Context) (content.Counts, error) {
	if err := s.backend.Seed(ctx); err != nil {
		return content.Counts{}, apperrors.BackendFailure("SEED_FAILED", "error seeding data", err)
	}
	notifyChanged(ctx, s.store, s.events, s.logger, event.ContentChangedData{
		Resource: "all",
		Action:   "seed",
	})
	return s.store.Snapshot().Counts(), nil
}

// Refresh reloads the store on demand.
func (s *Service) Refresh(ctx context.Context) *content.Snapshot {
	return s.store.Refresh(ctx)
}
