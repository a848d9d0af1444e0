package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/prakhar2b/sm-dryfruto/internal/content"
	"github.com/prakhar2b/sm-dryfruto/internal/domain"
	"github.com/prakhar2b/sm-dryfruto/internal/event"
	apperrors "github.com/prakhar2b/sm-dryfruto/pkg/errors"
)

// Settings returns the settings currently served to the storefront.
func (s *Service) Settings() domain.SiteSettings {
	return s.store.Snapshot().SiteSettings.Clone()
}

// UpdateSettings forwards a settings document to the backend. The backend
// merges partial objects into the stored record, so patch is passed through
// untouched once it is known to be a JSON object with well-typed fields.
func (s *Service) UpdateSettings(ctx context.Context, patch json.RawMessage) (json.RawMessage, error) {
	if err := checkSettingsPatch(patch); err != nil {
		return nil, err
	}

	saved, err := s.backend.UpdateSiteSettings(ctx, patch)
	if err != nil {
		return nil, apperrors.BackendFailure("SAVE_FAILED", "error saving settings", err)
	}

	notifyChanged(ctx, s.store, s.events, s.logger, event.ContentChangedData{
		Resource: content.ResourceSiteSettings,
		Action:   "update",
	})
	return saved, nil
}

func checkSettingsPatch(patch json.RawMessage) error {
	trimmed := bytes.TrimSpace(patch)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return apperrors.InvalidInput("settings must be a JSON object")
	}
	var typed domain.SiteSettings
	if err := json.Unmarshal(trimmed, &typed); err != nil {
		return apperrors.InvalidInput(fmt.Sprintf("invalid settings: %v", err))
	}
	return nil
}
