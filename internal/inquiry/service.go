// Package inquiry handles bulk-order submissions from the storefront.
package inquiry

import (
	"context"
	"log/slog"

	"github.com/prakhar2b/sm-dryfruto/internal/content"
	"github.com/prakhar2b/sm-dryfruto/internal/domain"
	"github.com/prakhar2b/sm-dryfruto/internal/event"
	"github.com/prakhar2b/sm-dryfruto/internal/links"
	apperrors "github.com/prakhar2b/sm-dryfruto/pkg/errors"
	"github.com/prakhar2b/sm-dryfruto/pkg/logger"
	"github.com/prakhar2b/sm-dryfruto/pkg/validator"
)

// Backend persists inquiries.
type Backend interface {
	CreateBulkOrder(ctx context.Context, in domain.BulkOrderInquiry) error
}

// SettingsSource supplies the settings used to build contact links.
type SettingsSource interface {
	Snapshot() *content.Snapshot
}

// Result is returned for an accepted inquiry.
type Result struct {
	Message  string `json:"message"`
	WhatsApp string `json:"whatsappLink"`
}

// Service submits bulk-order inquiries.
type Service struct {
	backend  Backend
	guard    Guard
	settings SettingsSource
	events   event.Publisher
	logger   *slog.Logger
}

// NewService creates a new inquiry service.
func NewService(backend Backend, guard Guard, settings SettingsSource, events event.Publisher, logger *slog.Logger) *Service {
	return &Service{
		backend:  backend,
		guard:    guard,
		settings: settings,
		events:   events,
		logger:   logger,
	}
}

// Submit validates in and forwards it to the backend. A payload identical to
// one still in flight is rejected with a duplicate error.
func (s *Service) Submit(ctx context.Context, in domain.BulkOrderInquiry) (*Result, error) {
	log := logger.WithContext(ctx, s.logger)

	if err := validator.Validate(in); err != nil {
		submissions.WithLabelValues("invalid").Inc()
		return nil, err
	}

	key := Fingerprint(in)
	token, acquired, err := s.guard.Acquire(ctx, key)
	switch {
	case err != nil:
		// Guard errors fail open.
		log.WarnContext(ctx, "submission guard unavailable", slog.String("error", err.Error()))
	case !acquired:
		submissions.WithLabelValues("duplicate").Inc()
		return nil, apperrors.DuplicateSubmission("this inquiry is already being submitted")
	default:
		defer func() {
			if err := s.guard.Release(context.WithoutCancel(ctx), key, token); err != nil {
				log.WarnContext(ctx, "submission guard not released", slog.String("error", err.Error()))
			}
		}()
	}

	if err := s.backend.CreateBulkOrder(ctx, in); err != nil {
		submissions.WithLabelValues("failed").Inc()
		return nil, apperrors.BackendFailure("SUBMIT_FAILED", "error submitting inquiry", err)
	}
	submissions.WithLabelValues("ok").Inc()

	if err := s.events.BulkOrderSubmitted(ctx, event.BulkOrderSubmittedData{
		Name:        in.Name,
		Company:     in.Company,
		Phone:       in.Phone,
		ProductType: in.ProductType,
		Quantity:    in.Quantity,
	}); err != nil {
		log.WarnContext(ctx, "bulk order event not published", slog.String("error", err.Error()))
	}

	log.InfoContext(ctx, "bulk order submitted",
		slog.String("product_type", in.ProductType),
		slog.String("quantity", in.Quantity),
	)

	return &Result{
		Message:  "Thank you for your inquiry! We will contact you soon.",
		WhatsApp: links.WhatsApp(s.settings.Snapshot().SiteSettings, links.BulkOrderMessage(in)),
	}, nil
}
