package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prakhar2b/sm-dryfruto/internal/domain"
	"github.com/prakhar2b/sm-dryfruto/internal/inquiry"
	"github.com/prakhar2b/sm-dryfruto/pkg/httputil"
	"github.com/prakhar2b/sm-dryfruto/pkg/validator"
)

// InquiryService submits bulk-order inquiries.
type InquiryService interface {
	Submit(ctx context.Context, in domain.BulkOrderInquiry) (*inquiry.Result, error)
}

// BulkOrderHandler handles the bulk-order form.
type BulkOrderHandler struct {
	service InquiryService
	logger  *slog.Logger
}

// NewBulkOrderHandler creates a new bulk-order HTTP handler.
func NewBulkOrderHandler(service InquiryService, logger *slog.Logger) *BulkOrderHandler {
	return &BulkOrderHandler{service: service, logger: logger}
}

// Submit handles POST /api/v1/bulk-orders
func (h *BulkOrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.BulkOrderInquiry
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	res, err := h.service.Submit(r.Context(), req)
	if err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			httputil.WriteValidationError(w, r, err)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, res)
}
