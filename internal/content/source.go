package content

import (
	"context"
	"encoding/json"

	"github.com/prakhar2b/sm-dryfruto/internal/domain"
)

// Source reads the six content collections. The backend client implements
// it; tests substitute fakes.
type Source interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Products(ctx context.Context) ([]domain.Product, error)
	HeroSlides(ctx context.Context) ([]domain.HeroSlide, error)
	Testimonials(ctx context.Context) ([]domain.Testimonial, error)
	GiftBoxes(ctx context.Context) ([]domain.GiftBox, error)
	// SiteSettings returns the raw settings object so an empty `{}` can be
	// told apart from a populated record.
	SiteSettings(ctx context.Context) (json.RawMessage, error)
}

// Resource names used in logs, metrics and snapshot degradation lists.
const (
	ResourceCategories   = "categories"
	ResourceProducts     = "products"
	ResourceHeroSlides   = "hero-slides"
	ResourceTestimonials = "testimonials"
	ResourceGiftBoxes    = "gift-boxes"
	ResourceSiteSettings = "site-settings"
)
