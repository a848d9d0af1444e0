package admin

import (
	"log/slog"
	"net/url"

	"github.com/prakhar2b/sm-dryfruto/internal/catalog"
	"github.com/prakhar2b/sm-dryfruto/internal/content"
	"github.com/prakhar2b/sm-dryfruto/internal/domain"
	"github.com/prakhar2b/sm-dryfruto/internal/event"
	"github.com/prakhar2b/sm-dryfruto/pkg/slug"
)

// HeroSlides manages the home page carousel.
var HeroSlides = Resource[domain.HeroSlide]{
	Name:   content.ResourceHeroSlides,
	Label:  "hero slide",
	Select: func(s *content.Snapshot) []domain.HeroSlide { return s.HeroSlides },
}

// Categories manages product categories. A missing slug is derived from the
// name.
var Categories = Resource[domain.Category]{
	Name:  content.ResourceCategories,
	Label: "category",
	Prepare: func(c *domain.Category, _ bool) {
		if c.Slug == "" {
			c.Slug = slug.Generate(c.Name)
		}
	},
	Select: func(s *content.Snapshot) []domain.Category { return s.Categories },
}

// Testimonials manages customer reviews.
var Testimonials = Resource[domain.Testimonial]{
	Name:   content.ResourceTestimonials,
	Label:  "testimonial",
	Select: func(s *content.Snapshot) []domain.Testimonial { return s.Testimonials },
}

// GiftBoxes manages gift hampers.
var GiftBoxes = Resource[domain.GiftBox]{
	Name:   content.ResourceGiftBoxes,
	Label:  "gift box",
	Select: func(s *content.Snapshot) []domain.GiftBox { return s.GiftBoxes },
}

// Products manages the catalog. New products get the default feature list
// and a slug derived from the name when none is given.
var Products = Resource[domain.Product]{
	Name:  content.ResourceProducts,
	Label: "product",
	Prepare: func(p *domain.Product, create bool) {
		if p.Slug == "" {
			p.Slug = slug.Generate(p.Name)
		}
		if create && p.Features == nil {
			p.Features = append([]string(nil), domain.DefaultProductFeatures...)
		}
		p.Normalize()
	},
	Filter: func(items []domain.Product, q url.Values) []domain.Product {
		return catalog.AdminFilter(items, q.Get("search"), q.Get("category"))
	},
	Select: func(s *content.Snapshot) []domain.Product { return s.Products },
}

// Service groups every admin operation.
type Service struct {
	HeroSlides   *Manager[domain.HeroSlide]
	Categories   *Manager[domain.Category]
	Testimonials *Manager[domain.Testimonial]
	GiftBoxes    *Manager[domain.GiftBox]
	Products     *Manager[domain.Product]

	backend Backend
	store   Store
	events  event.Publisher
	logger  *slog.Logger
}

// NewService wires a manager for each resource.
func NewService(backend Backend, store Store, events event.Publisher, logger *slog.Logger) *Service {
	return &Service{
		HeroSlides:   NewManager(HeroSlides, backend, store, events, logger),
		Categories:   NewManager(Categories, backend, store, events, logger),
		Testimonials: NewManager(Testimonials, backend, store, events, logger),
		GiftBoxes:    NewManager(GiftBoxes, backend, store, events, logger),
		Products:     NewManager(Products, backend, store, events, logger),
		backend:      backend,
		store:        store,
		events:       events,
		logger:       logger,
	}
}
