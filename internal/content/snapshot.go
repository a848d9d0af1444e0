package content

import (
	"time"

	"github.com/prakhar2b/sm-dryfruto/internal/domain"
)

// Snapshot is one consistent view of all content. A committed snapshot is
// never modified; readers must not modify its slices either.
type Snapshot struct {
	Categories   []domain.Category    `json:"categories"`
	Products     []domain.Product     `json:"products"`
	HeroSlides   []domain.HeroSlide   `json:"heroSlides"`
	Testimonials []domain.Testimonial `json:"testimonials"`
	GiftBoxes    []domain.GiftBox     `json:"giftBoxes"`
	SiteSettings domain.SiteSettings  `json:"siteSettings"`
	// Degraded lists the resources whose last read failed and were
	// replaced by an empty collection.
	Degraded []string  `json:"degraded,omitempty"`
	LoadedAt time.Time `json:"loadedAt"`
}

func emptySnapshot(settings domain.SiteSettings) *Snapshot {
	return &Snapshot{
		Categories:   []domain.Category{},
		Products:     []domain.Product{},
		HeroSlides:   []domain.HeroSlide{},
		Testimonials: []domain.Testimonial{},
		GiftBoxes:    []domain.GiftBox{},
		SiteSettings: settings,
	}
}

// Counts is the dashboard summary of a snapshot.
type Counts struct {
	Products     int `json:"products"`
	Categories   int `json:"categories"`
	Testimonials int `json:"testimonials"`
	GiftBoxes    int `json:"giftBoxes"`
	HeroSlides   int `json:"heroSlides"`
}

// Counts returns collection sizes.
func (s *Snapshot) Counts() Counts {
	return Counts{
		Products:     len(s.Products),
		Categories:   len(s.Categories),
		Testimonials: len(s.Testimonials),
		GiftBoxes:    len(s.GiftBoxes),
		HeroSlides:   len(s.HeroSlides),
	}
}
