package domain

// Entity is implemented by every record the admin can create, update and
// delete. An empty ID means the record has not been created yet.
type Entity interface {
	GetID() string
}

// Category groups products. Products reference it by Slug.
type Category struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name" validate:"required,max=255"`
	Slug  string `json:"slug" validate:"omitempty,slug"`
	Image string `json:"image,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

func (c Category) GetID() string { return c.ID }

// HeroSlide is a home page carousel entry.
type HeroSlide struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title" validate:"required"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	CTA         string `json:"cta,omitempty"`
}

func (h HeroSlide) GetID() string { return h.ID }

// Testimonial is a customer review shown on the home page.
type Testimonial struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name" validate:"required"`
	Review   string `json:"review" validate:"required"`
	Avatar   string `json:"avatar,omitempty"`
	Rating   int    `json:"rating,omitempty" validate:"gte=0,lte=5"`
	Location string `json:"location,omitempty"`
}

func (t Testimonial) GetID() string { return t.ID }

// GiftBox is a pre-packed hamper with a single fixed price.
type GiftBox struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name" validate:"required"`
	Image string  `json:"image,omitempty"`
	Price float64 `json:"price" validate:"gte=0"`
}

func (g GiftBox) GetID() string { return g.ID }
