package domain

// Product is a catalog item as stored by the content backend. Category holds
// the slug of a Category; it may point at a category that no longer exists.
type Product struct {
	ID               string             `json:"id,omitempty"`
	Slug             string             `json:"slug" validate:"omitempty,slug"`
	Name             string             `json:"name" validate:"required,max=255"`
	ShortDescription string             `json:"shortDescription,omitempty"`
	Description      string             `json:"description,omitempty"`
	SKU              string             `json:"sku,omitempty" validate:"max=64"`
	Type             string             `json:"type,omitempty"`
	Category         string             `json:"category,omitempty"`
	Features         []string           `json:"features"`
	Benefits         []string           `json:"benefits"`
	BasePrice        float64            `json:"basePrice" validate:"gte=0"`
	PriceVariants    map[string]float64 `json:"priceVariants,omitempty"`
	Image            string             `json:"image,omitempty"`
	Images           []string           `json:"images"`
}

// GetID implements Entity.
func (p Product) GetID() string { return p.ID }

// DefaultProductFeatures are preselected when a product is created without any.
var DefaultProductFeatures = []string{"Healthy Heart", "High Nutrition", "Gluten Free", "Cholesterol Free"}

// Normalize replaces missing collections with empty ones so every product
// serialises the same way regardless of what the backend omitted.
func (p *Product) Normalize() {
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Benefits == nil {
		p.Benefits = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
}

// SizeVariant is one purchasable pack size. Multiplier scales the per-100g
// base price.
type SizeVariant struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

// SizeVariants is the fixed pack-size table in display order.
var SizeVariants = []SizeVariant{
	{Key: "100g", Label: "100 gram", Multiplier: 1},
	{Key: "250g", Label: "250 gram", Multiplier: 2.4},
	{Key: "500g", Label: "500 gram", Multiplier: 4.5},
	{Key: "1kg", Label: "1 kg", Multiplier: 8.5},
	{Key: "2kg", Label: "2 kg", Multiplier: 16},
	{Key: "5kg", Label: "5 kg", Multiplier: 38},
}

// DefaultVariantKey is the variant selected when none is requested.
const DefaultVariantKey = "100g"

// VariantByKey looks up a size variant.
func VariantByKey(key string) (SizeVariant, bool) {
	for _, v := range SizeVariants {
		if v.Key == key {
			return v, true
		}
	}
	return SizeVariant{}, false
}

// ProductTypes is the fixed list offered by the storefront type filter.
var ProductTypes = []string{
	"Almonds",
	"Cashews",
	"Roasted Cashews",
	"Walnuts",
	"Raisins",
	"Mix dry fruits",
	"Pistachios",
	"Makhana",
	"Dried Fig",
	"Pumpkin Seeds",
	"Sunflower Seeds",
}
