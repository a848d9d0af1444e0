package catalog

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering of a catalog view.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
)

// ParseSortKey accepts the storefront sort values. An empty string means
// SortDefault.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case "":
		return SortDefault, nil
	case SortDefault, SortPriceLow, SortPriceHigh, SortName:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// PriceRange is an inclusive bound on a product's base price.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultPriceRange matches the storefront slider's initial position.
var DefaultPriceRange = PriceRange{Min: 0, Max: 1000}

// Contains reports whether price lies within the range.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// Criteria describes one storefront product view. Empty string fields do not
// filter.
type Criteria struct {
	Category   string
	Search     string
	Type       string
	PriceRange PriceRange
	Sort       SortKey
}

// DefaultCriteria returns criteria that keep every product priced within the
// default range, in backend order.
func DefaultCriteria() Criteria {
	return Criteria{PriceRange: DefaultPriceRange, Sort: SortDefault}
}
