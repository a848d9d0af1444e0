// Package catalog derives storefront product views from the flat product
// list held by the content store. Every function here is pure: inputs are
// never modified and no products are synthesised.
package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/prakhar2b/sm-dryfruto/internal/domain"
)

// Visible applies c to products: category, search, type and price filters
// in that order, then the requested sort. The result is a new slice.
func Visible(products []domain.Product, c Criteria) []domain.Product {
	query := strings.ToLower(c.Search)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if c.Category != "" && p.Category != c.Category {
			continue
		}
		if query != "" && !matchesSearch(p, query) {
			continue
		}
		if c.Type != "" && p.Type != c.Type {
			continue
		}
		if !c.PriceRange.Contains(p.BasePrice) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, c.Sort)
	return out
}

func matchesSearch(p domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Type), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

func sortProducts(ps []domain.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return compareFloat(a.BasePrice, b.BasePrice)
		})
	case SortPriceHigh:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return compareFloat(b.BasePrice, a.BasePrice)
		})
	case SortName:
		// Collators keep scratch buffers, so each sort gets its own.
		col := collate.New(language.English)
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// FindBySlug returns the product with the given slug.
func FindBySlug(products []domain.Product, slug string) (domain.Product, bool) {
	for _, p := range products {
		if p.Slug == slug {
			return p, true
		}
	}
	return domain.Product{}, false
}

// AdminFilter narrows the admin product list: search matches name or SKU,
// case-insensitively; category, when set, must match exactly.
func AdminFilter(products []domain.Product, search, category string) []domain.Product {
	query := strings.ToLower(search)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.SKU), query) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CountByCategory returns how many products reference each category slug.
func CountByCategory(products []domain.Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}
	return counts
}
