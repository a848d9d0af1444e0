package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prakhar2b/sm-dryfruto/internal/careers"
	"github.com/prakhar2b/sm-dryfruto/internal/catalog"
	"github.com/prakhar2b/sm-dryfruto/internal/content"
	"github.com/prakhar2b/sm-dryfruto/internal/domain"
	"github.com/prakhar2b/sm-dryfruto/internal/links"
	apperrors "github.com/prakhar2b/sm-dryfruto/pkg/errors"
	"github.com/prakhar2b/sm-dryfruto/pkg/httputil"
	"github.com/prakhar2b/sm-dryfruto/pkg/pagination"
)

const relatedProductsLimit = 4

// ContentStore is the read side of the content store.
type ContentStore interface {
	Snapshot() *content.Snapshot
	Loading() bool
}

// StorefrontHandler serves the public, read-only storefront API.
type StorefrontHandler struct {
	store      ContentStore
	priceRange catalog.PriceRange
	logger     *slog.Logger
}

// NewStorefrontHandler creates a new storefront HTTP handler.
func NewStorefrontHandler(store ContentStore, priceRange catalog.PriceRange, logger *slog.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		store:      store,
		priceRange: priceRange,
		logger:     logger,
	}
}

type storefrontResponse struct {
	*content.Snapshot
	Loading bool `json:"loading"`
}

// Storefront handles GET /api/v1/storefront
// Returns every collection in one consistent snapshot.
func (h *StorefrontHandler) Storefront(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, storefrontResponse{
		Snapshot: h.store.Snapshot(),
		Loading:  h.store.Loading(),
	})
}

// Categories handles GET /api/v1/categories
func (h *StorefrontHandler) Categories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.store.Snapshot().Categories)
}

// HeroSlides handles GET /api/v1/hero-slides
func (h *StorefrontHandler) HeroSlides(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.store.Snapshot().HeroSlides)
}

// Testimonials handles GET /api/v1/testimonials
func (h *StorefrontHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.store.Snapshot().Testimonials)
}

// GiftBoxes handles GET /api/v1/gift-boxes
func (h *StorefrontHandler) GiftBoxes(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.store.Snapshot().GiftBoxes)
}

// SiteSettings handles GET /api/v1/site-settings
func (h *StorefrontHandler) SiteSettings(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.store.Snapshot().SiteSettings)
}

// ProductTypes handles GET /api/v1/product-types
func (h *StorefrontHandler) ProductTypes(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, domain.ProductTypes)
}

// ListProducts handles GET /api/v1/products
// Query params: category, search, type, min_price, max_price, sort, and
// optionally page/per_page.
func (h *StorefrontHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.parseCriteria(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products := catalog.Visible(h.store.Snapshot().Products, criteria)

	if params, ok := pagination.FromRequest(r); ok {
		httputil.WriteData(w, http.StatusOK, pagination.Slice(products, params))
		return
	}
	httputil.WriteData(w, http.StatusOK, products)
}

func (h *StorefrontHandler) parseCriteria(r *http.Request) (catalog.Criteria, error) {
	q := r.URL.Query()

	sortKey, err := catalog.ParseSortKey(q.Get("sort"))
	if err != nil {
		return catalog.Criteria{}, apperrors.InvalidInput(err.Error())
	}
	minPrice, err := httputil.QueryFloat(r, "min_price", h.priceRange.Min)
	if err != nil {
		return catalog.Criteria{}, err
	}
	maxPrice, err := httputil.QueryFloat(r, "max_price", h.priceRange.Max)
	if err != nil {
		return catalog.Criteria{}, err
	}
	if minPrice > maxPrice {
		return catalog.Criteria{}, apperrors.InvalidInput("min_price must not exceed max_price")
	}

	return catalog.Criteria{
		Category:   q.Get("category"),
		Search:     q.Get("search"),
		Type:       q.Get("type"),
		PriceRange: catalog.PriceRange{Min: minPrice, Max: maxPrice},
		Sort:       sortKey,
	}, nil
}

// productDetail is the product page payload.
type productDetail struct {
	Product         domain.Product         `json:"product"`
	Category        *domain.Category       `json:"category"`
	SelectedVariant domain.SizeVariant     `json:"selectedVariant"`
	Price           float64                `json:"price"`
	PriceDisplay    string                 `json:"priceDisplay"`
	PriceTable      []catalog.VariantPrice `json:"priceTable"`
	Contact         links.Contact          `json:"contact"`
	Related         []domain.Product       `json:"related"`
}

// GetProduct handles GET /api/v1/products/{slug}
// The optional variant query param selects the pack size used for the price
// and the prefilled chat message.
func (h *StorefrontHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	slug := chi.URLParam(r, "slug")

	product, ok := catalog.FindBySlug(snap.Products, slug)
	if !ok {
		httputil.WriteError(w, r, apperrors.NotFound("product", slug), h.logger)
		return
	}

	key := r.URL.Query().Get("variant")
	if key == "" {
		key = domain.DefaultVariantKey
	}
	price, err := catalog.ResolveVariantPrice(product, key)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownVariant) {
			err = apperrors.InvalidInput(err.Error())
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	variant, _ := domain.VariantByKey(key)

	httputil.WriteData(w, http.StatusOK, productDetail{
		Product:         product,
		Category:        findCategory(snap.Categories, product.Category),
		SelectedVariant: variant,
		Price:           price,
		PriceDisplay:    catalog.FormatPrice(price),
		PriceTable:      catalog.PriceTable(product),
		Contact:         links.ContactFor(snap.SiteSettings, links.ProductMessage(product, variant, price)),
		Related:         related(snap.Products, product),
	})
}

// Careers handles GET /api/v1/careers
func (h *StorefrontHandler) Careers(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, careers.Build(h.store.Snapshot().SiteSettings))
}

// findCategory returns nil for a dangling reference.
func findCategory(categories []domain.Category, slug string) *domain.Category {
	for i := range categories {
		if categories[i].Slug == slug {
			c := categories[i]
			return &c
		}
	}
	return nil
}

func related(products []domain.Product, p domain.Product) []domain.Product {
	out := make([]domain.Product, 0, relatedProductsLimit)
	if p.Category == "" {
		return out
	}
	for _, other := range products {
		if len(out) == relatedProductsLimit {
			break
		}
		if other.Category == p.Category && other.Slug != p.Slug {
			out = append(out, other)
		}
	}
	return out
}
