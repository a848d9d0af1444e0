package catalog

import (
	"errors"
	"fmt"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"

	"github.com/prakhar2b/sm-dryfruto/internal/domain"
)

// ErrUnknownVariant is returned for a size key outside domain.SizeVariants.
var ErrUnknownVariant = errors.New("unknown size variant")

var rupee = accounting.Accounting{Symbol: "₹", Precision: 2, Thousand: ",", Decimal: "."}

// ResolveVariantPrice returns the price of p at the given pack size. A
// non-zero override in p.PriceVariants is returned verbatim. Otherwise the
// base price is scaled by the variant multiplier and rounded to whole units,
// with exact halves rounded up.
func ResolveVariantPrice(p domain.Product, key string) (float64, error) {
	v, ok := domain.VariantByKey(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, key)
	}
	return variantPrice(p, v).InexactFloat64(), nil
}

func variantPrice(p domain.Product, v domain.SizeVariant) decimal.Decimal {
	if override := p.PriceVariants[v.Key]; override != 0 {
		return decimal.NewFromFloat(override)
	}
	return decimal.NewFromFloat(p.BasePrice).
		Mul(decimal.NewFromFloat(v.Multiplier)).
		Round(0)
}

// VariantPrice is one row of a product's pack-size price list.
type VariantPrice struct {
	domain.SizeVariant
	Price      float64 `json:"price"`
	Display    string  `json:"display"`
	Overridden bool    `json:"overridden"`
}

// PriceTable lists the price of p at every pack size in table order.
func PriceTable(p domain.Product) []VariantPrice {
	table := make([]VariantPrice, 0, len(domain.SizeVariants))
	for _, v := range domain.SizeVariants {
		price := variantPrice(p, v)
		table = append(table, VariantPrice{
			SizeVariant: v,
			Price:       price.InexactFloat64(),
			Display:     rupee.FormatMoneyDecimal(price),
			Overridden:  p.PriceVariants[v.Key] != 0,
		})
	}
	return table
}

// FormatPrice renders an amount the way prices are displayed in the store.
func FormatPrice(amount float64) string {
	return rupee.FormatMoneyDecimal(decimal.NewFromFloat(amount))
}
