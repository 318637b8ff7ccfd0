// Package product provides the Product catalog entry and its upsert operation.
package product

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"skuflow/internal/core/apperror"
)

// Product represents one row of the products feed, keyed by SKU.
// Later feed rows for the same SKU overwrite earlier ones.
type Product struct {
	SKU        int64           `db:"sku" json:"sku"`
	Name       string          `db:"name" json:"name"`
	Price      decimal.Decimal `db:"price" json:"price"`
	Category   string          `db:"category" json:"category"`
	Popularity float64         `db:"popularity" json:"popularity"`
}

// Key returns the string form of the SKU for error reporting.
func (p *Product) Key() string {
	return strconv.FormatInt(p.SKU, 10)
}

// Validate mirrors the store's check constraints so bad rows fail fast.
func (p *Product) Validate(ctx context.Context) error {
	if !p.Price.IsPositive() {
		return apperror.NewValidation("price must be positive").
			WithDetail("field", "price").
			WithDetail("value", p.Price.String())
	}
	if p.Popularity <= 0 {
		return apperror.NewValidation("popularity must be positive").
			WithDetail("field", "popularity").
			WithDetail("value", p.Popularity)
	}
	return nil
}
