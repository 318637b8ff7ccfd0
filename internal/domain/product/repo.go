package product

import (
	"context"
)

// Repository defines persistence operations for products.
type Repository interface {
	// Upsert inserts the product, overwriting all non-key fields when a row
	// with the same SKU already exists.
	Upsert(ctx context.Context, p *Product) error
}
