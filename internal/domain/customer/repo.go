package customer

import (
	"context"
)

// Repository defines persistence operations for customers.
// The postgres implementation lives in infrastructure/storage/postgres.
type Repository interface {
	// Insert creates a new customer row. Duplicate ids are an error.
	Insert(ctx context.Context, c *Customer) error

	// FindForErasure returns one customer whose id equals customerID OR whose
	// email equals email. Returns apperror.CodeNotFound when no row matches.
	FindForErasure(ctx context.Context, customerID *int64, email *string) (*ErasureTarget, error)

	// ApplyErasure rewrites the PII columns of the target's row in a single
	// statement and resets date_of_birth to the erasure sentinel.
	ApplyErasure(ctx context.Context, target *ErasureTarget) error
}
