// Package erasure implements right-to-erasure requests: every request is
// recorded for audit, and any matching customer has their personal fields
// replaced with one-way digests.
package erasure

import (
	"context"
	"strconv"

	"skuflow/internal/core/apperror"
)

// Request is one row of the erasure-requests feed. At least one of the two
// identifiers must be present for the request to be actionable.
type Request struct {
	CustomerID *int64  `db:"customer_id" json:"customer-id"`
	Email      *string `db:"email" json:"email"`
}

// Key returns the best available identity of the request for error reporting.
func (r *Request) Key() string {
	switch {
	case r.CustomerID != nil:
		return strconv.FormatInt(*r.CustomerID, 10)
	case r.Email != nil:
		return *r.Email
	default:
		return ""
	}
}

// Validate requires at least one identifier on the request.
func (r *Request) Validate(ctx context.Context) error {
	if r.CustomerID == nil && (r.Email == nil || *r.Email == "") {
		return apperror.NewValidation("erasure request carries no customer id and no email")
	}
	return nil
}
