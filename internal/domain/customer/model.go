// Package customer provides the Customer entity and its load/erasure operations.
package customer

import (
	"context"
	"strconv"

	"skuflow/internal/core/apperror"
)

// Customer represents one row of the customers feed.
// Date and timestamp fields are carried as the feed's textual form and cast
// by the store on insert.
type Customer struct {
	ID          int64  `db:"id" json:"id"`
	FirstName   string `db:"first_name" json:"first_name"`
	LastName    string `db:"last_name" json:"last_name"`
	DateOfBirth string `db:"date_of_birth" json:"date_of_birth"`
	Email       string `db:"email" json:"email"`
	PhoneNumber string `db:"phone_number" json:"phone_number"`
	Address     string `db:"address" json:"address"`
	City        string `db:"city" json:"city"`
	Country     string `db:"country" json:"country"`
	Postcode    string `db:"postcode" json:"postcode"`
	LastChange  string `db:"last_change" json:"last_change"`
	Segment     string `db:"segment" json:"segment"`
}

// Key returns the string form of the customer identity for error reporting.
func (c *Customer) Key() string {
	return strconv.FormatInt(c.ID, 10)
}

// Validate implements the fail-fast check on required feed fields.
func (c *Customer) Validate(ctx context.Context) error {
	if c.ID == 0 {
		return apperror.NewValidation("customer id is required").
			WithDetail("field", "id")
	}
	if c.FirstName == "" || c.LastName == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "first_name/last_name")
	}
	if c.Email == "" {
		return apperror.NewValidation("customer email is required").
			WithDetail("field", "email")
	}
	return nil
}

// ErasureTarget is the slice of a customer row read back for obfuscation.
// Only the PII columns that get hashed are carried; nullable columns stay
// pointers so a NULL is preserved as NULL through the rewrite.
type ErasureTarget struct {
	ID          int64   `db:"id"`
	FirstName   string  `db:"first_name"`
	LastName    string  `db:"last_name"`
	Email       string  `db:"email"`
	PhoneNumber *string `db:"phone_number"`
	Address     *string `db:"address"`
	Postcode    *string `db:"postcode"`
}
