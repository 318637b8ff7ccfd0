// Package transaction provides the Transaction document and the
// reconciliation of its nested order lines against the declared total.
package transaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"skuflow/internal/core/apperror"
	"skuflow/internal/core/types"
)

// Transaction represents one row of the transactions feed together with its
// nested purchase lines. The timestamp is carried as the feed's textual form
// and cast by the store on insert.
type Transaction struct {
	ID         uuid.UUID `db:"transaction_id" json:"transaction_id"`
	Time       string    `db:"transaction_time" json:"transaction_time"`
	CustomerID *int64    `db:"customer_id" json:"customer_id"`
	Delivery   Address   `db:"-" json:"delivery_address"`
	Purchases  Purchases `db:"-" json:"purchases"`
}

// Address is the delivery address snapshot embedded in a transaction.
type Address struct {
	Address  string `json:"address"`
	Postcode string `json:"postcode"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// Purchases is the nested order payload: the line items and the declared
// total they must reconcile against.
type Purchases struct {
	Products  []PurchaseItem  `json:"products"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// PurchaseItem is one nested order line as it arrives on the wire.
// The feed spells the quantity key "quanitity"; the tag matches the feed.
type PurchaseItem struct {
	SKU      int64           `json:"sku"`
	Quantity int64           `json:"quanitity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// Line is a standalone transaction line as persisted, identified by the
// composite key (transaction id, 1-based line number).
type Line struct {
	TransactionID uuid.UUID       `db:"transaction_id"`
	LineNo        int             `db:"transline_no"`
	SKU           int64           `db:"transline_sku"`
	Quantity      int64           `db:"transline_quantity"`
	Price         decimal.Decimal `db:"transline_price"`
	Total         decimal.Decimal `db:"transline_total"`
}

// Key returns the string form of the transaction identity for error reporting.
func (t *Transaction) Key() string {
	return t.ID.String()
}

// Validate implements the fail-fast check on required feed fields.
func (t *Transaction) Validate(ctx context.Context) error {
	if t.ID == uuid.Nil {
		return apperror.NewValidation("transaction id is required").
			WithDetail("field", "transaction_id")
	}
	return nil
}

// Lines expands the nested purchase items into standalone line entities,
// numbering them 1-based in input order.
func (t *Transaction) Lines() []Line {
	lines := make([]Line, 0, len(t.Purchases.Products))
	for i, item := range t.Purchases.Products {
		lines = append(lines, Line{
			TransactionID: t.ID,
			LineNo:        i + 1,
			SKU:           item.SKU,
			Quantity:      item.Quantity,
			Price:         item.Price,
			Total:         item.Total,
		})
	}
	return lines
}

// LineSum returns the sum of all line totals, unrounded.
// An empty line list sums to zero.
func (t *Transaction) LineSum() types.Money {
	sum := types.Zero()
	for _, item := range t.Purchases.Products {
		sum = sum.Add(item.Total)
	}
	return sum
}

// Reconcile verifies that the line totals sum to the declared total cost.
// Rounding to the currency scale is applied once to the aggregate line sum;
// the declared total is compared as-is, with no tolerance beyond that one
// rounding step.
func (t *Transaction) Reconcile() error {
	sum := t.LineSum()
	rounded := types.RoundCurrency(sum)

	if !types.SameAmount(rounded, t.Purchases.TotalCost) {
		return apperror.NewTotalMismatch(t.ID.String(), sum.String(), t.Purchases.TotalCost.String())
	}
	return nil
}
