// Package export produces the denormalized CSV outputs from the loaded
// relational data.
package export

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// CustomerRow is one customers export record, column order as stored.
type CustomerRow struct {
	ID          int64      `db:"id"`
	FirstName   string     `db:"first_name"`
	LastName    string     `db:"last_name"`
	DateOfBirth *time.Time `db:"date_of_birth"`
	Email       string     `db:"email"`
	PhoneNumber *string    `db:"phone_number"`
	Address     *string    `db:"address"`
	City        *string    `db:"city"`
	Country     *string    `db:"country"`
	Postcode    *string    `db:"postcode"`
	LastChange  *time.Time `db:"last_change"`
	Segment     *string    `db:"segment"`
}

func (r CustomerRow) record() []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.FirstName,
		r.LastName,
		formatDate(r.DateOfBirth),
		r.Email,
		deref(r.PhoneNumber),
		deref(r.Address),
		deref(r.City),
		deref(r.Country),
		deref(r.Postcode),
		formatTimestamp(r.LastChange),
		deref(r.Segment),
	}
}

// ProductRow is one products export record.
type ProductRow struct {
	SKU        int64            `db:"sku"`
	Name       *string          `db:"name"`
	Price      *decimal.Decimal `db:"price"`
	Category   *string          `db:"category"`
	Popularity *float64         `db:"popularity"`
}

func (r ProductRow) record() []string {
	return []string{
		strconv.FormatInt(r.SKU, 10),
		deref(r.Name),
		formatDecimal(r.Price),
		deref(r.Category),
		formatFloat(r.Popularity),
	}
}

// TransactionRow is one row of the transactions export: the parent joined
// with each of its lines, the declared cost repeated on every line.
type TransactionRow struct {
	TransactionID    uuid.UUID        `db:"transaction_id"`
	TransactionTime  *time.Time       `db:"transaction_time"`
	CustomerID       *int64           `db:"customer_id"`
	DeliveryAddress  *string          `db:"delivery_address"`
	DeliveryPostcode *string          `db:"delivery_postcode"`
	DeliveryCity     *string          `db:"delivery_city"`
	DeliveryCountry  *string          `db:"delivery_country"`
	LineSKU          *int64           `db:"transline_sku"`
	LineQuantity     *int64           `db:"transline_quantity"`
	LinePrice        *decimal.Decimal `db:"transline_price"`
	LineTotal        *decimal.Decimal `db:"transline_total"`
	TransactionCost  *decimal.Decimal `db:"transaction_cost"`
}

func (r TransactionRow) record() []string {
	return []string{
		r.TransactionID.String(),
		formatTimestamp(r.TransactionTime),
		formatInt(r.CustomerID),
		deref(r.DeliveryAddress),
		deref(r.DeliveryPostcode),
		deref(r.DeliveryCity),
		deref(r.DeliveryCountry),
		formatInt(r.LineSKU),
		formatInt(r.LineQuantity),
		formatDecimal(r.LinePrice),
		formatDecimal(r.LineTotal),
		formatDecimal(r.TransactionCost),
	}
}

// ErasureRow is one erasure requests export record.
type ErasureRow struct {
	CustomerID *int64  `db:"customer_id"`
	Email      *string `db:"email"`
}

func (r ErasureRow) record() []string {
	return []string{
		formatInt(r.CustomerID),
		deref(r.Email),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timestampLayout)
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatDecimal(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
