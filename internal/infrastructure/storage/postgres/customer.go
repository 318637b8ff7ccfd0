package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"skuflow/internal/core/apperror"
	"skuflow/internal/domain/customer"
)

// erasedDateOfBirth is the sentinel written in place of a real birth date.
const erasedDateOfBirth = "0001-01-01"

// Compile-time check.
var _ customer.Repository = (*CustomerRepo)(nil)

// CustomerRepo is the PostgreSQL customer repository.
type CustomerRepo struct {
	txm *TxManager
}

func NewCustomerRepo(txm *TxManager) *CustomerRepo {
	return &CustomerRepo{txm: txm}
}

func (r *CustomerRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Insert stores a customer row. Date and timestamp fields arrive as feed
// text and are cast server-side so the database validates the format.
func (r *CustomerRepo) Insert(ctx context.Context, c *customer.Customer) error {
	q := r.builder().
		Insert("customers").
		Columns("id", "first_name", "last_name", "date_of_birth", "email",
			"phone_number", "address", "city", "country", "postcode",
			"last_change", "segment").
		Values(c.ID, c.FirstName, c.LastName, dateParam(c.DateOfBirth), c.Email,
			nullable(c.PhoneNumber), nullable(c.Address), nullable(c.City),
			nullable(c.Country), nullable(c.Postcode),
			timestampParam(c.LastChange), nullable(c.Segment))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return mapPgError("customers", c.Key(), err)
	}
	return nil
}

// FindForErasure locates a customer by id or email for obfuscation.
func (r *CustomerRepo) FindForErasure(ctx context.Context, customerID *int64, email *string) (*customer.ErasureTarget, error) {
	cond := squirrel.Or{}
	if customerID != nil {
		cond = append(cond, squirrel.Eq{"id": *customerID})
	}
	if email != nil {
		cond = append(cond, squirrel.Eq{"email": *email})
	}
	if len(cond) == 0 {
		return nil, apperror.NewNotFound("customers", "")
	}

	q := r.builder().
		Select("id", "first_name", "last_name", "email", "phone_number", "address", "postcode").
		From("customers").
		Where(cond).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var target customer.ErasureTarget
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &target, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("customers", erasureKey(customerID, email))
		}
		return nil, fmt.Errorf("find for erasure: %w", err)
	}
	return &target, nil
}

// ApplyErasure writes the obfuscated fields back in a single UPDATE. The
// date of birth is replaced by the sentinel value rather than hashed.
func (r *CustomerRepo) ApplyErasure(ctx context.Context, t *customer.ErasureTarget) error {
	q := r.builder().
		Update("customers").
		Set("first_name", t.FirstName).
		Set("last_name", t.LastName).
		Set("date_of_birth", squirrel.Expr("?::date", erasedDateOfBirth)).
		Set("email", t.Email).
		Set("phone_number", t.PhoneNumber).
		Set("address", t.Address).
		Set("postcode", t.Postcode).
		Where(squirrel.Eq{"id": t.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return mapPgError("customers", strconv.FormatInt(t.ID, 10), err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customers", strconv.FormatInt(t.ID, 10))
	}
	return nil
}

func erasureKey(customerID *int64, email *string) string {
	switch {
	case customerID != nil:
		return strconv.FormatInt(*customerID, 10)
	case email != nil:
		return *email
	default:
		return ""
	}
}

// nullable maps an absent feed string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// dateParam passes feed text through a server-side cast so PostgreSQL
// validates the date format.
func dateParam(s string) any {
	if s == "" {
		return nil
	}
	return squirrel.Expr("?::date", s)
}

func timestampParam(s string) any {
	if s == "" {
		return nil
	}
	return squirrel.Expr("?::timestamp", s)
}
