package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"

	"skuflow/internal/domain/transaction"
)

// Compile-time check.
var _ transaction.Repository = (*TransactionRepo)(nil)

// TransactionRepo is the PostgreSQL transaction repository.
type TransactionRepo struct {
	txm *TxManager
}

func NewTransactionRepo(txm *TxManager) *TransactionRepo {
	return &TransactionRepo{txm: txm}
}

func (r *TransactionRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Insert stores the parent transaction row with its flattened delivery
// address and declared total.
func (r *TransactionRepo) Insert(ctx context.Context, t *transaction.Transaction) error {
	q := r.builder().
		Insert("transactions").
		Columns("transaction_id", "transaction_time", "customer_id",
			"delivery_address", "delivery_postcode", "delivery_city",
			"delivery_country", "transaction_cost").
		Values(t.ID, timestampParam(t.Time), t.CustomerID,
			nullable(t.Delivery.Address), nullable(t.Delivery.Postcode),
			nullable(t.Delivery.City), nullable(t.Delivery.Country),
			t.Purchases.TotalCost)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return mapPgError("transactions", t.Key(), err)
	}
	return nil
}

// InsertLine stores one transaction line. A sku that is missing from the
// products table fails the foreign key here, which is the intended guard.
func (r *TransactionRepo) InsertLine(ctx context.Context, l *transaction.Line) error {
	q := r.builder().
		Insert("transactionlines").
		Columns("transaction_id", "transline_no", "transline_sku",
			"transline_quantity", "transline_price", "transline_total").
		Values(l.TransactionID, l.LineNo, l.SKU, l.Quantity, l.Price, l.Total)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return mapPgError("transactionlines", l.TransactionID.String()+"/"+strconv.Itoa(l.LineNo), err)
	}
	return nil
}
