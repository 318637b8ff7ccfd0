package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"skuflow/internal/export"
)

// Compile-time check.
var _ export.Repository = (*ExportRepo)(nil)

// ExportRepo reads the loaded data back in export shape.
type ExportRepo struct {
	txm *TxManager
}

func NewExportRepo(txm *TxManager) *ExportRepo {
	return &ExportRepo{txm: txm}
}

const selectAllCustomers = `SELECT id, first_name, last_name, date_of_birth, email,
	phone_number, address, city, country, postcode, last_change, segment
FROM customers`

const selectAllProducts = `SELECT sku, name, price, category, popularity FROM products`

// The transactions export joins each parent to its lines; the declared cost
// sits last so it lands in the final CSV column.
const selectAllTransactions = `SELECT t.transaction_id, t.transaction_time, t.customer_id,
	t.delivery_address, t.delivery_postcode, t.delivery_city, t.delivery_country,
	tl.transline_sku, tl.transline_quantity, tl.transline_price, tl.transline_total,
	t.transaction_cost
FROM transactions t
INNER JOIN transactionlines tl ON tl.transaction_id = t.transaction_id`

const selectAllErasures = `SELECT customer_id, email FROM erasures`

func (r *ExportRepo) AllCustomers(ctx context.Context) ([]export.CustomerRow, error) {
	var rows []export.CustomerRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, selectAllCustomers); err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	return rows, nil
}

func (r *ExportRepo) AllProducts(ctx context.Context) ([]export.ProductRow, error) {
	var rows []export.ProductRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, selectAllProducts); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return rows, nil
}

func (r *ExportRepo) AllTransactions(ctx context.Context) ([]export.TransactionRow, error) {
	var rows []export.TransactionRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, selectAllTransactions); err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	return rows, nil
}

func (r *ExportRepo) AllErasures(ctx context.Context) ([]export.ErasureRow, error) {
	var rows []export.ErasureRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, selectAllErasures); err != nil {
		return nil, fmt.Errorf("select erasures: %w", err)
	}
	return rows, nil
}
