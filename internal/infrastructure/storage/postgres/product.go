package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"skuflow/internal/domain/product"
)

// Compile-time check.
var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo is the PostgreSQL product repository.
type ProductRepo struct {
	txm *TxManager
}

func NewProductRepo(txm *TxManager) *ProductRepo {
	return &ProductRepo{txm: txm}
}

// Upsert inserts a product or, when the sku already exists, replaces its
// attributes with the later feed row.
func (r *ProductRepo) Upsert(ctx context.Context, p *product.Product) error {
	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("products").
		Columns("sku", "name", "price", "category", "popularity").
		Values(p.SKU, p.Name, p.Price, p.Category, p.Popularity).
		Suffix(`ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			popularity = EXCLUDED.popularity`)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return mapPgError("products", p.Key(), err)
	}
	return nil
}
