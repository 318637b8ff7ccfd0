package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"skuflow/internal/domain/erasure"
)

// Compile-time check.
var _ erasure.Repository = (*ErasureRepo)(nil)

// ErasureRepo is the PostgreSQL erasure request repository.
type ErasureRepo struct {
	txm *TxManager
}

func NewErasureRepo(txm *TxManager) *ErasureRepo {
	return &ErasureRepo{txm: txm}
}

// InsertRequest records the erasure request itself. The table carries a
// check constraint requiring at least one identifier.
func (r *ErasureRepo) InsertRequest(ctx context.Context, req *erasure.Request) error {
	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("erasures").
		Columns("customer_id", "email").
		Values(req.CustomerID, req.Email)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return mapPgError("erasures", req.Key(), err)
	}
	return nil
}
