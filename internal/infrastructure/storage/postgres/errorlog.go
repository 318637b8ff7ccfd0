package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"skuflow/internal/domain/errorlog"
)

// Compile-time check.
var _ errorlog.Repository = (*ErrorLogRepo)(nil)

// ErrorLogRepo is the PostgreSQL error log repository.
type ErrorLogRepo struct {
	txm *TxManager
}

func NewErrorLogRepo(txm *TxManager) *ErrorLogRepo {
	return &ErrorLogRepo{txm: txm}
}

// Append stores one error log entry. Errors bubble up to the recorder,
// which decides whether to swallow them.
func (r *ErrorLogRepo) Append(ctx context.Context, e errorlog.Entry) error {
	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("errorlog").
		Columns("table_name", "record_id", "payload", "error").
		Values(e.TableName, e.RecordID, e.Payload, e.Error)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("append errorlog: %w", err)
	}
	return nil
}
