package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"skuflow/internal/core/apperror"
)

// SQLSTATE classes we care about when loading feed rows.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// mapPgError converts a driver error into the matching application error so
// services can tell a duplicate from a broken reference without importing
// pgconn.
func mapPgError(table, recordID string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.NewDuplicate(table, recordID).WithCause(err)
		case pgForeignKeyViolation:
			return apperror.NewForeignKey(table, recordID).WithCause(err)
		case pgCheckViolation:
			return apperror.NewCheckViolation(table, recordID).WithCause(err)
		}
	}
	return apperror.NewDatabase(err).WithDetail("table", table).WithDetail("record_id", recordID)
}
