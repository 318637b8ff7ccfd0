package transaction

import (
	"context"
	"strconv"

	"skuflow/internal/core/apperror"
	"skuflow/internal/core/tx"
	"skuflow/internal/domain/errorlog"
	"skuflow/pkg/logger"
)

const (
	errorLogTable     = "Transaction"
	errorLogLineTable = "TransactionLine"
)

// Service reconciles and loads transactions.
type Service struct {
	repo     Repository
	recorder *errorlog.Recorder
	txm      tx.Manager
}

func NewService(repo Repository, recorder *errorlog.Recorder, txm tx.Manager) *Service {
	return &Service{repo: repo, recorder: recorder, txm: txm}
}

// Process validates and reconciles a transaction, then persists it.
//
// A reconciliation mismatch excludes the transaction entirely: nothing is
// persisted, the mismatch goes to the error log under "Transaction", and an
// operator notice is emitted. Otherwise the parent row is inserted inside a
// transaction; if that fails the lines are skipped. Each line is then
// inserted independently so a failing line only loses itself.
func (s *Service) Process(ctx context.Context, t *Transaction) error {
	if err := t.Validate(ctx); err != nil {
		s.recorder.Record(ctx, errorLogTable, t.Key(), t, err)
		return err
	}

	if err := t.Reconcile(); err != nil {
		s.recorder.Record(ctx, errorLogTable, t.Key(), t, err)
		logger.Warn(ctx, "transaction excluded",
			"transaction_id", t.Key(),
			"line_sum", t.LineSum().String(),
			"total_cost", t.Purchases.TotalCost.String(),
		)
		return err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Insert(ctx, t)
	})
	if err != nil {
		s.recorder.Record(ctx, errorLogTable, t.Key(), t, err)
		return err
	}

	var firstErr error
	for _, line := range t.Lines() {
		line := line
		if lineErr := s.repo.InsertLine(ctx, &line); lineErr != nil {
			s.recorder.Record(ctx, errorLogLineTable, lineKey(&line), line, lineErr)
			if firstErr == nil {
				firstErr = lineErr
			}
		}
	}
	if firstErr != nil {
		return apperror.NewDatabase(firstErr).WithDetail("transaction_id", t.Key())
	}
	return nil
}

func lineKey(l *Line) string {
	return l.TransactionID.String() + "/" + strconv.Itoa(l.LineNo)
}
