package erasure

import (
	"context"

	"skuflow/internal/core/apperror"
	"skuflow/internal/core/tx"
	"skuflow/internal/domain/customer"
	"skuflow/internal/domain/errorlog"
	"skuflow/pkg/logger"
)

const errorLogTable = "Erasures"

// Service records erasure requests and applies the obfuscation to any
// matching customer.
type Service struct {
	erasures  Repository
	customers customer.Repository
	recorder  *errorlog.Recorder
	txm       tx.Manager
}

func NewService(erasures Repository, customers customer.Repository, recorder *errorlog.Recorder, txm tx.Manager) *Service {
	return &Service{erasures: erasures, customers: customers, recorder: recorder, txm: txm}
}

// Process handles one erasure request in two independent steps.
//
// Step one records the request itself; a failure there goes to the error log
// and does not stop step two. Step two looks up the customer by id or email,
// hashes the personal fields and writes them back in a single transaction.
// A customer that cannot be found is not an error, only a notice.
func (s *Service) Process(ctx context.Context, r *Request) error {
	if err := r.Validate(ctx); err != nil {
		s.recorder.Record(ctx, errorLogTable, r.Key(), r, err)
		return err
	}

	if err := s.erasures.InsertRequest(ctx, r); err != nil {
		s.recorder.Record(ctx, errorLogTable, r.Key(), r, err)
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		target, err := s.customers.FindForErasure(ctx, r.CustomerID, r.Email)
		if err != nil {
			return err
		}
		Obfuscate(target)
		return s.customers.ApplyErasure(ctx, target)
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.Info(ctx, "erasure request matched no customer", "request", r.Key())
			return nil
		}
		s.recorder.Record(ctx, errorLogTable, r.Key(), r, err)
		return err
	}

	logger.Info(ctx, "customer erased", "request", r.Key())
	return nil
}
