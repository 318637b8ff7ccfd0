package customer

import (
	"context"

	"skuflow/internal/domain/errorlog"
	"skuflow/pkg/logger"
)

// Tag under which customer failures appear in the error log.
const errorLogTable = "Customer"

// Service loads customer records into the store.
type Service struct {
	repo     Repository
	recorder *errorlog.Recorder
}

// NewService creates a new customer service.
func NewService(repo Repository, recorder *errorlog.Recorder) *Service {
	return &Service{repo: repo, recorder: recorder}
}

// Load validates and inserts one customer record.
// Any failure is routed to the error log; the returned error lets the caller
// count the record as failed and move on.
func (s *Service) Load(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		s.recorder.Record(ctx, errorLogTable, c.Key(), c, err)
		return err
	}

	if err := s.repo.Insert(ctx, c); err != nil {
		s.recorder.Record(ctx, errorLogTable, c.Key(), c, err)
		logger.Debug(ctx, "customer insert failed", "id", c.ID, "error", err)
		return err
	}

	return nil
}
