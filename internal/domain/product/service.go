package product

import (
	"context"

	"skuflow/internal/domain/errorlog"
	"skuflow/pkg/logger"
)

const errorLogTable = "Product"

// Service loads product records into the store.
type Service struct {
	repo     Repository
	recorder *errorlog.Recorder
}

// NewService creates a new product service.
func NewService(repo Repository, recorder *errorlog.Recorder) *Service {
	return &Service{repo: repo, recorder: recorder}
}

// Load validates and upserts one product record.
func (s *Service) Load(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		s.recorder.Record(ctx, errorLogTable, p.Key(), p, err)
		return err
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		s.recorder.Record(ctx, errorLogTable, p.Key(), p, err)
		logger.Debug(ctx, "product upsert failed", "sku", p.SKU, "error", err)
		return err
	}

	return nil
}
