// Package main is the entry point for the skuflow batch pipeline: it loads
// the compressed NDJSON feeds into PostgreSQL and writes the denormalized
// CSV datasets.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skuflow/internal/config"
	"skuflow/internal/domain/customer"
	"skuflow/internal/domain/erasure"
	"skuflow/internal/domain/errorlog"
	"skuflow/internal/domain/product"
	"skuflow/internal/domain/transaction"
	"skuflow/internal/export"
	"skuflow/internal/infrastructure/storage/postgres"
	"skuflow/internal/ingest"
	"skuflow/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logger.WithLogger(ctx, log.WithComponent("pipeline"))

	start := time.Now()
	log.Infow("starting pipeline run", "source_dir", cfg.SourceDir, "output_dir", cfg.OutputDir)

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Postgres.DSN()))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalw("failed to ensure database schema", "error", err)
	}

	txManager := postgres.NewTxManager(pool)

	recorder := errorlog.NewRecorder(postgres.NewErrorLogRepo(txManager))
	customerRepo := postgres.NewCustomerRepo(txManager)

	pipeline := ingest.NewPipeline(
		customer.NewService(customerRepo, recorder),
		product.NewService(postgres.NewProductRepo(txManager), recorder),
		transaction.NewService(postgres.NewTransactionRepo(txManager), recorder, txManager),
		erasure.NewService(postgres.NewErasureRepo(txManager), customerRepo, recorder, txManager),
		recorder,
	)

	stats, err := pipeline.Run(ctx, cfg.SourceDir)
	if err != nil {
		log.Fatalw("failed to walk source directory", "error", err, "source_dir", cfg.SourceDir)
	}

	exporter := export.NewService(postgres.NewExportRepo(txManager))
	if err := exporter.Run(ctx, cfg.OutputDir); err != nil {
		log.Fatalw("failed to export datasets", "error", err, "output_dir", cfg.OutputDir)
	}

	postgres.LogPoolStats(ctx, pool.Unwrap())
	log.Infow("pipeline run finished",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"records_loaded", stats.RecordsLoaded,
		"records_failed", stats.RecordsFailed,
		"elapsed", time.Since(start).String(),
	)
}
