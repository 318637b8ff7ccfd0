package ingest

import (
	"context"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"time"

	"skuflow/internal/domain/customer"
	"skuflow/internal/domain/erasure"
	"skuflow/internal/domain/errorlog"
	"skuflow/internal/domain/product"
	"skuflow/internal/domain/transaction"
	"skuflow/pkg/logger"
)

// Feed file names recognized under the source tree. Dispatch is by exact
// name; anything else is skipped with a diagnostic.
const (
	customersFile    = "customers.json.gz"
	productsFile     = "products.json.gz"
	transactionsFile = "transactions.json.gz"
	erasuresFile     = "erasure-requests.json.gz"
)

// Stats summarizes one pipeline run.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	RecordsLoaded  int
	RecordsFailed  int
}

// Pipeline wires the feed files to the domain services.
type Pipeline struct {
	customers    *customer.Service
	products     *product.Service
	transactions *transaction.Service
	erasures     *erasure.Service
	recorder     *errorlog.Recorder
}

func NewPipeline(
	customers *customer.Service,
	products *product.Service,
	transactions *transaction.Service,
	erasures *erasure.Service,
	recorder *errorlog.Recorder,
) *Pipeline {
	return &Pipeline{
		customers:    customers,
		products:     products,
		transactions: transactions,
		erasures:     erasures,
		recorder:     recorder,
	}
}

// Run walks sourceDir and loads every recognized feed file. Per-record
// failures are logged and recorded but never stop the walk; only an
// unreadable source tree fails the run.
func (p *Pipeline) Run(ctx context.Context, sourceDir string) (Stats, error) {
	var stats Stats
	start := time.Now()

	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		p.processFile(ctx, path, d.Name(), &stats)
		return nil
	})
	if err != nil {
		return stats, err
	}

	logger.Info(ctx, "ingest finished",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"records_loaded", stats.RecordsLoaded,
		"records_failed", stats.RecordsFailed,
		"elapsed", time.Since(start).String(),
	)
	return stats, nil
}

func (p *Pipeline) processFile(ctx context.Context, path, name string, stats *Stats) {
	handler, table := p.dispatch(name)
	if handler == nil {
		logger.Warn(ctx, "unexpected file, skipping", "path", path)
		stats.FilesSkipped++
		return
	}

	logger.Info(ctx, "processing file", "path", path)
	start := time.Now()
	loaded, failed := 0, 0

	err := readLines(path, func(line []byte) error {
		if recErr := handler(ctx, line); recErr != nil {
			failed++
		} else {
			loaded++
		}
		return nil
	})
	if err != nil {
		// Not gzipped, truncated, or unreadable: the file is skipped, the
		// run continues. Records committed before the failure stay counted.
		logger.Warn(ctx, "file not readable as gzip NDJSON, skipping",
			"path", path, "table", table, "loaded", loaded, "error", err)
		stats.FilesSkipped++
		stats.RecordsLoaded += loaded
		stats.RecordsFailed += failed
		return
	}

	stats.FilesProcessed++
	stats.RecordsLoaded += loaded
	stats.RecordsFailed += failed
	logger.Info(ctx, "file processed",
		"path", path,
		"loaded", loaded,
		"failed", failed,
		"elapsed", time.Since(start).String(),
	)
}

// handlerFunc loads one raw NDJSON record.
type handlerFunc func(ctx context.Context, line []byte) error

// dispatch maps an exact file name to its record handler and error log table.
func (p *Pipeline) dispatch(name string) (handlerFunc, string) {
	switch name {
	case customersFile:
		return p.loadCustomer, "Customer"
	case productsFile:
		return p.loadProduct, "Product"
	case transactionsFile:
		return p.loadTransaction, "Transaction"
	case erasuresFile:
		return p.loadErasure, "Erasures"
	default:
		return nil, ""
	}
}

func (p *Pipeline) loadCustomer(ctx context.Context, line []byte) error {
	var c customer.Customer
	if err := json.Unmarshal(line, &c); err != nil {
		p.recorder.Record(ctx, "Customer", "", string(line), err)
		return err
	}
	return p.customers.Load(ctx, &c)
}

func (p *Pipeline) loadProduct(ctx context.Context, line []byte) error {
	var prod product.Product
	if err := json.Unmarshal(line, &prod); err != nil {
		p.recorder.Record(ctx, "Product", "", string(line), err)
		return err
	}
	return p.products.Load(ctx, &prod)
}

func (p *Pipeline) loadTransaction(ctx context.Context, line []byte) error {
	var t transaction.Transaction
	if err := json.Unmarshal(line, &t); err != nil {
		p.recorder.Record(ctx, "Transaction", "", string(line), err)
		return err
	}
	return p.transactions.Process(ctx, &t)
}

func (p *Pipeline) loadErasure(ctx context.Context, line []byte) error {
	var r erasure.Request
	if err := json.Unmarshal(line, &r); err != nil {
		p.recorder.Record(ctx, "Erasures", "", string(line), err)
		return err
	}
	return p.erasures.Process(ctx, &r)
}
