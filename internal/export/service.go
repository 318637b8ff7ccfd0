package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"skuflow/pkg/logger"
)

// Output file names in the final dataset directory.
const (
	CustomersFile    = "customers.csv"
	ProductsFile     = "products.csv"
	TransactionsFile = "transactions.csv"
	ExclusionsFile   = "exclusions.csv"
)

// Header rows derive from the row structs' db tags, the same names the
// export queries select.
var (
	customerHeader    = columnsOf[CustomerRow]()
	productHeader     = columnsOf[ProductRow]()
	transactionHeader = columnsOf[TransactionRow]()
	erasureHeader     = columnsOf[ErasureRow]()
)

// Service writes the four denormalized CSV files.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Run queries each dataset and writes it to outputDir, creating the
// directory if needed. The first failure aborts the export.
func (s *Service) Run(ctx context.Context, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	customers, err := s.repo.AllCustomers(ctx)
	if err != nil {
		return fmt.Errorf("fetch customers: %w", err)
	}
	if err := writeCSV(outputDir, CustomersFile, customerHeader, customers); err != nil {
		return err
	}
	logger.Info(ctx, "dataset exported", "file", CustomersFile, "rows", len(customers))

	products, err := s.repo.AllProducts(ctx)
	if err != nil {
		return fmt.Errorf("fetch products: %w", err)
	}
	if err := writeCSV(outputDir, ProductsFile, productHeader, products); err != nil {
		return err
	}
	logger.Info(ctx, "dataset exported", "file", ProductsFile, "rows", len(products))

	transactions, err := s.repo.AllTransactions(ctx)
	if err != nil {
		return fmt.Errorf("fetch transactions: %w", err)
	}
	if err := writeCSV(outputDir, TransactionsFile, transactionHeader, transactions); err != nil {
		return err
	}
	logger.Info(ctx, "dataset exported", "file", TransactionsFile, "rows", len(transactions))

	erasures, err := s.repo.AllErasures(ctx)
	if err != nil {
		return fmt.Errorf("fetch erasures: %w", err)
	}
	if err := writeCSV(outputDir, ExclusionsFile, erasureHeader, erasures); err != nil {
		return err
	}
	logger.Info(ctx, "dataset exported", "file", ExclusionsFile, "rows", len(erasures))

	return nil
}

// row is the common shape of all export records.
type row interface {
	record() []string
}

func writeCSV[T row](dir, name string, header []string, rows []T) error {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for _, r := range rows {
		if err := w.Write(r.record()); err != nil {
			f.Close()
			return fmt.Errorf("write %s row: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}
