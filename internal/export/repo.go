package export

import "context"

// Repository reads back the loaded data in export shape.
type Repository interface {
	AllCustomers(ctx context.Context) ([]CustomerRow, error)
	AllProducts(ctx context.Context) ([]ProductRow, error)
	AllTransactions(ctx context.Context) ([]TransactionRow, error)
	AllErasures(ctx context.Context) ([]ErasureRow, error)
}
