package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skuflow/internal/core/types"
)

type fakeRepo struct {
	customers    []CustomerRow
	products     []ProductRow
	transactions []TransactionRow
	erasures     []ErasureRow
}

func (f *fakeRepo) AllCustomers(ctx context.Context) ([]CustomerRow, error) {
	return f.customers, nil
}

func (f *fakeRepo) AllProducts(ctx context.Context) ([]ProductRow, error) {
	return f.products, nil
}

func (f *fakeRepo) AllTransactions(ctx context.Context) ([]TransactionRow, error) {
	return f.transactions, nil
}

func (f *fakeRepo) AllErasures(ctx context.Context) ([]ErasureRow, error) {
	return f.erasures, nil
}

func readCSV(t *testing.T, dir, name string) [][]string {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func ptr[T any](v T) *T { return &v }

// The header rows come from the row structs' db tags and must stay in step
// with the column order of the store's export queries.
func TestHeaders_DeriveFromRowTags(t *testing.T) {
	assert.Equal(t, []string{"id", "first_name", "last_name", "date_of_birth", "email",
		"phone_number", "address", "city", "country", "postcode", "last_change", "segment"},
		customerHeader)
	assert.Equal(t, []string{"sku", "name", "price", "category", "popularity"}, productHeader)
	assert.Equal(t, []string{"transaction_id", "transaction_time", "customer_id",
		"delivery_address", "delivery_postcode", "delivery_city", "delivery_country",
		"transline_sku", "transline_quantity", "transline_price", "transline_total",
		"transaction_cost"}, transactionHeader)
	assert.Equal(t, []string{"customer_id", "email"}, erasureHeader)
}

func TestRun_WritesAllFourDatasets(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "final")
	svc := NewService(&fakeRepo{})

	require.NoError(t, svc.Run(context.Background(), dir))

	for _, name := range []string{CustomersFile, ProductsFile, TransactionsFile, ExclusionsFile} {
		records := readCSV(t, dir, name)
		require.Len(t, records, 1, "%s should carry only a header when empty", name)
	}

	header := readCSV(t, dir, TransactionsFile)[0]
	assert.Equal(t, []string{"transaction_id", "transaction_time", "customer_id",
		"delivery_address", "delivery_postcode", "delivery_city", "delivery_country",
		"transline_sku", "transline_quantity", "transline_price", "transline_total",
		"transaction_cost"}, header)
}

func TestRun_CustomerFormatting(t *testing.T) {
	dob := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	change := time.Date(2022, 1, 30, 10, 40, 12, 0, time.UTC)
	repo := &fakeRepo{
		customers: []CustomerRow{{
			ID:          1,
			FirstName:   "Ada",
			LastName:    "Lovelace",
			DateOfBirth: &dob,
			Email:       "ada@example.com",
			LastChange:  &change,
		}},
	}
	dir := t.TempDir()

	require.NoError(t, NewService(repo).Run(context.Background(), dir))

	records := readCSV(t, dir, CustomersFile)
	require.Len(t, records, 2)
	row := records[1]
	assert.Equal(t, "1", row[0])
	assert.Equal(t, "1990-05-17", row[3], "dates use date-only form")
	assert.Equal(t, "", row[5], "NULL phone number becomes an empty cell")
	assert.Equal(t, "2022-01-30 10:40:12", row[10], "timestamps keep the time part")
}

func TestRun_TransactionCostIsLastColumn(t *testing.T) {
	repo := &fakeRepo{
		transactions: []TransactionRow{{
			TransactionID:   uuid.MustParse("64575b55-2c46-4022-9b23-4d13aefddb32"),
			CustomerID:      ptr(int64(1)),
			LineSKU:         ptr(int64(4162)),
			LineQuantity:    ptr(int64(2)),
			LinePrice:       ptr(types.MustMoney("24.99")),
			LineTotal:       ptr(types.MustMoney("49.98")),
			TransactionCost: ptr(types.MustMoney("49.98")),
		}},
	}
	dir := t.TempDir()

	require.NoError(t, NewService(repo).Run(context.Background(), dir))

	records := readCSV(t, dir, TransactionsFile)
	require.Len(t, records, 2)
	row := records[1]
	assert.Equal(t, "64575b55-2c46-4022-9b23-4d13aefddb32", row[0])
	assert.Equal(t, "49.98", row[len(row)-1])
	assert.Equal(t, "", row[1], "NULL timestamp becomes an empty cell")
}

func TestRun_ErasureRows(t *testing.T) {
	repo := &fakeRepo{
		erasures: []ErasureRow{
			{CustomerID: ptr(int64(1)), Email: ptr("ada@example.com")},
			{Email: ptr("only-email@example.com")},
			{CustomerID: ptr(int64(3))},
		},
	}
	dir := t.TempDir()

	require.NoError(t, NewService(repo).Run(context.Background(), dir))

	records := readCSV(t, dir, ExclusionsFile)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"customer_id", "email"}, records[0])
	assert.Equal(t, []string{"1", "ada@example.com"}, records[1])
	assert.Equal(t, []string{"", "only-email@example.com"}, records[2])
	assert.Equal(t, []string{"3", ""}, records[3])
}

func TestRun_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "final")
	require.NoError(t, NewService(&fakeRepo{}).Run(context.Background(), dir))

	_, err := os.Stat(filepath.Join(dir, CustomersFile))
	assert.NoError(t, err)
}
