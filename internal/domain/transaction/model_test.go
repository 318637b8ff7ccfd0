package transaction

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skuflow/internal/core/apperror"
	"skuflow/internal/core/types"
)

func testTransaction(t *testing.T, totals []string, declared string) *Transaction {
	t.Helper()
	tr := &Transaction{
		ID:   uuid.New(),
		Time: "2022-01-30 12:00:00",
	}
	for i, total := range totals {
		tr.Purchases.Products = append(tr.Purchases.Products, PurchaseItem{
			SKU:      int64(1000 + i),
			Quantity: 1,
			Price:    types.MustMoney(total),
			Total:    types.MustMoney(total),
		})
	}
	tr.Purchases.TotalCost = types.MustMoney(declared)
	return tr
}

func TestReconcile_Match(t *testing.T) {
	tr := testTransaction(t, []string{"10.00", "5.00"}, "15.00")
	assert.NoError(t, tr.Reconcile())
}

func TestReconcile_Mismatch(t *testing.T) {
	tr := testTransaction(t, []string{"10.00", "5.00"}, "15.01")
	err := tr.Reconcile()
	require.Error(t, err)
	assert.True(t, apperror.IsTotalMismatch(err))
}

// Declared totals may carry a different exponent than the sum; 15 and 15.00
// are the same amount.
func TestReconcile_ExponentInsensitive(t *testing.T) {
	tr := testTransaction(t, []string{"7.50", "7.50"}, "15")
	assert.NoError(t, tr.Reconcile())
}

// Rounding applies once to the aggregate sum, not per line: two lines of
// 1.004 sum to 2.008, which rounds to 2.01. Per-line rounding would give
// 2.00 and wrongly exclude the transaction.
func TestReconcile_AggregateRounding(t *testing.T) {
	tr := testTransaction(t, []string{"1.004", "1.004"}, "2.01")
	assert.NoError(t, tr.Reconcile())
}

// Only the aggregate line sum is rounded; a declared total carrying more
// than two decimal places is compared as-is and never matches.
func TestReconcile_DeclaredTotalNotRounded(t *testing.T) {
	tr := testTransaction(t, []string{"10.00", "5.00"}, "15.004")
	err := tr.Reconcile()
	require.Error(t, err)
	assert.True(t, apperror.IsTotalMismatch(err))
}

func TestReconcile_EmptyLinesAgainstZero(t *testing.T) {
	empty := testTransaction(t, nil, "0.00")
	assert.NoError(t, empty.Reconcile())

	nonZero := testTransaction(t, nil, "9.99")
	assert.True(t, apperror.IsTotalMismatch(nonZero.Reconcile()))
}

func TestLines_Numbering(t *testing.T) {
	tr := testTransaction(t, []string{"1.00", "2.00", "3.00"}, "6.00")
	lines := tr.Lines()
	require.Len(t, lines, 3)

	for i, line := range lines {
		assert.Equal(t, i+1, line.LineNo)
		assert.Equal(t, tr.ID, line.TransactionID)
	}
	assert.Equal(t, int64(1000), lines[0].SKU)
	assert.True(t, types.SameAmount(types.MustMoney("3.00"), lines[2].Total))
}

func TestValidate_RequiresID(t *testing.T) {
	tr := &Transaction{}
	err := tr.Validate(context.Background())
	require.Error(t, err)

	tr.ID = uuid.New()
	assert.NoError(t, tr.Validate(context.Background()))
}

// The feed spells the quantity key "quanitity"; decoding must honor it.
func TestUnmarshal_FeedShape(t *testing.T) {
	raw := `{
		"transaction_id": "64575b55-2c46-4022-9b23-4d13aefddb32",
		"transaction_time": "2022-01-30 10:40:12",
		"customer_id": 12345,
		"delivery_address": {"address": "1 High St", "postcode": "AB1 2CD", "city": "Leeds", "country": "UK"},
		"purchases": {
			"products": [{"sku": 4162, "quanitity": 2, "price": 24.99, "total": 49.98}],
			"total_cost": 49.98
		}
	}`

	var tr Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tr))

	assert.Equal(t, "64575b55-2c46-4022-9b23-4d13aefddb32", tr.ID.String())
	require.NotNil(t, tr.CustomerID)
	assert.Equal(t, int64(12345), *tr.CustomerID)
	assert.Equal(t, "Leeds", tr.Delivery.City)
	require.Len(t, tr.Purchases.Products, 1)
	assert.Equal(t, int64(2), tr.Purchases.Products[0].Quantity)
	assert.NoError(t, tr.Reconcile())
}
