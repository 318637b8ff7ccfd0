package product

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skuflow/internal/core/types"
	"skuflow/internal/domain/errorlog"
)

type fakeRepo struct {
	bySKU map[int64]Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bySKU: make(map[int64]Product)}
}

func (f *fakeRepo) Upsert(ctx context.Context, p *Product) error {
	f.bySKU[p.SKU] = *p
	return nil
}

type fakeLogRepo struct {
	entries []errorlog.Entry
}

func (f *fakeLogRepo) Append(ctx context.Context, e errorlog.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func validProduct(sku int64, price string) *Product {
	return &Product{
		SKU:        sku,
		Name:       "Wristwatch",
		Price:      types.MustMoney(price),
		Category:   "accessories",
		Popularity: 0.82,
	}
}

func TestLoad_Upserts(t *testing.T) {
	repo := newFakeRepo()
	logRepo := &fakeLogRepo{}
	svc := NewService(repo, errorlog.NewRecorder(logRepo))

	require.NoError(t, svc.Load(context.Background(), validProduct(4162, "24.99")))
	assert.Empty(t, logRepo.entries)
}

// Unlike customers, a repeated sku overwrites: the later feed row wins.
func TestLoad_LaterRowWins(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, errorlog.NewRecorder(&fakeLogRepo{}))

	require.NoError(t, svc.Load(context.Background(), validProduct(4162, "24.99")))
	require.NoError(t, svc.Load(context.Background(), validProduct(4162, "19.99")))

	stored := repo.bySKU[4162]
	assert.True(t, types.SameAmount(types.MustMoney("19.99"), stored.Price))
}

func TestLoad_RejectsNonPositivePrice(t *testing.T) {
	repo := newFakeRepo()
	logRepo := &fakeLogRepo{}
	svc := NewService(repo, errorlog.NewRecorder(logRepo))

	bad := validProduct(1, "0")
	err := svc.Load(context.Background(), bad)
	require.Error(t, err)

	assert.NotContains(t, repo.bySKU, int64(1))
	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, "Product", logRepo.entries[0].TableName)
	assert.Equal(t, "1", logRepo.entries[0].RecordID)
}

func TestLoad_RejectsNonPositivePopularity(t *testing.T) {
	logRepo := &fakeLogRepo{}
	svc := NewService(newFakeRepo(), errorlog.NewRecorder(logRepo))

	bad := validProduct(2, "9.99")
	bad.Popularity = 0
	require.Error(t, svc.Load(context.Background(), bad))
	require.Len(t, logRepo.entries, 1)
}

func TestUnmarshal_FeedShape(t *testing.T) {
	raw := `{"sku": 4162, "name": "Wristwatch", "price": 24.99, "category": "accessories", "popularity": 0.82}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, int64(4162), p.SKU)
	assert.True(t, types.SameAmount(types.MustMoney("24.99"), p.Price))
	assert.NoError(t, p.Validate(context.Background()))
}
