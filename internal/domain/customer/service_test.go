package customer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skuflow/internal/core/apperror"
	"skuflow/internal/domain/errorlog"
)

type fakeRepo struct {
	byID map[int64]Customer
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[int64]Customer)}
}

func (f *fakeRepo) Insert(ctx context.Context, c *Customer) error {
	if _, exists := f.byID[c.ID]; exists {
		return apperror.NewDuplicate("customers", c.Key())
	}
	f.byID[c.ID] = *c
	return nil
}

func (f *fakeRepo) FindForErasure(ctx context.Context, customerID *int64, email *string) (*ErasureTarget, error) {
	return nil, apperror.NewNotFound("customers", "")
}

func (f *fakeRepo) ApplyErasure(ctx context.Context, t *ErasureTarget) error {
	return nil
}

type fakeLogRepo struct {
	entries []errorlog.Entry
}

func (f *fakeLogRepo) Append(ctx context.Context, e errorlog.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func validCustomer(id int64) *Customer {
	return &Customer{
		ID:          id,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: "1990-05-17",
		Email:       "ada@example.com",
		LastChange:  "2022-01-30 10:40:12",
	}
}

func TestLoad_Inserts(t *testing.T) {
	repo := newFakeRepo()
	logRepo := &fakeLogRepo{}
	svc := NewService(repo, errorlog.NewRecorder(logRepo))

	require.NoError(t, svc.Load(context.Background(), validCustomer(1)))

	assert.Contains(t, repo.byID, int64(1))
	assert.Empty(t, logRepo.entries)
}

// The first record for an id wins; the duplicate is recorded and skipped.
func TestLoad_DuplicateGoesToErrorLog(t *testing.T) {
	repo := newFakeRepo()
	logRepo := &fakeLogRepo{}
	svc := NewService(repo, errorlog.NewRecorder(logRepo))

	first := validCustomer(1)
	require.NoError(t, svc.Load(context.Background(), first))

	second := validCustomer(1)
	second.Email = "other@example.com"
	err := svc.Load(context.Background(), second)
	require.Error(t, err)

	assert.Equal(t, "ada@example.com", repo.byID[1].Email, "first record is kept")
	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, "Customer", logRepo.entries[0].TableName)
	assert.Equal(t, "1", logRepo.entries[0].RecordID)
}

func TestLoad_InvalidCustomer(t *testing.T) {
	repo := newFakeRepo()
	logRepo := &fakeLogRepo{}
	svc := NewService(repo, errorlog.NewRecorder(logRepo))

	bad := validCustomer(2)
	bad.Email = ""
	err := svc.Load(context.Background(), bad)
	require.Error(t, err)

	assert.NotContains(t, repo.byID, int64(2))
	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, "Customer", logRepo.entries[0].TableName)
}

func TestUnmarshal_FeedShape(t *testing.T) {
	raw := `{
		"id": 12345,
		"first_name": "Ada",
		"last_name": "Lovelace",
		"date_of_birth": "1990-05-17",
		"email": "ada@example.com",
		"phone_number": "0123 456789",
		"address": "1 High St",
		"city": "Leeds",
		"country": "UK",
		"postcode": "AB1 2CD",
		"last_change": "2022-01-30 10:40:12",
		"segment": "vip"
	}`

	var c Customer
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.Equal(t, int64(12345), c.ID)
	assert.Equal(t, "1990-05-17", c.DateOfBirth)
	assert.Equal(t, "2022-01-30 10:40:12", c.LastChange)
	assert.NoError(t, c.Validate(context.Background()))
}
