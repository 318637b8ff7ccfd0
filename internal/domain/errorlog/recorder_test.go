package errorlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRepo struct {
	entries   []Entry
	appendErr error
}

func (c *captureRepo) Append(ctx context.Context, e Entry) error {
	if c.appendErr != nil {
		return c.appendErr
	}
	c.entries = append(c.entries, e)
	return nil
}

func TestRecord_SerializesPayloadAsJSON(t *testing.T) {
	repo := &captureRepo{}
	rec := NewRecorder(repo)

	payload := struct {
		SKU  int64  `json:"sku"`
		Name string `json:"name"`
	}{SKU: 4162, Name: "Wristwatch"}

	rec.Record(context.Background(), "Product", "4162", payload, errors.New("check violation"))

	require.Len(t, repo.entries, 1)
	e := repo.entries[0]
	assert.Equal(t, "Product", e.TableName)
	assert.Equal(t, "4162", e.RecordID)
	assert.JSONEq(t, `{"sku":4162,"name":"Wristwatch"}`, e.Payload)
	assert.Equal(t, "check violation", e.Error)
}

func TestRecord_StringPayloadPassesThrough(t *testing.T) {
	repo := &captureRepo{}
	rec := NewRecorder(repo)

	rec.Record(context.Background(), "Customer", "", `{"broken json`, errors.New("invalid character"))

	require.Len(t, repo.entries, 1)
	assert.Equal(t, `{"broken json`, repo.entries[0].Payload)
}

func TestRecord_NilCause(t *testing.T) {
	repo := &captureRepo{}
	rec := NewRecorder(repo)

	rec.Record(context.Background(), "Customer", "1", nil, nil)

	require.Len(t, repo.entries, 1)
	assert.Empty(t, repo.entries[0].Error)
	assert.Empty(t, repo.entries[0].Payload)
}

// A failing error log write must never propagate.
func TestRecord_SwallowsAppendFailure(t *testing.T) {
	repo := &captureRepo{appendErr: errors.New("errorlog table missing")}
	rec := NewRecorder(repo)

	assert.NotPanics(t, func() {
		rec.Record(context.Background(), "Transaction", "x", "payload", errors.New("boom"))
	})
	assert.Empty(t, repo.entries)
}
