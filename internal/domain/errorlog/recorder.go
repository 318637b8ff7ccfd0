// Package errorlog provides the append-only error log shared by every
// persistence path in the pipeline.
package errorlog

import (
	"context"
	"encoding/json"
	"fmt"

	"skuflow/pkg/logger"
)

// Entry is one row of the error log: which table the record was headed for,
// the record's identity, its full payload, and what went wrong.
type Entry struct {
	TableName string `db:"table_name"`
	RecordID  string `db:"record_id"`
	Payload   string `db:"payload"`
	Error     string `db:"error"`
}

// Repository defines the append operation. The error log is write-only from
// the pipeline's point of view; operators read it with SQL.
type Repository interface {
	Append(ctx context.Context, e Entry) error
}

// Recorder captures persistence failures as structured log rows.
// It is fire-and-forget: a failure to write the log itself is surfaced as a
// local diagnostic and swallowed, so error recording can never cascade into
// a pipeline abort.
type Recorder struct {
	repo Repository
}

// NewRecorder creates a new error recorder.
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

// Record appends one error log entry for a failed record.
// payload is serialized as JSON; cause becomes the error description.
func (r *Recorder) Record(ctx context.Context, table, recordID string, payload any, cause error) {
	e := Entry{
		TableName: table,
		RecordID:  recordID,
		Payload:   serialize(payload),
	}
	if cause != nil {
		e.Error = cause.Error()
	}

	if err := r.repo.Append(ctx, e); err != nil {
		logger.Warn(ctx, "error log write failed",
			"table", table,
			"record_id", recordID,
			"error", err)
	}
}

func serialize(payload any) string {
	if payload == nil {
		return ""
	}
	if s, ok := payload.(string); ok {
		return s
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%+v", payload)
	}
	return string(b)
}
