package transaction

import "context"

// Repository persists transactions and their standalone lines.
type Repository interface {
	// Insert stores the parent transaction row.
	Insert(ctx context.Context, t *Transaction) error
	// InsertLine stores a single line row. Lines are inserted independently
	// so one bad line never blocks its siblings.
	InsertLine(ctx context.Context, l *Line) error
}
