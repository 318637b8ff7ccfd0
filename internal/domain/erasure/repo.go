package erasure

import "context"

// Repository persists erasure requests for audit.
type Repository interface {
	InsertRequest(ctx context.Context, r *Request) error
}
