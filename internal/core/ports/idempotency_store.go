package ports

import (
	"context"
	"errors"
)

// ErrIdempotencyKeyInFlight is returned while the first request for a key is
// still being processed.
var ErrIdempotencyKeyInFlight = errors.New("a request with this idempotency key is still in progress")

// StoredResponse is the recorded outcome of the first request for a key.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body"`
}

// IdempotencyStore remembers responses keyed by client-supplied idempotency keys.
type IdempotencyStore interface {
	// Begin reserves key. It returns the stored response when key already
	// completed, nil when the caller now owns key, and
	// ErrIdempotencyKeyInFlight when another request holds it.
	Begin(ctx context.Context, key string) (*StoredResponse, error)
	Complete(ctx context.Context, key string, resp StoredResponse) error
	// Abort releases a reservation so the request may be retried.
	Abort(ctx context.Context, key string) error
}
