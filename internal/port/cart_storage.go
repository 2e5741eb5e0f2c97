package port

import "context"

// UpdateFunc receives the stored blob (nil when absent) and returns the
// blob to store. Returning a nil blob leaves storage untouched.
type UpdateFunc func(current []byte) ([]byte, error)

type CartStorage interface {
	// Load returns the stored blob; ok is false when nothing is stored under key
	Load(ctx context.Context, key string) (blob []byte, ok bool, err error)

	// Update runs fn and writes its result atomically with respect to other
	// updates of the same key
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

type IdempotencyStore interface {
	// SetIdempotency sets a key for idempotency check, returns false if already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// ReleaseIdempotency frees a key whose request did not go through
	ReleaseIdempotency(ctx context.Context, key string) error
}
