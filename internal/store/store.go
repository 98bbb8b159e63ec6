package store

import (
	"context"
	"errors"
)

// ErrNotFound is the missing-key sentinel. Get returns it when a key has
// never been stored (or was erased by a flush); it is distinct from any
// valid stored value, including an empty one.
var ErrNotFound = errors.New("store: key not found")

// Store is the external collaborator contract recall instruments against.
// Each operation is individually atomic; no ordering or transactional
// guarantee holds across operations. Implementations propagate their own
// transport errors unchanged - this layer never retries or times out.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Incr atomically increments the integer counter at key, creating it
	// at zero first, and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// RPush atomically appends value to the ordered list at key, creating
	// the list if needed.
	RPush(ctx context.Context, key string, value []byte) error

	// LRange returns list entries from start through stop inclusive,
	// with Redis index semantics: negative indices count from the end
	// (-1 is the last entry). Out-of-range requests return what exists;
	// a missing list returns an empty slice, not ErrNotFound.
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)

	// FlushAll erases every key, counter, and list in the store. This is
	// process-wide and destructive, not scoped to any one owner.
	FlushAll(ctx context.Context) error

	// Close releases the underlying connection or file handle.
	Close() error
}

// clampRange resolves Redis-style start/stop indices against a list of
// length n, returning the half-open [lo, hi) window to read. ok is false
// when the window is empty.
func clampRange(start, stop, n int64) (lo, hi int64, ok bool) {
	if n == 0 {
		return 0, 0, false
	}
	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	}
	if stop < 0 {
		stop += n
	}
	if stop >= n {
		stop = n - 1
	}
	if start >= n || start > stop {
		return 0, 0, false
	}
	return start, stop + 1, true
}
