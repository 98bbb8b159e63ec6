package cache

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/recall-kv/recall/internal/store"
	"github.com/recall-kv/recall/internal/trace"
)

// StoreName is the qualified name of the instrumented accessor. It keys
// the call counter and the ":inputs"/":outputs" history lists, and is
// shared by every Cache instance on the same store.
const StoreName = "Cache.Store"

// Cache stores opaque scalar/binary values under generated keys, with
// every Store call counted and recorded in the backing store.
type Cache struct {
	st      store.Store
	storeOp trace.Operation
}

// New flushes the entire backing store and returns a Cache over it.
// The flush is destructive and process-wide: all previously stored
// records, counters, and histories are erased, whoever wrote them.
func New(ctx context.Context, st store.Store) (*Cache, error) {
	if err := st.FlushAll(ctx); err != nil {
		return nil, fmt.Errorf("reset store: %w", err)
	}
	return Attach(st), nil
}

// Attach returns a Cache over the store without resetting it, resuming
// whatever counters and history already exist.
func Attach(st store.Store) *Cache {
	c := &Cache{st: st}
	c.storeOp = trace.Chain(
		trace.NewOperation(StoreName, c.storeValue),
		trace.CountCalls(st),
		trace.RecordCalls(st),
	)
	return c
}

// storeValue is the uninstrumented accessor body: generate a fresh key,
// write the encoded value under it, return the key. Key uniqueness is
// probabilistic (128-bit random UUID) and never re-validated.
func (c *Cache) storeValue(ctx context.Context, args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("store: expected 1 argument, got %d", len(args))
	}

	encoded, err := trace.EncodeValue(args[0])
	if err != nil {
		return nil, err
	}

	key := uuid.New().String()
	if err := c.st.Set(ctx, key, encoded); err != nil {
		return nil, err
	}
	return key, nil
}

// Store writes v (string, []byte, int, int64, float32, or float64) under
// a generated key and returns the key. Each call increments the
// Cache.Store counter and appends to its input/output history.
func (c *Cache) Store(ctx context.Context, v any) (string, error) {
	out, err := c.storeOp.Call(ctx, v)
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// Get fetches the raw bytes at key, or store.ErrNotFound if the key was
// never stored. If fn is non-nil the raw bytes are transformed through
// it; otherwise they are returned unmodified.
func (c *Cache) Get(ctx context.Context, key string, fn func([]byte) (any, error)) (any, error) {
	raw, err := c.st.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return raw, nil
	}
	return fn(raw)
}

// GetStr fetches the value at key decoded as UTF-8 text. Bytes that are
// not valid UTF-8 are a decode error, not a silent lossy conversion.
func (c *Cache) GetStr(ctx context.Context, key string) (string, error) {
	raw, err := c.st.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("get %q: value is not valid UTF-8", key)
	}
	return string(raw), nil
}

// GetInt fetches the value at key parsed as a base-10 integer.
func (c *Cache) GetInt(ctx context.Context, key string) (int64, error) {
	raw, err := c.st.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("get %q: %w", key, err)
	}
	return n, nil
}

// StoreCallCount reads how many times Store has been called against this
// store since the last flush.
func (c *Cache) StoreCallCount(ctx context.Context) (int64, error) {
	return trace.CallCount(ctx, c.st, StoreName)
}

// History returns Store's recorded call history.
func (c *Cache) History(ctx context.Context) (trace.History, error) {
	return trace.ReadHistory(ctx, c.st, StoreName)
}

// Replay writes Store's recorded call history to w.
func (c *Cache) Replay(ctx context.Context, w io.Writer) error {
	return trace.Replay(ctx, w, c.st, c.storeOp)
}
