package cache

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-kv/recall/internal/store"
	"github.com/recall-kv/recall/internal/trace"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(context.Background(), store.NewMemory())
	require.NoError(t, err)
	return c
}

func TestStoreGet_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string // raw representation read back
	}{
		{"string", "hello", "hello"},
		{"bytes", []byte("raw\x00bytes"), "raw\x00bytes"},
		{"int", 42, "42"},
		{"int64", int64(-9000), "-9000"},
		{"float64", 2.5, "2.5"},
	}

	c := newTestCache(t)
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := c.Store(ctx, tt.in)
			require.NoError(t, err)
			require.NotEmpty(t, key)

			raw, err := c.Get(ctx, key, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(raw.([]byte)))
		})
	}
}

func TestStore_UnsupportedType(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Store(context.Background(), struct{ X int }{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, trace.ErrUnsupportedType)
}

func TestGet_MissingKey(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "never-stored", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = c.GetStr(ctx, "never-stored")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = c.GetInt(ctx, "never-stored")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGet_Transform(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	key, err := c.Store(ctx, "shout")
	require.NoError(t, err)

	got, err := c.Get(ctx, key, func(raw []byte) (any, error) {
		return len(raw), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestGetInt(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	key, err := c.Store(ctx, "42")
	require.NoError(t, err)

	n, err := c.GetInt(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	bad, err := c.Store(ctx, "abc")
	require.NoError(t, err)

	_, err = c.GetInt(ctx, bad)
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestGetStr_InvalidUTF8(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	key, err := c.Store(ctx, []byte{0xff, 0xfe})
	require.NoError(t, err)

	_, err = c.GetStr(ctx, key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestStore_CountsCalls(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	const n = 5
	for i := 0; i < n; i++ {
		_, err := c.Store(ctx, fmt.Sprintf("v%d", i))
		require.NoError(t, err)
	}

	count, err := c.StoreCallCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)
}

func TestStore_RecordsHistory(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	k1, err := c.Store(ctx, "foo")
	require.NoError(t, err)
	k2, err := c.Store(ctx, 7)
	require.NoError(t, err)

	h, err := c.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, StoreName, h.Operation)
	assert.Equal(t, 2, h.Calls)
	require.Len(t, h.Paired, 2)
	assert.Equal(t, trace.Call{Input: `("foo")`, Output: k1}, h.Paired[0])
	assert.Equal(t, trace.Call{Input: "(7)", Output: k2}, h.Paired[1])
}

// TestScenario_StoreReplayReset walks the end-to-end scenario: construct,
// store two values, read one back, check the counter, replay, then
// construct a second Cache on the same store and observe the reset.
func TestScenario_StoreReplayReset(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	c, err := New(ctx, st)
	require.NoError(t, err)

	k1, err := c.Store(ctx, "foo")
	require.NoError(t, err)
	k2, err := c.Store(ctx, "bar")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	got, err := c.GetStr(ctx, k1)
	require.NoError(t, err)
	assert.Equal(t, "foo", got)

	count, err := c.StoreCallCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	var buf bytes.Buffer
	require.NoError(t, c.Replay(ctx, &buf))
	want := "Cache.Store was called 2 times:\n" +
		fmt.Sprintf("Cache.Store(%q) -> %s\n", "foo", k1) +
		fmt.Sprintf("Cache.Store(%q) -> %s\n", "bar", k2)
	assert.Equal(t, want, buf.String())

	// A second construction on the same store is a process-wide reset.
	c2, err := New(ctx, st)
	require.NoError(t, err)

	count, err = c2.StoreCallCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	h, err := c2.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Calls)
	assert.Empty(t, h.Paired)

	_, err = c2.Get(ctx, k1, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAttach_DoesNotReset(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	c, err := New(ctx, st)
	require.NoError(t, err)
	key, err := c.Store(ctx, "keep")
	require.NoError(t, err)

	c2 := Attach(st)

	got, err := c2.GetStr(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "keep", got)

	count, err := c2.StoreCallCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCounterSharedAcrossInstances(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	c1, err := New(ctx, st)
	require.NoError(t, err)
	c2 := Attach(st)

	_, err = c1.Store(ctx, "a")
	require.NoError(t, err)
	_, err = c2.Store(ctx, "b")
	require.NoError(t, err)

	// The qualified name is stable across instances, so both calls land
	// on one counter.
	count, err := c1.StoreCallCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
