package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// Memory is an in-process Store kept entirely in maps. It exists for
// tests and for embedding recall without an external server; atomicity
// comes from a single mutex rather than the store's wire protocol.
//
// Counters share the value keyspace as base-10 text, matching Redis:
// a counter written by Incr reads back through Get as its digit string.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte
	lists  map[string][][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string][]byte),
		lists:  make(map[string][][]byte),
	}
}

// Get returns the value stored under key, or ErrNotFound.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores value under key.
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}

// Incr atomically increments the counter at key and returns the new value.
// A missing key starts at zero; a non-numeric value is an error.
func (m *Memory) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	if v, ok := m.values[key]; ok {
		parsed, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("incr %q: value is not an integer", key)
		}
		n = parsed
	}
	n++
	m.values[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

// RPush appends value to the list at key.
func (m *Memory) RPush(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.lists[key] = append(m.lists[key], v)
	return nil
}

// LRange returns list entries from start through stop inclusive, with
// Redis index semantics.
func (m *Memory) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.lists[key]
	lo, hi, ok := clampRange(start, stop, int64(len(list)))
	if !ok {
		return [][]byte{}, nil
	}

	out := make([][]byte, 0, hi-lo)
	for _, v := range list[lo:hi] {
		entry := make([]byte, len(v))
		copy(entry, v)
		out = append(out, entry)
	}
	return out, nil
}

// FlushAll erases all values, counters, and lists.
func (m *Memory) FlushAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[string][]byte)
	m.lists = make(map[string][][]byte)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}
