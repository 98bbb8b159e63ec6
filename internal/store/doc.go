// Package store defines the key-value store contract that recall
// instruments against, plus three interchangeable backends.
//
// The contract is deliberately narrow: get/set for opaque values, an
// atomic counter increment, an atomic append to an ordered list, an
// index-range read over a list, and a destructive whole-store flush.
// Every operation is atomic on its own; the package offers no
// multi-operation transaction, and callers must not assume one.
//
// # Backends
//
//   - Redis (redis.go): the canonical backend, via go-redis. Counters
//     and lists map directly onto INCR and RPUSH/LRANGE.
//   - SQLite (sqlite.go): file-backed alternative for hosts without a
//     Redis server. WAL mode, NORMAL synchronous, 5-second busy
//     timeout. Increment and append are single-statement atomic.
//   - Memory (memory.go): mutex-guarded maps, for tests and embedding.
//
// All backends satisfy the same conformance suite (store_test.go).
// List indices follow Redis LRANGE semantics, including negative
// offsets counted from the end and an inclusive stop index.
package store
