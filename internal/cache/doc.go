// Package cache is the instrumented accessor over a recall store.
//
// A Cache owns nothing but a store handle; every counter, history list,
// and record lives in the store itself. Its one instrumented operation,
// Store, writes a value under a fresh random key and returns the key,
// composed as counter outermost, recorder inside, accessor body
// innermost. Retrieval (Get and the typed variants) is deliberately not
// instrumented.
//
// New flushes the ENTIRE store before returning: construction is a
// process-wide reset, not a connection-open, and erases state belonging
// to any other owner sharing the store. Attach exists for processes that
// need to resume existing state (the CLI reads counters and history
// written by earlier invocations).
package cache
