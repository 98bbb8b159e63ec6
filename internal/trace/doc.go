// Package trace instruments store-backed operations with persistent
// call counting and call recording, and replays recorded history.
//
// An operation is an explicit function value carrying a qualified name
// (e.g. "Cache.Store"). Wrappers are middleware: each takes an Operation
// and returns a new Operation with the same signature and name, so
// wrapping is transparent to further wrapping or introspection.
// Composition order is caller-controlled and significant; the canonical
// stack is counter outermost, recorder inside:
//
//	op = trace.Chain(body, trace.CountCalls(st), trace.RecordCalls(st))
//
// With that order the counter increments before anything else runs, so a
// failed increment aborts the wrapped call, and the counter counts
// attempts rather than successes. Whether attempt-counting is intended
// or a quirk of the composition order is not decidable from the observed
// behavior; it is preserved as-is rather than silently corrected.
//
// All instrumentation state lives in the store, keyed by the qualified
// name (shared across instances): a counter at the name itself, and two
// append-only lists at name + ":inputs" and name + ":outputs", parallel
// by position. For a single-threaded caller the n-th call's input append
// precedes its output append, which precedes the n+1-th call's input
// append. Concurrent callers may interleave the two appends of a call;
// positional pairing can then break. That is the accepted concurrency
// floor - replay simply truncates to the shorter list.
package trace
