package trace

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/recall-kv/recall/internal/store"
)

// CountCalls returns middleware that atomically increments the persistent
// counter keyed by the operation's qualified name before delegating.
// It has no effect on the operation's inputs, outputs, or error behavior.
//
// If the increment itself fails, the wrapped body never runs and the
// store's error propagates; placed outermost this means the counter
// counts attempts, not successes (see the package comment).
func CountCalls(st store.Store) Middleware {
	return func(op Operation) Operation {
		return Operation{
			name: op.name,
			call: func(ctx context.Context, args ...any) (any, error) {
				if _, err := st.Incr(ctx, op.name); err != nil {
					return nil, fmt.Errorf("count %s: %w", op.name, err)
				}
				return op.call(ctx, args...)
			},
		}
	}
}

// CallCount reads the current counter for the given qualified name.
// A name that was never called (or was flushed) reads as zero.
func CallCount(ctx context.Context, st store.Store, name string) (int64, error) {
	raw, err := st.Get(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter %s: %w", name, err)
	}

	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter %s holds non-numeric value %q", name, raw)
	}
	return n, nil
}
