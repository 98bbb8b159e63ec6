package trace

import (
	"context"
	"fmt"

	"github.com/recall-kv/recall/internal/store"
)

// Suffixes appended to an operation's qualified name to key its history
// lists. Fixed; changing them orphans previously recorded history.
const (
	inputsSuffix  = ":inputs"
	outputsSuffix = ":outputs"
)

// InputsKey returns the input-history list key for a qualified name.
func InputsKey(name string) string {
	return name + inputsSuffix
}

// OutputsKey returns the output-history list key for a qualified name.
func OutputsKey(name string) string {
	return name + outputsSuffix
}

// RecordCalls returns middleware that appends the encoded argument tuple
// to the operation's input-history list, invokes the body, appends the
// encoded result to the output-history list, and returns the result
// unchanged. A body that fails leaves the input recorded with no paired
// output; replay truncates such tails.
//
// The input append and output append of one call are two separate store
// operations with no transaction around them. Interleaved concurrent
// callers can break positional pairing; that is accepted, not remedied.
func RecordCalls(st store.Store) Middleware {
	return func(op Operation) Operation {
		return Operation{
			name: op.name,
			call: func(ctx context.Context, args ...any) (any, error) {
				tuple, err := FormatTuple(args)
				if err != nil {
					return nil, fmt.Errorf("record %s: %w", op.name, err)
				}
				if err := st.RPush(ctx, InputsKey(op.name), []byte(tuple)); err != nil {
					return nil, fmt.Errorf("record %s: %w", op.name, err)
				}

				out, err := op.call(ctx, args...)
				if err != nil {
					return nil, err
				}

				encoded, err := EncodeValue(out)
				if err != nil {
					return nil, fmt.Errorf("record %s: %w", op.name, err)
				}
				if err := st.RPush(ctx, OutputsKey(op.name), encoded); err != nil {
					return nil, fmt.Errorf("record %s: %w", op.name, err)
				}
				return out, nil
			},
		}
	}
}
