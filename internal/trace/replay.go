package trace

import (
	"context"
	"fmt"
	"io"

	"github.com/recall-kv/recall/internal/store"
)

// Call pairs one recorded input tuple with the output it produced.
type Call struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// History is an operation's recorded call history, read back from the
// store. Calls is the input-history length - the total number of
// recorded invocations, including any whose output append never landed.
type History struct {
	Operation string `json:"operation"`
	Calls     int    `json:"calls"`
	Paired    []Call `json:"paired"`
}

// ReadHistory reads the full input and output history lists for the
// operation's qualified name and pairs them by position. If the lists
// differ in length (possible under concurrent callers, or when a call
// failed between its two appends), pairing stops at the shorter list and
// the remainder is dropped. That is a display-level accommodation, not a
// correctness guarantee.
func ReadHistory(ctx context.Context, st store.Store, name string) (History, error) {
	inputs, err := st.LRange(ctx, InputsKey(name), 0, -1)
	if err != nil {
		return History{}, fmt.Errorf("read history %s: %w", name, err)
	}
	outputs, err := st.LRange(ctx, OutputsKey(name), 0, -1)
	if err != nil {
		return History{}, fmt.Errorf("read history %s: %w", name, err)
	}

	n := len(inputs)
	if len(outputs) < n {
		n = len(outputs)
	}

	h := History{
		Operation: name,
		Calls:     len(inputs),
		Paired:    make([]Call, 0, n),
	}
	for i := 0; i < n; i++ {
		h.Paired = append(h.Paired, Call{
			Input:  string(inputs[i]),
			Output: string(outputs[i]),
		})
	}
	return h, nil
}

// Replay writes an operation's recorded call history to w in
// human-readable form:
//
//	Cache.Store was called 2 times:
//	Cache.Store("foo") -> 7f3c...
//	Cache.Store("bar") -> a91d...
//
// Zero recorded calls prints the header with a count of 0 and no pairs.
func Replay(ctx context.Context, w io.Writer, st store.Store, op Operation) error {
	return ReplayName(ctx, w, st, op.Name())
}

// ReplayName is Replay for callers that hold only the qualified name.
func ReplayName(ctx context.Context, w io.Writer, st store.Store, name string) error {
	h, err := ReadHistory(ctx, st, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s was called %d times:\n", h.Operation, h.Calls)
	for _, c := range h.Paired {
		fmt.Fprintf(w, "%s%s -> %s\n", h.Operation, c.Input, c.Output)
	}
	return nil
}
