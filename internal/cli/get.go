package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/recall-kv/recall/internal/cache"
	"github.com/recall-kv/recall/internal/store"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	As string // "raw" | "str" | "int"
}

// GetResult holds a retrieved value.
type GetResult struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Retrieve a stored value by key",
		Long: `Retrieve the value stored under a key.

A key that was never stored is reported as missing (exit code 1), which
is distinct from any valid value. --as str requires the bytes to be
valid UTF-8 and --as int requires a base-10 integer; either failure is
a decode error (exit code 1). Retrieval is not instrumented - it does
not touch the counter or the call history.

Exit codes:
  0 - Value retrieved
  1 - Key missing or value failed to decode
  2 - Command error (bad flags, store unreachable)

Examples:
  recall get 9d8c7b6a-5f4e-4d3c-8b2a-190817161514
  recall get --as int 9d8c7b6a-5f4e-4d3c-8b2a-190817161514`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "str", "decode the value (raw|str|int)")

	return cmd
}

func runGet(opts *GetOptions, cmd *cobra.Command, key string) error {
	ctx := cmd.Context()

	st, err := openStore(ctx, opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer st.Close()

	c := cache.Attach(st)
	w := cmd.OutOrStdout()

	var rendered string
	switch opts.As {
	case "raw":
		raw, err := c.Get(ctx, key, nil)
		if err != nil {
			return reportGetError(w, opts.Format, key, err)
		}
		rendered = string(raw.([]byte))
	case "str":
		s, err := c.GetStr(ctx, key)
		if err != nil {
			return reportGetError(w, opts.Format, key, err)
		}
		rendered = s
	case "int":
		n, err := c.GetInt(ctx, key)
		if err != nil {
			return reportGetError(w, opts.Format, key, err)
		}
		rendered = strconv.FormatInt(n, 10)
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid --as value %q: must be raw, str, or int", opts.As))
	}

	result := GetResult{Key: key, Value: rendered}
	return outputData(w, opts.Format, result, rendered)
}

// reportGetError distinguishes the missing-key sentinel from a decode
// failure; both are domain failures (exit code 1), not command errors.
func reportGetError(w io.Writer, format, key string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return outputDomainError(w, format, "E_NOT_FOUND", fmt.Sprintf("key %q not found", key))
	}
	return outputDomainError(w, format, "E_DECODE", err.Error())
}
