package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/recall-kv/recall/internal/cache"
)

// StoreOptions holds flags for the store command.
type StoreOptions struct {
	*RootOptions
	As string // "str" | "int" | "float"
}

// StoreResult holds the generated keys for a store invocation.
type StoreResult struct {
	Keys []string `json:"keys"`
}

// NewStoreCommand creates the store command.
func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "store <value>...",
		Short: "Store values and print their generated keys",
		Long: `Store one or more values in the backing store under freshly
generated keys, printing one key per value in argument order.

Each store call is instrumented: it increments the Cache.Store counter
and appends to the call history (see the count and replay commands).
Values are stored as text unless --as requests a typed parse first.

Examples:
  recall store foo bar
  recall store --as int 42
  recall store --backend sqlite --db ./recall.db foo`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStore(opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "str", "parse values before storing (str|int|float)")

	return cmd
}

func runStore(opts *StoreOptions, cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := openStore(ctx, opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer st.Close()

	c := cache.Attach(st)

	result := StoreResult{Keys: make([]string, 0, len(args))}
	for _, arg := range args {
		value, err := parseValue(arg, opts.As)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid value", err)
		}

		key, err := c.Store(ctx, value)
		if err != nil {
			return WrapExitError(ExitCommandError, "store failed", err)
		}
		slog.Debug("value stored", "key", key)
		result.Keys = append(result.Keys, key)
	}

	return outputData(cmd.OutOrStdout(), opts.Format, result, result.Keys...)
}

// parseValue converts a command-line argument to the value actually
// stored, per the --as flag.
func parseValue(arg, as string) (any, error) {
	switch as {
	case "str":
		return arg, nil
	case "int":
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, err
		}
		return n, nil
	case "float":
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("invalid --as value %q: must be str, int, or float", as)
	}
}
