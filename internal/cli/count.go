package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/recall-kv/recall/internal/cache"
	"github.com/recall-kv/recall/internal/trace"
)

// CountResult holds a counter reading.
type CountResult struct {
	Operation string `json:"operation"`
	Calls     int64  `json:"calls"`
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [operation]",
		Short: "Print how many times an instrumented operation was called",
		Long: `Print the persistent call counter for an instrumented operation,
identified by its qualified name. Defaults to ` + cache.StoreName + `.
An operation that was never called (or whose counter was flushed)
reads as 0.

Examples:
  recall count
  recall count Cache.Store --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := cache.StoreName
			if len(args) == 1 {
				name = args[0]
			}
			return runCount(rootOpts, cmd, name)
		},
	}

	return cmd
}

func runCount(opts *RootOptions, cmd *cobra.Command, name string) error {
	ctx := cmd.Context()

	st, err := openStore(ctx, opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer st.Close()

	n, err := trace.CallCount(ctx, st, name)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read counter", err)
	}

	result := CountResult{Operation: name, Calls: n}
	return outputData(cmd.OutOrStdout(), opts.Format, result, strconv.FormatInt(n, 10))
}
