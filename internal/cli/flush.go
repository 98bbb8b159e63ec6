package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/recall-kv/recall/internal/cache"
)

// NewFlushCommand creates the flush command.
func NewFlushCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Erase the entire store",
		Long: `Erase every record, counter, and history list in the backing
store. This is the construction-time reset exposed explicitly: it is
destructive and process-wide, not scoped to keys written by recall.

Examples:
  recall flush
  recall flush --backend sqlite --db ./recall.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlush(rootOpts, cmd)
		},
	}

	return cmd
}

func runFlush(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(ctx, opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer st.Close()

	// New is the reset path: constructing the cache flushes the store.
	if _, err := cache.New(ctx, st); err != nil {
		return WrapExitError(ExitCommandError, "failed to flush store", err)
	}
	slog.Debug("store flushed")

	return outputData(cmd.OutOrStdout(), opts.Format, struct {
		Flushed bool `json:"flushed"`
	}{true}, "Store flushed.")
}
