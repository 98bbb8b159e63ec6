package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/recall-kv/recall/internal/cache"
	"github.com/recall-kv/recall/internal/trace"
)

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [operation]",
		Short: "Print an operation's recorded call history",
		Long: `Read back the recorded input/output history for an instrumented
operation (default ` + cache.StoreName + `) and print one line per call,
pairing each recorded input tuple with the output it produced:

  Cache.Store was called 2 times:
  Cache.Store("foo") -> 3e2f1a60-0f5c-4b58-9e51-0a4b1c2d3e4f
  Cache.Store("bar") -> 9d8c7b6a-5f4e-4d3c-8b2a-190817161514

The reported count is the input-history length. If the input and output
lists differ in length (possible when calls failed mid-record or ran
concurrently), pairs are printed only up to the shorter list.

Examples:
  recall replay
  recall replay Cache.Store --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := cache.StoreName
			if len(args) == 1 {
				name = args[0]
			}
			return runReplay(rootOpts, cmd, name)
		},
	}

	return cmd
}

func runReplay(opts *RootOptions, cmd *cobra.Command, name string) error {
	ctx := cmd.Context()

	st, err := openStore(ctx, opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer st.Close()

	if opts.Format == "json" {
		h, err := trace.ReadHistory(ctx, st, name)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read history", err)
		}
		return outputData(cmd.OutOrStdout(), opts.Format, h)
	}

	var buf bytes.Buffer
	if err := trace.ReplayName(ctx, &buf, st, name); err != nil {
		return WrapExitError(ExitCommandError, "failed to replay history", err)
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
