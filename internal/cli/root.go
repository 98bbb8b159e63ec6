package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string // optional YAML config file
	Backend    string // flag override: "redis" | "sqlite"
	RedisAddr  string // flag override for the Redis backend
	DBPath     string // flag override for the SQLite backend
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the recall CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "recall",
		Short: "recall - instrumented key-value cache",
		Long: `A key-value cache client whose store operation is instrumented:
every call increments a persistent counter and appends its inputs and
outputs to persistent history lists, which the replay command reads back.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			logLevel := slog.LevelWarn
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "store backend (redis|sqlite)")
	cmd.PersistentFlags().StringVar(&opts.RedisAddr, "redis-addr", "", "redis address (host:port)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to SQLite database")

	// Add subcommands
	cmd.AddCommand(NewStoreCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewCountCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewFlushCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
