// Command recall is the CLI over the instrumented key-value cache:
// store values, retrieve them, and inspect the persistent call counter
// and call history of the instrumented store operation.
package main

import (
	"fmt"
	"os"

	"github.com/recall-kv/recall/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
