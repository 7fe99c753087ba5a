// Package main provides the graphmatch CLI entry point: a demo harness
// that loads a fixture edge list into a graphstore.Store and runs one
// pattern against it, either once (match) or continuously against a
// batch of edits (watch).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "graphmatch",
		Short: "graphmatch - an in-memory generic-join pattern matcher",
		Long: `graphmatch evaluates fixed-shape edge-pattern queries over an
in-memory, versioned directed multigraph using the Generic Join
algorithm, in one-time and continuous (incremental) modes.`,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("graphmatch v%s (%s)\n", version, commit)
		},
	})

	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newWatchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
