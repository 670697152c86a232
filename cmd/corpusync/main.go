// Package main provides the entry point for the corpusync CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grammarkit/corpusync/cmd/corpusync/commands"
	"github.com/grammarkit/corpusync/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "corpusync",
		Short: "Corpusync - keep a parser test corpus in sync with upstream fixtures",
		Long: `Corpusync converts upstream test fixture files into per-segment corpus
entries and tracks the upstream revision last absorbed.

Commands:
  sync      Synchronize the corpus with the upstream fixture tree`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewSyncCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "corpusync %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
