package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for spokes.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spokes",
		Short: "Crawler for the 99spokes.com bicycle catalog",
		Long: `spokes walks the 99spokes.com bicycle catalog and collects model data.

The catalog is organized as a three-level hierarchy (year, brand, model).
spokes visits each level sequentially with a politeness delay, extracts
one record per model, and writes the collected catalog as JSON, CSV,
or Markdown.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
