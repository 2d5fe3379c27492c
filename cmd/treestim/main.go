package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "treestim",
	Short: "Tree size estimation and restart decisions for branch-and-bound",
	Long: `treestim estimates the final size of a branch-and-bound search tree from
live node events and decides when restarting the search is worthwhile.

The simulate subcommand runs the full estimation stack against a synthetic
random tree; the forest subcommand inspects and evaluates regression forest
model files in RFCSV format.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
