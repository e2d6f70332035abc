// Package cli implements the storex-demo command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var quiet bool

var rootCmd = &cobra.Command{
	Use:   "storex-demo",
	Short: "Walkthrough of the storex state container",
	Long: `storex-demo drives a counter store through scripted or interactive
dispatches, tracing the state after every action.

Scenarios are YAML files; see internal/scenario for the format.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress per-dispatch trace output")
}
