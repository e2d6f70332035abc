package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/storex/internal/observe"
	"github.com/comalice/storex/internal/scenario"
)

var runCmd = &cobra.Command{
	Use:   "run [scenario.yaml]",
	Short: "Run a scenario against a counter store",
	Long: `Run dispatches a scenario's actions in order and prints the total after
each step. With no argument it runs the built-in walkthrough, or the file
named by STOREX_DEMO_SCENARIO.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Quiet {
		quiet = true
	}

	sc := scenario.Walkthrough()
	switch {
	case len(args) > 0:
		if sc, err = scenario.LoadFile(args[0]); err != nil {
			return err
		}
	case cfg.Scenario != "":
		if sc, err = scenario.LoadFile(cfg.Scenario); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scenario %q: %d step(s), starting total %d\n", sc.Name, len(sc.Steps), sc.Initial)

	var count observe.Counter
	result, err := sc.Run(count.Subscriber())
	if err != nil {
		return err
	}

	if !quiet {
		for i, step := range result.Trace {
			marker := ""
			if !step.Known {
				marker = "  (unrecognized: no-op)"
			}
			fmt.Fprintf(out, "%2d. %-22s total = %d%s\n", i+1, step.Action, step.Total, marker)
		}
	}

	fmt.Fprintf(out, "final total: %d, subscriber notifications: %d\n", result.Final.Total, count.Count())
	return nil
}
