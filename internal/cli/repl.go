package cli

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/comalice/storex"
	"github.com/comalice/storex/counter"
	"github.com/comalice/storex/internal/observe"
)

const replQuit = "quit"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Dispatch actions interactively",
	Long:  `Repl prompts for an action kind, dispatches it, and shows the new total.`,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	store, err := counter.NewStore()
	if err != nil {
		return err
	}

	var count observe.Counter
	if _, err := store.Subscribe(count.Subscriber()); err != nil {
		return err
	}

	options := append(counter.ActionTypes(), replQuit)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "total = %d\n", store.GetState().Total)

	for {
		var choice string
		prompt := &survey.Select{
			Message: "Dispatch an action:",
			Options: options,
		}
		if err := survey.AskOne(prompt, &choice); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				break
			}
			return err
		}
		if choice == replQuit {
			break
		}

		if _, err := store.Dispatch(storex.NewAction(choice, nil)); err != nil {
			return err
		}
		fmt.Fprintf(out, "total = %d\n", store.GetState().Total)
	}

	fmt.Fprintf(out, "dispatched %d action(s), final total %d\n", count.Count(), store.GetState().Total)
	return nil
}
