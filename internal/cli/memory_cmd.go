package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Keto24/saturday-planner/internal/cli/formatter"
)

func newMemoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect or clear the learned preference weights",
	}

	cmd.AddCommand(
		newMemoryListCmd(app),
		newMemoryResetCmd(app),
	)

	return cmd
}

func newMemoryListCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every stored preference weight",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.Memory.List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeights(rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the weights as JSON")
	return cmd
}

func newMemoryResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored weight and start learning from scratch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("pass --yes to reset without a terminal")
				}
				confirmed, err := confirmReset()
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
					return nil
				}
			}

			if err := app.Memory.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Preference memory cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func confirmReset() (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete all learned preferences?").
				Description("Every plan and feedback nudge so far will be forgotten.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	).WithTheme(saturdayHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
