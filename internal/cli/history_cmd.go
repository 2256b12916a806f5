package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Keto24/saturday-planner/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent plan runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.History.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(runs)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the runs as JSON")

	return cmd
}
