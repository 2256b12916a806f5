package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Keto24/saturday-planner/internal/cli/formatter"
	"github.com/Keto24/saturday-planner/internal/cli/planprog"
	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/domain"
)

func newPlanCmd(app *App) *cobra.Command {
	var zip, phone, weather string
	var radius, maxPrice int
	var dryRun, jsonOut bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Pick one Saturday activity, schedule it, and send the confirmation",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.baseRequest(zip)
			if cmd.Flags().Changed("radius") {
				req.RadiusMiles = radius
			}
			if cmd.Flags().Changed("max-price") {
				req.MaxPrice = maxPrice
			}
			if cmd.Flags().Changed("phone") {
				req.Phone = phone
			}
			req.DryRun = dryRun
			if weather != "" {
				cond := domain.WeatherCondition(weather)
				req.Weather = &cond
			}

			ctx := cmd.Context()
			var resp *contract.PlanResponse
			var err error
			if app.interactive() && !jsonOut {
				resp, err = planprog.Run(ctx, app.Plans, req)
			} else {
				resp, err = app.Plans.Plan(ctx, req)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&zip, "zip", "", "Zip code to plan around (default 10001)")
	cmd.Flags().IntVar(&radius, "radius", 5, "Search radius in miles")
	cmd.Flags().IntVar(&maxPrice, "max-price", 3, "Maximum price level, 0 (free) to 4")
	cmd.Flags().StringVar(&phone, "phone", "", "Send the SMS confirmation to this number")
	cmd.Flags().StringVar(&weather, "weather", "", "Override the forecast (clear|cloudy|rain|storm|extreme)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the plan without scheduling, texting, or learning")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the plan as JSON")

	return cmd
}
