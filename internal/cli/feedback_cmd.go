package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Keto24/saturday-planner/internal/cli/formatter"
	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/domain"
)

func newFeedbackCmd(app *App) *cobra.Command {
	var category, venueID string
	var delta float64
	var like, dislike bool

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Teach the planner what you liked or want less of",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.FeedbackRequest{
				Category: domain.Category(category),
				VenueID:  venueID,
				Delta:    delta,
			}

			switch {
			case like && dislike:
				return fmt.Errorf("--like and --dislike are mutually exclusive")
			case like:
				req = contract.NewFeedbackRequest(category, venueID, true)
			case dislike:
				req = contract.NewFeedbackRequest(category, venueID, false)
			case !cmd.Flags().Changed("delta"):
				if category != "" {
					return fmt.Errorf("pass --delta, --like, or --dislike with --category")
				}
				if !app.interactive() {
					return fmt.Errorf("feedback needs flags when not run from a terminal")
				}
				var err error
				req, err = collectFeedbackForm()
				if err != nil {
					return err
				}
			}

			resp, err := app.Feedback.Record(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFeedback(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Activity category the feedback applies to")
	cmd.Flags().StringVar(&venueID, "venue", "", "Scope the feedback to one venue ID")
	cmd.Flags().Float64Var(&delta, "delta", 0, "Weight adjustment, e.g. 1.0 or -0.5")
	cmd.Flags().BoolVar(&like, "like", false, "Shorthand for --delta 1.0")
	cmd.Flags().BoolVar(&dislike, "dislike", false, "Shorthand for --delta -1.0")

	return cmd
}

// collectFeedbackForm asks for the category, an optional venue, and a
// like/dislike answer mapped onto a ±1.0 delta.
func collectFeedbackForm() (contract.FeedbackRequest, error) {
	var category, venueID string
	liked := true

	opts := make([]huh.Option[string], 0, len(domain.AllCategories()))
	for _, c := range domain.AllCategories() {
		opts = append(opts, huh.NewOption(string(c), string(c)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(opts...).
				Value(&category),
			huh.NewInput().
				Title("Venue ID (blank for the whole category)").
				Value(&venueID),
			huh.NewConfirm().
				Title("How was it?").
				Affirmative("Loved it").
				Negative("Not for me").
				Value(&liked),
		),
	).WithTheme(saturdayHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return contract.FeedbackRequest{}, err
	}
	return contract.NewFeedbackRequest(category, venueID, liked), nil
}
