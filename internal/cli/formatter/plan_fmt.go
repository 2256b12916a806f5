package formatter

import (
	"fmt"
	"strings"

	"github.com/Keto24/saturday-planner/internal/contract"
)

// FormatPlan formats a PlanResponse into a styled plan card.
func FormatPlan(resp *contract.PlanResponse) string {
	var b strings.Builder

	// Forecast line.
	b.WriteString(WeatherBadge(resp.Weather))
	if resp.WeatherFallbackUsed {
		b.WriteString("  " + StyleYellow.Render("(forecast unavailable, assumed clear)"))
	}
	b.WriteString("\n\n")

	// Scheduled slot.
	b.WriteString(Header(PlanDate(resp.ScheduledFor)))
	b.WriteString("\n\n")

	// Chosen venue.
	v := resp.Chosen.Venue
	b.WriteString(fmt.Sprintf("%s  %s\n", Bold(v.DisplayName()), CategoryBadge(v.Category)))
	if v.Address != "" {
		b.WriteString(fmt.Sprintf("   %s\n", Dim(v.Address)))
	}
	b.WriteString(fmt.Sprintf("   %s  %s  %s\n",
		RatingTag(v.Rating),
		PriceTag(v.PriceLevel),
		Dim(fmt.Sprintf("score %.2f", resp.Chosen.Score)),
	))
	for _, reason := range resp.Chosen.Reasons {
		b.WriteString(fmt.Sprintf("   %s %s\n",
			StyleYellow.Render("WHY:"),
			Dim(reason.Message),
		))
	}

	// Runner-ups.
	if len(resp.RunnerUps) > 0 {
		b.WriteString("\n")
		b.WriteString(Dim("Also considered:") + "\n")
		for i, ru := range resp.RunnerUps {
			b.WriteString(fmt.Sprintf("   %s %s  %s\n",
				Dim(fmt.Sprintf("%d.", i+2)),
				StyleFg.Render(ru.Venue.DisplayName()),
				Dim(fmt.Sprintf("(%.2f)", ru.Score)),
			))
		}
	}

	// Narrative.
	if resp.Narrative != "" {
		b.WriteString("\n")
		b.WriteString(StyleFg.Render(resp.Narrative))
		b.WriteString("\n")
	}

	// Delivery lines.
	if resp.CalendarEventID != "" {
		b.WriteString(fmt.Sprintf("\n%s %s\n",
			StyleGreen.Render("✔ Calendar:"),
			Dim(resp.CalendarEventID),
		))
	}
	if resp.SMSBody != "" {
		prefix := "\n"
		if resp.CalendarEventID != "" {
			prefix = ""
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n",
			prefix,
			StyleBlue.Render("✉ Text:"),
			Dim(resp.SMSBody),
		))
	}

	// Warnings.
	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			b.WriteString(StyleYellow.Render(fmt.Sprintf("  WARNING: %s", w)) + "\n")
		}
	}

	return RenderBox("Saturday Plan", b.String())
}

// FormatFeedback renders the confirmation line for a recorded preference
// adjustment.
func FormatFeedback(resp *contract.FeedbackResponse) string {
	target := string(resp.Category)
	if resp.VenueID != "" {
		target += " / " + resp.VenueID
	}
	weight := WeightStyle(resp.NewWeight).Render(fmt.Sprintf("%+.2f", resp.NewWeight))
	return fmt.Sprintf("%s %s is now %s\n", StyleGreen.Render("✔ Noted."), Bold(target), weight)
}
