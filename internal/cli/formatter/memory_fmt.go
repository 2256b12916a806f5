package formatter

import (
	"fmt"

	"github.com/Keto24/saturday-planner/internal/domain"
)

// FormatWeights renders the preference memory as an aligned table.
func FormatWeights(rows []domain.PreferenceWeight) string {
	if len(rows) == 0 {
		return Dim("No preferences learned yet. Plans and feedback will build them.") + "\n"
	}

	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		venue := Dim("--")
		if r.VenueID != "" {
			venue = StyleFg.Render(r.VenueID)
		}
		tableRows = append(tableRows, []string{
			CategoryBadge(r.Category),
			venue,
			WeightStyle(r.Weight).Render(fmt.Sprintf("%+.2f", r.Weight)),
			Dim(HumanTimestamp(r.UpdatedAt)),
		})
	}

	return Header("Preference Memory") + "\n" +
		RenderTable([]string{"CATEGORY", "VENUE", "WEIGHT", "UPDATED"}, tableRows)
}
