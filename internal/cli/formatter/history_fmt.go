package formatter

import (
	"fmt"

	"github.com/Keto24/saturday-planner/internal/domain"
)

// FormatHistory renders recent plan runs as an aligned table, newest first.
func FormatHistory(runs []*domain.PlanRun) string {
	if len(runs) == 0 {
		return Dim("No plans yet. Run 'saturday plan' to create one.") + "\n"
	}

	tableRows := make([][]string, 0, len(runs))
	for _, run := range runs {
		flag := ""
		if run.Degraded {
			flag = StyleYellow.Render("△ degraded")
		}
		tableRows = append(tableRows, []string{
			Dim(HumanTimestamp(run.CreatedAt)),
			StyleFg.Render(run.ChosenName),
			CategoryBadge(run.ChosenCategory),
			WeatherBadge(run.Weather),
			StyleFg.Render(fmt.Sprintf("%.2f", run.Score)),
			flag,
		})
	}

	return Header("Plan History") + "\n" +
		RenderTable([]string{"WHEN", "VENUE", "CATEGORY", "WEATHER", "SCORE", ""}, tableRows)
}
