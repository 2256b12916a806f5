package intelligence

import (
	"fmt"
	"strings"
)

// DeterministicNarrative phrases a plan trace without the LLM. Used
// whenever phrasing is disabled or the model output cannot be trusted.
func DeterministicNarrative(trace PlanTrace) *Narrative {
	var b strings.Builder

	fmt.Fprintf(&b, "Your Saturday plan is ready: %s (%s).\n", trace.Chosen.Name, trace.Chosen.Category)
	if trace.Chosen.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", trace.Chosen.Address)
	}
	if trace.Chosen.Rating != nil {
		fmt.Fprintf(&b, "Rating: %.1f stars\n", *trace.Chosen.Rating)
	}
	fmt.Fprintf(&b, "When: %s\n", trace.ScheduledFor)
	fmt.Fprintf(&b, "Weather: %s", trace.Weather)

	for _, note := range degradedNotes(trace) {
		b.WriteString("\n")
		b.WriteString(note)
	}

	return &Narrative{
		Message: b.String(),
		SMS:     deterministicSMS(trace),
		Source:  SourceDeterministic,
	}
}

func deterministicSMS(trace PlanTrace) string {
	sms := fmt.Sprintf("Saturday plan: %s, %s", trace.Chosen.Name, trace.ScheduledFor)
	if len(sms) > maxSMSLen {
		sms = sms[:maxSMSLen]
	}
	return sms
}

func degradedNotes(trace PlanTrace) []string {
	var notes []string
	if trace.WeatherFallback {
		notes = append(notes, "Heads up: the forecast was unavailable, so the plan assumes clear weather.")
	}
	if trace.WeatherBypassed {
		notes = append(notes, "Heads up: no indoor venue matched, so this pick braves the weather.")
	}
	if trace.PriceBypassed {
		notes = append(notes, "Heads up: everything nearby ran over budget, so the price cap was relaxed.")
	}
	return notes
}
