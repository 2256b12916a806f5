package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Keto24/saturday-planner/internal/llm"
)

// maxSMSLen keeps the SMS body inside a single message segment.
const maxSMSLen = 160

// Narrative source values.
const (
	SourceLLM           = "llm"
	SourceDeterministic = "deterministic"
)

// Narrative is the phrased output for a completed plan: a friendly
// multi-line message and a one-line SMS body.
type Narrative struct {
	Message string `json:"message"`
	SMS     string `json:"sms"`
	Source  string `json:"source"` // "llm" or "deterministic"
}

// NarrativeService phrases completed plans for humans.
type NarrativeService interface {
	// Compose renders the trace into a plan message and an SMS line.
	// It never fails: any LLM problem falls back to deterministic text.
	Compose(ctx context.Context, trace PlanTrace) *Narrative
}

type narrativeService struct {
	client  llm.Client
	enabled bool
}

// NewNarrativeService creates a NarrativeService backed by an LLM client.
// With enabled false (or a nil client) it goes straight to deterministic
// phrasing.
func NewNarrativeService(client llm.Client, enabled bool) NarrativeService {
	return &narrativeService{client: client, enabled: enabled}
}

// narrativeLLMResponse is the JSON structure expected from the LLM.
type narrativeLLMResponse struct {
	Message string `json:"message"`
	SMS     string `json:"sms"`
}

func (s *narrativeService) Compose(ctx context.Context, trace PlanTrace) *Narrative {
	if !s.enabled || s.client == nil {
		return DeterministicNarrative(trace)
	}

	traceJSON, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return DeterministicNarrative(trace)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskNarrate,
		SystemPrompt: narrateSystemPrompt,
		UserPrompt:   "Here is the plan trace:\n\n" + string(traceJSON),
	})
	if err != nil {
		return DeterministicNarrative(trace)
	}

	parsed, err := llm.ExtractJSON[narrativeLLMResponse](resp.Text, validateNarrativeResponse)
	if err != nil {
		return DeterministicNarrative(trace)
	}

	// The message must be about the venue the engine actually chose.
	if !strings.Contains(strings.ToLower(parsed.Message), strings.ToLower(trace.Chosen.Name)) {
		return DeterministicNarrative(trace)
	}

	return &Narrative{
		Message: strings.TrimSpace(parsed.Message),
		SMS:     strings.TrimSpace(parsed.SMS),
		Source:  SourceLLM,
	}
}

func validateNarrativeResponse(resp narrativeLLMResponse) error {
	if strings.TrimSpace(resp.Message) == "" {
		return fmt.Errorf("message field is required")
	}
	if strings.TrimSpace(resp.SMS) == "" {
		return fmt.Errorf("sms field is required")
	}
	if len(resp.SMS) > maxSMSLen {
		return fmt.Errorf("sms must fit one segment (%d chars), got %d", maxSMSLen, len(resp.SMS))
	}
	return nil
}
