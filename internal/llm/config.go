package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskNarrate turns a plan trace into the friendly plan message
	// and the one-line SMS that goes with it.
	TaskNarrate TaskType = "narrate"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig pointed at NVIDIA's hosted Nemotron.
// Phrasing is disabled by default; plans get deterministic text instead.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "https://integrate.api.nvidia.com/v1",
		Model:      "nvidia/llama-3.3-nemotron-super-49b-v1",
		TimeoutMs:  20000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskNarrate: {Temperature: 0.7, MaxTokens: 600, TimeoutMs: 20000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values. SATURDAY_LLM=1 is
// the single switch that turns phrasing on.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("SATURDAY_LLM"); v != "" {
		cfg.Enabled = v == "1"
	}
	if v := os.Getenv("SATURDAY_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SATURDAY_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("SATURDAY_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SATURDAY_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := os.Getenv("NEMO_API_KEY"); v != "" {
		// NEMO_API_KEY predates the SATURDAY_LLM_* names.
		cfg.APIKey = v
	}
	if v := os.Getenv("SATURDAY_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("SATURDAY_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskNarrate, "SATURDAY_LLM_NARRATE_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
