package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskPlanGenerate   TaskType = "plan_generate"
	TaskSuggest        TaskType = "suggest"
	TaskTicketClassify TaskType = "ticket_classify"
)

type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled        bool
	LogCalls       bool
	Provider       Provider
	Endpoint       string
	Model          string
	APIKey         string
	TimeoutMs      int
	MaxRetries     int
	RetryInitialMs int
	Tasks          map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:        false,
		LogCalls:       false,
		Provider:       ProviderOllama,
		Endpoint:       "http://localhost:11434",
		Model:          "llama3.2",
		TimeoutMs:      15000,
		MaxRetries:     2,
		RetryInitialMs: 500,
		Tasks: map[TaskType]TaskConfig{
			TaskPlanGenerate:   {Temperature: 0.2, MaxTokens: 8192, TimeoutMs: 90000},
			TaskSuggest:        {Temperature: 0.5, MaxTokens: 1024, TimeoutMs: 20000},
			TaskTicketClassify: {Temperature: 0.1, MaxTokens: 256, TimeoutMs: 8000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("BUILDPLAN_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("BUILDPLAN_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("BUILDPLAN_LLM_PROVIDER"); v != "" {
		switch Provider(strings.ToLower(v)) {
		case ProviderOpenAI:
			cfg.Provider = ProviderOpenAI
			cfg.Endpoint = "https://api.openai.com/v1"
			cfg.Model = "gpt-4o-mini"
		case ProviderOllama:
			cfg.Provider = ProviderOllama
		}
	}
	if v := os.Getenv("BUILDPLAN_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("BUILDPLAN_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	cfg.APIKey = os.Getenv("BUILDPLAN_LLM_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if v := os.Getenv("BUILDPLAN_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("BUILDPLAN_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskPlanGenerate, "BUILDPLAN_LLM_PLAN_GENERATE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskSuggest, "BUILDPLAN_LLM_SUGGEST_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskTicketClassify, "BUILDPLAN_LLM_TICKET_CLASSIFY_TIMEOUT_MS")

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
