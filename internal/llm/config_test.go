package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, 0.2, cfg.Tasks[TaskPlanGenerate].Temperature)
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("BUILDPLAN_LLM_TIMEOUT_MS", "9000")
	t.Setenv("BUILDPLAN_LLM_PLAN_GENERATE_TIMEOUT_MS", "120000")
	t.Setenv("BUILDPLAN_LLM_SUGGEST_TIMEOUT_MS", "7000")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 120000, cfg.TaskTimeout(TaskPlanGenerate))
	assert.Equal(t, 7000, cfg.TaskTimeout(TaskSuggest))
	assert.Equal(t, 8000, cfg.TaskTimeout(TaskTicketClassify))
	assert.Equal(t, 9000, cfg.TaskTimeout("unknown"))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	t.Setenv("BUILDPLAN_LLM_SUGGEST_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 20000, cfg.TaskTimeout(TaskSuggest))
}

func TestLoadConfig_OpenAIProvider(t *testing.T) {
	t.Setenv("BUILDPLAN_LLM_PROVIDER", "OpenAI")
	t.Setenv("BUILDPLAN_LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := LoadConfig()

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Endpoint)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "sk-test", cfg.APIKey)
}

func TestLoadConfig_ExplicitEndpointWinsOverProviderDefault(t *testing.T) {
	t.Setenv("BUILDPLAN_LLM_PROVIDER", "openai")
	t.Setenv("BUILDPLAN_LLM_ENDPOINT", "http://gateway.local/v1")
	t.Setenv("BUILDPLAN_LLM_MAX_RETRIES", "0")

	cfg := LoadConfig()

	assert.Equal(t, "http://gateway.local/v1", cfg.Endpoint)
	assert.Equal(t, 0, cfg.MaxRetries)
}
