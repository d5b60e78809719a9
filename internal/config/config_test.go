package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleProxyConfig = `
llm:
  provider: proxy
  endpoint: https://chat-worker.example.dev/
  system_prompt: You are a test advisor.
advisor:
  name: Test Advisor
server:
  host: 127.0.0.1
  port: "9090"
log:
  level: debug
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	if _, err := tmp.WriteString(body); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()
	return tmp.Name()
}

// TestLoad_FromConfigPath verifies that Load reads the file named by CONFIG_PATH.
func TestLoad_FromConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, sampleProxyConfig))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "proxy", cfg.LLM.Provider)
	require.Equal(t, "https://chat-worker.example.dev/", cfg.LLM.Endpoint)
	require.Equal(t, "You are a test advisor.", cfg.LLM.SystemPrompt)
	require.Equal(t, "Test Advisor", cfg.Advisor.Name)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, "debug", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "proxy", cfg.LLM.Provider)
	require.Equal(t, DefaultSystemPrompt, cfg.LLM.SystemPrompt)
	require.Equal(t, "AI Beauty Advisor", cfg.Advisor.Name)
	require.Equal(t, "8080", cfg.Server.Port)
	require.ErrorIs(t, cfg.Validate(), ErrMissingEndpoint)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, sampleProxyConfig))
	t.Setenv("ADVISOR_LLM_ENDPOINT", "http://localhost:8787/")
	t.Setenv("ADVISOR_ADVISOR_NAME", "Env Advisor")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8787/", cfg.LLM.Endpoint)
	require.Equal(t, "Env Advisor", cfg.Advisor.Name)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "llm: [unterminated"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate_OpenAINeedsKey(t *testing.T) {
	cfg := Config{LLM: LLMConfig{Provider: "openai"}}
	require.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)

	cfg.LLM.APIKey = "sk-test"
	require.NoError(t, cfg.Validate())
}
