package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("REDIS_URI", "")

	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: test\n"))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, DefaultGenAIModel, cfg.GenAI.Model)
	assert.Equal(t, 2, cfg.GenAI.MaxRetries)
	assert.False(t, cfg.GenAI.IsEnabled())
	assert.False(t, cfg.Redis.RateLimitEnabled())
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_ExpandsAndOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("REDIS_URI", "redis://cache:6379")

	cfg, err := LoadFromFile(writeConfig(t, `
genai:
  api_key: ${GEMINI_API_KEY}
  max_retries: 0
redis:
  rate_limit: 5
`))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.GenAI.APIKey)
	assert.True(t, cfg.GenAI.IsEnabled())
	assert.Equal(t, 0, cfg.GenAI.MaxRetries)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "cache:6379", cfg.Redis.Address)
	assert.True(t, cfg.Redis.RateLimitEnabled())
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown preset", "quality:\n  preset: paranoid\n"},
		{"unknown language", "quality:\n  language: xx\n"},
		{"unknown table", "tiers:\n  table: ten-band\n"},
		{"peer review above max", "prompt:\n  peer_review_min_score: 61\n"},
		{"bad log format", "logging:\n  format: xml\n"},
		{"backoff inverted", "genai:\n  initial_backoff_ms: 5000\n  max_backoff_ms: 100\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestAIConfig_ModelEndpoint(t *testing.T) {
	c := DefaultAIConfig()
	assert.Equal(t, DefaultGenAIBaseURL+"/gemini-2.0-flash-001:generateContent", c.ModelEndpoint(c.Model))
}
