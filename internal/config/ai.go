package config

import "time"

const (
	DefaultGenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultGenAIModel   = "gemini-2.0-flash-001"
)

// AIConfig holds the generation backend settings
type AIConfig struct {
	APIKey           string `mapstructure:"api_key" json:"-"` // Never serialize
	BaseURL          string `mapstructure:"base_url" json:"baseUrl"`
	Model            string `mapstructure:"model" json:"model"`
	TimeoutMS        int    `mapstructure:"timeout_ms" json:"timeoutMs"`
	MaxRetries       int    `mapstructure:"max_retries" json:"maxRetries"`
	InitialBackoffMS int    `mapstructure:"initial_backoff_ms" json:"initialBackoffMs"`
	MaxBackoffMS     int    `mapstructure:"max_backoff_ms" json:"maxBackoffMs"`
}

// DefaultAIConfig returns the defaults without an API key
func DefaultAIConfig() AIConfig {
	return AIConfig{
		BaseURL:          DefaultGenAIBaseURL,
		Model:            DefaultGenAIModel,
		TimeoutMS:        30000,
		MaxRetries:       2,
		InitialBackoffMS: 500,
		MaxBackoffMS:     4000,
	}
}

// IsEnabled returns true if the AI API is configured
func (c AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func (c AIConfig) Timeout() time.Duration        { return GetDuration(c.TimeoutMS) }
func (c AIConfig) InitialBackoff() time.Duration { return GetDuration(c.InitialBackoffMS) }
func (c AIConfig) MaxBackoff() time.Duration     { return GetDuration(c.MaxBackoffMS) }
