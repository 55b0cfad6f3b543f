package config

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	GenAI     AIConfig        `mapstructure:"genai"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Quality   QualityConfig   `mapstructure:"quality"`
	Tiers     TiersConfig     `mapstructure:"tiers"`
	Prompt    PromptConfig    `mapstructure:"prompt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	StaticDir      string   `mapstructure:"static_dir"` // empty disables static files
	CORSOrigins    []string `mapstructure:"cors_origins"`
	TrustedProxies []string `mapstructure:"trusted_proxies"` // addresses or CIDRs; empty trusts no X-Forwarded-For
	ReadTimeoutMS  int      `mapstructure:"read_timeout_ms"`
	WriteTimeoutMS int      `mapstructure:"write_timeout_ms"`
	MaxBodyBytes   int64    `mapstructure:"max_body_bytes"`
}

type KnowledgeConfig struct {
	Path        string `mapstructure:"path"`
	Placeholder string `mapstructure:"placeholder"`
}

// QualityConfig selects the answer-quality preset. Letter classes and the
// filler list replace the built-in Polish ones when set.
type QualityConfig struct {
	Preset            string   `mapstructure:"preset"`
	Language          string   `mapstructure:"language"`
	Vowels            string   `mapstructure:"vowels"`
	Consonants        string   `mapstructure:"consonants"`
	LowQualityPhrases []string `mapstructure:"low_quality_phrases"`
}

type TiersConfig struct {
	Table string `mapstructure:"table"`
}

type PromptConfig struct {
	PeerReviewMinScore int `mapstructure:"peer_review_min_score"` // 0 disables
	MaxAnswerRunes     int `mapstructure:"max_answer_runes"`
	MaxNameRunes       int `mapstructure:"max_name_runes"`
}

// RedisConfig enables rate limiting when Address is set
type RedisConfig struct {
	Address       string `mapstructure:"address"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	RateLimit     int    `mapstructure:"rate_limit"`
	RateWindowSec int    `mapstructure:"rate_window_sec"`
}

// RateLimitEnabled reports whether requests should be rate limited
func (r RedisConfig) RateLimitEnabled() bool {
	return r.Address != "" && r.RateLimit > 0
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
