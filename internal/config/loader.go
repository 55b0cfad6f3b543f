package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"brandaudit/internal/model"
	"brandaudit/internal/quality"
	"brandaudit/internal/tier"
)

// Load reads configs/config.yaml (merged with config.{APP_ENVIRONMENT}.yaml),
// environment overrides and .env. A missing config file is not an error.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName("config." + env)
	_ = v.MergeInConfig() // optional

	return build(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindKeys(v)
	v.SetDefault("genai.max_retries", DefaultAIConfig().MaxRetries)
	return v
}

// bindKeys makes AutomaticEnv see keys that are absent from the file
func bindKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.port", "server.static_dir", "server.cors_origins", "server.trusted_proxies",
		"genai.api_key", "genai.base_url", "genai.model", "genai.timeout_ms", "genai.max_retries",
		"knowledge.path", "quality.preset", "tiers.table", "prompt.peer_review_min_score",
		"redis.address", "redis.password", "redis.rate_limit",
		"logging.level", "logging.format",
	} {
		_ = v.BindEnv(key)
	}
}

func build(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up to the directory holding go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars resolves ${VAR} placeholders in string values
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok || !strings.Contains(strVal, "$") {
			continue
		}
		if expanded := os.ExpandEnv(strVal); expanded != strVal {
			v.Set(key, expanded)
		}
	}
}

// overrideEmptyConfig honours the conventional variable names the
// deployment already sets.
func overrideEmptyConfig(cfg *Config) {
	if cfg.GenAI.APIKey == "" {
		cfg.GenAI.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Server.Port == 0 {
		if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			cfg.Server.Port = p
		}
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		if val := os.Getenv("CORS_ALLOWED_ORIGINS"); val != "" {
			for _, o := range strings.Split(val, ",") {
				if o = strings.TrimSpace(o); o != "" {
					cfg.Server.CORSOrigins = append(cfg.Server.CORSOrigins, o)
				}
			}
		}
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = strings.TrimPrefix(os.Getenv("REDIS_URI"), "redis://")
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "brand-audit"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Server.ReadTimeoutMS == 0 {
		cfg.Server.ReadTimeoutMS = 10000
	}
	if cfg.Server.WriteTimeoutMS == 0 {
		cfg.Server.WriteTimeoutMS = 90000
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 64 << 10
	}

	def := DefaultAIConfig()
	if cfg.GenAI.BaseURL == "" {
		cfg.GenAI.BaseURL = def.BaseURL
	}
	if cfg.GenAI.Model == "" {
		cfg.GenAI.Model = def.Model
	}
	if cfg.GenAI.TimeoutMS == 0 {
		cfg.GenAI.TimeoutMS = def.TimeoutMS
	}
	if cfg.GenAI.InitialBackoffMS == 0 {
		cfg.GenAI.InitialBackoffMS = def.InitialBackoffMS
	}
	if cfg.GenAI.MaxBackoffMS == 0 {
		cfg.GenAI.MaxBackoffMS = def.MaxBackoffMS
	}

	if cfg.Knowledge.Path == "" {
		cfg.Knowledge.Path = "baza-wiedzy.txt"
	}

	if cfg.Prompt.MaxAnswerRunes == 0 {
		cfg.Prompt.MaxAnswerRunes = 2000
	}
	if cfg.Prompt.MaxNameRunes == 0 {
		cfg.Prompt.MaxNameRunes = 120
	}

	if cfg.Redis.RateWindowSec == 0 {
		cfg.Redis.RateWindowSec = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	if cfg.GenAI.MaxRetries < 0 {
		return fmt.Errorf("genai.max_retries must not be negative")
	}
	if cfg.GenAI.MaxBackoffMS < cfg.GenAI.InitialBackoffMS {
		return fmt.Errorf("genai.max_backoff_ms must be at least genai.initial_backoff_ms")
	}
	if _, err := quality.PresetByName(cfg.Quality.Preset); err != nil {
		return fmt.Errorf("quality.preset: %w", err)
	}
	if cfg.Quality.Language != "" {
		if _, ok := quality.Languages[cfg.Quality.Language]; !ok {
			return fmt.Errorf("quality.language: unknown language %q", cfg.Quality.Language)
		}
	}
	if _, err := tier.ByName(cfg.Tiers.Table); err != nil {
		return fmt.Errorf("tiers.table: %w", err)
	}
	if cfg.Prompt.PeerReviewMinScore < 0 || cfg.Prompt.PeerReviewMinScore > model.MaxScore {
		return fmt.Errorf("prompt.peer_review_min_score must be in [0,%d]", model.MaxScore)
	}
	if cfg.Redis.RateLimit < 0 {
		return fmt.Errorf("redis.rate_limit must not be negative")
	}
	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
