// Package app wires configuration into the running service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"brandaudit/internal/cache"
	"brandaudit/internal/config"
	"brandaudit/internal/knowledge"
	"brandaudit/internal/logger"
	"brandaudit/internal/metrics"
	"brandaudit/internal/prompt"
	"brandaudit/internal/quality"
	"brandaudit/internal/service"
	"brandaudit/internal/tier"
	"brandaudit/internal/transport/rest"
	"brandaudit/internal/transport/rest/middleware"
)

type App struct {
	Config      *config.Config
	Logger      logger.Logger
	Knowledge   knowledge.Base
	Analysis    *service.AnalysisService
	RateLimiter cache.RateLimiter
	Generator   string

	trustedProxies middleware.TrustedProxies
	redis          *redis.Client
}

// New builds the service graph. A missing knowledge base degrades the
// service instead of failing; an unreachable Redis disables rate limiting.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	kb := knowledge.LoadOrPlaceholder(knowledge.FileLoader{Path: cfg.Knowledge.Path}, cfg.Knowledge.Placeholder, log)
	if kb.Degraded {
		metrics.KnowledgeBaseDegraded.Set(1)
	} else {
		metrics.KnowledgeBaseDegraded.Set(0)
	}

	trusted, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("server.trusted_proxies: %w", err)
	}

	gen, genName := NewGenerator(cfg.GenAI, log)
	svc, err := NewAnalysisService(cfg, kb, gen, log)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Logger:    log,
		Knowledge: kb,
		Analysis:  svc,
		Generator: genName,

		trustedProxies: trusted,
	}

	if cfg.Redis.RateLimitEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, rate limiting disabled", map[string]interface{}{
				"address": cfg.Redis.Address,
			})
			rdb.Close()
		} else {
			a.redis = rdb
			a.RateLimiter = cache.NewRateLimitCache(rdb, cfg.Redis.RateLimit, time.Duration(cfg.Redis.RateWindowSec)*time.Second)
			log.Info("rate limiting enabled", map[string]interface{}{
				"limit":     cfg.Redis.RateLimit,
				"windowSec": cfg.Redis.RateWindowSec,
			})
		}
	}

	return a, nil
}

// NewGenerator picks Gemini when an API key is configured, the offline
// generator otherwise.
func NewGenerator(cfg config.AIConfig, log logger.Logger) (service.Generator, string) {
	if !cfg.IsEnabled() {
		log.Warn("GEMINI_API_KEY not set, using offline generator", nil)
		return service.OfflineGenerator{}, "offline"
	}
	return service.NewGeminiClient(cfg, log), "gemini"
}

// NewAnalysisService builds the pipeline from configuration
func NewAnalysisService(cfg *config.Config, kb knowledge.Base, gen service.Generator, log logger.Logger) (*service.AnalysisService, error) {
	classifier, err := NewClassifier(cfg.Quality)
	if err != nil {
		return nil, err
	}
	table, err := tier.ByName(cfg.Tiers.Table)
	if err != nil {
		return nil, err
	}
	return service.NewAnalysisService(classifier, table, NewAssembler(cfg.Prompt), kb, gen, log), nil
}

// NewClassifier applies the quality section on top of the built-in language
func NewClassifier(cfg config.QualityConfig) (*quality.Classifier, error) {
	thresholds, err := quality.PresetByName(cfg.Preset)
	if err != nil {
		return nil, err
	}

	lang := quality.Polish
	if cfg.Language != "" {
		l, ok := quality.Languages[cfg.Language]
		if !ok {
			return nil, fmt.Errorf("unknown quality language %q", cfg.Language)
		}
		lang = l
	}
	if cfg.Vowels != "" {
		lang.Vowels = cfg.Vowels
	}
	if cfg.Consonants != "" {
		lang.Consonants = cfg.Consonants
	}
	if len(cfg.LowQualityPhrases) > 0 {
		lang.LowQualityPhrases = cfg.LowQualityPhrases
	}

	return quality.NewClassifier(quality.WithLanguage(lang), quality.WithThresholds(thresholds)), nil
}

func NewAssembler(cfg config.PromptConfig) *prompt.Assembler {
	opts := []prompt.Option{
		prompt.WithSanitizer(prompt.Sanitizer{
			MaxAnswerRunes: cfg.MaxAnswerRunes,
			MaxNameRunes:   cfg.MaxNameRunes,
		}),
	}
	if cfg.PeerReviewMinScore > 0 {
		opts = append(opts, prompt.WithPeerReview(cfg.PeerReviewMinScore))
	}
	return prompt.NewAssembler(opts...)
}

// Router returns the HTTP handler for the app
func (a *App) Router() http.Handler {
	return rest.NewRouter(&rest.Container{
		Analyzer:          a.Analysis,
		RateLimiter:       a.RateLimiter,
		Logger:            a.Logger,
		CORSOrigins:       a.Config.Server.CORSOrigins,
		TrustedProxies:    a.trustedProxies,
		StaticDir:         a.Config.Server.StaticDir,
		MaxBodyBytes:      a.Config.Server.MaxBodyBytes,
		KnowledgeDegraded: a.Knowledge.Degraded,
		Generator:         a.Generator,
	})
}

// Close releases external connections
func (a *App) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}
