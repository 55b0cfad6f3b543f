// Package knowledge loads the knowledge-base text blended into every
// directive. It is read once at startup and never mutated.
package knowledge

import (
	"fmt"
	"os"
	"strings"

	"brandaudit/internal/logger"
)

// DefaultPlaceholder stands in for the knowledge text when loading failed
const DefaultPlaceholder = "[Błąd ładowania bazy wiedzy]"

// Loader reads the knowledge text from some source
type Loader interface {
	Load() (string, error)
	Source() string
}

// FileLoader reads a UTF-8 text file
type FileLoader struct {
	Path string
}

func (f FileLoader) Load() (string, error) {
	if f.Path == "" {
		return "", fmt.Errorf("knowledge base path not configured")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("read knowledge base: %w", err)
	}
	text := strings.TrimPrefix(string(b), "\uFEFF")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("knowledge base %s is empty", f.Path)
	}
	return text, nil
}

func (f FileLoader) Source() string { return f.Path }

// StaticLoader returns fixed text
type StaticLoader string

func (s StaticLoader) Load() (string, error) { return string(s), nil }

func (StaticLoader) Source() string { return "static" }

// Base is the loaded knowledge text
type Base struct {
	Text     string
	Degraded bool
	Source   string
}

// LoadOrPlaceholder never fails: when the loader errors the service still
// starts, with placeholder as the knowledge text.
func LoadOrPlaceholder(loader Loader, placeholder string, log logger.Logger) Base {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	text, err := loader.Load()
	if err != nil {
		log.WithError(err).Warn("knowledge base unavailable, continuing with placeholder", map[string]interface{}{
			"source": loader.Source(),
		})
		return Base{Text: placeholder, Degraded: true, Source: loader.Source()}
	}
	log.Info("knowledge base loaded", map[string]interface{}{
		"source": loader.Source(),
		"bytes":  len(text),
	})
	return Base{Text: text, Source: loader.Source()}
}
