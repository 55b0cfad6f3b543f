package service

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// OfflineGenerator stands in for Gemini when no API key is configured so the
// front-end can still be exercised end to end.
type OfflineGenerator struct{}

func (OfflineGenerator) Generate(ctx context.Context, directive string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("[Tryb offline] Klucz GEMINI_API_KEY nie jest skonfigurowany, więc analiza nie została wygenerowana. "+
		"Instrukcja dla modelu została przygotowana poprawnie (%d znaków).", utf8.RuneCountInString(directive)), nil
}
