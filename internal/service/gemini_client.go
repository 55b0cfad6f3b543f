package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"brandaudit/internal/config"
	"brandaudit/internal/logger"
	"brandaudit/internal/metrics"
)

// Generator produces the narrative for an assembled directive
type Generator interface {
	Generate(ctx context.Context, directive string) (string, error)
}

// maxResponseBytes caps how much of an upstream body is read
const maxResponseBytes = 4 << 20

// GeminiClient calls the generateContent endpoint. Transient failures
// (transport errors, 429, 5xx) are retried with exponential backoff.
type GeminiClient struct {
	config config.AIConfig
	client *http.Client
	log    logger.Logger
	tracer trace.Tracer
}

// NewGeminiClient creates a client; cfg.APIKey must be set
func NewGeminiClient(cfg config.AIConfig, log logger.Logger) *GeminiClient {
	return &GeminiClient{
		config: cfg,
		client: &http.Client{},
		log:    log.WithFields(map[string]interface{}{"component": "gemini", "model": cfg.Model}),
		tracer: otel.Tracer("brandaudit/service"),
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// attemptError is the outcome of one failed call
type attemptError struct {
	status    int
	transient bool
	err       error
}

func (e *attemptError) Error() string { return e.err.Error() }

func (e *attemptError) Unwrap() error { return e.err }

// Generate sends the directive and returns the generated text verbatim
func (c *GeminiClient) Generate(ctx context.Context, directive string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "gemini.generate", trace.WithAttributes(
		attribute.String("genai.model", c.config.Model),
		attribute.Int("genai.directive_bytes", len(directive)),
	))
	defer span.End()

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: directive}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode gemini request: %w", err)
	}

	maxAttempts := c.config.MaxRetries + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	backoff := c.config.InitialBackoff()
	var last *attemptError
	attempts := 0

	for attempts < maxAttempts {
		if attempts > 0 {
			c.log.Warn("retrying generation", map[string]interface{}{
				"attempt": attempts + 1,
				"backoff": backoff.String(),
				"status":  last.status,
				"error":   last.err.Error(),
			})
			if err := sleep(ctx, backoff); err != nil {
				break
			}
			backoff *= 2
			if ceiling := c.config.MaxBackoff(); ceiling > 0 && backoff > ceiling {
				backoff = ceiling
			}
		}

		attempts++
		text, aerr := c.attempt(ctx, body)
		if aerr == nil {
			metrics.GenAIAttempts.WithLabelValues("success").Inc()
			span.SetAttributes(attribute.Int("genai.attempts", attempts))
			return text, nil
		}
		last = aerr

		if !aerr.transient || ctx.Err() != nil {
			metrics.GenAIAttempts.WithLabelValues("permanent").Inc()
			break
		}
		metrics.GenAIAttempts.WithLabelValues("transient").Inc()
	}

	cause := error(last)
	if ctxErr := ctx.Err(); ctxErr != nil {
		cause = fmt.Errorf("%w (last attempt: %v)", ctxErr, last)
	}
	uerr := &UpstreamError{Attempts: attempts, Status: last.status, Err: cause}
	span.SetAttributes(attribute.Int("genai.attempts", attempts))
	span.RecordError(uerr)
	span.SetStatus(codes.Error, "generation failed")
	return "", uerr
}

func (c *GeminiClient) attempt(ctx context.Context, body []byte) (string, *attemptError) {
	if c.config.TimeoutMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout())
		defer cancel()
	}

	endpoint := fmt.Sprintf("%s?key=%s", c.config.ModelEndpoint(c.config.Model), url.QueryEscape(c.config.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &attemptError{err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// the URL carries the key, keep it out of the error
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return "", &attemptError{transient: true, err: fmt.Errorf("gemini request: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &attemptError{status: resp.StatusCode, transient: true, err: fmt.Errorf("read gemini response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &attemptError{
			status:    resp.StatusCode,
			transient: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
			err:       fmt.Errorf("gemini returned %d: %s", resp.StatusCode, truncate(string(raw), 512)),
		}
	}

	text, err := parseGeminiResponse(raw)
	if err != nil {
		return "", &attemptError{status: resp.StatusCode, err: err}
	}
	return text, nil
}

func parseGeminiResponse(raw []byte) (string, error) {
	var gr geminiResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if gr.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini blocked the prompt: %s", gr.PromptFeedback.BlockReason)
	}
	if len(gr.Candidates) == 0 {
		return "", errors.New("empty response from Gemini")
	}

	var sb strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from Gemini (finish reason %q)", gr.Candidates[0].FinishReason)
	}
	return sb.String(), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
