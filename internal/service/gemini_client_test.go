package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandaudit/internal/config"
	"brandaudit/internal/logger"
)

const okBody = `{"candidates":[{"content":{"parts":[{"text":"Anno, "},{"text":"analiza."}]},"finishReason":"STOP"}]}`

func testAIConfig(url string) config.AIConfig {
	return config.AIConfig{
		APIKey:           "test-key",
		BaseURL:          url,
		Model:            "gemini-test",
		TimeoutMS:        2000,
		MaxRetries:       2,
		InitialBackoffMS: 1,
		MaxBackoffMS:     5,
	}
}

// scriptedServer answers with the given statuses in order, then 200 okBody
func scriptedServer(t *testing.T, statuses ...int) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(atomic.AddInt32(&hits, 1))
		if n <= len(statuses) {
			w.WriteHeader(statuses[n-1])
			w.Write([]byte(`{"error":{"message":"try later"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(okBody))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestGeminiClient_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotReq geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(okBody))
	}))
	defer srv.Close()

	c := NewGeminiClient(testAIConfig(srv.URL), logger.NewTestLogger(t))
	text, err := c.Generate(context.Background(), "dyrektywa")

	require.NoError(t, err)
	assert.Equal(t, "Anno, analiza.", text)
	assert.Equal(t, "/gemini-test:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotReq.Contents, 1)
	assert.Equal(t, "dyrektywa", gotReq.Contents[0].Parts[0].Text)
}

func TestGeminiClient_RetriesTransient(t *testing.T) {
	tests := []struct {
		name     string
		statuses []int
	}{
		{"service unavailable", []int{http.StatusServiceUnavailable, http.StatusServiceUnavailable}},
		{"rate limited", []int{http.StatusTooManyRequests}},
		{"internal error", []int{http.StatusInternalServerError}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := scriptedServer(t, tt.statuses...)
			c := NewGeminiClient(testAIConfig(srv.URL), logger.NewTestLogger(t))

			text, err := c.Generate(context.Background(), "x")

			require.NoError(t, err)
			assert.Equal(t, "Anno, analiza.", text)
			assert.EqualValues(t, len(tt.statuses)+1, atomic.LoadInt32(hits))
		})
	}
}

func TestGeminiClient_GivesUpAfterMaxRetries(t *testing.T) {
	srv, hits := scriptedServer(t, 503, 503, 503, 503)
	c := NewGeminiClient(testAIConfig(srv.URL), logger.NewNoOpLogger())

	_, err := c.Generate(context.Background(), "x")

	require.Error(t, err)
	var uerr *UpstreamError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, 3, uerr.Attempts)
	assert.Equal(t, 503, uerr.Status)
	assert.EqualValues(t, 3, atomic.LoadInt32(hits))
}

func TestGeminiClient_PermanentFailuresAreNotRetried(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"bad request", http.StatusBadRequest, `{"error":{}}`},
		{"forbidden", http.StatusForbidden, `{"error":{}}`},
		{"malformed body", http.StatusOK, `{"candidates":`},
		{"no candidates", http.StatusOK, `{"candidates":[]}`},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`},
		{"empty parts", http.StatusOK, `{"candidates":[{"content":{"parts":[]},"finishReason":"MAX_TOKENS"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewGeminiClient(testAIConfig(srv.URL), logger.NewNoOpLogger())
			_, err := c.Generate(context.Background(), "x")

			require.Error(t, err)
			assert.True(t, IsUpstream(err))
			assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
		})
	}
}

func TestGeminiClient_TransportErrorIsRetriedWithoutLeakingKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := testAIConfig(url)
	cfg.MaxRetries = 1
	c := NewGeminiClient(cfg, logger.NewNoOpLogger())

	_, err := c.Generate(context.Background(), "x")

	var uerr *UpstreamError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, 2, uerr.Attempts)
	assert.Zero(t, uerr.Status)
	assert.NotContains(t, err.Error(), "test-key")
}

func TestGeminiClient_AttemptTimeoutIsTransient(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		w.Write([]byte(okBody))
	}))
	defer srv.Close()

	cfg := testAIConfig(srv.URL)
	cfg.TimeoutMS = 50
	c := NewGeminiClient(cfg, logger.NewNoOpLogger())

	text, err := c.Generate(context.Background(), "x")

	require.NoError(t, err)
	assert.Equal(t, "Anno, analiza.", text)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestGeminiClient_CancellationStopsRetries(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewGeminiClient(testAIConfig(srv.URL), logger.NewNoOpLogger())
	start := time.Now()
	_, err := c.Generate(ctx, "x")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, IsUpstream(err))
	assert.Less(t, time.Since(start), time.Second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}
