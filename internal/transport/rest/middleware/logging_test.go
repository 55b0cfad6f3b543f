package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"brandaudit/internal/logger"
)

func TestStatusRecorder(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    int
		bytes   int
	}{
		{"nothing written", func(w http.ResponseWriter, r *http.Request) {}, http.StatusOK, 0},
		{"body without header", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("hello")) }, http.StatusOK, 5},
		{"explicit status", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }, http.StatusTeapot, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record(httptest.NewRecorder())
			tt.handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.want, rec.code())
			assert.Equal(t, tt.bytes, rec.bytes)
			assert.Same(t, rec, record(rec))
		})
	}
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.NewZapAdapter(zap.New(core))

	ok := AccessLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	failing := AccessLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	failing.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/analyze", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	assert.Equal(t, "/health", entries[0].ContextMap()["path"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "request failed", entries[1].Message)
	assert.Equal(t, int64(http.StatusBadGateway), entries[1].ContextMap()["status"])
}
