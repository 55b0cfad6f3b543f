package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandaudit/internal/logger"
	"brandaudit/internal/model"
	"brandaudit/internal/service"
)

type fakeAnalyzer struct {
	result model.AnalysisResult
	err    error
	calls  int
	got    model.AnalyzeRequest
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req model.AnalyzeRequest) (model.AnalysisResult, error) {
	f.calls++
	f.got = req
	return f.result, f.err
}

func post(t *testing.T, h *AnalysisHandler, body string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

const validBody = `{"score": 33, "answers": ["a", "b", "c", "d"], "userName": "Ola", "userSegment": "personal"}`

func TestAnalyze_Success(t *testing.T) {
	fa := &fakeAnalyzer{result: model.AnalysisResult{Analysis: "Olu, ...", Tier: "consistency"}}
	h := NewAnalysisHandler(fa, logger.NewTestLogger(t), 1<<16)

	rec, out := post(t, h, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"analysis": "Olu, ..."}, out)
	require.NotNil(t, fa.got.Score)
	assert.Equal(t, 33.0, *fa.got.Score)
	assert.Equal(t, "personal", fa.got.UserSegment)
}

func TestAnalyze_RejectedIsStill200(t *testing.T) {
	fa := &fakeAnalyzer{result: model.AnalysisResult{Analysis: service.RebuffText, Verdict: model.QualityVerdict{Rejected: true}}}
	h := NewAnalysisHandler(fa, logger.NewNoOpLogger(), 0)

	rec, out := post(t, h, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.RebuffText, out["analysis"])
}

func TestAnalyze_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"score": 1,`},
		{"missing score", `{"answers": ["a", "b", "c", "d"]}`},
		{"missing answers", `{"score": 10}`},
		{"wrong types", `{"score": "ten", "answers": "none"}`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := &fakeAnalyzer{}
			h := NewAnalysisHandler(fa, logger.NewNoOpLogger(), 1<<16)

			rec, out := post(t, h, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, service.MsgValidationFailed, out["error"])
			assert.Zero(t, fa.calls)
		})
	}
}

func TestAnalyze_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", &service.ValidationError{Field: "answers", Message: "expected exactly 4 answers"}, http.StatusBadRequest, service.MsgValidationFailed},
		{"upstream", &service.UpstreamError{Attempts: 3, Status: 503, Err: errors.New("secret detail")}, http.StatusInternalServerError, service.MsgGenerationFailed},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, service.MsgGenerationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAnalysisHandler(&fakeAnalyzer{err: tt.err}, logger.NewNoOpLogger(), 1<<16)

			rec, out := post(t, h, validBody)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, out["error"])
			assert.NotContains(t, rec.Body.String(), "secret detail")
		})
	}
}

func TestAnalyze_BodyTooLarge(t *testing.T) {
	fa := &fakeAnalyzer{}
	h := NewAnalysisHandler(fa, logger.NewNoOpLogger(), 64)
	big := `{"score": 10, "answers": ["` + strings.Repeat("x", 200) + `"]}`

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewBufferString(big))
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, fa.calls)
}

func TestHealth(t *testing.T) {
	h := &HealthHandler{KnowledgeDegraded: true, Generator: "offline"}
	rec := httptest.NewRecorder()

	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","knowledgeBase":"degraded","generator":"offline"}`, rec.Body.String())
}
