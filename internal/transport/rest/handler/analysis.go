package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"brandaudit/internal/logger"
	"brandaudit/internal/model"
	"brandaudit/internal/service"
	"brandaudit/internal/transport/rest/middleware"
	"brandaudit/internal/validation"
)

// MsgBodyTooLarge is the 413 body
const MsgBodyTooLarge = "Zapytanie jest zbyt duże."

// Analyzer is the part of the analysis service the handler needs
type Analyzer interface {
	Analyze(ctx context.Context, req model.AnalyzeRequest) (model.AnalysisResult, error)
}

// AnalysisHandler serves POST /api/analyze
type AnalysisHandler struct {
	analyzer     Analyzer
	log          logger.Logger
	maxBodyBytes int64
}

func NewAnalysisHandler(analyzer Analyzer, log logger.Logger, maxBodyBytes int64) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, log: log, maxBodyBytes: maxBodyBytes}
}

// Analyze handles POST /api/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithFields(map[string]interface{}{"requestId": middleware.GetRequestID(r.Context())})

	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, service.MsgValidationFailed)
		return
	}

	if err := validation.AnalyzeRequest(body); err != nil {
		log.Info("request rejected by schema", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusBadRequest, service.MsgValidationFailed)
		return
	}

	var req model.AnalyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, service.MsgValidationFailed)
		return
	}

	res, err := h.analyzer.Analyze(r.Context(), req)
	if err != nil {
		if service.IsValidation(err) {
			log.Info("invalid analysis request", map[string]interface{}{"error": err.Error()})
			writeError(w, http.StatusBadRequest, service.MsgValidationFailed)
			return
		}
		log.WithError(err).Error("analysis failed", map[string]interface{}{
			"code": string(service.CodeOf(err)),
		})
		writeError(w, http.StatusInternalServerError, service.MsgGenerationFailed)
		return
	}

	writeJSON(w, http.StatusOK, model.AnalyzeResponse{Analysis: res.Analysis})
}
