package service

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"brandaudit/internal/knowledge"
	"brandaudit/internal/logger"
	"brandaudit/internal/metrics"
	"brandaudit/internal/model"
	"brandaudit/internal/prompt"
	"brandaudit/internal/quality"
	"brandaudit/internal/tier"
)

// RebuffText is returned instead of an analysis for low-effort answers
const RebuffText = "Twoje odpowiedzi na pytania otwarte wydają się być przypadkowe lub zbyt lakoniczne. " +
	"Prawdziwa diagnoza strategiczna wymaga refleksji i zaangażowania. " +
	"Jeśli brakuje czasu na rzetelne wypełnienie audytu, prawdopodobnie trudno będzie znaleźć go na wdrożenie fundamentalnych zmian w firmie. " +
	"Gdy będziesz gotów na pogłębioną analizę, wróć i spróbuj ponownie."

// AnalysisService runs validate → classify → select tier → assemble →
// generate for one submission. It holds no per-request state.
type AnalysisService struct {
	classifier *quality.Classifier
	table      *tier.Table
	assembler  *prompt.Assembler
	knowledge  knowledge.Base
	generator  Generator
	log        logger.Logger
	tracer     trace.Tracer
}

// NewAnalysisService wires the pipeline. The knowledge base is fixed for the
// lifetime of the service.
func NewAnalysisService(
	classifier *quality.Classifier,
	table *tier.Table,
	assembler *prompt.Assembler,
	kb knowledge.Base,
	generator Generator,
	log logger.Logger,
) *AnalysisService {
	return &AnalysisService{
		classifier: classifier,
		table:      table,
		assembler:  assembler,
		knowledge:  kb,
		generator:  generator,
		log:        log,
		tracer:     otel.Tracer("brandaudit/service"),
	}
}

// Preview is the pipeline state right before the generation call
type Preview struct {
	Survey      model.SurveyResponse
	Verdict     model.QualityVerdict
	Assessments []quality.AnswerAssessment
	Band        tier.Band
	Directive   prompt.Directive // zero when rejected
}

// Validate turns the wire request into a SurveyResponse
func (s *AnalysisService) Validate(req model.AnalyzeRequest) (model.SurveyResponse, error) {
	var out model.SurveyResponse

	if req.Score == nil {
		return out, validationErr("score", "missing", nil)
	}
	score := *req.Score
	if math.IsNaN(score) || math.IsInf(score, 0) || score != math.Trunc(score) {
		return out, validationErr("score", "must be an integer", nil)
	}
	if score < 0 || score > model.MaxScore {
		return out, validationErr("score", "out of range", tier.ErrScoreOutOfRange)
	}

	if req.Answers == nil {
		return out, validationErr("answers", "missing", nil)
	}
	if len(req.Answers) != model.AnswerCount {
		return out, validationErr("answers", "expected exactly 4 answers", nil)
	}

	out.Score = int(score)
	copy(out.Answers[:], req.Answers)
	out.UserName = req.UserName
	out.BrandName = req.BrandName
	out.Segment = model.ParseSegment(req.UserSegment)
	return out, nil
}

// Preview runs everything except the generation call
func (s *AnalysisService) Preview(ctx context.Context, req model.AnalyzeRequest) (Preview, error) {
	survey, err := s.Validate(req)
	if err != nil {
		return Preview{}, err
	}

	p := Preview{Survey: survey}
	for _, a := range survey.Answers {
		p.Assessments = append(p.Assessments, s.classifier.AssessAnswer(a))
	}
	p.Verdict = s.classifier.Classify(survey.AnswerList())

	p.Band, err = s.table.Select(survey.Score)
	if err != nil {
		return Preview{}, validationErr("score", "out of range", err)
	}
	if p.Verdict.Rejected {
		return p, nil
	}

	p.Directive, err = s.assembler.Assemble(prompt.Input{
		Survey:    survey,
		Table:     s.table,
		Band:      p.Band,
		Knowledge: s.knowledge.Text,
	})
	if err != nil {
		return Preview{}, err
	}
	return p, nil
}

// Analyze produces the response for one submission. Rejected answers get
// RebuffText and never reach the generator; accepted ones cause exactly
// one Generate call.
func (s *AnalysisService) Analyze(ctx context.Context, req model.AnalyzeRequest) (model.AnalysisResult, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.analyze")
	defer span.End()

	survey, err := s.Validate(req)
	if err != nil {
		metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
		span.SetStatus(codes.Error, "invalid request")
		return model.AnalysisResult{}, err
	}
	span.SetAttributes(attribute.Int("audit.score", survey.Score))

	verdict := s.classifier.Classify(survey.AnswerList())
	span.SetAttributes(attribute.Bool("audit.rejected", verdict.Rejected))
	if verdict.Rejected {
		metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeRejected).Inc()
		s.log.Info("answers rejected as low effort", map[string]interface{}{
			"totalLength":     verdict.TotalLength,
			"suspiciousCount": verdict.SuspiciousCount,
			"validWeight":     verdict.ValidWeight,
		})
		return model.AnalysisResult{Analysis: RebuffText, Verdict: verdict}, nil
	}

	band, err := s.table.Select(survey.Score)
	if err != nil {
		metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return model.AnalysisResult{}, validationErr("score", "out of range", err)
	}

	directive, err := s.assembler.Assemble(prompt.Input{
		Survey:    survey,
		Table:     s.table,
		Band:      band,
		Knowledge: s.knowledge.Text,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assembly failed")
		return model.AnalysisResult{}, err
	}
	span.SetAttributes(
		attribute.String("audit.tier", band.Name),
		attribute.String("audit.strategy", directive.Strategy),
	)

	start := time.Now()
	text, err := s.generator.Generate(ctx, directive.Text)
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeUpstreamError).Inc()
		if !IsUpstream(err) {
			err = &UpstreamError{Attempts: 1, Err: err}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return model.AnalysisResult{}, err
	}

	metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeAccepted).Inc()
	s.log.Info("analysis generated", map[string]interface{}{
		"tier":     band.Name,
		"strategy": directive.Strategy,
		"duration": time.Since(start).String(),
	})
	return model.AnalysisResult{
		Analysis: text,
		Verdict:  verdict,
		Tier:     band.Name,
		Strategy: directive.Strategy,
	}, nil
}
