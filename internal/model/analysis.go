package model

// QualityVerdict is the outcome of the answer-quality check
type QualityVerdict struct {
	Rejected        bool    `json:"rejected"`
	TotalLength     int     `json:"totalLength"`
	SuspiciousCount int     `json:"suspiciousCount"`
	ValidWeight     float64 `json:"validWeight"`
}

// AnalysisResult is what the analysis pipeline produced for one submission
type AnalysisResult struct {
	Analysis string         `json:"analysis"`
	Verdict  QualityVerdict `json:"-"`
	Tier     string         `json:"-"` // empty when rejected
	Strategy string         `json:"-"` // prompt template used, empty when rejected
}

// AnalyzeResponse is the 200 body of POST /api/analyze
type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}
