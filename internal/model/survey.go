package model

import "strings"

// MaxScore is the highest score the audit questionnaire can produce
const MaxScore = 60

// AnswerCount is the number of open questions in the audit
const AnswerCount = 4

// Segment tells whether the audited brand is a person or an organization
type Segment string

const (
	SegmentNone         Segment = ""
	SegmentPersonal     Segment = "personal"
	SegmentOrganization Segment = "organization"
)

// ParseSegment maps the raw userSegment field. Only "personal" selects the
// personal framing; any other non-blank value is an organization.
func ParseSegment(raw string) Segment {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "":
		return SegmentNone
	case string(SegmentPersonal):
		return SegmentPersonal
	default:
		return SegmentOrganization
	}
}

// AnalyzeRequest is the request body for POST /api/analyze
type AnalyzeRequest struct {
	Score       *float64 `json:"score"`
	Answers     []string `json:"answers"`
	UserName    string   `json:"userName,omitempty"`
	BrandName   string   `json:"brandName,omitempty"`
	UserSegment string   `json:"userSegment,omitempty"`
}

// SurveyResponse is a validated audit submission. It lives for one request.
type SurveyResponse struct {
	Score     int                 `json:"score"`
	Answers   [AnswerCount]string `json:"answers"`
	UserName  string              `json:"userName,omitempty"`
	BrandName string              `json:"brandName,omitempty"`
	Segment   Segment             `json:"userSegment,omitempty"`
}

// AnswerList returns the answers as a slice
func (s SurveyResponse) AnswerList() []string {
	return s.Answers[:]
}
