// Package validation checks the shape of incoming JSON documents before they
// are decoded.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// analyzeRequestSchema only checks types. Range and arity rules live in the
// service so every caller gets them.
const analyzeRequestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["score", "answers"],
  "properties": {
    "score": {"type": "number"},
    "answers": {
      "type": "array",
      "items": {"type": "string"}
    },
    "userName": {"type": ["string", "null"]},
    "brandName": {"type": ["string", "null"]},
    "userSegment": {"type": ["string", "null"]}
  }
}`

var analyzeSchema = mustSchema(analyzeRequestSchema)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return s
}

// SchemaError lists every violation found in a document
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return "schema validation failed: " + strings.Join(e.Violations, "; ")
}

// AnalyzeRequest validates a raw POST /api/analyze body. Malformed JSON and
// schema violations both come back as errors.
func AnalyzeRequest(body []byte) error {
	result, err := analyzeSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return &SchemaError{Violations: errs}
}
