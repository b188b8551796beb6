package analyzer

import (
	"encoding/json"

	"github.com/BerylCAtieno/document-analyzer-api/internal/models"
)

// Interpret turns raw model output into a result. Free-text kinds pass the
// text through. Structured kinds take the first balanced JSON object that
// carries every expected key as an array; anything else becomes a ParseError.
func Interpret(kind models.AnalysisKind, output string) *models.AnalysisResult {
	if !kind.Structured() {
		return &models.AnalysisResult{Kind: kind, Text: output}
	}

	schema := structuredSchemas[kind]
	for candidate := range JSONObjects(output) {
		var v any
		if err := json.Unmarshal([]byte(candidate), &v); err != nil {
			continue
		}
		if err := schema.Validate(v); err != nil {
			continue
		}

		obj := v.(map[string]any)
		fields := make(map[string][]any, len(kind.Keys()))
		for _, key := range kind.Keys() {
			fields[key] = obj[key].([]any)
		}
		return &models.AnalysisResult{Kind: kind, Fields: fields}
	}

	return &models.AnalysisResult{
		Kind:       kind,
		ParseError: &models.ParseError{Message: models.ParseErrorMessage, Raw: output},
	}
}
