package prompt

import (
	"fmt"

	"github.com/BerylCAtieno/document-analyzer-api/internal/models"
)

const summarizeTemplate = `Create a comprehensive summary with:
- Key objectives
- Main findings
- Significant conclusions
- Supporting data
Format as bullet points.`

const questionTemplate = `Answer based EXCLUSIVELY on this document:
Question: %s
Provide:
- Direct answer
- Relevant excerpt
- Confidence level (High/Medium/Low)`

const keyElementsTemplate = `Extract and format:
- Conclusions
- Recommendations
- Critical data
- Key terms
Format as JSON with keys: conclusions, recommendations, data_points, key_terms.
Each key must map to an array. Respond with the JSON object only.`

const entitiesTemplate = `Identify and categorize entities:
- PERSON (names)
- ORG (organizations)
- GEO (locations)
- DATE (dates)
- TECH (technical terms)
Format as JSON with category arrays using exactly the keys PERSON, ORG, GEO, DATE, TECH.
Respond with the JSON object only.`

const compareTemplate = `Compare these documents and highlight:
- Content differences
- Additions/Deletions
- Data discrepancies
- Thematic changes
Format as:
- Summary
- Key differences (bulleted)
- Change analysis`

// Instruction returns the fixed task instruction for kind. question is only
// used by KindQuestionAnswer.
func Instruction(kind models.AnalysisKind, question string) (string, error) {
	switch kind {
	case models.KindSummarize:
		return summarizeTemplate, nil
	case models.KindQuestionAnswer:
		return fmt.Sprintf(questionTemplate, question), nil
	case models.KindKeyElements:
		return keyElementsTemplate, nil
	case models.KindEntities:
		return entitiesTemplate, nil
	case models.KindCompare:
		return compareTemplate, nil
	default:
		return "", fmt.Errorf("no prompt template for analysis kind %q", kind)
	}
}

// ForRequest builds the full message sequence for req.
func ForRequest(req models.AnalysisRequest) ([]Message, error) {
	instruction, err := Instruction(req.Kind, req.Question)
	if err != nil {
		return nil, err
	}

	body := req.DocumentText
	if req.Kind == models.KindCompare {
		body = CombineDocuments(req.DocumentText, req.SecondDocumentText)
	}
	return Build(instruction, body), nil
}
