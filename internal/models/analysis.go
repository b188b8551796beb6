package models

import "fmt"

type AnalysisKind string

const (
	KindSummarize      AnalysisKind = "summarize"
	KindQuestionAnswer AnalysisKind = "qa"
	KindKeyElements    AnalysisKind = "key-elements"
	KindEntities       AnalysisKind = "entities"
	KindCompare        AnalysisKind = "compare"
)

var AllKinds = []AnalysisKind{KindSummarize, KindQuestionAnswer, KindKeyElements, KindEntities, KindCompare}

func ParseAnalysisKind(s string) (AnalysisKind, error) {
	for _, k := range AllKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown analysis kind %q", s)
}

// Structured reports whether the kind expects a fixed-key JSON object from the model.
func (k AnalysisKind) Structured() bool {
	return k == KindKeyElements || k == KindEntities
}

// ResponseKey is the JSON field that carries free-text results.
func (k AnalysisKind) ResponseKey() string {
	switch k {
	case KindSummarize:
		return "summary"
	case KindQuestionAnswer:
		return "answer"
	case KindCompare:
		return "comparison"
	default:
		return ""
	}
}

var (
	KeyElementsKeys = []string{"conclusions", "recommendations", "data_points", "key_terms"}
	EntityKeys      = []string{"PERSON", "ORG", "GEO", "DATE", "TECH"}
)

// Keys returns the fixed key set of a structured kind, nil otherwise.
func (k AnalysisKind) Keys() []string {
	switch k {
	case KindKeyElements:
		return KeyElementsKeys
	case KindEntities:
		return EntityKeys
	default:
		return nil
	}
}

type AnalysisRequest struct {
	Kind               AnalysisKind
	DocumentText       string
	Question           string
	SecondDocumentText string
}

// ParseErrorMessage is reported when model output holds no usable structured data.
const ParseErrorMessage = "Failed to parse response"

type ParseError struct {
	Message string `json:"error"`
	Raw     string `json:"-"`
}

// AnalysisResult holds exactly one of Text, Fields or ParseError depending on Kind.
type AnalysisResult struct {
	Kind       AnalysisKind
	Text       string
	Fields     map[string][]any
	ParseError *ParseError
}

// Payload is the JSON body returned to clients for this result.
func (r *AnalysisResult) Payload() any {
	if r.ParseError != nil {
		return map[string]string{"error": r.ParseError.Message}
	}
	if r.Kind.Structured() {
		return r.Fields
	}
	return map[string]string{r.Kind.ResponseKey(): r.Text}
}
