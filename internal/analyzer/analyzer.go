// Package analyzer maps each analysis kind onto a prompt, calls the model
// through an llm.Gateway and interprets what comes back.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/document-analyzer-api/internal/llm"
	"github.com/BerylCAtieno/document-analyzer-api/internal/models"
	"github.com/BerylCAtieno/document-analyzer-api/internal/prompt"
	"github.com/BerylCAtieno/document-analyzer-api/internal/utils"
)

// Stage names the steps a request moves through, for logging.
type Stage string

const (
	StageReceived      Stage = "received"
	StageTextBuilt     Stage = "text_built"
	StageGatewayCalled Stage = "gateway_called"
	StageInterpreted   Stage = "interpreted"
	StageGatewayFailed Stage = "gateway_failed"
)

// ValidationError reports a request that is missing a required input.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

type Analyzer struct {
	gateway llm.Gateway
	model   string
	logger  *utils.Logger
}

func New(gateway llm.Gateway, model string, logger *utils.Logger) *Analyzer {
	return &Analyzer{
		gateway: gateway,
		model:   model,
		logger:  logger,
	}
}

// Analyze runs one request through prompt building, a single gateway call and
// interpretation. A gateway failure is returned as is; a ParseError is not an
// error and comes back inside the result.
func (a *Analyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	log := a.logger.With("kind", req.Kind)
	log.Debug("Analysis request", "stage", StageReceived, "text_length", len(req.DocumentText))

	if err := validate(req); err != nil {
		return nil, err
	}

	messages, err := prompt.ForRequest(req)
	if err != nil {
		return nil, err
	}
	log.Debug("Prompt built", "stage", StageTextBuilt, "prompt_length", len(messages[len(messages)-1].Content))

	start := time.Now()
	output, err := a.gateway.Generate(ctx, messages, a.model)
	if err != nil {
		log.Error("Model call failed",
			"stage", StageGatewayFailed,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	log.Debug("Model call finished", "stage", StageGatewayCalled, "output_length", len(output))

	result := Interpret(req.Kind, output)
	if result.ParseError != nil {
		log.Warn("Model output had no usable structured data", "output", truncate(output, 500))
	}

	log.Info("Analysis completed",
		"stage", StageInterpreted,
		"parse_error", result.ParseError != nil,
		"duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

func (a *Analyzer) Summarize(ctx context.Context, text string) (*models.AnalysisResult, error) {
	return a.Analyze(ctx, models.AnalysisRequest{Kind: models.KindSummarize, DocumentText: text})
}

func (a *Analyzer) AnswerQuestion(ctx context.Context, text, question string) (*models.AnalysisResult, error) {
	return a.Analyze(ctx, models.AnalysisRequest{Kind: models.KindQuestionAnswer, DocumentText: text, Question: question})
}

func (a *Analyzer) KeyElements(ctx context.Context, text string) (*models.AnalysisResult, error) {
	return a.Analyze(ctx, models.AnalysisRequest{Kind: models.KindKeyElements, DocumentText: text})
}

func (a *Analyzer) Entities(ctx context.Context, text string) (*models.AnalysisResult, error) {
	return a.Analyze(ctx, models.AnalysisRequest{Kind: models.KindEntities, DocumentText: text})
}

func (a *Analyzer) Compare(ctx context.Context, first, second string) (*models.AnalysisResult, error) {
	return a.Analyze(ctx, models.AnalysisRequest{Kind: models.KindCompare, DocumentText: first, SecondDocumentText: second})
}

func validate(req models.AnalysisRequest) error {
	if _, err := models.ParseAnalysisKind(string(req.Kind)); err != nil {
		return err
	}

	if req.Kind == models.KindCompare {
		if blank(req.DocumentText) {
			return &ValidationError{Field: "text1"}
		}
		if blank(req.SecondDocumentText) {
			return &ValidationError{Field: "text2"}
		}
		return nil
	}

	if blank(req.DocumentText) {
		return &ValidationError{Field: "text"}
	}
	if req.Kind == models.KindQuestionAnswer && blank(req.Question) {
		return &ValidationError{Field: "question"}
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func truncate(s string, n int) string {
	out, cut := models.TruncateRunes(s, n)
	if cut {
		return out + "..."
	}
	return out
}
