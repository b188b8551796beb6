package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/document-analyzer-api/internal/analyzer"
	"github.com/BerylCAtieno/document-analyzer-api/internal/config"
	"github.com/BerylCAtieno/document-analyzer-api/internal/extractor"
	"github.com/BerylCAtieno/document-analyzer-api/internal/llm"
	"github.com/BerylCAtieno/document-analyzer-api/internal/models"
	"github.com/BerylCAtieno/document-analyzer-api/internal/utils"
)

type DocumentService interface {
	UploadDocument(ctx context.Context, doc *models.UploadedDocument) (*models.UploadResponse, error)
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error)
}

type documentService struct {
	extractor *extractor.Extractor
	analyzer  *analyzer.Analyzer
	logger    *utils.Logger
}

// NewService wires the production pipeline from configuration.
func NewService(cfg *config.Config, logger *utils.Logger) DocumentService {
	var ocr extractor.OCR
	if cfg.OCR.Enabled {
		ocr = extractor.NewTesseractOCR(cfg.OCR, logger)
	}

	gateway := llm.NewOpenRouterGateway(cfg.OpenRouter, logger)

	return NewServiceWith(
		extractor.New(ocr, logger),
		analyzer.New(gateway, cfg.OpenRouter.Model, logger),
		logger,
	)
}

func NewServiceWith(ext *extractor.Extractor, an *analyzer.Analyzer, logger *utils.Logger) DocumentService {
	return &documentService{
		extractor: ext,
		analyzer:  an,
		logger:    logger,
	}
}

func (s *documentService) UploadDocument(ctx context.Context, doc *models.UploadedDocument) (*models.UploadResponse, error) {
	extracted, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		if errors.Is(err, extractor.ErrUnsupportedFormat) {
			return nil, utils.NewBadRequestError("Unsupported file type")
		}
		return nil, utils.NewInternalError(fmt.Sprintf("File processing failed: %v", err), err)
	}

	s.logger.Info("Document uploaded successfully",
		"filename", doc.Filename,
		"content_type", doc.ContentType,
		"size", len(doc.Data),
		"text_length", len(extracted.FullText))

	return &models.UploadResponse{
		Filename:  doc.Filename,
		Text:      extracted.TruncatedPreview,
		Truncated: extracted.WasTruncated,
	}, nil
}

func (s *documentService) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	result, err := s.analyzer.Analyze(ctx, req)
	if err == nil {
		return result, nil
	}

	var validationErr *analyzer.ValidationError
	var gatewayErr *llm.GatewayError
	switch {
	case errors.As(err, &validationErr):
		return nil, utils.NewBadRequestError(validationErr.Error())
	case errors.As(err, &gatewayErr):
		return nil, utils.NewInternalError(fmt.Sprintf("LLM API Error: %s", gatewayErr.Error()), err)
	default:
		return nil, utils.NewInternalError(fmt.Sprintf("Analysis failed: %v", err), err)
	}
}
