package extractor

import (
	"context"
	"strings"
	"time"

	"github.com/BerylCAtieno/document-analyzer-api/internal/models"
	"github.com/BerylCAtieno/document-analyzer-api/internal/utils"
)

// Extractor turns uploaded documents into text. A nil OCR disables the
// scanned-PDF fallback.
type Extractor struct {
	ocr    OCR
	logger *utils.Logger
}

func New(ocr OCR, logger *utils.Logger) *Extractor {
	return &Extractor{ocr: ocr, logger: logger}
}

// Extract detects the document format from its declared content type and
// extracts its text. Unsupported types are rejected before any parsing.
func (e *Extractor) Extract(ctx context.Context, doc *models.UploadedDocument) (*models.ExtractedText, error) {
	format, err := DetectFormat(doc.ContentType)
	if err != nil {
		e.logger.Warn("Unsupported content type", "content_type", doc.ContentType, "filename", doc.Filename)
		return nil, err
	}

	start := time.Now()
	text, err := e.ExtractFormat(ctx, format, doc.Data)
	if err != nil {
		e.logger.Error("Failed to extract text", "error", err, "format", format, "filename", doc.Filename)
		return nil, err
	}

	extracted := models.NewExtractedText(text)
	e.logger.Info("Text extracted",
		"filename", doc.Filename,
		"format", format,
		"text_length", len(text),
		"truncated", extracted.WasTruncated,
		"duration_ms", time.Since(start).Milliseconds())

	return extracted, nil
}

// ExtractFormat runs the strategy for an already detected format. Every
// failure is returned as an *ExtractionError.
func (e *Extractor) ExtractFormat(ctx context.Context, format Format, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch format {
	case FormatPDF:
		text, err = e.extractPDF(ctx, data)
	case FormatDOCX:
		text, err = ExtractDOCX(data)
	case FormatPlainText:
		text, err = ExtractTXT(data)
	default:
		return "", &UnsupportedFormatError{ContentType: string(format)}
	}

	if err != nil {
		return "", &ExtractionError{Format: format, Err: err}
	}
	return text, nil
}

func (e *Extractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	text, pages, err := extractPDFText(data)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	e.logger.Info("PDF has no text layer, falling back to OCR", "pages", pages)
	if e.ocr == nil {
		return "", ErrOCRUnavailable
	}
	return e.ocr.RecognizePDF(ctx, data)
}
