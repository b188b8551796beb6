package extractor

import (
	"errors"
	"fmt"
	"mime"
	"strings"
)

type Format string

const (
	FormatPDF       Format = "pdf"
	FormatDOCX      Format = "docx"
	FormatPlainText Format = "txt"
)

const (
	ContentTypePDF       = "application/pdf"
	ContentTypeDOCX      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePlainText = "text/plain"
)

var ErrUnsupportedFormat = errors.New("unsupported file type")

type UnsupportedFormatError struct {
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q", e.ContentType)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

var formatsByContentType = map[string]Format{
	ContentTypePDF:  FormatPDF,
	ContentTypeDOCX: FormatDOCX,
	// Some browsers might send these variants for DOCX
	"application/vnd.openxmlformats-officedocument.wordprocessingml": FormatDOCX,
	"application/docx":   FormatDOCX,
	"application/x-docx": FormatDOCX,
	ContentTypePlainText: FormatPlainText,
}

// DetectFormat classifies a document by its declared content type only.
// Parameters such as charset are ignored.
func DetectFormat(contentType string) (Format, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType, _, _ = strings.Cut(contentType, ";")
		mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	}

	if format, ok := formatsByContentType[mediaType]; ok {
		return format, nil
	}
	return "", &UnsupportedFormatError{ContentType: contentType}
}

// ContentTypeForExtension maps a file extension to the declared content type
// a browser would send for it. Only local callers (CLI, MCP) use this.
func ContentTypeForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return ContentTypePDF
	case ".docx":
		return ContentTypeDOCX
	case ".txt", ".text", ".md":
		return ContentTypePlainText
	default:
		return "application/octet-stream"
	}
}
