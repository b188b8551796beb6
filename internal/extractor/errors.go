package extractor

import (
	"errors"
	"fmt"
)

// ErrOCRUnavailable is returned when a PDF has no text layer and OCR is disabled.
var ErrOCRUnavailable = errors.New("OCR fallback is unavailable")

// ExtractionError classifies any failure to turn document bytes into text.
type ExtractionError struct {
	Format Format
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
