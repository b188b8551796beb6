package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDFText reads the text layer page by page. Pages that are missing
// or fail to decode contribute an empty line instead of failing the document.
func extractPDFText(data []byte) (text string, pages int, err error) {
	// the pdf package panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create PDF reader: %w", err)
	}

	numPages := pdfReader.NumPage()
	pageTexts := make([]string, numPages)

	for i := 1; i <= numPages; i++ {
		pageTexts[i-1] = pageText(pdfReader, i)
	}

	return strings.Join(pageTexts, "\n"), numPages, nil
}

func pageText(r *pdf.Reader, n int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	page := r.Page(n)
	if page.V.IsNull() {
		return ""
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// pdfPageCount is the fallback page counter used when pdfcpu rejects a file.
func pdfPageCount(data []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return pdfReader.NumPage(), nil
}
