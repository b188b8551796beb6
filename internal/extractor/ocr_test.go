package extractor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/document-analyzer-api/internal/config"
	"github.com/BerylCAtieno/document-analyzer-api/internal/utils"
)

func newStubbedOCR(cfg config.OCRConfig, runner Runner, pages int) *TesseractOCR {
	o := NewTesseractOCR(cfg, utils.NewNopLogger()).WithRunner(runner)
	o.pageCount = func([]byte) (int, error) { return pages, nil }
	return o
}

func TestTesseractOCR_PageOrderWithConcurrency(t *testing.T) {
	runner := &fakeRunner{}
	o := newStubbedOCR(config.OCRConfig{Concurrency: 4}, runner, 6)

	text, err := o.RecognizePDF(context.Background(), []byte("%PDF"))
	require.NoError(t, err)

	assert.Equal(t,
		"scanned text of page 1\nscanned text of page 2\nscanned text of page 3\n"+
			"scanned text of page 4\nscanned text of page 5\nscanned text of page 6",
		text)
}

func TestTesseractOCR_FailedPageIsEmptyLine(t *testing.T) {
	runner := &fakeRunner{failPages: map[int]bool{2: true}}
	o := newStubbedOCR(config.OCRConfig{}, runner, 3)

	text, err := o.RecognizePDF(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "scanned text of page 1\n\nscanned text of page 3", text)
}

func TestTesseractOCR_AllPagesFail(t *testing.T) {
	runner := &fakeRunner{failAll: true}
	o := newStubbedOCR(config.OCRConfig{}, runner, 2)

	_, err := o.RecognizePDF(context.Background(), []byte("%PDF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every page")
}

func TestTesseractOCR_Timeout(t *testing.T) {
	runner := &fakeRunner{hang: true}
	o := newStubbedOCR(config.OCRConfig{Timeout: 50 * time.Millisecond}, runner, 2)

	start := time.Now()
	_, err := o.RecognizePDF(context.Background(), []byte("%PDF"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestTesseractOCR_MaxPages(t *testing.T) {
	runner := &fakeRunner{}
	o := newStubbedOCR(config.OCRConfig{MaxPages: 2}, runner, 10)

	text, err := o.RecognizePDF(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "scanned text of page 1\nscanned text of page 2", text)
	assert.Equal(t, 2, runner.count("tesseract"))
}

func TestTesseractOCR_NoPages(t *testing.T) {
	o := newStubbedOCR(config.OCRConfig{}, &fakeRunner{}, 0)

	_, err := o.RecognizePDF(context.Background(), []byte("%PDF"))
	assert.Error(t, err)
}

func TestTesseractOCR_CountsPagesOfRealPDF(t *testing.T) {
	o := NewTesseractOCR(config.OCRConfig{}, utils.NewNopLogger())

	n, err := o.countPages(buildPDF(t, "one", "", "three"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
