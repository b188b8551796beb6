package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/document-analyzer-api/internal/config"
	"github.com/BerylCAtieno/document-analyzer-api/internal/utils"
)

// OCR recognises the text of a PDF that has no usable text layer.
type OCR interface {
	RecognizePDF(ctx context.Context, data []byte) (string, error)
}

// TesseractOCR rasterises each page with pdftoppm and reads it with tesseract.
type TesseractOCR struct {
	cfg       config.OCRConfig
	runner    Runner
	logger    *utils.Logger
	pageCount func(data []byte) (int, error)
}

func NewTesseractOCR(cfg config.OCRConfig, logger *utils.Logger) *TesseractOCR {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	o := &TesseractOCR{
		cfg:    cfg,
		runner: execRunner{logger: logger},
		logger: logger,
	}
	o.pageCount = o.countPages
	return o
}

// WithRunner swaps the command runner. Tests use it to fake the binaries.
func (o *TesseractOCR) WithRunner(r Runner) *TesseractOCR {
	o.runner = r
	return o
}

func (o *TesseractOCR) RecognizePDF(ctx context.Context, data []byte) (string, error) {
	start := time.Now()

	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	pages, err := o.pageCount(data)
	if err != nil {
		return "", fmt.Errorf("failed to count PDF pages: %w", err)
	}
	if pages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}
	if o.cfg.MaxPages > 0 && pages > o.cfg.MaxPages {
		o.logger.Warn("OCR page limit reached", "pages", pages, "max_pages", o.cfg.MaxPages)
		pages = o.cfg.MaxPages
	}

	tmpDir, err := os.MkdirTemp("", "docanalyzer-ocr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			o.logger.Warn("failed to remove OCR temp dir", "dir", tmpDir, "error", err)
		}
	}()

	input := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(input, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write PDF for OCR: %w", err)
	}

	texts := make([]string, pages)
	pageErrs := make([]error, pages)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Concurrency)

	for i := range pages {
		g.Go(func() error {
			texts[i], pageErrs[i] = o.recognizePage(gctx, input, tmpDir, i+1)
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for i, err := range pageErrs {
		if err != nil {
			failed++
			o.logger.Warn("OCR failed for page", "page", i+1, "error", err)
		}
	}
	if failed == pages {
		if ctx.Err() != nil {
			return "", fmt.Errorf("OCR did not finish within %s: %w", o.cfg.Timeout, ctx.Err())
		}
		return "", fmt.Errorf("OCR failed on every page: %w", errors.Join(pageErrs...))
	}

	text := strings.Join(texts, "\n")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("OCR produced no text")
	}

	o.logger.Info("OCR completed",
		"pages", pages,
		"failed_pages", failed,
		"text_length", len(text),
		"duration_ms", time.Since(start).Milliseconds())

	return text, nil
}

func (o *TesseractOCR) recognizePage(ctx context.Context, input, dir string, page int) (string, error) {
	n := strconv.Itoa(page)
	prefix := filepath.Join(dir, "page-"+n)

	// pdftoppm -f N -l N -singlefile -png -r DPI <in.pdf> <prefix>  ->  <prefix>.png
	_, errb, err := o.runner.Run(ctx, o.cfg.Pdftoppm,
		"-f", n, "-l", n, "-singlefile", "-png", "-r", strconv.Itoa(o.cfg.DPI), input, prefix)
	if err != nil {
		return "", fmt.Errorf("pdftoppm page %d: %w: %s", page, err, strings.TrimSpace(string(errb)))
	}

	image := prefix + ".png"
	if _, err := os.Stat(image); err != nil {
		return "", fmt.Errorf("pdftoppm produced no image for page %d: %w", page, err)
	}

	out, errb, err := o.runner.Run(ctx, o.cfg.Tesseract, image, "stdout", "-l", o.cfg.Lang)
	if err != nil {
		return "", fmt.Errorf("tesseract page %d: %w: %s", page, err, strings.TrimSpace(string(errb)))
	}

	// tesseract terminates each page with a form feed
	return strings.TrimSpace(string(out)), nil
}

// countPages asks pdfcpu first and falls back to the text-layer reader,
// which accepts some files pdfcpu refuses to validate.
func (o *TesseractOCR) countPages(data []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err == nil {
		return ctx.PageCount, nil
	}

	o.logger.Debug("pdfcpu could not read PDF, falling back", "error", err)
	n, ferr := pdfPageCount(data)
	if ferr != nil {
		return 0, errors.Join(err, ferr)
	}
	return n, nil
}
