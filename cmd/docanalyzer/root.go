package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/document-analyzer-api/internal/analyzer"
	"github.com/BerylCAtieno/document-analyzer-api/internal/config"
	"github.com/BerylCAtieno/document-analyzer-api/internal/extractor"
	"github.com/BerylCAtieno/document-analyzer-api/internal/llm"
	"github.com/BerylCAtieno/document-analyzer-api/internal/utils"
)

// newGateway is replaced in tests.
var newGateway = func(cfg config.OpenRouterConfig, logger *utils.Logger) llm.Gateway {
	return llm.NewOpenRouterGateway(cfg, logger)
}

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "docanalyzer",
		Short: "Extract text from documents and analyze it with an LLM",
		Long: `docanalyzer extracts text from PDF, DOCX and plain text files (with OCR for
scanned PDFs) and runs summaries, question answering, key element and entity
extraction, and document comparison through OpenRouter.

Configuration is read from CONFIG_FILE and the environment, as for the server.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr (debug, info, warn, error)")

	cmd.AddCommand(
		newExtractCmd(opts),
		newAnalyzeCmd(opts),
		newMCPCmd(opts),
	)
	return cmd
}

// Execute runs the root command
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

func (o *rootOptions) logger(cmd *cobra.Command) *utils.Logger {
	return utils.NewLoggerTo(cmd.ErrOrStderr(), o.logLevel)
}

func newExtractor(cfg *config.Config, logger *utils.Logger) *extractor.Extractor {
	var ocr extractor.OCR
	if cfg.OCR.Enabled {
		ocr = extractor.NewTesseractOCR(cfg.OCR, logger)
	}
	return extractor.New(ocr, logger)
}

func newAnalyzer(cfg *config.Config, logger *utils.Logger) *analyzer.Analyzer {
	return analyzer.New(newGateway(cfg.OpenRouter, logger), cfg.OpenRouter.Model, logger)
}
