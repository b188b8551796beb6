package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/document-analyzer-api/internal/config"
	"github.com/BerylCAtieno/document-analyzer-api/internal/extractor"
	"github.com/BerylCAtieno/document-analyzer-api/internal/models"
)

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var (
		contentType string
		question    string
		with        string
		asJSON      bool
	)

	kinds := make([]string, len(models.AllKinds))
	for i, k := range models.AllKinds {
		kinds[i] = string(k)
	}

	cmd := &cobra.Command{
		Use:   "analyze KIND FILE",
		Short: "Extract a document and run one analysis on it",
		Long: fmt.Sprintf(`Extract a document and run one analysis on its text.

KIND is one of: %s.
qa needs --question, compare needs --with pointing at the second document.`, strings.Join(kinds, ", ")),
		Args:      cobra.ExactArgs(2),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseAnalysisKind(args[0])
			if err != nil {
				return err
			}
			if kind == models.KindCompare && with == "" {
				return fmt.Errorf("compare needs a second document (--with)")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := root.logger(cmd).With("kind", kind)
			ext := newExtractor(cfg, logger)

			text, err := extractFile(cmd.Context(), ext, args[1], contentType, cfg.MaxFileSize)
			if err != nil {
				return err
			}

			req := models.AnalysisRequest{Kind: kind, DocumentText: text, Question: question}
			if kind == models.KindCompare {
				req.SecondDocumentText, err = extractFile(cmd.Context(), ext, with, "", cfg.MaxFileSize)
				if err != nil {
					return err
				}
			}

			result, err := newAnalyzer(cfg, logger).Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}

			return renderResult(cmd.OutOrStdout(), result, asJSON)
		},
	}

	cmd.Flags().StringVarP(&contentType, "type", "t", "", "Declared MIME type of FILE")
	cmd.Flags().StringVarP(&question, "question", "q", "", "Question to answer (qa)")
	cmd.Flags().StringVar(&with, "with", "", "Second document to compare against (compare)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the HTTP JSON payload instead of formatted output")
	return cmd
}

func extractFile(ctx context.Context, ext *extractor.Extractor, path, contentType string, maxSize int64) (string, error) {
	doc, err := extractor.LoadFile(path, contentType, maxSize)
	if err != nil {
		return "", err
	}
	extracted, err := ext.Extract(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", doc.Filename, err)
	}
	return extracted.FullText, nil
}
