package main

import (
	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/document-analyzer-api/internal/config"
	"github.com/BerylCAtieno/document-analyzer-api/internal/extractor"
)

func newExtractCmd(root *rootOptions) *cobra.Command {
	var (
		contentType string
		full        bool
	)

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Extract the text of a document",
		Long: `Extract the text of a PDF, DOCX or plain text file. The content type is taken
from --type, or from the file extension when the flag is omitted. Like the
upload endpoint, only the first 5000 characters are printed unless --full is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve()
			if err != nil {
				return err
			}
			logger := root.logger(cmd)

			doc, err := extractor.LoadFile(args[0], contentType, cfg.MaxFileSize)
			if err != nil {
				return err
			}

			extracted, err := newExtractor(cfg, logger).Extract(cmd.Context(), doc)
			if err != nil {
				return err
			}

			renderExtraction(cmd.OutOrStdout(), doc, extracted, full)
			return nil
		},
	}

	cmd.Flags().StringVarP(&contentType, "type", "t", "", "Declared MIME type of the file")
	cmd.Flags().BoolVar(&full, "full", false, "Print the full text instead of the preview")
	return cmd
}
