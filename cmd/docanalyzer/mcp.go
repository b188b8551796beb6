package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/document-analyzer-api/internal/config"
	"github.com/BerylCAtieno/document-analyzer-api/internal/mcpserver"
)

func newMCPCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the extraction and analysis tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// stdout carries the protocol
			logger := root.logger(cmd)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := mcpserver.New(newExtractor(cfg, logger), newAnalyzer(cfg, logger), cfg.MaxFileSize, logger)
			return srv.Run(ctx)
		},
	}
}
