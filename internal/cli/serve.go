package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hyecheol/ragchat/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long:  `Serve the dispatcher on POST /invoke, with /healthz and /stats.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svcs, err := buildServices(ctx)
		if err != nil {
			return err
		}

		logger.Info("ragchat starting",
			"version", Version,
			"addr", cfg.HTTPAddr,
			"model", cfg.ModelID,
			"opensearch_url", cfg.OpenSearchURL,
		)

		srv := server.New(cfg.HTTPAddr, svcs.dispatcher, svcs.conversations, svcs.collector, logger)
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
