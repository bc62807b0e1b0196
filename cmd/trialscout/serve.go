// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/trialscout/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the trialscout JSON API",
	Long: `Serve starts the HTTP API:

  GET  /api/drug/{name}            names from every source plus merged trials
  GET  /api/collect-names/{name}   candidate names per source
  POST /api/aggregate-trials       trials for a list of names
  GET  /api/literature/{name}      Semantic Scholar papers
  GET  /healthz                    liveness

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	deps := server.Deps{
		Resolver:   svc.resolver,
		Pipeline:   svc.pipeline,
		Literature: svc.literature,
		Logger:     slog.Default(),
	}
	store, err := openHistory(svc.cfg.History)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		deps.History = store
		slog.Info("recording run history", "path", store.Path())
	}

	return server.New(svc.cfg.Server, deps).Run(cmd.Context())
}

func init() {
	serveCmd.Flags().String("addr", ":3000", "listen address")
	serveCmd.Flags().Bool("history", false, "record each aggregation run in the history database")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("history.enabled", serveCmd.Flags().Lookup("history"))

	rootCmd.AddCommand(serveCmd)
}
