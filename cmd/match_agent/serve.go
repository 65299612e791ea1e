package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/ingestion"
	"github.com/jonathan/talent-match/internal/server"
	"github.com/jonathan/talent-match/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes matching, recommendation and résumé endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	cfg := a.cfg
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	checks := map[string]server.Pinger{"database": a.db}
	if a.cache != nil {
		checks["redis"] = a.cache
	}

	srv := server.New(server.Config{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		DefaultLimit:    cfg.Matching.Limit,
		DefaultMinScore: cfg.Matching.MinScore,
		RecommendLimit:  cfg.Matching.RecommendLimit,
		RateLimit: ratelimit.NewConfig(
			cfg.RateLimit.Enabled,
			cfg.RateLimit.RequestsPerMinute,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Whitelist,
			cfg.RateLimit.Blacklist,
		),
	}, server.Deps{
		Matcher:      a.matcher(),
		Jobs:         a.db,
		Applications: a.db,
		Resumes:      ingestion.NewService(a.db, a.invalidator(), nil, a.logger),
		Checks:       checks,
		Logger:       a.logger,
	})

	return srv.Start(ctx)
}
