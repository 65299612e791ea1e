package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/events"
	"github.com/jonathan/talent-match/internal/ingestion"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Consume résumé-parsed events from NATS",
	Long:  "Subscribe to the résumé subject in a queue group and store every parsed résumé received.",
	RunE:  runListen,
}

func init() {
	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	if a.nc == nil {
		return fmt.Errorf("NATS URL is required (set %s_NATS_URL)", config.EnvPrefix)
	}

	svc := ingestion.NewService(a.db, a.invalidator(), nil, a.logger)
	sub := events.NewSubscriber(a.nc, a.cfg.NATS.ResumeSubject, a.cfg.NATS.QueueGroup, svc, a.logger)
	if err := sub.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	a.logger.Info("stopping listener")
	if err := sub.Stop(); err != nil {
		a.logger.Warn("failed to drain subscription", zap.Error(err))
	}
	return nil
}
