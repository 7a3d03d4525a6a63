package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newthinker/evaldash/internal/api"
	"github.com/newthinker/evaldash/internal/dashboard"
	"github.com/newthinker/evaldash/internal/logger"
	"github.com/newthinker/evaldash/internal/metrics"
	"github.com/newthinker/evaldash/internal/view/page"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Must(logger.Options{Development: debug})
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	doc, charts := page.NewDocument(), page.NewRegistry()
	ctrl := newController(cfg, log, reg, doc, charts)
	defer ctrl.Close()

	server, err := api.NewServer(api.Config{
		Host:             cfg.Server.Host,
		Port:             cfg.Server.Port,
		APIKey:           cfg.Server.APIKey,
		Title:            cfg.Dashboard.Title,
		MetricsPath:      cfg.Metrics.Path,
		PredictionsLimit: cfg.Dashboard.PredictionsLimit,
	}, api.Dependencies{
		Controller: ctrl,
		Document:   doc,
		Charts:     charts,
		Metrics:    reg,
	}, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	log.Info("starting evaldash server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("api", cfg.API.BaseURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initial load; failures are shown on the page.
	go ctrl.Reload(ctx, dashboard.TriggerInitial)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down evaldash server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
		return err
	}
	return nil
}
