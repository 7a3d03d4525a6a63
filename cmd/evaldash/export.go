package main

import (
	"context"
	"fmt"
	"time"

	"github.com/newthinker/evaldash/internal/api/handler/web"
	"github.com/newthinker/evaldash/internal/dashboard"
	"github.com/newthinker/evaldash/internal/logger"
	"github.com/newthinker/evaldash/internal/report"
	"github.com/newthinker/evaldash/internal/view/page"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportTimeout time.Duration

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the dashboard once and write it as a standalone HTML report",
	Long: `Runs one load cycle and writes <timestamp>.html and latest.html to the
configured report sink (a local directory or an S3 bucket).`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", 60*time.Second, "give up after this long")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.Must(logger.Options{Development: debug})
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	sink, err := report.NewSink(cfg.Report)
	if err != nil {
		return fmt.Errorf("creating report sink: %w", err)
	}

	doc, charts := page.NewDocument(), page.NewRegistry()
	ctrl := newController(cfg, log, nil, doc, charts)
	defer ctrl.Close()

	renderer, err := web.NewHandler(web.Deps{
		Title:      cfg.Dashboard.Title,
		Document:   doc,
		Charts:     charts,
		Controller: ctrl,
		Logger:     log,
	})
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
	defer cancel()

	if err := ctrl.Reload(ctx, dashboard.TriggerExport); err != nil {
		return fmt.Errorf("loading dashboard: %w", err)
	}

	paths, err := report.NewExporter(sink, renderer, log).Export(ctx)
	if err != nil {
		return err
	}

	log.Info("export complete", zap.String("type", cfg.Report.Type), zap.Strings("paths", paths))
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
