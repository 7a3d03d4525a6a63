package main

import (
	"fmt"

	"github.com/newthinker/evaldash/internal/client"
	"github.com/newthinker/evaldash/internal/config"
	"github.com/newthinker/evaldash/internal/dashboard"
	"github.com/newthinker/evaldash/internal/metrics"
	"go.uber.org/zap"
)

// loadConfig reads --config, or falls back to defaults, then applies flag
// overrides and validates.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	if cfgFile != "" {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Debug("no config file specified, using defaults")
	}

	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// newController wires a Metrics Service client and a controller drawing
// into view and charts. reg may be nil.
func newController(cfg *config.Config, log *zap.Logger, reg *metrics.Registry, view dashboard.View, charts dashboard.ChartRenderer) *dashboard.Controller {
	c := client.New(cfg.API.BaseURL,
		client.WithLogger(log),
		client.WithMetrics(reg),
	)
	return dashboard.New(c, view, charts, dashboard.Options{
		Logger:           log,
		Metrics:          reg,
		History:          dashboard.NewHistory(cfg.Dashboard.HistorySize),
		PredictionsLimit: cfg.Dashboard.PredictionsLimit,
	})
}
