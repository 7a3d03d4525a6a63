// Package dashboard loads model evaluation metrics and renders them into a View.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/newthinker/evaldash/internal/client"
	"github.com/newthinker/evaldash/internal/core"
	"github.com/newthinker/evaldash/internal/metrics"
	"github.com/newthinker/evaldash/internal/task"
	"go.uber.org/zap"
)

// Source is the Metrics Service as seen by the controller.
type Source interface {
	Health(ctx context.Context) (*client.Health, error)
	Summary(ctx context.Context) ([]byte, error)
	Predictions(ctx context.Context) ([]byte, error)
}

// Options configures a Controller. Zero values are usable.
type Options struct {
	Logger           *zap.Logger
	Metrics          *metrics.Registry
	History          *History
	PredictionsLimit int
}

// Controller owns the UI state and the chart instances, and runs reload cycles.
//
// Reloads are independent: concurrent calls are not de-duplicated and their
// fetches may interleave. State changes and rendering are serialized, so each
// canvas holds at most one live chart.
type Controller struct {
	source  Source
	view    View
	charts  ChartRenderer
	logger  *zap.Logger
	metrics *metrics.Registry
	history *History
	limit   int

	mu               sync.Mutex
	state            State
	performanceChart Chart
	predictionChart  Chart
}

// New creates a controller in the Loading state.
func New(source Source, view View, charts ChartRenderer, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.History == nil {
		opts.History = NewHistory(50)
	}
	if opts.PredictionsLimit < 1 {
		opts.PredictionsLimit = 10
	}

	return &Controller{
		source:  source,
		view:    view,
		charts:  charts,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		history: opts.History,
		limit:   opts.PredictionsLimit,
		state:   State{Phase: PhaseLoading, UpdatedAt: time.Now()},
	}
}

// Load runs a full reload cycle triggered by a refresh.
func (c *Controller) Load(ctx context.Context) error {
	return c.Reload(ctx, TriggerRefresh)
}

// Reload runs health check, parallel fetch and hydration. On failure the
// controller ends in the Error state and the error is returned.
func (c *Controller) Reload(ctx context.Context, trigger Trigger) error {
	rec := c.history.Start(trigger)
	start := time.Now()
	log := c.logger.With(zap.String("reload_id", rec.ID), zap.String("trigger", string(trigger)))

	c.showLoading()

	summary, preds, err := c.fetch(ctx, log)
	if err == nil {
		err = c.render(*summary, preds)
	}

	elapsed := time.Since(start)
	if err != nil {
		c.showError(err)
		code := errorCode(err)
		c.history.Finish(rec.ID, code, core.Describe(err))
		c.metrics.RecordReload(code, elapsed.Seconds())
		log.Warn("dashboard reload failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return err
	}

	c.history.Finish(rec.ID, "", "")
	c.metrics.RecordReload("success", elapsed.Seconds())
	log.Info("dashboard reloaded",
		zap.Duration("elapsed", elapsed),
		zap.String("algorithm", summary.Algorithm),
		zap.Int("predictions", len(preds)),
	)
	return nil
}

func (c *Controller) fetch(ctx context.Context, log *zap.Logger) (*core.ModelSummary, []core.Prediction, error) {
	health, err := c.source.Health(ctx)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("health check passed", zap.String("status", health.Status))

	summaryBody, predictionsBody, err := task.Both(ctx, c.source.Summary, c.source.Predictions)
	if err != nil {
		return nil, nil, err
	}

	summary, err := decodeSummary(summaryBody)
	if err != nil {
		return nil, nil, err
	}
	preds, err := decodePredictions(predictionsBody)
	if err != nil {
		return nil, nil, err
	}
	return summary, preds, nil
}

// render hydrates every element and swaps in the content state.
func (c *Controller) render(s core.ModelSummary, preds []core.Prediction) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = core.NewRenderError(fmt.Errorf("panic while hydrating: %v", r))
		}
	}()

	renderOverview(c.view, s)
	renderSplit(c.view, s)
	renderPerformance(c.view, s)
	renderConfusionMatrix(c.view, s.ConfusionMatrix)

	if err := c.replaceChart(&c.performanceChart, CanvasPerformance, PerformanceChart(s)); err != nil {
		return err
	}
	if err := c.replaceChart(&c.predictionChart, CanvasPrediction, PredictionChart(s.ConfusionMatrix)); err != nil {
		return err
	}

	renderPredictions(c.view, preds, c.limit)

	summary := s
	c.setState(State{Phase: PhaseContent, Summary: &summary, Predictions: preds})
	return nil
}

// replaceChart destroys the chart held in handle, then draws a new one.
func (c *Controller) replaceChart(handle *Chart, canvas string, spec ChartSpec) error {
	if *handle != nil {
		(*handle).Destroy()
		*handle = nil
		c.metrics.SetChartsLive(canvas, 0)
	}

	chart, err := c.charts.Render(canvas, spec)
	if err != nil {
		return core.NewRenderError(fmt.Errorf("drawing %s: %w", canvas, err))
	}
	*handle = chart
	c.metrics.SetChartsLive(canvas, 1)
	return nil
}

func (c *Controller) showLoading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setState(State{Phase: PhaseLoading})
}

func (c *Controller) showError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := core.Describe(err)
	c.view.SetText(IDErrorText, msg)
	c.setState(State{Phase: PhaseError, Message: msg})
}

// setState must be called with mu held.
func (c *Controller) setState(s State) {
	s.UpdatedAt = time.Now()
	c.state = s
	applyVisibility(c.view, s.Phase)
	c.metrics.SetUIState(s.Phase.String())
}

// State returns a snapshot of the current UI state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Read calls fn with the current state while no reload can change the view,
// so fn can copy the view's contents consistently with that state. fn must
// not call back into the controller.
func (c *Controller) Read(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.state)
}

// History returns the reload log.
func (c *Controller) History() *History {
	return c.history
}

// Close destroys any live charts.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.performanceChart != nil {
		c.performanceChart.Destroy()
		c.performanceChart = nil
		c.metrics.SetChartsLive(CanvasPerformance, 0)
	}
	if c.predictionChart != nil {
		c.predictionChart.Destroy()
		c.predictionChart = nil
		c.metrics.SetChartsLive(CanvasPrediction, 0)
	}
}

func errorCode(err error) string {
	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		return coreErr.Code
	}
	return "UNKNOWN"
}
