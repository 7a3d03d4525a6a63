package page

import (
	"fmt"
	"sync"

	"github.com/newthinker/evaldash/internal/dashboard"
)

// ChartJSConfig is the object passed to `new Chart(ctx, config)` in the
// browser. Tooltip lines and tick suffixes are carried as data and applied by
// a small callback in the page script.
type ChartJSConfig struct {
	Type    string       `json:"type"`
	Data    chartData    `json:"data"`
	Options chartOptions `json:"options"`
}

type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type chartDataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	BorderColor     any       `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth"`
	BorderRadius    int       `json:"borderRadius,omitempty"`
	Tooltips        []string  `json:"tooltips,omitempty"`
}

type chartOptions struct {
	Responsive          bool            `json:"responsive"`
	MaintainAspectRatio bool            `json:"maintainAspectRatio"`
	Plugins             chartPlugins    `json:"plugins"`
	Scales              map[string]axis `json:"scales,omitempty"`
}

type chartPlugins struct {
	Legend struct {
		Position string `json:"position"`
	} `json:"legend"`
	Title struct {
		Display bool   `json:"display"`
		Text    string `json:"text"`
	} `json:"title"`
}

type axis struct {
	BeginAtZero bool     `json:"beginAtZero"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Ticks       struct {
		Suffix string `json:"suffix,omitempty"`
	} `json:"ticks"`
}

// Registry is a dashboard.ChartRenderer that keeps Chart.js configs for the
// page to draw. It tracks every live instance so leaks are observable.
type Registry struct {
	mu     sync.Mutex
	nextID int
	live   map[string]map[int]*Instance
	latest map[string]*Instance
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		live:   make(map[string]map[int]*Instance),
		latest: make(map[string]*Instance),
	}
}

// Render converts spec to a Chart.js config bound to canvas.
func (r *Registry) Render(canvas string, spec dashboard.ChartSpec) (dashboard.Chart, error) {
	cfg, err := toChartJS(spec)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	inst := &Instance{id: r.nextID, canvas: canvas, config: cfg, registry: r}
	if r.live[canvas] == nil {
		r.live[canvas] = make(map[int]*Instance)
	}
	r.live[canvas][inst.id] = inst
	r.latest[canvas] = inst
	return inst, nil
}

// Live returns how many undestroyed charts exist on canvas.
func (r *Registry) Live(canvas string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live[canvas])
}

// Configs returns the config of the newest live chart on each canvas.
func (r *Registry) Configs() map[string]ChartJSConfig {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]ChartJSConfig, len(r.latest))
	for canvas, inst := range r.latest {
		out[canvas] = inst.config
	}
	return out
}

// Instance is one drawn chart.
type Instance struct {
	id       int
	canvas   string
	config   ChartJSConfig
	registry *Registry
}

// Destroy releases the chart. Calling it more than once is a no-op.
func (i *Instance) Destroy() {
	r := i.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.live[i.canvas], i.id)
	if r.latest[i.canvas] == i {
		delete(r.latest, i.canvas)
	}
}

// Config returns the Chart.js config of this instance.
func (i *Instance) Config() ChartJSConfig {
	return i.config
}

func toChartJS(spec dashboard.ChartSpec) (ChartJSConfig, error) {
	if len(spec.Datasets) == 0 {
		return ChartJSConfig{}, fmt.Errorf("chart %q has no datasets", spec.Title)
	}

	cfg := ChartJSConfig{
		Type: string(spec.Kind),
		Data: chartData{Labels: spec.Labels},
		Options: chartOptions{
			Responsive: true,
		},
	}
	cfg.Options.Plugins.Legend.Position = spec.Legend
	cfg.Options.Plugins.Title.Display = spec.Title != ""
	cfg.Options.Plugins.Title.Text = spec.Title

	for _, ds := range spec.Datasets {
		if len(spec.Labels) > 0 && len(ds.Data) != len(spec.Labels) {
			return ChartJSConfig{}, fmt.Errorf("dataset %q has %d points for %d labels", ds.Label, len(ds.Data), len(spec.Labels))
		}
		out := chartDataset{
			Label:           ds.Label,
			Data:            ds.Data,
			BackgroundColor: colorValue(ds.Colors),
			BorderColor:     colorValue(ds.BorderColors),
			BorderWidth:     2,
			Tooltips:        ds.Tooltips,
		}
		if spec.Kind == dashboard.ChartBar {
			out.BorderRadius = 8
		}
		cfg.Data.Datasets = append(cfg.Data.Datasets, out)
	}

	switch spec.Kind {
	case dashboard.ChartBar:
		y := axis{BeginAtZero: true}
		if spec.YMax > 0 {
			lo, hi := spec.YMin, spec.YMax
			y.Min, y.Max = &lo, &hi
		}
		y.Ticks.Suffix = spec.TickSuffix
		cfg.Options.Scales = map[string]axis{"y": y}
	case dashboard.ChartDoughnut:
	default:
		return ChartJSConfig{}, fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
	return cfg, nil
}

// colorValue collapses a single color to a string, which Chart.js applies to
// every point.
func colorValue(colors []string) any {
	switch len(colors) {
	case 0:
		return nil
	case 1:
		return colors[0]
	default:
		return colors
	}
}
