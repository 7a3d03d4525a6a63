package dashboard

import (
	"fmt"

	"github.com/newthinker/evaldash/internal/core"
)

// ChartKind names a chart type.
type ChartKind string

const (
	ChartBar      ChartKind = "bar"
	ChartDoughnut ChartKind = "doughnut"
)

// Dataset is one series.
type Dataset struct {
	Label        string
	Data         []float64
	Colors       []string
	BorderColors []string
	// Tooltips holds a precomputed tooltip line per data point, if any.
	Tooltips []string
}

// ChartSpec describes a chart independently of the drawing library.
type ChartSpec struct {
	Kind     ChartKind
	Title    string
	Labels   []string
	Datasets []Dataset
	// YMin and YMax clamp the value axis when YMax > 0.
	YMin       float64
	YMax       float64
	TickSuffix string
	Legend     string
}

const (
	colorClass0       = "rgba(102, 126, 234, 0.8)"
	colorClass0Border = "rgba(102, 126, 234, 1)"
	colorClass1       = "rgba(118, 75, 162, 0.8)"
	colorClass1Border = "rgba(118, 75, 162, 1)"
	colorCorrect      = "rgba(56, 161, 105, 0.8)"
	colorCorrectLine  = "rgba(56, 161, 105, 1)"
	colorWrong        = "rgba(229, 62, 62, 0.8)"
	colorWrongLine    = "rgba(229, 62, 62, 1)"
)

// PerformanceChart is the grouped bar chart of per-class metrics.
func PerformanceChart(s core.ModelSummary) ChartSpec {
	return ChartSpec{
		Kind:   ChartBar,
		Title:  "Classification Metrics by Class",
		Labels: []string{"Precision", "Recall", "F1-Score"},
		Datasets: []Dataset{
			{
				Label:        "Class 0",
				Data:         []float64{s.Precision.Class0, s.Recall.Class0, s.F1Score.Class0},
				Colors:       []string{colorClass0},
				BorderColors: []string{colorClass0Border},
			},
			{
				Label:        "Class 1",
				Data:         []float64{s.Precision.Class1, s.Recall.Class1, s.F1Score.Class1},
				Colors:       []string{colorClass1},
				BorderColors: []string{colorClass1Border},
			},
		},
		YMin:       0,
		YMax:       100,
		TickSuffix: "%",
		Legend:     "top",
	}
}

// PredictionChart is the correct-vs-incorrect donut derived from m.
func PredictionChart(m core.ConfusionMatrix) ChartSpec {
	correct, incorrect, total := m.Correct(), m.Incorrect(), m.Total()
	labels := []string{"Correct Predictions", "Incorrect Predictions"}

	return ChartSpec{
		Kind:   ChartDoughnut,
		Title:  fmt.Sprintf("Prediction Accuracy (%s total)", Count(total)),
		Labels: labels,
		Datasets: []Dataset{{
			Data:         []float64{float64(correct), float64(incorrect)},
			Colors:       []string{colorCorrect, colorWrong},
			BorderColors: []string{colorCorrectLine, colorWrongLine},
			Tooltips: []string{
				TooltipLabel(labels[0], correct, total),
				TooltipLabel(labels[1], incorrect, total),
			},
		}},
		Legend: "bottom",
	}
}

// TooltipLabel renders "<label>: <n> (<pct>%)" with pct rounded to one decimal.
func TooltipLabel(label string, value, total int) string {
	pct := 0.0
	if total > 0 {
		pct = float64(value) / float64(total) * 100
	}
	return fmt.Sprintf("%s: %s (%s%%)", label, Count(value), OneDecimal(pct))
}
