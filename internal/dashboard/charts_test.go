package dashboard

import (
	"testing"

	"github.com/newthinker/evaldash/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformanceChart(t *testing.T) {
	s := core.ModelSummary{
		Precision: core.ClassMetrics{Class0: 94.34, Class1: 89.36},
		Recall:    core.ClassMetrics{Class0: 90.91, Class1: 93.33},
		F1Score:   core.ClassMetrics{Class0: 92.59, Class1: 91.3},
	}

	spec := PerformanceChart(s)

	assert.Equal(t, ChartBar, spec.Kind)
	assert.Equal(t, []string{"Precision", "Recall", "F1-Score"}, spec.Labels)
	require.Len(t, spec.Datasets, 2)
	assert.Equal(t, "Class 0", spec.Datasets[0].Label)
	assert.Equal(t, []float64{94.34, 90.91, 92.59}, spec.Datasets[0].Data)
	assert.Equal(t, "Class 1", spec.Datasets[1].Label)
	assert.Equal(t, []float64{89.36, 93.33, 91.3}, spec.Datasets[1].Data)
	assert.Equal(t, 0.0, spec.YMin)
	assert.Equal(t, 100.0, spec.YMax)
	assert.Equal(t, "%", spec.TickSuffix)
}

func TestPredictionChart(t *testing.T) {
	spec := PredictionChart(core.ConfusionMatrix{{50, 5}, {3, 42}})

	assert.Equal(t, ChartDoughnut, spec.Kind)
	assert.Equal(t, "Prediction Accuracy (100 total)", spec.Title)
	require.Len(t, spec.Datasets, 1)

	ds := spec.Datasets[0]
	assert.Equal(t, []float64{92, 8}, ds.Data)
	assert.Equal(t, []string{
		"Correct Predictions: 92 (92.0%)",
		"Incorrect Predictions: 8 (8.0%)",
	}, ds.Tooltips)
}

func TestPredictionChart_SumsToTotal(t *testing.T) {
	matrices := []core.ConfusionMatrix{
		{{0, 0}, {0, 0}},
		{{1, 2}, {3, 4}},
		{{1200, 34}, {56, 987}},
	}

	for _, m := range matrices {
		data := PredictionChart(m).Datasets[0].Data
		assert.Equal(t, float64(m[0][0]+m[1][1]), data[0])
		assert.Equal(t, float64(m[0][1]+m[1][0]), data[1])
		assert.Equal(t, float64(m[0][0]+m[0][1]+m[1][0]+m[1][1]), data[0]+data[1])
	}
}

func TestTooltipLabel(t *testing.T) {
	assert.Equal(t, "Correct Predictions: 1,200 (66.7%)", TooltipLabel("Correct Predictions", 1200, 1800))
	assert.Equal(t, "Incorrect Predictions: 0 (0.0%)", TooltipLabel("Incorrect Predictions", 0, 0))
}
