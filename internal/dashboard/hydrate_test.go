package dashboard

import (
	"fmt"
	"testing"

	"github.com/newthinker/evaldash/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfusionGrid(t *testing.T) {
	grid := ConfusionGrid(core.ConfusionMatrix{{50, 5}, {3, 42}})

	require.Len(t, grid, 3)
	texts := make([][]string, 3)
	for i, row := range grid {
		require.Len(t, row, 3)
		for _, cell := range row {
			texts[i] = append(texts[i], cell.Text)
		}
	}
	assert.Equal(t, [][]string{
		{"", "Predicted 0", "Predicted 1"},
		{"Actual 0", "50", "5"},
		{"Actual 1", "3", "42"},
	}, texts)

	assert.Equal(t, ClassConfusionCell, grid[0][0].Class)
	assert.Equal(t, ClassConfusionHeader, grid[0][1].Class)
	assert.Equal(t, ClassConfusionHeader, grid[0][2].Class)
	assert.Equal(t, ClassConfusionLabel, grid[1][0].Class)
	assert.Equal(t, ClassConfusionLabel, grid[2][0].Class)
	for _, cell := range []Cell{grid[1][1], grid[1][2], grid[2][1], grid[2][2]} {
		assert.Equal(t, ClassConfusionValue, cell.Class)
	}
}

func makePredictions(n int) []core.Prediction {
	preds := make([]core.Prediction, n)
	for i := range preds {
		preds[i] = core.Prediction{
			Index:     i + 1,
			Predicted: core.Label(fmt.Sprint(i % 2)),
			Actual:    "0",
			Correct:   i%2 == 0,
		}
	}
	return preds
}

func TestPredictionRows_Limit(t *testing.T) {
	tests := []struct {
		n, limit, want int
	}{
		{0, 10, 0},
		{3, 10, 3},
		{10, 10, 10},
		{25, 10, 10},
		{25, 0, 0},
		{5, -1, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.limit, tt.n), func(t *testing.T) {
			rows := PredictionRows(makePredictions(tt.n), tt.limit)
			require.Len(t, rows, tt.want)
			for i, row := range rows {
				assert.Equal(t, fmt.Sprint(i+1), row[0].Text, "rows must keep input order")
			}
		})
	}
}

func TestPredictionRows_ResultCell(t *testing.T) {
	rows := PredictionRows(makePredictions(2), 10)

	assert.Equal(t, Cell{Text: "Correct", Class: ClassResultCorrect}, rows[0][3])
	assert.Equal(t, Cell{Text: "Incorrect", Class: ClassResultIncorrect}, rows[1][3])
	assert.Equal(t, "1", rows[1][1].Text)
	assert.Equal(t, "0", rows[1][2].Text)
}

func TestRenderOverviewAndPerformance(t *testing.T) {
	v := newRecordingView()
	s := core.ModelSummary{
		Algorithm:        "Random Forest",
		Accuracy:         94.5,
		DataShape:        []int{1234, 9},
		FeaturesCount:    8,
		TotalPredictions: 247,
		Precision:        core.ClassMetrics{Class0: 95, Class1: 93.25, WeightedAvg: 94.1},
		Recall:           core.ClassMetrics{Class0: 96.1, Class1: 92, WeightedAvg: 94},
		F1Score:          core.ClassMetrics{Class0: 95.55, Class1: 92.62, WeightedAvg: 94.05},
	}

	renderOverview(v, s)
	renderPerformance(v, s)

	want := map[string]string{
		IDAccuracy:         "94.5%",
		IDAlgorithm:        "Random Forest",
		IDDataset:          "1,234",
		IDFeatures:         "8",
		IDPrecision0:       "95%",
		IDPrecision1:       "93.25%",
		IDRecall0:          "96.1%",
		IDRecall1:          "92%",
		IDF1Score0:         "95.55%",
		IDF1Score1:         "92.62%",
		IDPrecisionAvg:     "94.1%",
		IDRecallAvg:        "94%",
		IDF1ScoreAvg:       "94.05%",
		IDTotalPredictions: "247",
	}
	for id, text := range want {
		assert.Equal(t, text, v.text(id), id)
	}
}

func TestRenderSplit(t *testing.T) {
	v := newRecordingView()
	train, test := 987, 247

	renderSplit(v, core.ModelSummary{TrainSize: &train, TestSize: &test})
	assert.True(t, v.isVisible(IDSplitPanel))
	assert.Equal(t, "987", v.text(IDTrainSize))
	assert.Equal(t, "247", v.text(IDTestSize))
	assert.Equal(t, "80%", v.text(IDTrainRatio))
	assert.Equal(t, "20%", v.text(IDTestRatio))

	renderSplit(v, core.ModelSummary{
		TrainSize:      &train,
		TestSize:       &test,
		TrainTestRatio: &core.TrainTestRatio{Train: 0.75, Test: 0.25},
	})
	assert.Equal(t, "75%", v.text(IDTrainRatio))

	renderSplit(v, core.ModelSummary{})
	assert.False(t, v.isVisible(IDSplitPanel))
}

func TestRenderPredictions_Replaces(t *testing.T) {
	v := newRecordingView()

	renderPredictions(v, makePredictions(12), 10)
	renderPredictions(v, makePredictions(4), 10)

	assert.Len(t, v.table(IDPredictionsTable), 4)
}
