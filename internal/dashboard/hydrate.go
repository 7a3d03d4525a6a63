package dashboard

import (
	"strconv"

	"github.com/newthinker/evaldash/internal/core"
)

// Confusion grid cell classes.
const (
	ClassConfusionCell   = "confusion-cell"
	ClassConfusionHeader = "confusion-cell confusion-header"
	ClassConfusionLabel  = "confusion-cell confusion-label"
	ClassConfusionValue  = "confusion-cell confusion-value"

	ClassResultCorrect   = "result-correct"
	ClassResultIncorrect = "result-incorrect"
)

func renderOverview(v View, s core.ModelSummary) {
	v.SetText(IDAccuracy, Percent(s.Accuracy))
	v.SetText(IDAlgorithm, s.Algorithm)
	v.SetText(IDDataset, Count(s.SampleCount()))
	v.SetText(IDFeatures, strconv.Itoa(s.FeaturesCount))
}

// renderSplit shows the train/test panel only when the summary has one.
func renderSplit(v View, s core.ModelSummary) {
	if !s.HasSplit() {
		v.SetVisibility(IDSplitPanel, false)
		return
	}

	v.SetText(IDTrainSize, Count(intOrZero(s.TrainSize)))
	v.SetText(IDTestSize, Count(intOrZero(s.TestSize)))

	ratio := core.TrainTestRatio{Train: 0.8, Test: 0.2}
	if s.TrainTestRatio != nil {
		ratio = *s.TrainTestRatio
	}
	v.SetText(IDTrainRatio, Fraction(ratio.Train))
	v.SetText(IDTestRatio, Fraction(ratio.Test))
	v.SetVisibility(IDSplitPanel, true)
}

func renderPerformance(v View, s core.ModelSummary) {
	v.SetText(IDPrecision0, Percent(s.Precision.Class0))
	v.SetText(IDPrecision1, Percent(s.Precision.Class1))
	v.SetText(IDRecall0, Percent(s.Recall.Class0))
	v.SetText(IDRecall1, Percent(s.Recall.Class1))
	v.SetText(IDF1Score0, Percent(s.F1Score.Class0))
	v.SetText(IDF1Score1, Percent(s.F1Score.Class1))

	v.SetText(IDPrecisionAvg, Percent(s.Precision.WeightedAvg))
	v.SetText(IDRecallAvg, Percent(s.Recall.WeightedAvg))
	v.SetText(IDF1ScoreAvg, Percent(s.F1Score.WeightedAvg))
	v.SetText(IDTotalPredictions, Count(s.TotalPredictions))
}

func renderConfusionMatrix(v View, m core.ConfusionMatrix) {
	v.RenderTable(IDConfusionMatrix, ConfusionGrid(m))
}

func renderPredictions(v View, preds []core.Prediction, limit int) {
	v.RenderTable(IDPredictionsTable, PredictionRows(preds, limit))
}

// ConfusionGrid lays m out as a 3x3 grid: a header row, then one labeled row
// per actual class. m must be 2x2.
func ConfusionGrid(m core.ConfusionMatrix) [][]Cell {
	texts := [3][3]string{
		{"", "Predicted 0", "Predicted 1"},
		{"Actual 0", strconv.Itoa(m[0][0]), strconv.Itoa(m[0][1])},
		{"Actual 1", strconv.Itoa(m[1][0]), strconv.Itoa(m[1][1])},
	}

	grid := make([][]Cell, 3)
	for row := range texts {
		grid[row] = make([]Cell, 3)
		for col, text := range texts[row] {
			grid[row][col] = Cell{Text: text, Class: confusionClass(row, col)}
		}
	}
	return grid
}

func confusionClass(row, col int) string {
	switch {
	case row == 0 && col == 0:
		return ClassConfusionCell
	case row == 0:
		return ClassConfusionHeader
	case col == 0:
		return ClassConfusionLabel
	default:
		return ClassConfusionValue
	}
}

// PredictionRows renders the first limit predictions in input order.
func PredictionRows(preds []core.Prediction, limit int) [][]Cell {
	n := max(0, min(limit, len(preds)))
	rows := make([][]Cell, 0, n)
	for _, p := range preds[:n] {
		result := Cell{Text: "Correct", Class: ClassResultCorrect}
		if !p.Correct {
			result = Cell{Text: "Incorrect", Class: ClassResultIncorrect}
		}
		rows = append(rows, []Cell{
			{Text: strconv.Itoa(p.Index)},
			{Text: string(p.Predicted)},
			{Text: string(p.Actual)},
			result,
		})
	}
	return rows
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
