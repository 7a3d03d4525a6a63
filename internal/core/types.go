package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ClassMetrics holds a per-class score expressed as a percentage.
type ClassMetrics struct {
	Class0      float64 `json:"class_0"`
	Class1      float64 `json:"class_1"`
	WeightedAvg float64 `json:"weighted_avg,omitempty"`
}

// TrainTestRatio is the train/test split as fractions of the dataset.
type TrainTestRatio struct {
	Train float64 `json:"train"`
	Test  float64 `json:"test"`
}

// ConfusionMatrix is a 2x2 predicted-vs-actual count table.
// Rows are actual labels, columns are predicted labels.
type ConfusionMatrix [][]int

// Validate checks the matrix is exactly 2x2 with non-negative counts.
func (m ConfusionMatrix) Validate() error {
	if len(m) != 2 {
		return fmt.Errorf("confusion matrix must have 2 rows, got %d", len(m))
	}
	for i, row := range m {
		if len(row) != 2 {
			return fmt.Errorf("confusion matrix row %d must have 2 columns, got %d", i, len(row))
		}
		for j, v := range row {
			if v < 0 {
				return fmt.Errorf("confusion matrix cell [%d][%d] is negative: %d", i, j, v)
			}
		}
	}
	return nil
}

// Correct returns the diagonal sum.
func (m ConfusionMatrix) Correct() int {
	return m[0][0] + m[1][1]
}

// Incorrect returns the off-diagonal sum.
func (m ConfusionMatrix) Incorrect() int {
	return m[0][1] + m[1][0]
}

// Total returns the sum of all cells.
func (m ConfusionMatrix) Total() int {
	return m.Correct() + m.Incorrect()
}

// ModelSummary is the aggregate evaluation payload for one trained classifier.
type ModelSummary struct {
	Algorithm        string          `json:"algorithm"`
	Accuracy         float64         `json:"accuracy"`
	DataShape        []int           `json:"data_shape"`
	FeaturesCount    int             `json:"features_count"`
	TrainSize        *int            `json:"train_size,omitempty"`
	TestSize         *int            `json:"test_size,omitempty"`
	TrainTestRatio   *TrainTestRatio `json:"train_test_ratio,omitempty"`
	TotalPredictions int             `json:"total_predictions,omitempty"`
	Precision        ClassMetrics    `json:"precision"`
	Recall           ClassMetrics    `json:"recall"`
	F1Score          ClassMetrics    `json:"f1_score"`
	ConfusionMatrix  ConfusionMatrix `json:"confusion_matrix"`
}

// SampleCount returns the number of rows in the dataset, or 0 if unknown.
func (s ModelSummary) SampleCount() int {
	if len(s.DataShape) == 0 {
		return 0
	}
	return s.DataShape[0]
}

// HasSplit reports whether the summary carries train/test split details.
func (s ModelSummary) HasSplit() bool {
	return (s.TrainSize != nil && *s.TrainSize > 0) || (s.TestSize != nil && *s.TestSize > 0)
}

// Label is a class label. The backend may encode labels as numbers (0, 1.0)
// or strings; both render the same way.
type Label string

// UnmarshalJSON accepts a JSON number or string.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("label must be a number or string: %w", err)
	}
	*l = Label(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// Prediction is one predicted-vs-actual sample.
type Prediction struct {
	Index     int   `json:"index"`
	Predicted Label `json:"predicted"`
	Actual    Label `json:"actual"`
	Correct   bool  `json:"correct"`
}

// SummaryResponse is the body of GET /model/metrics/summary.
type SummaryResponse struct {
	Summary *ModelSummary `json:"summary"`
	Status  string        `json:"status,omitempty"`
}

// PredictionsResponse is the body of GET /model/predictions.
type PredictionsResponse struct {
	Predictions      []Prediction `json:"predictions"`
	TotalPredictions int          `json:"total_predictions,omitempty"`
	SampleSize       int          `json:"sample_size,omitempty"`
	Status           string       `json:"status,omitempty"`
}
