package gate

import (
	"testing"

	"github.com/newthinker/evaldash/internal/core"
)

func TestRule_Evaluate(t *testing.T) {
	tests := []struct {
		expr     string
		values   map[string]float64
		expected bool
	}{
		{"accuracy > 90", map[string]float64{"accuracy": 94.5}, true},
		{"accuracy > 90", map[string]float64{"accuracy": 88}, false},
		{"incorrect == 0", map[string]float64{"incorrect": 0}, true},
		{"incorrect == 0", map[string]float64{"incorrect": 3}, false},
		{"samples >= 100", map[string]float64{"samples": 100}, true},
		{"samples >= 100", map[string]float64{"samples": 99}, false},
		{"recall <= 100", map[string]float64{"recall": 50}, true},
		{"recall < 50", map[string]float64{"recall": 50}, false},
		{"features != 4", map[string]float64{"features": 5}, true},
		{"features != 4", map[string]float64{"features": 4}, false},
		{"f1_score > 0", map[string]float64{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Rule{Expr: tt.expr}.Evaluate(tt.values)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expr %q with %v: expected %v, got %v", tt.expr, tt.values, tt.expected, got)
			}
		})
	}
}

func TestRule_Validate(t *testing.T) {
	if err := (Rule{Expr: "accuracy >= 90"}).Validate(); err != nil {
		t.Errorf("expected valid rule, got %v", err)
	}
	if err := (Rule{Expr: "accuracy is high"}).Validate(); err == nil {
		t.Error("expected parse error")
	}
	if err := (Rule{Name: "latency", Expr: "latency < 5"}).Validate(); err == nil {
		t.Error("expected unknown metric error")
	}
}

func TestRule_FormatMessage(t *testing.T) {
	r := Rule{Name: "min_accuracy", Severity: "warning", Expr: "accuracy >= 90", Message: "accuracy below 90%"}
	if got := r.FormatMessage(); got != "[WARNING] min_accuracy: accuracy below 90%" {
		t.Errorf("unexpected message: %s", got)
	}

	bare := Rule{Expr: "accuracy >= 90"}
	if got := bare.FormatMessage(); got != "[ERROR] accuracy >= 90: accuracy >= 90" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestCheck(t *testing.T) {
	s := core.ModelSummary{
		Accuracy:        92,
		DataShape:       []int{100, 4},
		FeaturesCount:   4,
		F1Score:         core.ClassMetrics{Class0: 93, Class1: 91, WeightedAvg: 92},
		ConfusionMatrix: core.ConfusionMatrix{{50, 5}, {3, 42}},
	}
	rules := []Rule{
		{Name: "accuracy", Expr: "accuracy >= 90"},
		{Name: "class_1", Expr: "f1_score_class_1 > 95"},
		{Name: "errors", Expr: "incorrect <= 8"},
		{Name: "broken", Expr: "nonsense"},
	}

	failed := Check(rules, s)
	if len(failed) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failed))
	}
	if failed[0].Rule.Name != "class_1" || failed[0].Err != nil {
		t.Errorf("unexpected first failure: %+v", failed[0])
	}
	if failed[1].Rule.Name != "broken" || failed[1].Err == nil {
		t.Errorf("expected parse failure second, got %+v", failed[1])
	}
}

func TestValues_SkipsMalformedMatrix(t *testing.T) {
	v := Values(core.ModelSummary{ConfusionMatrix: core.ConfusionMatrix{{1}}})
	if _, ok := v["correct"]; ok {
		t.Error("correct should be absent for a malformed matrix")
	}
	if v["samples"] != 0 {
		t.Errorf("expected 0 samples, got %v", v["samples"])
	}
}
