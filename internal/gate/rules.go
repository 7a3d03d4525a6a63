package gate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/newthinker/evaldash/internal/core"
)

var exprPattern = regexp.MustCompile(`^(\w+)\s*(>=|<=|==|!=|>|<)\s*(-?[\d.]+)$`)

// Rule is a quality threshold checked against a fetched model summary,
// e.g. "accuracy >= 90" or "f1_score_class_1 > 80".
type Rule struct {
	Name     string `mapstructure:"name" yaml:"name"`
	Expr     string `mapstructure:"expr" yaml:"expr"`
	Severity string `mapstructure:"severity" yaml:"severity,omitempty"`
	Message  string `mapstructure:"message" yaml:"message,omitempty"`
}

type condition struct {
	metric    string
	op        string
	threshold float64
}

func (r Rule) parse() (condition, error) {
	m := exprPattern.FindStringSubmatch(strings.TrimSpace(r.Expr))
	if len(m) != 4 {
		return condition{}, fmt.Errorf("rule %q: cannot parse expression %q", r.label(), r.Expr)
	}
	threshold, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return condition{}, fmt.Errorf("rule %q: bad threshold: %w", r.label(), err)
	}
	return condition{metric: m[1], op: m[2], threshold: threshold}, nil
}

// Validate reports whether the expression parses and names a known metric.
func (r Rule) Validate() error {
	c, err := r.parse()
	if err != nil {
		return err
	}
	if !knownMetric(c.metric) {
		return fmt.Errorf("rule %q: unknown metric %q", r.label(), c.metric)
	}
	return nil
}

// Evaluate reports whether the rule holds for the given metric values.
// A metric missing from values fails the rule.
func (r Rule) Evaluate(values map[string]float64) (bool, error) {
	c, err := r.parse()
	if err != nil {
		return false, err
	}
	value, ok := values[c.metric]
	if !ok {
		return false, nil
	}

	switch c.op {
	case ">":
		return value > c.threshold, nil
	case "<":
		return value < c.threshold, nil
	case ">=":
		return value >= c.threshold, nil
	case "<=":
		return value <= c.threshold, nil
	case "==":
		return value == c.threshold, nil
	default:
		return value != c.threshold, nil
	}
}

// FormatMessage renders the failure line for a rule.
func (r Rule) FormatMessage() string {
	severity := r.Severity
	if severity == "" {
		severity = "error"
	}
	msg := r.Message
	if msg == "" {
		msg = r.Expr
	}
	return fmt.Sprintf("[%s] %s: %s", strings.ToUpper(severity), r.label(), msg)
}

func (r Rule) label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Expr
}

// Values flattens a summary into the metric names rules may reference.
func Values(s core.ModelSummary) map[string]float64 {
	v := map[string]float64{
		"accuracy":          s.Accuracy,
		"samples":           float64(s.SampleCount()),
		"features":          float64(s.FeaturesCount),
		"precision":         s.Precision.WeightedAvg,
		"recall":            s.Recall.WeightedAvg,
		"f1_score":          s.F1Score.WeightedAvg,
		"precision_class_0": s.Precision.Class0,
		"precision_class_1": s.Precision.Class1,
		"recall_class_0":    s.Recall.Class0,
		"recall_class_1":    s.Recall.Class1,
		"f1_score_class_0":  s.F1Score.Class0,
		"f1_score_class_1":  s.F1Score.Class1,
	}
	if s.ConfusionMatrix.Validate() == nil {
		v["correct"] = float64(s.ConfusionMatrix.Correct())
		v["incorrect"] = float64(s.ConfusionMatrix.Incorrect())
	}
	return v
}

func knownMetric(name string) bool {
	switch name {
	case "accuracy", "samples", "features", "precision", "recall", "f1_score",
		"precision_class_0", "precision_class_1", "recall_class_0", "recall_class_1",
		"f1_score_class_0", "f1_score_class_1", "correct", "incorrect":
		return true
	}
	return false
}

// Failure is a rule that did not hold.
type Failure struct {
	Rule Rule
	Err  error
}

// Check evaluates every rule and returns the ones that failed, in order.
func Check(rules []Rule, s core.ModelSummary) []Failure {
	values := Values(s)
	var failed []Failure
	for _, r := range rules {
		ok, err := r.Evaluate(values)
		if err != nil || !ok {
			failed = append(failed, Failure{Rule: r, Err: err})
		}
	}
	return failed
}
