package dashboard

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/newthinker/evaldash/internal/client"
	"github.com/newthinker/evaldash/internal/core"
	"github.com/xeipuuv/gojsonschema"
)

var classMetricsSchema = map[string]any{
	"type":     "object",
	"required": []string{"class_0", "class_1"},
	"properties": map[string]any{
		"class_0":      map[string]any{"type": "number"},
		"class_1":      map[string]any{"type": "number"},
		"weighted_avg": map[string]any{"type": "number"},
	},
}

var optionalInt = map[string]any{"type": []string{"integer", "null"}}

var summarySchema = mustSchema(map[string]any{
	"type":     "object",
	"required": []string{"summary"},
	"properties": map[string]any{
		"summary": map[string]any{
			"type": "object",
			"required": []string{
				"algorithm", "accuracy", "data_shape", "features_count",
				"precision", "recall", "f1_score", "confusion_matrix",
			},
			"properties": map[string]any{
				"algorithm":      map[string]any{"type": "string"},
				"accuracy":       map[string]any{"type": "number"},
				"features_count": map[string]any{"type": "integer"},
				"data_shape": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"type": "integer"},
				},
				"train_size":        optionalInt,
				"test_size":         optionalInt,
				"total_predictions": optionalInt,
				"train_test_ratio": map[string]any{
					"type": []string{"object", "null"},
					"properties": map[string]any{
						"train": map[string]any{"type": "number"},
						"test":  map[string]any{"type": "number"},
					},
				},
				"precision": classMetricsSchema,
				"recall":    classMetricsSchema,
				"f1_score":  classMetricsSchema,
				"confusion_matrix": map[string]any{
					"type":     "array",
					"minItems": 2,
					"maxItems": 2,
					"items": map[string]any{
						"type":     "array",
						"minItems": 2,
						"maxItems": 2,
						"items":    map[string]any{"type": "integer", "minimum": 0},
					},
				},
			},
		},
	},
})

var predictionsSchema = mustSchema(map[string]any{
	"type":     "object",
	"required": []string{"predictions"},
	"properties": map[string]any{
		"predictions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"index", "predicted", "actual", "correct"},
				"properties": map[string]any{
					"index":     map[string]any{"type": "integer"},
					"predicted": map[string]any{"type": []string{"number", "string"}},
					"actual":    map[string]any{"type": []string{"number", "string"}},
					"correct":   map[string]any{"type": "boolean"},
				},
			},
		},
	},
})

// decodeSummary parses a summary body. Invalid JSON is a parse error; valid
// JSON missing fields the dashboard needs is a render error.
func decodeSummary(body []byte) (*core.ModelSummary, error) {
	if !json.Valid(body) {
		return nil, core.NewParseError(client.EndpointSummary, fmt.Errorf("body is not valid JSON"))
	}
	if err := validate(summarySchema, body); err != nil {
		return nil, core.NewRenderError(fmt.Errorf("summary: %w", err))
	}

	var resp core.SummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, core.NewRenderError(fmt.Errorf("summary: %w", err))
	}
	if err := resp.Summary.ConfusionMatrix.Validate(); err != nil {
		return nil, core.NewRenderError(err)
	}
	return resp.Summary, nil
}

func decodePredictions(body []byte) ([]core.Prediction, error) {
	if !json.Valid(body) {
		return nil, core.NewParseError(client.EndpointPredictions, fmt.Errorf("body is not valid JSON"))
	}
	if err := validate(predictionsSchema, body); err != nil {
		return nil, core.NewRenderError(fmt.Errorf("predictions: %w", err))
	}

	var resp core.PredictionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, core.NewRenderError(fmt.Errorf("predictions: %w", err))
	}
	return resp.Predictions, nil
}

func mustSchema(def map[string]any) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		panic(fmt.Sprintf("compiling schema: %v", err))
	}
	return schema
}

func validate(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("payload failed validation: %s", strings.Join(details, "; "))
}
