package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// findMetric gathers reg and returns the family called name, or nil.
func findMetric(t *testing.T, reg *Registry, name string) *dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == name {
			return label.GetValue()
		}
	}
	return ""
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	// Should have go runtime metrics at minimum
	if len(mfs) == 0 {
		t.Error("expected some metrics to be registered")
	}
}

func TestRegistry_RecordRequest_StatusCodes(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			reg := NewRegistry()
			reg.RecordRequest("GET", "/", tt.status, 0.01)

			mf := findMetric(t, reg, "http_requests_total")
			if mf == nil {
				t.Fatal("expected http_requests_total metric")
			}
			if got := labelValue(mf.GetMetric()[0], "status"); got != tt.expected {
				t.Errorf("expected status label %s for status code %d, got %s", tt.expected, tt.status, got)
			}
		})
	}
}

func TestRegistry_InFlight(t *testing.T) {
	reg := NewRegistry()

	reg.InFlightInc()
	reg.InFlightInc()
	reg.InFlightDec()

	mf := findMetric(t, reg, "http_requests_in_flight")
	if mf == nil {
		t.Fatal("expected http_requests_in_flight metric")
	}
	if v := mf.GetMetric()[0].GetGauge().GetValue(); v != 1 {
		t.Errorf("expected in-flight gauge to be 1, got %v", v)
	}
}

func TestRegistry_RecordReload(t *testing.T) {
	reg := NewRegistry()

	reg.RecordReload("success", 0.2)
	reg.RecordReload("success", 0.3)
	reg.RecordReload("BACKEND_ERROR", 0.1)

	mf := findMetric(t, reg, "evaldash_reloads_total")
	if mf == nil {
		t.Fatal("expected evaldash_reloads_total metric")
	}
	counts := map[string]float64{}
	for _, m := range mf.GetMetric() {
		counts[labelValue(m, "result")] = m.GetCounter().GetValue()
	}
	if counts["success"] != 2 || counts["BACKEND_ERROR"] != 1 {
		t.Errorf("unexpected reload counts: %v", counts)
	}

	hist := findMetric(t, reg, "evaldash_reload_duration_seconds")
	if hist == nil || hist.GetMetric()[0].GetHistogram().GetSampleCount() != 3 {
		t.Error("expected 3 reload duration samples")
	}
}

func TestRegistry_RecordFetch(t *testing.T) {
	reg := NewRegistry()

	reg.RecordFetch("summary", 200, 0.05)
	reg.RecordFetch("health", 0, 0.01)

	mf := findMetric(t, reg, "evaldash_endpoint_requests_total")
	if mf == nil {
		t.Fatal("expected evaldash_endpoint_requests_total metric")
	}
	seen := map[string]string{}
	for _, m := range mf.GetMetric() {
		seen[labelValue(m, "endpoint")] = labelValue(m, "status")
	}
	if seen["summary"] != "200" {
		t.Errorf("expected summary status 200, got %q", seen["summary"])
	}
	if seen["health"] != "error" {
		t.Errorf("expected health status error, got %q", seen["health"])
	}
}

func TestRegistry_SetUIState(t *testing.T) {
	reg := NewRegistry()

	reg.SetUIState("loading")
	reg.SetUIState("content")

	mf := findMetric(t, reg, "evaldash_ui_state")
	if mf == nil {
		t.Fatal("expected evaldash_ui_state metric")
	}
	for _, m := range mf.GetMetric() {
		want := 0.0
		if labelValue(m, "state") == "content" {
			want = 1
		}
		if m.GetGauge().GetValue() != want {
			t.Errorf("state %s: expected %v, got %v", labelValue(m, "state"), want, m.GetGauge().GetValue())
		}
	}
}

func TestRegistry_SetChartsLive(t *testing.T) {
	reg := NewRegistry()
	reg.SetChartsLive("performanceChart", 1)

	mf := findMetric(t, reg, "evaldash_charts_live")
	if mf == nil {
		t.Fatal("expected evaldash_charts_live metric")
	}
	if v := mf.GetMetric()[0].GetGauge().GetValue(); v != 1 {
		t.Errorf("expected 1 live chart, got %v", v)
	}
}

func TestRegistry_NilIsNoop(t *testing.T) {
	var reg *Registry

	reg.RecordRequest("GET", "/", 200, 0.1)
	reg.RecordReload("success", 0.1)
	reg.RecordFetch("health", 200, 0.1)
	reg.SetChartsLive("predictionChart", 1)
	reg.SetUIState("error")
	reg.InFlightInc()
	reg.InFlightDec()
}

// Ensure the registry implements prometheus.Gatherer interface
func TestRegistry_ImplementsGatherer(t *testing.T) {
	reg := NewRegistry()
	var _ prometheus.Gatherer = reg
}
