// Package stub provides an in-process Metrics Service for tests.
package stub

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// SummaryJSON is a complete summary payload with confusion matrix [[50,5],[3,42]].
const SummaryJSON = `{
  "status": "success",
  "summary": {
    "algorithm": "Random Forest",
    "accuracy": 92.0,
    "data_shape": [1234, 9],
    "features_count": 8,
    "train_size": 987,
    "test_size": 247,
    "train_test_ratio": {"train": 0.8, "test": 0.2},
    "total_predictions": 100,
    "precision": {"class_0": 94.34, "class_1": 89.36, "weighted_avg": 92.1},
    "recall": {"class_0": 90.91, "class_1": 93.33, "weighted_avg": 92.0},
    "f1_score": {"class_0": 92.59, "class_1": 91.3, "weighted_avg": 92.0},
    "confusion_matrix": [[50, 5], [3, 42]]
  }
}`

// HealthJSON is a healthy response body.
const HealthJSON = `{"status": "healthy", "message": "ML Model API is running"}`

// PredictionsJSON builds a predictions payload with n rows. Every third row
// is incorrect.
func PredictionsJSON(n int) string {
	rows := make([]string, n)
	for i := 0; i < n; i++ {
		predicted, actual := i%2, i%2
		if i%3 == 2 {
			actual = 1 - predicted
		}
		rows[i] = fmt.Sprintf(`{"index": %d, "predicted": %d.0, "actual": %d.0, "correct": %t}`,
			i+1, predicted, actual, predicted == actual)
	}
	return fmt.Sprintf(`{"status": "success", "total_predictions": %d, "sample_size": %d, "predictions": [%s]}`,
		n, n, strings.Join(rows, ","))
}

// Response is a canned reply for one endpoint.
type Response struct {
	Status int
	Body   string
	Delay  time.Duration
}

// Service serves /api/health, /api/model/metrics/summary and /api/model/predictions.
type Service struct {
	mu        sync.Mutex
	responses map[string]Response
	hits      map[string]int
	server    *httptest.Server
}

var routes = map[string]string{
	"/api/health":                "health",
	"/api/model/metrics/summary": "summary",
	"/api/model/predictions":     "predictions",
}

// New starts a Service answering every endpoint successfully.
func New() *Service {
	s := &Service{
		responses: map[string]Response{
			"health":      {Status: http.StatusOK, Body: HealthJSON},
			"summary":     {Status: http.StatusOK, Body: SummaryJSON},
			"predictions": {Status: http.StatusOK, Body: PredictionsJSON(15)},
		},
		hits: make(map[string]int),
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *Service) serve(w http.ResponseWriter, r *http.Request) {
	endpoint, ok := routes[r.URL.Path]
	if !ok || r.Method != http.MethodGet {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Endpoint not found", "status": "error"}`))
		return
	}

	s.mu.Lock()
	s.hits[endpoint]++
	resp := s.responses[endpoint]
	s.mu.Unlock()

	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	w.Write([]byte(resp.Body))
}

// URL is the API base URL, including the /api prefix.
func (s *Service) URL() string {
	return s.server.URL + "/api"
}

// Set replaces the canned response for endpoint.
func (s *Service) Set(endpoint string, r Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Status == 0 {
		r.Status = http.StatusOK
	}
	s.responses[endpoint] = r
}

// Hits returns how many requests endpoint has received.
func (s *Service) Hits(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[endpoint]
}

// Close shuts the server down.
func (s *Service) Close() {
	s.server.Close()
}
