package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Trigger says what started a reload cycle.
type Trigger string

const (
	TriggerInitial Trigger = "initial"
	TriggerRefresh Trigger = "refresh"
	TriggerRetry   Trigger = "retry"
	TriggerExport  Trigger = "export"
	TriggerCheck   Trigger = "check"
)

// ReloadStatus is the outcome of a reload cycle.
type ReloadStatus string

const (
	ReloadRunning   ReloadStatus = "running"
	ReloadSucceeded ReloadStatus = "succeeded"
	ReloadFailed    ReloadStatus = "failed"
)

// Reload records one reload cycle.
type Reload struct {
	ID         string       `json:"id"`
	Trigger    Trigger      `json:"trigger"`
	Status     ReloadStatus `json:"status"`
	ErrorCode  string       `json:"error_code,omitempty"`
	Message    string       `json:"message,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at,omitzero"`
}

// Duration is how long the cycle ran, or zero while running.
func (r Reload) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// History keeps the most recent reload cycles, evicting the oldest.
type History struct {
	mu      sync.RWMutex
	reloads map[string]*Reload
	order   []string // insertion order for eviction
	maxSize int
}

// NewHistory creates a history holding at most maxSize cycles.
func NewHistory(maxSize int) *History {
	if maxSize < 1 {
		maxSize = 1
	}
	return &History{
		reloads: make(map[string]*Reload),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Start records a new running cycle and returns a copy of it.
func (h *History) Start(trigger Trigger) Reload {
	h.mu.Lock()
	defer h.mu.Unlock()

	r := &Reload{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		Status:    ReloadRunning,
		StartedAt: time.Now(),
	}

	if len(h.reloads) >= h.maxSize && len(h.order) > 0 {
		oldest := h.order[0]
		delete(h.reloads, oldest)
		h.order = h.order[1:]
	}

	h.reloads[r.ID] = r
	h.order = append(h.order, r.ID)
	return *r
}

// Finish marks a cycle done. code and message are empty on success.
// Unknown (already evicted) ids are ignored.
func (h *History) Finish(id, code, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.reloads[id]
	if !ok {
		return
	}
	r.FinishedAt = time.Now()
	r.Status = ReloadSucceeded
	if code != "" {
		r.Status = ReloadFailed
		r.ErrorCode = code
		r.Message = message
	}
}

// Get returns a copy of the cycle with id.
func (h *History) Get(id string) (Reload, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	r, ok := h.reloads[id]
	if !ok {
		return Reload{}, false
	}
	return *r, true
}

// List returns all cycles, newest first.
func (h *History) List() []Reload {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]Reload, 0, len(h.order))
	for i := len(h.order) - 1; i >= 0; i-- {
		result = append(result, *h.reloads[h.order[i]])
	}
	return result
}
