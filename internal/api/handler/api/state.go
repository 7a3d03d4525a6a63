package api

import (
	"net/http"

	"github.com/newthinker/evaldash/internal/api/response"
	"github.com/newthinker/evaldash/internal/dashboard"
)

// StateSource exposes the controller state.
type StateSource interface {
	State() dashboard.State
}

// StateHandler serves the current dashboard state.
type StateHandler struct {
	source StateSource
	limit  int
}

// NewStateHandler creates a state handler that returns at most limit
// predictions.
func NewStateHandler(source StateSource, limit int) *StateHandler {
	return &StateHandler{source: source, limit: limit}
}

// Get returns the phase, error message, summary and a predictions sample.
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	state := h.source.State()
	if h.limit > 0 && len(state.Predictions) > h.limit {
		state.Predictions = state.Predictions[:h.limit]
	}
	response.JSON(w, http.StatusOK, state)
}
