package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/newthinker/evaldash/internal/api/response"
	"github.com/newthinker/evaldash/internal/core"
	"github.com/newthinker/evaldash/internal/dashboard"
)

// ReloadsHandler serves the reload history.
type ReloadsHandler struct {
	history *dashboard.History
}

// NewReloadsHandler creates a new reloads handler.
func NewReloadsHandler(history *dashboard.History) *ReloadsHandler {
	return &ReloadsHandler{history: history}
}

// List returns reload cycles, newest first. ?limit=n caps the result.
func (h *ReloadsHandler) List(w http.ResponseWriter, r *http.Request) {
	reloads := h.history.List()
	total := len(reloads)

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n >= 0 && n < len(reloads) {
			reloads = reloads[:n]
		}
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"reloads": reloads,
		"total":   total,
	})
}

// Get returns a single reload cycle by id.
func (h *ReloadsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, ok := h.history.Get(id)
	if !ok {
		response.Error(w, http.StatusNotFound, core.WrapError(core.ErrNotFound, fmt.Errorf("reload %s", id)))
		return
	}
	response.JSON(w, http.StatusOK, rec)
}
