package web

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/newthinker/evaldash/internal/dashboard"
	"github.com/newthinker/evaldash/internal/view/page"
	"go.uber.org/zap"
)

// DashboardData holds data for the dashboard template
type DashboardData struct {
	Title     string
	Doc       page.Snapshot
	Charts    map[string]page.ChartJSConfig
	Phase     string
	UpdatedAt time.Time
	// Static drops the refresh and retry controls for exported reports.
	Static bool
	// Refreshed plays the refresh icon spin once.
	Refreshed bool
}

func (h *Handler) data() DashboardData {
	data := DashboardData{Title: h.title}
	h.ctrl.Read(func(state dashboard.State) {
		data.Doc = h.doc.Snapshot()
		data.Charts = h.charts.Configs()
		data.Phase = state.Phase.String()
		data.UpdatedAt = state.UpdatedAt
	})
	return data
}

// Dashboard renders the dashboard page
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := h.data()
	data.Refreshed = r.URL.Query().Has("refreshed")

	var buf bytes.Buffer
	if err := h.render(&buf, data); err != nil {
		h.logger.Error("rendering dashboard", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// Refresh reruns the load cycle and redirects back to the page.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.reload(w, r, dashboard.TriggerRefresh, "/?refreshed=1")
}

// Retry reruns the load cycle from the error state.
func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	h.reload(w, r, dashboard.TriggerRetry, "/")
}

func (h *Handler) reload(w http.ResponseWriter, r *http.Request, trigger dashboard.Trigger, target string) {
	// The dashboard is shared by every viewer, so a client going away must
	// not abort the cycle. The outcome is reflected in the page; a failure
	// here is not an HTTP error.
	ctx := context.WithoutCancel(r.Context())
	if err := h.ctrl.Reload(ctx, trigger); err != nil {
		h.logger.Debug("reload from page failed", zap.String("trigger", string(trigger)), zap.Error(err))
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RenderReport writes the current dashboard as a standalone page without
// controls.
func (h *Handler) RenderReport(w io.Writer) error {
	data := h.data()
	data.Static = true
	return h.render(w, data)
}
