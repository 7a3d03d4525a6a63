package web

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/newthinker/evaldash/internal/client"
	"github.com/newthinker/evaldash/internal/client/stub"
	"github.com/newthinker/evaldash/internal/dashboard"
	"github.com/newthinker/evaldash/internal/view/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, *stub.Service, *dashboard.Controller) {
	t.Helper()
	svc := stub.New()
	t.Cleanup(svc.Close)

	doc, charts := page.NewDocument(), page.NewRegistry()
	ctrl := dashboard.New(client.New(svc.URL()), doc, charts, dashboard.Options{})
	h, err := NewHandler(Deps{
		Title:      "ML Model Dashboard",
		Document:   doc,
		Charts:     charts,
		Controller: ctrl,
	})
	require.NoError(t, err)
	return h, svc, ctrl
}

func get(h *Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Dashboard(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestDashboard_Loading(t *testing.T) {
	h, _, _ := newTestHandler(t)

	w := get(h, "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, `<div id="loadingSpinner" class="loading">`)
	assert.Contains(t, body, `<main id="mainContent" hidden>`)
	assert.Contains(t, body, `action="/refresh"`)
}

func TestDashboard_NotFound(t *testing.T) {
	h, _, _ := newTestHandler(t)

	assert.Equal(t, http.StatusNotFound, get(h, "/favicon.ico").Code)
}

func TestRefresh_HydratesPage(t *testing.T) {
	h, svc, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	h.Refresh(w, httptest.NewRequest(http.MethodPost, "/refresh", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?refreshed=1", w.Header().Get("Location"))
	assert.Equal(t, 1, svc.Hits("health"))

	body := get(h, "/?refreshed=1").Body.String()
	assert.Contains(t, body, `<main id="mainContent">`)
	assert.Contains(t, body, `<div id="loadingSpinner" class="loading" hidden>`)
	assert.Contains(t, body, `id="accuracyValue">92%</div>`)
	assert.Contains(t, body, `id="datasetValue">1,234</div>`)
	assert.Contains(t, body, `<div class="confusion-cell confusion-value">50</div>`)
	assert.Contains(t, body, `<td class="result-incorrect">Incorrect</td>`)
	assert.Contains(t, body, "refresh-icon spin")
	assert.Contains(t, body, `"performanceChart"`)
	assert.Contains(t, body, "Correct Predictions: 92 (92.0%)")
	assert.Equal(t, 10, strings.Count(body, "<tr><td>"))
}

func TestRefresh_IgnoresClientCancel(t *testing.T) {
	h, svc, ctrl := newTestHandler(t)
	require.NoError(t, ctrl.Reload(context.Background(), dashboard.TriggerInitial))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/refresh", nil).WithContext(ctx)

	w := httptest.NewRecorder()
	h.Refresh(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, dashboard.PhaseContent, ctrl.State().Phase, ctrl.State().Message)
	assert.Equal(t, 2, svc.Hits("health"))
	assert.NotContains(t, get(h, "/").Body.String(), "context canceled")
}

func TestRetry_ShowsError(t *testing.T) {
	h, svc, ctrl := newTestHandler(t)
	svc.Set("health", stub.Response{Status: http.StatusInternalServerError, Body: "database offline"})

	w := httptest.NewRecorder()
	h.Retry(w, httptest.NewRequest(http.MethodPost, "/retry", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, dashboard.PhaseError, ctrl.State().Phase)

	body := get(h, "/").Body.String()
	assert.Contains(t, body, `<div id="errorMessage" class="error">`)
	assert.Contains(t, body, "backend server error: 500 - database offline")
	assert.Contains(t, body, `action="/retry"`)
	assert.Contains(t, body, `<main id="mainContent" hidden>`)
	assert.NotContains(t, body, "refresh-icon spin")
}

func TestRenderReport_Static(t *testing.T) {
	h, _, _ := newTestHandler(t)
	w := httptest.NewRecorder()
	h.Refresh(w, httptest.NewRequest(http.MethodPost, "/refresh", nil))

	var buf bytes.Buffer
	require.NoError(t, h.RenderReport(&buf))

	report := buf.String()
	assert.Contains(t, report, "<!DOCTYPE html>")
	assert.Contains(t, report, "92%")
	assert.NotContains(t, report, `action="/refresh"`)
	assert.NotContains(t, report, `action="/retry"`)
}

func TestNewHandlerWithFS_MissingTemplate(t *testing.T) {
	_, err := NewHandlerWithFS(templateFS, Deps{})
	assert.Error(t, err, "templates live under templates/, not at the root")
}
