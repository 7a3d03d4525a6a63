// Package web serves the dashboard page and renders standalone reports.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/newthinker/evaldash/internal/dashboard"
	"github.com/newthinker/evaldash/internal/view/page"
	"go.uber.org/zap"
)

//go:embed templates/*
var templateFS embed.FS

// Reloader is the dashboard controller as seen by the page handlers.
type Reloader interface {
	Reload(ctx context.Context, trigger dashboard.Trigger) error
	Read(fn func(dashboard.State))
}

// Deps are the collaborators a Handler renders from.
type Deps struct {
	Title      string
	Document   *page.Document
	Charts     *page.Registry
	Controller Reloader
	Logger     *zap.Logger
}

// Handler provides web UI handlers with template rendering
type Handler struct {
	tmpl   *template.Template
	title  string
	doc    *page.Document
	charts *page.Registry
	ctrl   Reloader
	logger *zap.Logger
}

// NewHandler creates a web handler using the embedded templates.
func NewHandler(deps Deps) (*Handler, error) {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("accessing embedded templates: %w", err)
	}
	return NewHandlerWithFS(subFS, deps)
}

// NewHandlerWithFS creates a web handler using a custom filesystem holding
// layout.html and dashboard.html.
func NewHandlerWithFS(fsys fs.FS, deps Deps) (*Handler, error) {
	tmpl, err := template.ParseFS(fsys, "layout.html", "dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Handler{
		tmpl:   tmpl,
		title:  deps.Title,
		doc:    deps.Document,
		charts: deps.Charts,
		ctrl:   deps.Controller,
		logger: deps.Logger,
	}, nil
}

// render executes the page into w.
func (h *Handler) render(w io.Writer, data DashboardData) error {
	return h.tmpl.ExecuteTemplate(w, "layout.html", data)
}
