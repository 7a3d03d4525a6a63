// Package page holds the dashboard as an in-memory document plus the Chart.js
// instances drawn on it. The web handler renders a Snapshot to HTML.
package page

import (
	"maps"
	"sync"

	"github.com/newthinker/evaldash/internal/dashboard"
)

// Document is a dashboard.View safe for concurrent use.
type Document struct {
	mu      sync.RWMutex
	texts   map[string]string
	visible map[string]bool
	tables  map[string][][]dashboard.Cell
}

// NewDocument returns a document showing only the loading spinner.
func NewDocument() *Document {
	return &Document{
		texts: make(map[string]string),
		visible: map[string]bool{
			dashboard.IDLoading:    true,
			dashboard.IDError:      false,
			dashboard.IDContent:    false,
			dashboard.IDSplitPanel: false,
		},
		tables: make(map[string][][]dashboard.Cell),
	}
}

func (d *Document) SetText(id, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts[id] = text
}

func (d *Document) SetVisibility(id string, visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.visible[id] = visible
}

func (d *Document) RenderTable(id string, rows [][]dashboard.Cell) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables[id] = rows
}

// Snapshot copies the current contents.
func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Snapshot{
		texts:   maps.Clone(d.texts),
		visible: maps.Clone(d.visible),
		tables:  maps.Clone(d.tables),
	}
}

// Snapshot is a point-in-time copy of a Document. Templates read it through
// its methods, e.g. {{.Text "accuracyValue"}}.
type Snapshot struct {
	texts   map[string]string
	visible map[string]bool
	tables  map[string][][]dashboard.Cell
}

// Text returns the text of element id, or "" if it was never set.
func (s Snapshot) Text(id string) string {
	return s.texts[id]
}

// Visible reports whether element id is shown.
func (s Snapshot) Visible(id string) bool {
	return s.visible[id]
}

// Table returns the rows last rendered into element id.
func (s Snapshot) Table(id string) [][]dashboard.Cell {
	return s.tables[id]
}
