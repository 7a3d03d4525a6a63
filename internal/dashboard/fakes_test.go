package dashboard

import (
	"sync"
)

// recordingView keeps whatever the controller wrote, keyed by element id.
type recordingView struct {
	mu      sync.Mutex
	texts   map[string]string
	visible map[string]bool
	tables  map[string][][]Cell
}

func newRecordingView() *recordingView {
	return &recordingView{
		texts:   make(map[string]string),
		visible: make(map[string]bool),
		tables:  make(map[string][][]Cell),
	}
}

func (v *recordingView) SetText(id, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.texts[id] = text
}

func (v *recordingView) SetVisibility(id string, visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible[id] = visible
}

func (v *recordingView) RenderTable(id string, rows [][]Cell) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tables[id] = rows
}

func (v *recordingView) text(id string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.texts[id]
}

func (v *recordingView) isVisible(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible[id]
}

func (v *recordingView) table(id string) [][]Cell {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tables[id]
}

// countingCharts tracks live instances per canvas so leaks are visible.
type countingCharts struct {
	mu      sync.Mutex
	live    map[string]int
	created int
	specs   map[string]ChartSpec
	fail    error
}

func newCountingCharts() *countingCharts {
	return &countingCharts{
		live:  make(map[string]int),
		specs: make(map[string]ChartSpec),
	}
}

func (c *countingCharts) Render(canvas string, spec ChartSpec) (Chart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return nil, c.fail
	}
	c.live[canvas]++
	c.created++
	c.specs[canvas] = spec
	return &countedChart{owner: c, canvas: canvas}, nil
}

func (c *countingCharts) liveOn(canvas string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live[canvas]
}

func (c *countingCharts) spec(canvas string) ChartSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.specs[canvas]
}

type countedChart struct {
	owner     *countingCharts
	canvas    string
	destroyed bool
}

func (c *countedChart) Destroy() {
	c.owner.mu.Lock()
	defer c.owner.mu.Unlock()
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.owner.live[c.canvas]--
}
