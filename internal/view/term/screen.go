// Package term renders the dashboard as styled terminal text.
package term

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/newthinker/evaldash/internal/dashboard"
)

const barWidth = 30

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1).MarginRight(1)
	cardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cardValueStyle = lipgloss.NewStyle().Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	class0Style    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	class1Style    = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
)

// Screen is both the dashboard.View and the dashboard.ChartRenderer for the
// terminal. It is safe for concurrent use.
type Screen struct {
	mu      sync.Mutex
	texts   map[string]string
	visible map[string]bool
	tables  map[string][][]dashboard.Cell

	nextID int
	live   map[string]map[int]*textChart
	latest map[string]*textChart
}

// NewScreen returns a screen in the loading state.
func NewScreen() *Screen {
	return &Screen{
		texts:   make(map[string]string),
		visible: map[string]bool{dashboard.IDLoading: true},
		tables:  make(map[string][][]dashboard.Cell),
		live:    make(map[string]map[int]*textChart),
		latest:  make(map[string]*textChart),
	}
}

func (s *Screen) SetText(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[id] = text
}

func (s *Screen) SetVisibility(id string, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible[id] = visible
}

func (s *Screen) RenderTable(id string, rows [][]dashboard.Cell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[id] = rows
}

// Visible reports whether element id is shown.
func (s *Screen) Visible(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible[id]
}

// Render draws spec as text on canvas.
func (s *Screen) Render(canvas string, spec dashboard.ChartSpec) (dashboard.Chart, error) {
	lines, err := drawChart(spec)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	c := &textChart{id: s.nextID, canvas: canvas, lines: lines, screen: s}
	if s.live[canvas] == nil {
		s.live[canvas] = make(map[int]*textChart)
	}
	s.live[canvas][c.id] = c
	s.latest[canvas] = c
	return c, nil
}

// Live returns how many undestroyed charts exist on canvas.
func (s *Screen) Live(canvas string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live[canvas])
}

type textChart struct {
	id     int
	canvas string
	lines  []string
	screen *Screen
}

func (c *textChart) Destroy() {
	s := c.screen
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.live[c.canvas], c.id)
	if s.latest[c.canvas] == c {
		delete(s.latest, c.canvas)
	}
}

// View renders the error or content sections, whichever is visible. The
// loading section is left to the caller, which owns the spinner.
func (s *Screen) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	if s.visible[dashboard.IDError] {
		b.WriteString(errorStyle.Render("Error: " + s.texts[dashboard.IDErrorText]))
		b.WriteString("\n")
	}
	if s.visible[dashboard.IDContent] {
		b.WriteString(s.content())
	}
	return b.String()
}

// content must be called with mu held.
func (s *Screen) content() string {
	t := s.texts
	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			card("Accuracy", t[dashboard.IDAccuracy]),
			card("Algorithm", t[dashboard.IDAlgorithm]),
			card("Samples", t[dashboard.IDDataset]),
			card("Features", t[dashboard.IDFeatures]),
		),
	}

	if s.visible[dashboard.IDSplitPanel] {
		sections = append(sections, fmt.Sprintf("Train: %s (%s)   Test: %s (%s)",
			t[dashboard.IDTrainSize], t[dashboard.IDTrainRatio],
			t[dashboard.IDTestSize], t[dashboard.IDTestRatio]))
	}

	sections = append(sections, titleStyle.Render("Performance Metrics"), metricsTable(t))
	sections = append(sections, titleStyle.Render("Confusion Matrix"), grid(s.tables[dashboard.IDConfusionMatrix]))

	for _, canvas := range []string{dashboard.CanvasPerformance, dashboard.CanvasPrediction} {
		if c, ok := s.latest[canvas]; ok {
			sections = append(sections, strings.Join(c.lines, "\n"))
		}
	}

	preds := [][]dashboard.Cell{{
		{Text: "Index", Class: "header"}, {Text: "Predicted", Class: "header"},
		{Text: "Actual", Class: "header"}, {Text: "Result", Class: "header"},
	}}
	preds = append(preds, s.tables[dashboard.IDPredictionsTable]...)
	sections = append(sections, titleStyle.Render("Sample Predictions"), grid(preds))

	return strings.Join(sections, "\n\n") + "\n"
}

func card(label, value string) string {
	return cardStyle.Render(cardLabelStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

func metricsTable(t map[string]string) string {
	rows := [][]string{
		{"", "Class 0", "Class 1", "Weighted"},
		{"Precision", t[dashboard.IDPrecision0], t[dashboard.IDPrecision1], t[dashboard.IDPrecisionAvg]},
		{"Recall", t[dashboard.IDRecall0], t[dashboard.IDRecall1], t[dashboard.IDRecallAvg]},
		{"F1-Score", t[dashboard.IDF1Score0], t[dashboard.IDF1Score1], t[dashboard.IDF1ScoreAvg]},
	}
	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%-10s %9s %9s %9s\n", row[0], row[1], row[2], row[3])
	}
	fmt.Fprintf(&b, "Total predictions: %s", t[dashboard.IDTotalPredictions])
	return b.String()
}

// grid lays cells out in left-aligned columns and styles them by class.
func grid(rows [][]dashboard.Cell) string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(cell.Text))
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cols := make([]string, len(row))
		for i, cell := range row {
			padded := cell.Text + strings.Repeat(" ", widths[i]-lipgloss.Width(cell.Text))
			cols[i] = styleFor(cell.Class).Render(padded)
		}
		lines = append(lines, strings.Join(cols, "  "))
	}
	return strings.Join(lines, "\n")
}

func styleFor(class string) lipgloss.Style {
	switch class {
	case dashboard.ClassResultCorrect:
		return correctStyle
	case dashboard.ClassResultIncorrect:
		return incorrectStyle
	case dashboard.ClassConfusionHeader, dashboard.ClassConfusionLabel, "header":
		return headerStyle
	case dashboard.ClassConfusionValue:
		return cardValueStyle
	default:
		return lipgloss.NewStyle()
	}
}

func drawChart(spec dashboard.ChartSpec) ([]string, error) {
	if len(spec.Datasets) == 0 {
		return nil, fmt.Errorf("chart %q has no datasets", spec.Title)
	}

	lines := []string{titleStyle.Render(spec.Title)}
	switch spec.Kind {
	case dashboard.ChartBar:
		scale := spec.YMax
		if scale <= 0 {
			for _, ds := range spec.Datasets {
				for _, v := range ds.Data {
					scale = max(scale, v)
				}
			}
		}
		styles := []lipgloss.Style{class0Style, class1Style}
		for i, label := range spec.Labels {
			for j, ds := range spec.Datasets {
				if i >= len(ds.Data) {
					return nil, fmt.Errorf("dataset %q is missing a value for %q", ds.Label, label)
				}
				v := ds.Data[i]
				lines = append(lines, fmt.Sprintf("%-10s %-8s %s %s",
					label, ds.Label, styles[j%len(styles)].Render(bar(v, scale)), dashboard.Percent(v)))
			}
		}
	case dashboard.ChartDoughnut:
		ds := spec.Datasets[0]
		total := 0.0
		for _, v := range ds.Data {
			total += v
		}
		for i, v := range ds.Data {
			text := fmt.Sprintf("%v", v)
			if i < len(ds.Tooltips) {
				text = ds.Tooltips[i]
			} else if i < len(spec.Labels) {
				text = spec.Labels[i] + ": " + text
			}
			style := correctStyle
			if i > 0 {
				style = incorrectStyle
			}
			lines = append(lines, style.Render(bar(v, total))+" "+text)
		}
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
	return lines, nil
}

func bar(v, scale float64) string {
	n := 0
	if scale > 0 {
		n = int(math.Round(v / scale * barWidth))
	}
	n = min(max(n, 0), barWidth)
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}
