// Package tui is the interactive terminal dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/newthinker/evaldash/internal/dashboard"
	"github.com/newthinker/evaldash/internal/view/term"
)

// spinDuration is how long the refresh indicator turns after a refresh.
const spinDuration = time.Second

// Reloader runs reload cycles and reports the resulting state.
type Reloader interface {
	Reload(ctx context.Context, trigger dashboard.Trigger) error
	State() dashboard.State
}

type reloadDoneMsg struct{ err error }

type spinDoneMsg struct{}

// Model is the bubbletea model for the dashboard.
type Model struct {
	ctx      context.Context
	title    string
	ctrl     Reloader
	screen   *term.Screen
	spinner  spinner.Model
	inflight int
	spinning bool
	lastErr  error
	width    int
}

// New creates a model that drives ctrl and draws screen.
func New(ctx context.Context, title string, ctrl Reloader, screen *term.Screen) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		ctx:      ctx,
		title:    title,
		ctrl:     ctrl,
		screen:   screen,
		spinner:  s,
		inflight: 1,
	}
}

// loading reports whether any reload started by the model is still running.
func (m *Model) loading() bool {
	return m.inflight > 0
}

// Init starts the spinner and the initial load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.reload(dashboard.TriggerInitial))
}

func (m *Model) reload(trigger dashboard.Trigger) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return reloadDoneMsg{err: ctrl.Reload(ctx, trigger)}
	}
}

// Update handles key presses, reload completions and spinner ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			// Every press reruns the cycle, even with one in flight.
			m.inflight++
			m.spinning = true
			return m, tea.Batch(
				m.spinner.Tick,
				m.reload(dashboard.TriggerRefresh),
				tea.Tick(spinDuration, func(time.Time) tea.Msg { return spinDoneMsg{} }),
			)
		case "enter":
			if m.loading() || m.ctrl.State().Phase != dashboard.PhaseError {
				return m, nil
			}
			m.inflight++
			return m, tea.Batch(m.spinner.Tick, m.reload(dashboard.TriggerRetry))
		}
		return m, nil

	case reloadDoneMsg:
		if m.inflight > 0 {
			m.inflight--
		}
		m.lastErr = msg.err
		return m, nil

	case spinDoneMsg:
		m.spinning = false
		return m, nil

	case spinner.TickMsg:
		if !m.loading() && !m.spinning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the header, the current state and the key help.
func (m *Model) View() string {
	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	refresh := "↻ refresh (r)"
	if m.spinning {
		refresh = m.spinner.View() + " refresh (r)"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.title) + " " + helpStyle.Render(refresh) + "\n\n")

	if m.loading() || m.screen.Visible(dashboard.IDLoading) {
		b.WriteString(fmt.Sprintf("  %s Loading model metrics...\n", m.spinner.View()))
	} else {
		b.WriteString(m.screen.View())
	}

	help := " (q to quit)"
	if !m.loading() && m.ctrl.State().Phase == dashboard.PhaseError {
		help = " (enter to retry, q to quit)"
	}
	b.WriteString("\n" + helpStyle.Render(help) + "\n")
	return b.String()
}

// Err returns the error of the most recent reload, if it failed.
func (m *Model) Err() error {
	return m.lastErr
}
