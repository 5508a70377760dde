package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odekit/internal/solver"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is a bubbletea program that advances an initialized solver in small
// increments of simulated time per frame and plots the first state component
// as the trajectory grows. The solver's Idle state being re-runnable is what
// makes the chunked advance possible.
type Model struct {
	name   string
	slv    *solver.Solver
	tFinal float64
	frame  float64

	paused bool
	failed error
	width  int
}

// NewModel wraps an already-initialized solver. frame is the amount of
// simulated time integrated per animation tick.
func NewModel(name string, slv *solver.Solver, tFinal, frame float64) Model {
	return Model{name: name, slv: slv, tFinal: tFinal, frame: frame, width: 80}
}

func (m Model) Init() tea.Cmd { return tick() }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		if m.paused || m.failed != nil {
			return m, tick()
		}
		t, _ := m.slv.Result().Last()
		if t >= m.tFinal {
			return m, tick()
		}
		target := t + m.frame
		if target > m.tFinal {
			target = m.tFinal
		}
		if err := m.slv.Run(target); err != nil {
			m.failed = err
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("odekit — "+m.name) + "\n\n")

	view := m.slv.Result()
	states := view.States()
	series := make([]float64, len(states))
	for i, s := range states {
		series[i] = s[0]
	}

	width := m.width - 12
	if width < 20 {
		width = 20
	}
	if len(series) > 1 {
		b.WriteString(asciigraph.Plot(series, asciigraph.Height(14), asciigraph.Width(width)))
		b.WriteString("\n\n")
	}

	t, u := view.Last()
	stats := m.slv.Stats()
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		statusStyle.Render("t:"), valueStyle.Render(fmt.Sprintf("%.4f / %.1f", t, m.tFinal)),
		statusStyle.Render("steps:"), valueStyle.Render(fmt.Sprintf("%d", stats.Steps)),
		statusStyle.Render("h:"), valueStyle.Render(fmt.Sprintf("%.2e", stats.LastStep)),
	))
	b.WriteString(statusStyle.Render(fmt.Sprintf("u = %v", u)) + "\n")

	if m.failed != nil {
		b.WriteString(failStyle.Render("failed: "+m.failed.Error()) + "\n")
	}

	if m.paused {
		b.WriteString(statusStyle.Render("paused — space to resume, q to quit") + "\n")
	} else {
		b.WriteString(statusStyle.Render("space pause · q quit") + "\n")
	}
	return b.String()
}
