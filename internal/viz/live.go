package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/qs-lab/qdyn/internal/metrics"
	"github.com/qs-lab/qdyn/internal/solver"
)

const historyCapacity = 600

type TickMsg time.Time

// Model steps a solver in real time and charts the level populations.
type Model struct {
	s    *solver.Solver
	opts solver.SolveOptions

	y0     []complex128
	y      []complex128
	t      float64
	tEnd   float64
	dt     float64
	steps  int
	errMsg string

	history [][]float64
	drift   metrics.Metric

	running  bool
	showHelp bool
}

// NewModel prepares a live view of the span [0, tEnd] advancing dt per
// frame.
func NewModel(s *solver.Solver, opts solver.SolveOptions, y0 []complex128, tEnd, dt float64) Model {
	var drift metrics.Metric
	if s.OpenSystem() {
		drift = metrics.NewTraceDrift(s.HilbertDim())
	} else {
		drift = metrics.NewNormDrift()
	}

	m := Model{
		s:       s,
		opts:    opts,
		y0:      append([]complex128(nil), y0...),
		y:       append([]complex128(nil), y0...),
		tEnd:    tEnd,
		dt:      dt,
		history: make([][]float64, s.HilbertDim()),
		drift:   drift,
		running: true,
	}
	m.record()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "h", "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case TickMsg:
		if m.running && m.t < m.tEnd && m.errMsg == "" {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances one frame by solving over [t, t+dt] from the current state.
func (m *Model) step() {
	to := m.t + m.dt
	if to > m.tEnd {
		to = m.tEnd
	}

	opts := m.opts
	opts.MaxDt = m.dt
	opts.TEval = nil
	res, err := m.s.Solve(context.Background(), [2]float64{m.t, to}, m.y, opts)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	m.y = res.Final()
	m.t = to
	m.steps += res.StepsTaken
	m.record()
}

func (m *Model) record() {
	n := m.s.HilbertDim()
	pops := Populations([][]complex128{m.y}, n)
	for level := 0; level < n; level++ {
		m.history[level] = append(m.history[level], pops[level][0])
		if len(m.history[level]) > historyCapacity {
			m.history[level] = m.history[level][1:]
		}
	}
	m.drift.Observe(m.t, m.y)
}

func (m *Model) reset() {
	m.y = append([]complex128(nil), m.y0...)
	m.t = 0
	m.steps = 0
	m.errMsg = ""
	for level := range m.history {
		m.history[level] = nil
	}
	m.drift.Reset()
	m.record()
}

func (m Model) View() string {
	header := headerStyle.Render("qdyn live")

	graph := graphStyle.Render(PlotMany(m.history, "level populations"))

	var stats strings.Builder
	stats.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.3f / %.3f", m.t, m.tEnd)) + "\n")
	stats.WriteString(labelStyle.Render("steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	stats.WriteString(labelStyle.Render(m.drift.Name()) + valueStyle.Render(fmt.Sprintf("%.2e", m.drift.Value())) + "\n")
	for level := range m.history {
		last := 0.0
		if n := len(m.history[level]); n > 0 {
			last = m.history[level][n-1]
		}
		stats.WriteString(labelStyle.Render(fmt.Sprintf("pop %d", level)) + valueStyle.Render(fmt.Sprintf("%.4f", last)) + "\n")
	}
	if !m.running {
		stats.WriteString(pausedStyle.Render("paused") + "\n")
	}
	if m.errMsg != "" {
		stats.WriteString(pausedStyle.Render("error: "+m.errMsg) + "\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, graph, statsStyle.Render(stats.String()))

	help := helpStyle.Render("space pause · r reset · q quit")
	if m.showHelp {
		help = helpStyle.Render("space: pause/resume\nr: restart from y0\nh: toggle help\nq: quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

// Live runs the viewer until the user quits.
func Live(s *solver.Solver, opts solver.SolveOptions, y0 []complex128, tEnd, dt float64) error {
	p := tea.NewProgram(NewModel(s, opts, y0, tEnd, dt))
	_, err := p.Run()
	return err
}
