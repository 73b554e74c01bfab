package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/popsim/internal/metrics"
	"github.com/san-kum/popsim/internal/model"
	"github.com/san-kum/popsim/internal/popdyn"
	"github.com/san-kum/popsim/internal/solver"
)

const (
	liveWidth       = 64
	liveHeight      = 14
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the live view: it advances a sample sequence a few steps per
// frame and renders the running series. The sequence owns all solver state,
// so pausing and resuming never recomputes anything.
type Model struct {
	def      *model.Definition
	seq      *solver.Sequence
	observed []metrics.Metric

	current  popdyn.Sample
	history  [][]float64
	phase    *Canvas
	phaseXs  []float64
	phaseYs  []float64
	speed    int
	running  bool
	finished bool
	err      error
}

// NewModel wires a definition and a fresh sequence into the live view.
func NewModel(def *model.Definition, seq *solver.Sequence, observed []metrics.Metric) Model {
	return Model{
		def:      def,
		seq:      seq,
		observed: observed,
		history:  make([][]float64, def.Dimension()),
		phase:    NewCanvas(liveWidth/2, liveHeight),
		speed:    1,
		running:  true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.finished && m.err == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "+", "=":
			if m.speed < 64 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance pulls up to speed samples from the sequence.
func (m *Model) advance() {
	for i := 0; i < m.speed; i++ {
		sample, ok, err := m.seq.Next()
		if err != nil {
			m.err = err
			m.running = false
			return
		}
		if !ok {
			m.finished = true
			m.running = false
			return
		}
		m.record(sample)
	}
}

func (m *Model) record(sample popdyn.Sample) {
	m.current = sample
	for i, v := range sample.X {
		m.history[i] = append(m.history[i], v)
		if len(m.history[i]) > historyCapacity {
			m.history[i] = m.history[i][1:]
		}
	}
	if len(sample.X) == 2 {
		m.phaseXs = append(m.phaseXs, sample.X[0])
		m.phaseYs = append(m.phaseYs, sample.X[1])
		if len(m.phaseXs) > historyCapacity*2 {
			m.phaseXs = m.phaseXs[1:]
			m.phaseYs = m.phaseYs[1:]
		}
	}
	for _, obs := range m.observed {
		obs.Observe(sample)
	}
}

func (m *Model) reset() {
	m.seq.Reset()
	for i := range m.history {
		m.history[i] = m.history[i][:0]
	}
	m.phaseXs = m.phaseXs[:0]
	m.phaseYs = m.phaseYs[:0]
	for _, obs := range m.observed {
		obs.Reset()
	}
	m.current = popdyn.Sample{}
	m.err = nil
	m.finished = false
	m.running = true
}

func (m Model) View() string {
	var charts strings.Builder
	for i, series := range m.history {
		if len(series) < 2 {
			continue
		}
		label := m.def.Variables[i]
		if i < len(m.def.VarLabels) {
			label = m.def.VarLabels[i]
		}
		chart := asciigraph.Plot(series,
			asciigraph.Width(liveWidth),
			asciigraph.Height(5),
			asciigraph.Caption(label),
		)
		charts.WriteString(chart + "\n\n")
	}
	if len(m.phaseXs) > 2 {
		m.phase.Clear()
		m.phase.PlotXY(m.phaseXs, m.phaseYs)
		charts.WriteString(m.phase.String())
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.def.Name)) + "\n")
	s.WriteString(m.status() + "\n\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", m.current.T)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d / %d", m.seq.Done(), m.seq.Steps())) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%dx", m.speed)) + "\n\n")
	for i, v := range m.current.X {
		label := m.def.Variables[i]
		if i < len(m.def.VarLabels) {
			label = m.def.VarLabels[i]
		}
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf("%.4f", v)) + "\n")
	}
	if len(m.observed) > 0 {
		s.WriteString("\n")
		for _, obs := range m.observed {
			s.WriteString(labelStyle.Render(obs.Name()) + valueStyle.Render(fmt.Sprintf("%.4g", obs.Value())) + "\n")
		}
	}
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render("error: "+m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset +/-:Speed Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(charts.String()),
		statsStyle.Render(s.String()),
	)
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("FAILED")
	case m.finished:
		return "FINISHED"
	case m.running:
		return "RUNNING"
	default:
		return "PAUSED"
	}
}
