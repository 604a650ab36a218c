package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/brownlab/internal/langevin"
)

const (
	canvasWidth  = 60
	canvasHeight = 20
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model replays a precomputed trajectory frame by frame. The particle
// trail accumulates on a braille canvas scaled to the trajectory's
// bounding box.
type Model struct {
	traj          *langevin.Trajectory
	mode          langevin.Mode
	canvas        *Canvas
	head          int
	stepsPerFrame int
	running       bool

	xMin, xMax float64
	yMin, yMax float64
}

// NewModel prepares a live replay of a completed simulation.
func NewModel(traj *langevin.Trajectory, mode langevin.Mode, stepsPerFrame int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}

	m := Model{
		traj:          traj,
		mode:          mode,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		stepsPerFrame: stepsPerFrame,
		running:       true,
	}
	m.xMin, m.xMax = bounds(traj.X)
	m.yMin, m.yMax = bounds(traj.Y)
	return m
}

func bounds(v []float64) (lo, hi float64) {
	lo, hi = v[0], v[0]
	for _, x := range v {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
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
			m.head = 0
			m.canvas.Clear()
		case "+", "=":
			m.stepsPerFrame *= 2
		case "-", "_":
			if m.stepsPerFrame > 1 {
				m.stepsPerFrame /= 2
			}
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.stepsPerFrame && m.head < m.traj.Len()-1; i++ {
		m.head++
		px := int(float64(canvasWidth*2-1) * (m.traj.X[m.head] - m.xMin) / (m.xMax - m.xMin))
		py := int(float64(canvasHeight*4-1) * (m.traj.Y[m.head] - m.yMin) / (m.yMax - m.yMin))
		m.canvas.Set(px, canvasHeight*4-1-py)
	}
	if m.head >= m.traj.Len()-1 {
		m.running = false
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(string(m.mode)) + " BROWNIAN MOTION"))
	s.WriteString("\n")

	status := "RUNNING"
	if !m.running {
		if m.head >= m.traj.Len()-1 {
			status = "DONE"
		} else {
			status = "PAUSED"
		}
	}
	s.WriteString(status + "\n")

	s.WriteString(canvasStyle.Render(m.canvas.String()))
	s.WriteString("\n")

	t := m.traj.Times[m.head]
	dx := m.traj.X[m.head] - m.traj.X[0]
	dy := m.traj.Y[m.head] - m.traj.Y[0]
	rows := []struct{ label, value string }{
		{"time", fmt.Sprintf("%.3f s", t)},
		{"sample", fmt.Sprintf("%d / %d", m.head+1, m.traj.Len())},
		{"x", fmt.Sprintf("%.3e m", m.traj.X[m.head])},
		{"y", fmt.Sprintf("%.3e m", m.traj.Y[m.head])},
		{"displacement²", fmt.Sprintf("%.3e m²", dx*dx+dy*dy)},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r.label) + valueStyle.Render(r.value) + "\n")
	}

	s.WriteString(helpStyle.Render("space pause · r restart · +/- speed · q quit"))
	return s.String()
}
