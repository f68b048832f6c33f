package viz

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lpaiva/kutta/internal/gravity"
	"github.com/lpaiva/kutta/internal/rk"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 2000
	stepsPerTick    = 8
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Live is a bubbletea model that steps the integrator in real time and
// draws the bodies' paths on a braille canvas with a stats side panel.
type Live struct {
	model  *gravity.Model
	integ  *rk.Integrator
	t      float64
	y      rk.State
	tf     float64
	canvas *Canvas

	trail   [][2]float64 // world-space position history, all bodies interleaved
	running bool
	done    bool
	err     error

	initialEnergy float64
	energy        float64
	px, py        float64
}

// NewLive prepares a live view starting from the integrator's initial
// conditions.
func NewLive(model *gravity.Model, integ *rk.Integrator, tf float64) Live {
	y := integ.Y0()
	return Live{
		model:         model,
		integ:         integ,
		t:             integ.T0(),
		y:             y,
		tf:            tf,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		trail:         make([][2]float64, 0, historyCapacity),
		running:       true,
		initialEnergy: model.Energy(y),
	}
}

func (m Live) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.t = m.integ.T0()
			m.y = m.integ.Y0()
			m.trail = m.trail[:0]
			m.done = false
			m.err = nil
			m.running = true
		}
	case TickMsg:
		if m.running && !m.done && m.err == nil {
			m.advance()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Live) advance() {
	for i := 0; i < stepsPerTick; i++ {
		t, y, err := m.integ.Step(m.t, m.y)
		if err != nil {
			m.err = err
			return
		}
		m.t, m.y = t, y

		for b := 0; b < m.model.NumBodies(); b++ {
			x, yy := m.model.BodyPosition(m.y, b)
			m.trail = append(m.trail, [2]float64{x, yy})
		}
		over := len(m.trail) - historyCapacity
		if over > 0 {
			m.trail = m.trail[over:]
		}

		if m.t >= m.tf {
			m.done = true
			break
		}
	}

	m.energy = m.model.Energy(m.y)
	m.px, m.py = m.model.Momentum(m.y)
}

func (m Live) View() string {
	m.canvas.Clear()

	minX, maxX, minY, maxY := trailBounds(m.trail)
	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	pw, ph := float64(canvasWidth*2-1), float64(canvasHeight*4-1)
	for _, p := range m.trail {
		px := int((p[0] - minX) / spanX * pw)
		py := int((maxY - p[1]) / spanY * ph)
		m.canvas.Set(px, py)
	}

	status := "running"
	switch {
	case m.err != nil:
		status = errorStyle.Render("failed: " + m.err.Error())
	case m.done:
		status = "finished"
	case !m.running:
		status = "paused"
	}

	drift := 0.0
	if m.initialEnergy != 0 {
		drift = math.Abs(m.energy-m.initialEnergy) / math.Abs(m.initialEnergy)
	}

	stats := headerStyle.Render("n-body orbit") + "\n" +
		statRow("status", status) +
		statRow("t", fmt.Sprintf("%.3f / %.0f", m.t, m.tf)) +
		statRow("h", fmt.Sprintf("%g", m.integ.StepSize())) +
		statRow("method", fmt.Sprintf("%s (%d stages)", m.integ.Tableau().Name, m.integ.Tableau().Stages)) +
		statRow("bodies", fmt.Sprintf("%d", m.model.NumBodies())) +
		statRow("energy", fmt.Sprintf("%.6g", m.energy)) +
		statRow("drift", fmt.Sprintf("%.2e", drift)) +
		statRow("momentum", fmt.Sprintf("(%.4g, %.4g)", m.px, m.py)) +
		helpStyle.Render("space pause · r reset · q quit")

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats),
	)
}

func statRow(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func trailBounds(trail [][2]float64) (minX, maxX, minY, maxY float64) {
	if len(trail) == 0 {
		return -1, 1, -1, 1
	}
	minX, maxX = trail[0][0], trail[0][0]
	minY, maxY = trail[0][1], trail[0][1]
	for _, p := range trail {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	return minX, maxX, minY, maxY
}
