package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
)

const (
	canvasWidth     = 72
	canvasHeight    = 24
	panelWidth      = 44
	historyCapacity = 300
	frameRate       = 60
	rotateStep      = 0.1
)

// WindModes is the order the w key cycles through.
var WindModes = []string{"none", "constant", "oscillating", "noise"}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model steps a cloth once per frame with wall-clock timestamps and renders
// it. The stepper ignores the elapsed time beyond ordering, so every frame
// advances one fixed timestep.
type Model struct {
	cfg     *config.Config
	cloth   *cloth.Cloth
	stepper *cloth.Stepper
	canvas  *Canvas
	camera  *Camera

	running  bool
	start    time.Time
	windMode int
	pins     []int
	pinsOn   bool
	stretch  []float64
}

func NewModel(cfg *config.Config) (Model, error) {
	c, s, err := cfg.Build()
	if err != nil {
		return Model{}, err
	}
	cam := NewCamera()
	cam.Frame(c.Positions())

	m := Model{
		cfg:     cfg.Clone(),
		cloth:   c,
		stepper: s,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		camera:  cam,
		running: true,
		pins:    c.Pins(),
		pinsOn:  true,
		stretch: make([]float64, 0, historyCapacity),
	}
	for i, mode := range WindModes {
		if mode == cfg.Wind.Mode {
			m.windMode = i
		}
	}
	return m, nil
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step(time.Time(msg))
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "space":
		m.running = !m.running
	case "r":
		m.reset()
	case "w":
		m.cycleWind()
	case "p":
		m.togglePins()
	case "+", "=":
		m.adjustIterations(1)
	case "-", "_":
		m.adjustIterations(-1)
	case "left", "y":
		m.camera.Rotate(-rotateStep, 0)
	case "right", "Y":
		m.camera.Rotate(rotateStep, 0)
	case "up", "x":
		m.camera.Rotate(0, rotateStep)
	case "down", "X":
		m.camera.Rotate(0, -rotateStep)
	case "z":
		m.camera.ZoomIn()
	case "Z":
		m.camera.ZoomOut()
	}
	return m, nil
}

// step feeds the stepper the seconds since the first frame. The first call
// after a reset only establishes the reference time.
func (m *Model) step(now time.Time) {
	if m.start.IsZero() {
		m.start = now
	}
	m.stepper.Step(now.Sub(m.start).Seconds())
	if m.stepper.Ticks() == 0 {
		return
	}
	m.stretch = append(m.stretch, m.cloth.MaxStretch())
	if len(m.stretch) > historyCapacity {
		m.stretch = m.stretch[1:]
	}
}

func (m *Model) reset() {
	m.stepper.Reset()
	m.start = time.Time{}
	m.stretch = m.stretch[:0]
}

func (m *Model) cycleWind() {
	m.windMode = (m.windMode + 1) % len(WindModes)
	cfg := m.cfg.Clone()
	cfg.Wind.Mode = WindModes[m.windMode]
	if cfg.Wind.Mode == "constant" && cfg.Wind.Vector == [3]float64{} {
		cfg.Wind.Vector = [3]float64{cfg.Wind.Strength, 0, 0}
	}
	wind, err := cfg.WindField()
	if err != nil {
		return
	}
	p := m.stepper.Params()
	p.Wind = wind
	if m.stepper.SetParams(p) == nil {
		m.cfg = cfg
	}
}

func (m *Model) togglePins() {
	if m.pinsOn {
		m.cloth.ClearPins()
	} else {
		// The indices came from the cloth itself, so Pin cannot fail.
		_ = m.cloth.Pin(m.pins...)
	}
	m.pinsOn = !m.pinsOn
}

func (m *Model) adjustIterations(delta int) {
	p := m.stepper.Params()
	p.Iterations += delta
	if p.Iterations < 1 {
		return
	}
	_ = m.stepper.SetParams(p)
}

func (m *Model) resize(w, h int) {
	cw := max(w-panelWidth-8, 20)
	ch := max(h-4, 8)
	m.canvas = NewCanvas(cw, ch)
}

func (m Model) View() string {
	m.canvas.Clear()
	DrawCloth(m.canvas, m.camera, m.cloth, m.stepper.Params().Floor)
	canvasView := canvasStyle.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(m.panel()))
}

func (m Model) panel() string {
	p := m.stepper.Params()
	var s strings.Builder

	title := m.cfg.Name
	if title == "" {
		title = "cloth"
	}
	s.WriteString(headerStyle.Render(strings.ToUpper(title)) + "\n")
	if m.running {
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.stretch) > 1 {
		chart := asciigraph.Plot(m.stretch, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("max stretch"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	stretch := m.cloth.MaxStretch()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", m.stepper.Ticks()))
	row("Time", fmt.Sprintf("%.2fs", m.stepper.SimTime()))
	row("Particles", fmt.Sprintf("%d (%dx%dx%d)", m.cloth.Len(), m.cloth.W, m.cloth.H, m.cloth.D))
	row("Stretch", fmt.Sprintf("%s %.3f", StretchBar(stretch, 10), stretch))
	row("Iterations", fmt.Sprintf("%d", p.Iterations))
	row("Wind", WindModes[m.windMode])
	pins := "off"
	if m.pinsOn {
		pins = fmt.Sprintf("%d", len(m.pins))
	}
	row("Pins", pins)

	s.WriteString(helpStyle.Render(keyHints("spc", "pause", "r", "reset", "w", "wind", "p", "pins") + "\n" +
		keyHints("+/-", "iters", "←→↑↓", "orbit", "z/Z", "zoom", "q", "quit")))
	return s.String()
}

// Run starts the live view for cfg on the alternate screen.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
