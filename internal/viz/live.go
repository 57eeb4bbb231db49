package viz

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/control"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

const (
	historyCapacity = 300
	statsWidth      = 45
	chartWidth      = 30
	minCols         = 20
	minRows         = 8
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  n / .    - Step one frame (paused)  ║
║  a        - Add a random ball        ║
║  A        - Add the selected type    ║
║  c        - Clear all balls          ║
║  1-5      - Select type for clicks   ║
║  g        - Toggle gravity           ║
║  t        - Toggle trails            ║
║  x        - Toggle collisions        ║
║  p        - Toggle pair mode         ║
║  T        - Cycle themes             ║
║  R        - Toggle GIF recording     ║
║  Mouse    - Click: add, drag: throw  ║
║  q        - Quit                     ║
╚══════════════════════════════════════╝
`

type TickMsg time.Time

// Model runs a world inside the terminal.
type Model struct {
	label     string
	interval  time.Duration
	targetFPS int

	world   *sim.World
	pointer *control.Pointer
	view    Viewport
	canvas  *Canvas

	energy         *metrics.KineticEnergy
	contacts       *metrics.Contacts
	settled        *metrics.Settled
	energyHistory  []float64
	contactHistory []float64

	running   bool
	showHelp  bool
	recording bool
	recorder  *Recorder
	status    string

	fps       float64
	fpsFrames int
	fpsSince  time.Time

	sparkRng *rand.Rand
	now      func() time.Time
}

// NewModel builds and populates a world from cfg. The canvas starts at the
// configured viewport size and follows the terminal once it reports one.
func NewModel(cfg *config.Config, label string) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	w, err := cfg.NewWorld()
	if err != nil {
		return Model{}, err
	}
	a, err := cfg.SelectedArchetype()
	if err != nil {
		return Model{}, err
	}
	p := control.NewPointer(w)
	if err := p.Select(a); err != nil {
		return Model{}, err
	}
	SetTheme(cfg.Theme)

	view := NewViewport(
		max(int(cfg.Viewport.Width/(2*DefaultScale)), 1),
		max(int(cfg.Viewport.Height/(4*DefaultScale)), 1),
	)
	if err := w.SetViewport(view.WorldSize()); err != nil {
		return Model{}, err
	}

	m := Model{
		label:          label,
		interval:       time.Second / time.Duration(cfg.FPS),
		targetFPS:      cfg.FPS,
		world:          w,
		pointer:        p,
		view:           view,
		canvas:         NewCanvas(view.Cols, view.Rows),
		energy:         metrics.NewKineticEnergy(),
		contacts:       metrics.NewContacts(),
		settled:        metrics.NewSettled(metrics.SettleThreshold),
		energyHistory:  make([]float64, 0, historyCapacity),
		contactHistory: make([]float64, 0, historyCapacity),
		running:        true,
		sparkRng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:            time.Now,
	}
	w.AddMetric(m.energy)
	w.AddMetric(m.contacts)
	w.AddMetric(m.settled)
	m.draw()
	return m, nil
}

func (m Model) World() *sim.World { return m.world }
func (m Model) Status() string    { return m.status }

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick(m.interval) }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.countFrame(time.Time(msg))
		m.draw()
		if m.recording {
			m.recorder.Capture(m.canvas)
		}
		return m, tick(m.interval)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		if m.recording {
			m.toggleRecording()
		}
		return tea.Quit
	case " ":
		m.running = !m.running
	case "n", ".":
		if !m.running {
			m.step()
			m.draw()
		}
	case "a":
		m.spawned(m.world.SpawnRandom())
	case "A":
		m.spawned(m.world.Scatter(m.pointer.Selected()))
	case "c":
		m.pointer.Cancel()
		m.world.Clear()
		m.status = "cleared"
		m.draw()
	case "g":
		m.status = onOff("gravity", m.world.ToggleGravity())
	case "t":
		m.status = onOff("trails", m.world.ToggleTrails())
	case "x":
		m.status = onOff("collisions", m.world.ToggleCollisions())
	case "p":
		mode := sim.PairSingle
		if m.world.PairMode() == sim.PairSingle {
			mode = sim.PairDouble
		}
		m.world.SetPairMode(mode)
		m.status = "pairs: " + mode.String()
	case "1", "2", "3", "4", "5":
		archetypes := physics.Archetypes()
		if idx := int(key[0] - '1'); idx < len(archetypes) {
			if err := m.pointer.Select(archetypes[idx]); err == nil {
				m.status = "selected " + archetypes[idx].String()
			}
		}
	case "T":
		m.status = "theme: " + NextTheme().Name
	case "R":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	}
	return nil
}

func (m *Model) spawned(b *physics.Body, err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = "added " + b.Archetype().String()
	m.draw()
}

func onOff(name string, on bool) string {
	if on {
		return name + " on"
	}
	return name + " off"
}

// handleMouse maps terminal cells to world points. Presses outside the canvas
// are ignored; releases are always delivered so a drag cannot get stuck.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	pos := m.view.CellToWorld(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.view.Contains(msg.X, msg.Y) {
			return
		}
		m.pointer.Press(pos, m.now())
	case tea.MouseActionMotion:
		m.pointer.Move(pos)
	case tea.MouseActionRelease:
		rel, err := m.pointer.Release(pos, m.now())
		switch {
		case err != nil:
			m.status = err.Error()
		case rel.Spawned != nil:
			m.status = "added " + rel.Spawned.Archetype().String()
		case rel.Thrown != nil:
			m.status = fmt.Sprintf("threw %s at %.1f", rel.Thrown.Archetype(), rel.Velocity.Len())
		}
	}
	m.draw()
}

func (m *Model) resize(width, height int) {
	m.view.Cols = max(width-2*m.view.OriginX-statsWidth-1, minCols)
	m.view.Rows = max(height-2*m.view.OriginY, minRows)
	m.canvas = NewCanvas(m.view.Cols, m.view.Rows)
	if err := m.world.SetViewport(m.view.WorldSize()); err != nil {
		m.status = err.Error()
	}
	m.draw()
}

// step advances the world one frame inside the current canvas.
func (m *Model) step() {
	w, h := m.view.WorldSize()
	if err := m.world.Step(w, h); err != nil {
		log.Printf("step: %v", err)
		m.status = err.Error()
		m.running = false
		return
	}
	m.energyHistory = appendCapped(m.energyHistory, m.energy.Value())
	m.contactHistory = appendCapped(m.contactHistory, m.contacts.Value())
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// countFrame refreshes the FPS readout about once a second.
func (m *Model) countFrame(t time.Time) {
	if m.fpsSince.IsZero() {
		m.fpsSince = t
		return
	}
	m.fpsFrames++
	if el := t.Sub(m.fpsSince); el >= time.Second {
		m.fps = float64(m.fpsFrames) / el.Seconds()
		m.fpsFrames = 0
		m.fpsSince = t
	}
}

func (m *Model) toggleRecording() {
	if m.recording {
		m.recording = false
		if err := m.recorder.Save(gifFile); err != nil {
			log.Printf("record: %v", err)
			m.status = "record: " + err.Error()
			return
		}
		m.status = "saved " + gifFile
		return
	}
	m.recorder = NewRecorder(m.targetFPS)
	m.recording = true
	m.status = "recording"
}

func (m *Model) draw() {
	m.canvas.Clear()
	bg := physics.Color(CurrentTheme.Background)
	trails := m.world.TrailsEnabled()
	for _, b := range m.world.Bodies() {
		if trails {
			m.drawTrail(b, bg)
		}
		m.drawBody(b)
		if b.Archetype() == physics.Incendiary {
			m.drawSparks(b, bg)
		}
	}
}

func (m *Model) drawTrail(b *physics.Body, bg physics.Color) {
	trail := b.Trail()
	if len(trail) < 2 {
		return
	}
	color := string(b.Color().Blend(bg, 0.75))
	for i := 1; i < len(trail); i++ {
		x0, y0 := m.view.ToSub(trail[i-1])
		x1, y1 := m.view.ToSub(trail[i])
		m.canvas.DrawLineColor(x0, y0, x1, y1, color)
	}
}

func (m *Model) drawBody(b *physics.Body) {
	stops := physics.Gradient(b.Archetype(), b.Color())
	body := stops[1].Color
	cx, cy := m.view.ToSub(b.Position())
	m.canvas.FillCircle(cx, cy, m.view.Radius(b.Radius()), string(body))

	off := b.Radius() / 3
	hx, hy := m.view.ToSub(b.Position().Sub(dynamo.V(off, off)))
	m.canvas.FillCircle(hx, hy, m.view.Radius(off), string(body.Blend("#ffffff", 0.3)))
}

func (m *Model) drawSparks(b *physics.Body, bg physics.Color) {
	for _, p := range b.Particles() {
		c := physics.SparkColor(m.sparkRng).Blend(bg, 1-p.Life)
		x, y := m.view.ToSub(p.Pos)
		m.canvas.FillCircle(x, y, m.view.Radius(p.Size), string(c))
	}
}

func (m Model) statusLine() string {
	switch {
	case m.recording:
		return StatusRecording.Render("● REC")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

func onOffText(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// View renders the canvas with the stats panel to its right.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.label), CurrentTheme.Primary, CurrentTheme.Secondary) + "\n")
	s.WriteString(m.statusLine() + "\n\n")
	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Balls", fmt.Sprintf("%d", m.world.BodyCount()))
	row("Frame", fmt.Sprintf("%d", m.world.Frame()))
	row("FPS", fmt.Sprintf("%.0f", m.fps))
	row("Click adds", m.pointer.Selected().String())
	row("Gravity", onOffText(m.world.GravityEnabled()))
	row("Trails", onOffText(m.world.TrailsEnabled()))
	row("Collisions", onOffText(m.world.CollisionsEnabled()))
	row("Pairs", m.world.PairMode().String())
	row("Energy", fmt.Sprintf("%.1f", m.energy.Value()))

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(chartWidth), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(MetricLabel.Render("Contacts") + SparklineChart(m.contactHistory, chartWidth-6) + "\n")
	s.WriteString(MetricLabel.Render("Settled") + ProgressBar(m.settled.Value(), chartWidth-6) + "\n")

	if m.status != "" {
		s.WriteString("\n" + KeyHint.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render(Separator(chartWidth+6) + "\nSP:Pause a:Add c:Clear q:Quit\ng:Gravity t:Trails x:Collide\n1-5:Type R:Record ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}
