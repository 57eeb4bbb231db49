package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

func newTestModel(t *testing.T, bodies int) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	cfg.InitialBodies = bodies
	m, err := NewModel(cfg, "test")
	if err != nil {
		t.Fatal(err)
	}
	base := time.Unix(1700000000, 0)
	m.now = func() time.Time { return base }
	return m
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, 3)
	if n := m.World().BodyCount(); n != 3 {
		t.Errorf("BodyCount = %d, want 3", n)
	}
	if b := m.World().Bounds(); b.Width != 800 || b.Height != 600 {
		t.Errorf("bounds = %+v, want 800x600", b)
	}
	if len(m.World().Metrics()) != 3 {
		t.Errorf("model attached %d metrics, want 3", len(m.World().Metrics()))
	}

	bad := config.DefaultConfig()
	bad.FPS = 0
	if _, err := NewModel(bad, "bad"); err == nil {
		t.Error("NewModel accepted fps 0")
	}
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t, 2)

	m = send(m, key("a"))
	if n := m.World().BodyCount(); n != 3 {
		t.Errorf("after a: %d bodies, want 3", n)
	}
	m = send(m, key("3"))
	if m.pointer.Selected() != physics.Heavy {
		t.Errorf("after 3: selected %v, want heavy", m.pointer.Selected())
	}
	m = send(m, key("A"))
	bodies := m.World().Bodies()
	if last := bodies[len(bodies)-1]; last.Archetype() != physics.Heavy {
		t.Errorf("after A: last body is %v, want heavy", last.Archetype())
	}

	m = send(m, key("g"))
	if m.World().GravityEnabled() {
		t.Error("g did not turn gravity off")
	}
	m = send(m, key("t"))
	if !m.World().TrailsEnabled() {
		t.Error("t did not turn trails on")
	}
	m = send(m, key("x"))
	if m.World().CollisionsEnabled() {
		t.Error("x did not turn collisions off")
	}
	m = send(m, key("p"))
	if m.World().PairMode() != sim.PairSingle {
		t.Error("p did not switch to single pair mode")
	}

	m = send(m, key("c"))
	if n := m.World().BodyCount(); n != 0 {
		t.Errorf("after c: %d bodies, want 0", n)
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q returned no command")
	}
}

func TestModelPauseAndStep(t *testing.T) {
	m := newTestModel(t, 1)
	m = send(m, TickMsg(time.Now()))
	if f := m.World().Frame(); f != 1 {
		t.Fatalf("frame after tick = %d, want 1", f)
	}
	if len(m.energyHistory) != 1 {
		t.Errorf("energy history len = %d, want 1", len(m.energyHistory))
	}

	m = send(m, key(" "))
	m = send(m, TickMsg(time.Now()))
	if f := m.World().Frame(); f != 1 {
		t.Errorf("paused tick advanced to frame %d", f)
	}
	m = send(m, key("n"))
	if f := m.World().Frame(); f != 2 {
		t.Errorf("single step gave frame %d, want 2", f)
	}
}

func TestModelClickSpawns(t *testing.T) {
	m := newTestModel(t, 0)
	m = send(m, mouse(10, 5, tea.MouseActionPress))
	m = send(m, mouse(10, 5, tea.MouseActionRelease))
	if n := m.World().BodyCount(); n != 1 {
		t.Fatalf("click spawned %d bodies, want 1", n)
	}
	b := m.World().Bodies()[0]
	if b.Position() != m.view.CellToWorld(10, 5) {
		t.Errorf("spawned at %v, want %v", b.Position(), m.view.CellToWorld(10, 5))
	}
	if b.Archetype() != physics.Standard {
		t.Errorf("spawned %v, want standard", b.Archetype())
	}
}

func TestModelClickOutsideCanvas(t *testing.T) {
	m := newTestModel(t, 0)
	m = send(m, mouse(0, 0, tea.MouseActionPress))
	m = send(m, mouse(0, 0, tea.MouseActionRelease))
	if n := m.World().BodyCount(); n != 0 {
		t.Errorf("click outside the canvas spawned %d bodies", n)
	}
}

func TestModelDragThrow(t *testing.T) {
	m := newTestModel(t, 0)
	m = send(m, key(" "))
	start := m.view.CellToWorld(10, 5)
	b, err := m.World().Spawn(start, physics.Standard)
	if err != nil {
		t.Fatal(err)
	}

	base := m.now()
	m = send(m, mouse(10, 5, tea.MouseActionPress))
	if !b.Dragging() {
		t.Fatal("press on the body did not grab it")
	}
	m = send(m, mouse(15, 5, tea.MouseActionMotion))
	end := m.view.CellToWorld(15, 5)
	if b.Position() != end {
		t.Errorf("dragged to %v, want %v", b.Position(), end)
	}

	m.now = func() time.Time { return base.Add(100 * time.Millisecond) }
	m = send(m, mouse(15, 5, tea.MouseActionRelease))
	if b.Dragging() {
		t.Error("body still dragging after release")
	}
	if v := b.Velocity(); v != dynamo.V(25, 0) {
		t.Errorf("thrown velocity = %v, want (25, 0)", v)
	}
	if m.World().BodyCount() != 1 {
		t.Error("drag release spawned a body")
	}
	if !strings.HasPrefix(m.Status(), "threw standard") {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, 0)
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.view.Cols != 120-4-statsWidth-1 || m.view.Rows != 38 {
		t.Errorf("canvas = %dx%d", m.view.Cols, m.view.Rows)
	}
	w, h := m.view.WorldSize()
	if b := m.World().Bounds(); b.Width != w || b.Height != h {
		t.Errorf("world bounds %+v do not follow the canvas %vx%v", b, w, h)
	}

	m = send(m, tea.WindowSizeMsg{Width: 10, Height: 4})
	if m.view.Cols != minCols || m.view.Rows != minRows {
		t.Errorf("tiny terminal gave %dx%d canvas", m.view.Cols, m.view.Rows)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, 4)
	m = send(m, TickMsg(time.Now()))
	m = send(m, TickMsg(time.Now()))
	out := m.View()
	for _, want := range []string{"Balls", "Gravity", "RUNNING", "double"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	m = send(m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay not shown")
	}
}

func TestModelThemeCycle(t *testing.T) {
	defer SetTheme(ThemeMidnight.Name)
	m := newTestModel(t, 0)
	if CurrentTheme.Name != "midnight" {
		t.Fatalf("theme = %s, want midnight", CurrentTheme.Name)
	}
	m = send(m, key("T"))
	if CurrentTheme.Name != "ember" {
		t.Errorf("theme after T = %s, want ember", CurrentTheme.Name)
	}
	if m.Status() != "theme: ember" {
		t.Errorf("status = %q", m.Status())
	}
}
