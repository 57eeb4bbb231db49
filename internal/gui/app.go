package gui

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/control"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

var (
	ColBg      = rl.NewColor(30, 39, 46, 255)
	ColAccent  = rl.NewColor(72, 219, 251, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(160, 170, 180, 255)
	ColTextDim = rl.NewColor(87, 101, 116, 255)
)

const telemetryCapacity = 200

type App struct {
	Base     *config.Config
	Cfg      *config.Config
	World    *sim.World
	Pointer  *control.Pointer
	Energy   *metrics.KineticEnergy
	Label    string
	Running  bool
	InMenu   bool
	Presets  []string
	Selected int
	Font     rl.Font

	Telemetry []float64
	Status    string

	sparkRng *rand.Rand
	quit     bool
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Viewport.Width), int32(cfg.Viewport.Height), "ballpit")
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds an app on base. Interactive apps open on the preset menu;
// the others start base right away.
func NewApp(base *config.Config, label string, interactive bool) (*App, error) {
	a := &App{
		Base:     base,
		Presets:  append([]string{"custom"}, config.ListPresets()...),
		InMenu:   interactive,
		Font:     loadFont(),
		sparkRng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if !interactive {
		if err := a.load(base.Clone(), label); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// RunInteractive opens a window on the preset menu and blocks until it closes.
func RunInteractive(base *config.Config) error {
	if err := base.Validate(); err != nil {
		return err
	}
	initWindow(base)
	defer rl.CloseWindow()
	a, err := NewApp(base, "", true)
	if err != nil {
		return err
	}
	a.RunLoop()
	return nil
}

// Run opens a window on cfg directly.
func Run(cfg *config.Config, label string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	initWindow(cfg)
	defer rl.CloseWindow()
	a, err := NewApp(cfg, label, false)
	if err != nil {
		return err
	}
	a.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) load(cfg *config.Config, label string) error {
	w, err := cfg.NewWorld()
	if err != nil {
		return err
	}
	arch, err := cfg.SelectedArchetype()
	if err != nil {
		return err
	}
	p := control.NewPointer(w)
	if err := p.Select(arch); err != nil {
		return err
	}
	a.Energy = metrics.NewKineticEnergy()
	w.AddMetric(a.Energy)

	a.Cfg, a.World, a.Pointer, a.Label = cfg, w, p, label
	a.Telemetry = make([]float64, 0, telemetryCapacity)
	a.Running, a.InMenu, a.Status = true, false, ""
	return nil
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	if a.InMenu {
		a.updateMenu()
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.Pointer.Cancel()
		a.InMenu = true
		return
	}

	a.handleKeys()
	a.handleMouse()

	if a.Running || rl.IsKeyPressed(rl.KeyN) {
		a.step()
	}
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected--
	}
	if a.Selected >= len(a.Presets) {
		a.Selected = 0
	}
	if a.Selected < 0 {
		a.Selected = len(a.Presets) - 1
	}

	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		name := a.Presets[a.Selected]
		cfg := a.Base.Clone()
		if p := config.GetPreset(name); p != nil {
			p.Viewport, p.Seed = cfg.Viewport, cfg.Seed
			cfg = p
		}
		if err := a.load(cfg, name); err != nil {
			log.Printf("gui: load %s: %v", name, err)
			a.Status = err.Error()
		}
	}
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

var archetypeKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive}

func (a *App) handleKeys() {
	w := a.World
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyA):
		if shiftDown() {
			a.spawned(w.Scatter(a.Pointer.Selected()))
		} else {
			a.spawned(w.SpawnRandom())
		}
	case rl.IsKeyPressed(rl.KeyC):
		a.Pointer.Cancel()
		w.Clear()
		a.Status = "cleared"
	case rl.IsKeyPressed(rl.KeyG):
		a.Status = onOff("gravity", w.ToggleGravity())
	case rl.IsKeyPressed(rl.KeyT):
		a.Status = onOff("trails", w.ToggleTrails())
	case rl.IsKeyPressed(rl.KeyX):
		a.Status = onOff("collisions", w.ToggleCollisions())
	case rl.IsKeyPressed(rl.KeyP):
		mode := sim.PairSingle
		if w.PairMode() == sim.PairSingle {
			mode = sim.PairDouble
		}
		w.SetPairMode(mode)
		a.Status = "pairs: " + mode.String()
	}

	all := physics.Archetypes()
	for i, k := range archetypeKeys {
		if i < len(all) && rl.IsKeyPressed(k) {
			if err := a.Pointer.Select(all[i]); err == nil {
				a.Status = "selected " + all[i].String()
			}
		}
	}
}

func (a *App) spawned(b *physics.Body, err error) {
	if err != nil {
		a.Status = err.Error()
		return
	}
	a.Status = "added " + b.Archetype().String()
}

func onOff(name string, on bool) string {
	if on {
		return name + " on"
	}
	return name + " off"
}

func mouseWorld() dynamo.Vec2 {
	m := rl.GetMousePosition()
	return dynamo.V(float64(m.X), float64(m.Y))
}

func (a *App) handleMouse() {
	pos := mouseWorld()
	now := time.Now()
	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		a.Pointer.Press(pos, now)
	case rl.IsMouseButtonReleased(rl.MouseLeftButton):
		rel, err := a.Pointer.Release(pos, now)
		switch {
		case err != nil:
			a.Status = err.Error()
		case rel.Spawned != nil:
			a.Status = "added " + rel.Spawned.Archetype().String()
		case rel.Thrown != nil:
			a.Status = fmt.Sprintf("threw %s at %.1f", rel.Thrown.Archetype(), rel.Velocity.Len())
		}
	default:
		a.Pointer.Move(pos)
	}
}

// step advances one frame inside the current window.
func (a *App) step() {
	sw, sh := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	if err := a.World.Step(sw, sh); err != nil {
		log.Printf("gui: %v", err)
		a.Status = err.Error()
		a.Running = false
		return
	}
	a.Telemetry = append(a.Telemetry, a.Energy.Value())
	if len(a.Telemetry) > telemetryCapacity {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		a.drawWorld()
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	w := a.World
	a.drawText("ballpit", 20, 16, 24, ColSelect)
	if a.Label != "" {
		a.drawText(":: "+a.Label, 130, 20, 16, ColText)
	}

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	sw, sh := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	a.drawText(status, sw-110, 20, 16, col)

	a.drawText(fmt.Sprintf("%d FPS  %d balls", int32(rl.GetFPS()), w.BodyCount()), 20, 48, 16, ColAccent)
	a.drawText(fmt.Sprintf("gravity %s  trails %s  collisions %s  pairs %s",
		onOffText(w.GravityEnabled()), onOffText(w.TrailsEnabled()), onOffText(w.CollisionsEnabled()), w.PairMode()), 20, 70, 14, ColText)
	a.drawText("click adds "+a.Pointer.Selected().String(), 20, 90, 14, ColText)
	if a.Status != "" {
		a.drawText(a.Status, 20, 110, 14, ColTextDim)
	}

	a.DrawTelemetry(20, sh-100)
	a.drawText("[SPACE] PAUSE  [A] ADD  [C] CLEAR  [G/T/X] TOGGLE  [1-5] TYPE  [ESC] MENU  [Q] QUIT", 20, sh-24, 14, ColTextDim)
}

func onOffText(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots recent kinetic energy as a line strip.
func (a *App) DrawTelemetry(rectX, rectY int) {
	if len(a.Telemetry) < 2 {
		return
	}
	width, height := 300, 50

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("KE: %.0f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawMenu() {
	a.drawText("ballpit", 50, 50, 40, ColSelect)
	a.drawText("Select a preset", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Presets {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}
	if a.Status != "" {
		a.drawText(a.Status, 50, y+20, 14, rl.Red)
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: START  Q: QUIT", 50, int(rl.GetScreenHeight())-40, 14, ColTextDim)
}
