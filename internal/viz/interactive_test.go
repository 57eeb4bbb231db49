package viz

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/physics"
)

func sendApp(m app, msg tea.Msg) app {
	next, _ := m.Update(msg)
	return next.(app)
}

func TestInteractiveFlow(t *testing.T) {
	base := config.DefaultConfig()
	base.Seed = 3
	m := *NewInteractiveApp(base)
	if m.entries[0] != customEntry || len(m.entries) != len(config.Presets)+1 {
		t.Fatalf("menu entries = %v", m.entries)
	}

	m = sendApp(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = sendApp(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateConfig || m.selected != customEntry {
		t.Fatalf("state = %d selected = %q", m.state, m.selected)
	}

	m = sendApp(m, key("j"))
	m = sendApp(m, key("l"))
	if m.cfg.Archetype != "bouncy" {
		t.Errorf("archetype after l = %q, want bouncy", m.cfg.Archetype)
	}
	if base.Archetype != "standard" {
		t.Error("editing changed the base config")
	}

	m = sendApp(m, key("s"))
	if m.state != stateSim {
		t.Fatalf("s did not start the simulation: %s", m.err)
	}
	if m.live.pointer.Selected() != physics.Bouncy {
		t.Errorf("live model selects %v", m.live.pointer.Selected())
	}
	if m.live.view.Cols != 120-4-statsWidth-1 {
		t.Errorf("live canvas ignored the known terminal size: %d cols", m.live.view.Cols)
	}
}

func TestInteractivePreset(t *testing.T) {
	m := *NewInteractiveApp(nil)
	for i, name := range m.entries {
		if name == "inferno" {
			m.cursor = i
		}
	}
	m = sendApp(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.cfg.Archetype != "incendiary" || m.cfg.Theme != "ember" {
		t.Errorf("inferno preset not loaded: %+v", m.cfg)
	}
	m = sendApp(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateMenu {
		t.Error("esc did not return to the menu")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := setField(cfg, "initial_bodies", "12"); err != nil || cfg.InitialBodies != 12 {
		t.Errorf("initial_bodies = %d, err %v", cfg.InitialBodies, err)
	}
	if err := setField(cfg, "fps", "0"); err == nil {
		t.Error("fps 0 accepted")
	}
	if err := setField(cfg, "seed", "abc"); err == nil {
		t.Error("non-numeric seed accepted")
	}

	adjustField(cfg, "archetype", -1)
	if cfg.Archetype != "incendiary" {
		t.Errorf("archetype wrapped to %q, want incendiary", cfg.Archetype)
	}
	adjustField(cfg, "initial_bodies", -20)
	if cfg.InitialBodies != 0 {
		t.Errorf("initial_bodies went below zero: %d", cfg.InitialBodies)
	}
	adjustField(cfg, "gravity", 1)
	if cfg.Gravity || fieldValue(cfg, "gravity") != "off" {
		t.Error("gravity toggle failed")
	}
}
