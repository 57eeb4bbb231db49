package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/physics"
)

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#48dbfb")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#48dbfb")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f368e0"))
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuIdleD  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	menuErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
)

const customEntry = "custom"

var presetInfo = map[string]string{
	customEntry: "your config file and flags",
	"classic":   "five random balls",
	"zero-g":    "gravity off, a dozen balls",
	"pileup":    "heavy balls under a pile",
	"bubbles":   "buoyant balls with trails",
	"inferno":   "fire balls throwing sparks",
	"single":    "pairs resolved once per frame",
}

var configFields = []string{"initial_bodies", "archetype", "fps", "seed", "gravity", "trails", "collisions"}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

type app struct {
	state, cursor int
	entries       []string
	base          *config.Config
	cfg           *config.Config
	selected      string
	fieldCursor   int
	editing       bool
	editBuf       string
	err           string
	width, height int
	live          Model
}

// NewInteractiveApp starts at the preset menu. base backs the "custom" entry.
func NewInteractiveApp(base *config.Config) *app {
	if base == nil {
		base = config.DefaultConfig()
	}
	return &app{
		state:   stateMenu,
		entries: append([]string{customEntry}, config.ListPresets()...),
		base:    base,
	}
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateSim {
			return m.forward(msg)
		}
		return m, nil
	default:
		if m.state == stateSim {
			return m.forward(msg)
		}
	}
	return m, nil
}

func (m app) forward(msg tea.Msg) (app, tea.Cmd) {
	next, cmd := m.live.Update(msg)
	m.live = next.(Model)
	return m, cmd
}

func (m app) handleKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		return m.forward(msg)
	}
	return m, nil
}

func (m app) menuKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.entries[m.cursor]
		if m.selected == customEntry {
			m.cfg = m.base.Clone()
		} else {
			m.cfg = config.GetPreset(m.selected)
			m.cfg.Viewport = m.base.Viewport
			m.cfg.Seed = m.base.Seed
		}
		m.state, m.fieldCursor, m.err = stateConfig, 0, ""
	}
	return m, nil
}

func (m app) configKey(msg tea.KeyMsg) (app, tea.Cmd) {
	name := configFields[m.fieldCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if err := setField(m.cfg, name, m.editBuf); err != nil {
				m.err = err.Error()
			} else {
				m.err = ""
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && (s[0] >= '0' && s[0] <= '9' || s[0] == '-') {
				m.editBuf += s
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(configFields)-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		if isNumeric(name) {
			m.editing, m.editBuf = true, fieldValue(m.cfg, name)
		} else {
			adjustField(m.cfg, name, 1)
		}
	case "left", "h":
		adjustField(m.cfg, name, -1)
	case "right", "l":
		adjustField(m.cfg, name, 1)
	case "s":
		return m.start()
	}
	return m, nil
}

func isNumeric(name string) bool {
	return name == "initial_bodies" || name == "fps" || name == "seed"
}

func fieldValue(cfg *config.Config, name string) string {
	switch name {
	case "initial_bodies":
		return strconv.Itoa(cfg.InitialBodies)
	case "fps":
		return strconv.Itoa(cfg.FPS)
	case "seed":
		return strconv.FormatInt(cfg.Seed, 10)
	case "archetype":
		return cfg.Archetype
	case "gravity":
		return onOffText(cfg.Gravity)
	case "trails":
		return onOffText(cfg.Trails)
	case "collisions":
		return onOffText(cfg.Collisions)
	}
	return ""
}

func setField(cfg *config.Config, name, value string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", name, value)
	}
	switch name {
	case "initial_bodies":
		if n < 0 {
			return fmt.Errorf("initial_bodies must be >= 0")
		}
		cfg.InitialBodies = int(n)
	case "fps":
		if n <= 0 {
			return fmt.Errorf("fps must be positive")
		}
		cfg.FPS = int(n)
	case "seed":
		cfg.Seed = n
	}
	return nil
}

func adjustField(cfg *config.Config, name string, delta int) {
	switch name {
	case "initial_bodies":
		cfg.InitialBodies = max(cfg.InitialBodies+delta, 0)
	case "fps":
		cfg.FPS = max(cfg.FPS+delta, 1)
	case "seed":
		cfg.Seed += int64(delta)
	case "archetype":
		all := physics.Archetypes()
		cur, err := physics.ParseArchetype(cfg.Archetype)
		if err != nil {
			cur = physics.Standard
		}
		next := (int(cur) + delta + len(all)) % len(all)
		cfg.Archetype = all[next].String()
	case "gravity":
		cfg.Gravity = !cfg.Gravity
	case "trails":
		cfg.Trails = !cfg.Trails
	case "collisions":
		cfg.Collisions = !cfg.Collisions
	}
}

func (m app) start() (app, tea.Cmd) {
	live, err := NewModel(m.cfg, m.selected)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	if m.width > 0 && m.height > 0 {
		live.resize(m.width, m.height)
	}
	m.live, m.state, m.err = live, stateSim, ""
	return m, m.live.Init()
}

func (m app) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return ""
}

func header(title, sub string) string {
	return "\n\n    " + menuTitle.Render(title) + "\n    " + menuSub.Render(sub) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n"
}

func hints(pairs ...string) string {
	var b strings.Builder
	b.WriteString("\n    ")
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKey.Render(pairs[i]) + menuSub.Render(" "+pairs[i+1]+"  "))
	}
	return b.String() + "\n"
}

func (m app) viewMenu() string {
	var b strings.Builder
	b.WriteString(header("BALLPIT", "bouncing ball playground"))
	for i, name := range m.entries {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-10s", name)), menuIdleD.Render(desc)))
		}
	}
	b.WriteString(hints("j/k", "navigate", "enter", "select", "q", "quit"))
	return b.String()
}

func (m app) viewConfig() string {
	var b strings.Builder
	b.WriteString(header(strings.ToUpper(m.selected), presetInfo[m.selected]))
	for i, name := range configFields {
		val := fmt.Sprintf("%10s", fieldValue(m.cfg, name))
		if m.editing && i == m.fieldCursor {
			val = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-15s", name)), menuDesc.Bold(true).Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-15s", name)), menuIdleD.Render(val)))
		}
	}
	if m.err != "" {
		b.WriteString("\n    " + menuErr.Render(m.err) + "\n")
	}
	b.WriteString(hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back"))
	return b.String()
}

func programOptions() []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}
}

// RunInteractive opens the preset menu.
func RunInteractive(base *config.Config) error {
	_, err := tea.NewProgram(NewInteractiveApp(base), programOptions()...).Run()
	return err
}

// Run skips the menu and starts cfg directly.
func Run(cfg *config.Config, label string) error {
	m, err := NewModel(cfg, label)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, programOptions()...).Run()
	return err
}
