package config

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

const (
	DefaultWidth         = 800.0
	DefaultHeight        = 600.0
	DefaultInitialBodies = 5
	DefaultFPS           = 60
	DefaultFrames        = 600
	DefaultTheme         = "midnight"
	DefaultArchetype     = "standard"
)

type Config struct {
	Viewport      ViewportConfig `yaml:"viewport"`
	Gravity       bool           `yaml:"gravity"`
	Trails        bool           `yaml:"trails"`
	Collisions    bool           `yaml:"collisions"`
	PairMode      string         `yaml:"pair_mode"`
	Seed          int64          `yaml:"seed"`
	InitialBodies int            `yaml:"initial_bodies"`
	Archetype     string         `yaml:"archetype"`
	FPS           int            `yaml:"fps"`
	Frames        int            `yaml:"frames"`
	Theme         string         `yaml:"theme"`
	Bodies        []BodyGroup    `yaml:"bodies,omitempty"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BodyGroup spawns Count bodies of one archetype at random positions.
type BodyGroup struct {
	Archetype string `yaml:"archetype"`
	Count     int    `yaml:"count"`
}

func DefaultConfig() *Config {
	return &Config{
		Viewport:      ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
		Gravity:       true,
		Trails:        false,
		Collisions:    true,
		PairMode:      sim.PairDouble.String(),
		InitialBodies: DefaultInitialBodies,
		Archetype:     DefaultArchetype,
		FPS:           DefaultFPS,
		Frames:        DefaultFrames,
		Theme:         DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := c.WorldConfig(); err != nil {
		return err
	}
	if _, err := c.SelectedArchetype(); err != nil {
		return err
	}
	if c.InitialBodies < 0 {
		return fmt.Errorf("%w: initial_bodies must be >= 0, got %d", dynamo.ErrInvalidConfig, c.InitialBodies)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", dynamo.ErrInvalidConfig, c.FPS)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames must be >= 0, got %d", dynamo.ErrInvalidConfig, c.Frames)
	}
	for i, g := range c.Bodies {
		if _, err := physics.ParseArchetype(g.Archetype); err != nil {
			return fmt.Errorf("bodies[%d]: %w", i, err)
		}
		if g.Count < 0 {
			return fmt.Errorf("%w: bodies[%d].count must be >= 0", dynamo.ErrInvalidConfig, i)
		}
	}
	return nil
}

// WorldConfig maps the file settings onto the simulation's own config.
func (c *Config) WorldConfig() (sim.Config, error) {
	mode, err := sim.ParsePairMode(c.PairMode)
	if err != nil {
		return sim.Config{}, err
	}
	wc := sim.Config{
		Width:      c.Viewport.Width,
		Height:     c.Viewport.Height,
		Gravity:    c.Gravity,
		Trails:     c.Trails,
		Collisions: c.Collisions,
		PairMode:   mode,
	}
	if err := wc.Bounds().Validate(); err != nil {
		return sim.Config{}, err
	}
	return wc, nil
}

func (c *Config) SelectedArchetype() (physics.Archetype, error) {
	return physics.ParseArchetype(c.Archetype)
}

// Rand returns a source seeded from Seed, or a time-seeded one when Seed is 0.
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewWorld builds a world from c and spawns its starting bodies.
func (c *Config) NewWorld() (*sim.World, error) {
	wc, err := c.WorldConfig()
	if err != nil {
		return nil, err
	}
	w, err := sim.NewWorld(wc, c.Rand())
	if err != nil {
		return nil, err
	}
	if err := c.Populate(w); err != nil {
		return nil, err
	}
	return w, nil
}

// Populate spawns the configured groups, then InitialBodies bodies of random
// archetypes.
func (c *Config) Populate(w *sim.World) error {
	for i, g := range c.Bodies {
		a, err := physics.ParseArchetype(g.Archetype)
		if err != nil {
			return fmt.Errorf("bodies[%d]: %w", i, err)
		}
		for n := 0; n < g.Count; n++ {
			if _, err := w.Scatter(a); err != nil {
				return err
			}
		}
	}
	for n := 0; n < c.InitialBodies; n++ {
		if _, err := w.SpawnRandom(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Bodies = append([]BodyGroup(nil), c.Bodies...)
	return &cp
}
