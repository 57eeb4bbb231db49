package sim

import (
	"fmt"
	"strings"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// PairMode selects how the collision pass visits unordered pairs.
type PairMode int

const (
	// PairDouble resolves every pair from both sides each frame, so the
	// effective impulse is doubled.
	PairDouble PairMode = iota
	// PairSingle resolves every pair once, from the earlier body.
	PairSingle
)

func (m PairMode) String() string {
	switch m {
	case PairDouble:
		return "double"
	case PairSingle:
		return "single"
	}
	return fmt.Sprintf("pairmode(%d)", int(m))
}

func ParsePairMode(s string) (PairMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "double":
		return PairDouble, nil
	case "single":
		return PairSingle, nil
	}
	return 0, fmt.Errorf("%w: pair mode %q", dynamo.ErrInvalidConfig, s)
}

type Config struct {
	Width      float64
	Height     float64
	Gravity    bool
	Trails     bool
	Collisions bool
	PairMode   PairMode
}

func DefaultConfig() Config {
	return Config{
		Width:      800,
		Height:     600,
		Gravity:    true,
		Trails:     false,
		Collisions: true,
		PairMode:   PairDouble,
	}
}

func (c Config) Bounds() dynamo.Bounds {
	return dynamo.Bounds{Width: c.Width, Height: c.Height}
}

type Metric interface {
	Name() string
	Observe(w *World)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(w *World, frame int)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(w *World, frame int)

func (f ObserverFunc) OnStep(w *World, frame int) { f(w, frame) }

func validateConfig(cfg Config) error {
	if err := cfg.Bounds().Validate(); err != nil {
		return err
	}
	if cfg.PairMode != PairDouble && cfg.PairMode != PairSingle {
		return fmt.Errorf("%w: pair mode %d", dynamo.ErrInvalidConfig, int(cfg.PairMode))
	}
	return nil
}
