package sim

import (
	"errors"
	"testing"

	"github.com/san-kum/ballpit/internal/dynamo"
)

func TestParsePairMode(t *testing.T) {
	tests := []struct {
		in      string
		want    PairMode
		wantErr bool
	}{
		{"double", PairDouble, false},
		{"", PairDouble, false},
		{"Single", PairSingle, false},
		{"triple", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePairMode(tt.in)
		if tt.wantErr {
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("ParsePairMode(%q): expected ErrInvalidConfig, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParsePairMode(%q) = %v, %v", tt.in, got, err)
		}
		if got.String() != map[PairMode]string{PairDouble: "double", PairSingle: "single"}[got] {
			t.Errorf("String() = %q", got.String())
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("viewport = %vx%v", cfg.Width, cfg.Height)
	}
	if !cfg.Gravity || cfg.Trails || !cfg.Collisions || cfg.PairMode != PairDouble {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := validateConfig(cfg); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}
