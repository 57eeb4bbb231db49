package export

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/viz"
)

func snapshotWorld(t *testing.T) (*sim.World, *physics.Body) {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.Collisions = false
	w, err := sim.NewWorld(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Spawn(dynamo.V(100, 100), physics.Standard); err != nil {
		t.Fatal(err)
	}
	fire, err := w.Spawn(dynamo.V(400, 300), physics.Incendiary)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := w.Step(800, 600); err != nil {
			t.Fatal(err)
		}
	}
	fire.EmitSparks(fire.Position())
	return w, fire
}

func TestWorldToSVG(t *testing.T) {
	w, _ := snapshotWorld(t)
	svg := WorldToSVG(w, "")

	checks := []struct {
		substr string
		count  int
	}{
		{"<radialGradient", 2},
		{`fill="url(#ball0)"`, 1},
		{`fill="url(#ball1)"`, 1},
		{`fill="#ffffff" fill-opacity="0.3"`, 2},
		{`stop-color="#ffff00"`, 1},
		{`fill-opacity="1.00"`, physics.SparksPerContact},
		{"<polyline", 0},
	}
	for _, c := range checks {
		if got := strings.Count(svg, c.substr); got != c.count {
			t.Errorf("count(%q) = %d, want %d", c.substr, got, c.count)
		}
	}
	if !strings.Contains(svg, `fill="`+DefaultBackground+`"`) {
		t.Error("default background missing")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("svg not closed")
	}

	w.SetTrailsEnabled(true)
	svg = WorldToSVG(w, "#1e272e")
	if got := strings.Count(svg, "<polyline"); got != 2 {
		t.Errorf("trails on: %d polylines, want 2", got)
	}
	if !strings.Contains(svg, `stroke-opacity="0.25"`) || !strings.Contains(svg, `fill="#1e272e"`) {
		t.Error("trail opacity or background wrong")
	}
}

func TestWorldToSVGRepeatable(t *testing.T) {
	a, _ := snapshotWorld(t)
	b, _ := snapshotWorld(t)
	if WorldToSVG(a, "") != WorldToSVG(b, "") {
		t.Error("same world produced different snapshots")
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2) != "" {
		t.Error("nil canvas should give empty output")
	}
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.SetColor(2, 3, "#ff6b6b")
	svg := CanvasToSVG(c, 2)
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("%d dots, want 2", n)
	}
	if !strings.Contains(svg, `fill="#ff6b6b"`) || !strings.Contains(svg, `fill="`+dotColor+`"`) {
		t.Error("dot colors not kept")
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Error("unexpected svg size")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("single point should give empty output")
	}
	svg := SeriesToSVG([]float64{0, 1, 2, 3}, 300, 100, "#48dbfb")
	if !strings.Contains(svg, `stroke="#48dbfb"`) {
		t.Error("stroke color missing")
	}
	if n := strings.Count(svg, " L"); n != 3 {
		t.Errorf("%d line segments, want 3", n)
	}
	if !strings.Contains(svg, "d=\"M0.0,") || !strings.Contains(svg, "L300.0,") {
		t.Error("path does not span the width")
	}

	flat := SeriesToSVG([]float64{5, 5, 5}, 100, 100, "#fff")
	if strings.Contains(flat, "NaN") {
		t.Error("flat series produced NaN")
	}
}
