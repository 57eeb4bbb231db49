package metrics

import (
	"math"

	"github.com/san-kum/ballpit/internal/sim"
)

// MeanSpeed is the average body speed in the latest frame.
type MeanSpeed struct {
	name    string
	current float64
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(w *sim.World) {
	bodies := w.Bodies()
	if len(bodies) == 0 {
		m.current = 0
		return
	}
	sum := 0.0
	for _, b := range bodies {
		sum += b.Speed()
	}
	m.current = sum / float64(len(bodies))
}

func (m *MeanSpeed) Value() float64 { return m.current }
func (m *MeanSpeed) Reset()         { m.current = 0 }

// PeakSpeed is the fastest body speed seen since the last reset.
type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(w *sim.World) {
	for _, b := range w.Bodies() {
		p.peak = math.Max(p.peak, b.Speed())
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }
func (p *PeakSpeed) Reset()         { p.peak = 0 }
