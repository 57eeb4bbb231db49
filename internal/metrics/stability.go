package metrics

import (
	"github.com/san-kum/ballpit/internal/sim"
)

// Settled is the fraction of bodies moving slower than threshold in the
// latest frame. An empty world counts as settled.
type Settled struct {
	name      string
	threshold float64
	current   float64
}

func NewSettled(threshold float64) *Settled {
	return &Settled{
		name:      "settled",
		threshold: threshold,
		current:   1.0,
	}
}

func (s *Settled) Name() string {
	return s.name
}

func (s *Settled) Observe(w *sim.World) {
	bodies := w.Bodies()
	if len(bodies) == 0 {
		s.current = 1.0
		return
	}
	slow := 0
	for _, b := range bodies {
		if b.Speed() < s.threshold {
			slow++
		}
	}
	s.current = float64(slow) / float64(len(bodies))
}

func (s *Settled) Value() float64 {
	return s.current
}

func (s *Settled) Reset() {
	s.current = 1.0
}
