package metrics

import "github.com/san-kum/ballpit/internal/sim"

// Contacts counts overlapping unordered pairs after the latest frame.
type Contacts struct {
	name    string
	current int
}

func NewContacts() *Contacts {
	return &Contacts{name: "contacts"}
}

func (c *Contacts) Name() string { return c.name }

func (c *Contacts) Observe(w *sim.World) {
	bodies := w.Bodies()
	n := 0
	for i, a := range bodies {
		for _, b := range bodies[i+1:] {
			if a.Overlaps(b) {
				n++
			}
		}
	}
	c.current = n
}

func (c *Contacts) Value() float64 { return float64(c.current) }
func (c *Contacts) Reset()         { c.current = 0 }

// Sparks counts live particles across all bodies.
type Sparks struct {
	name    string
	current int
}

func NewSparks() *Sparks {
	return &Sparks{name: "sparks"}
}

func (s *Sparks) Name() string { return s.name }

func (s *Sparks) Observe(w *sim.World) {
	n := 0
	for _, b := range w.Bodies() {
		n += b.ParticleCount()
	}
	s.current = n
}

func (s *Sparks) Value() float64 { return float64(s.current) }
func (s *Sparks) Reset()         { s.current = 0 }
