package physics

import "github.com/san-kum/ballpit/internal/dynamo"

const (
	SparksPerContact = 5
	ParticleDecay    = 0.02

	sparkSpeed   = 4.0
	sparkMinSize = 1.0
	sparkMaxSize = 4.0
)

// Particle is a visual-only spark. Life runs from 1 down to 0.
type Particle struct {
	Pos  dynamo.Vec2
	Vel  dynamo.Vec2
	Size float64
	Life float64
}

// EmitSparks appends a burst of full-life particles at p.
func (b *Body) EmitSparks(p dynamo.Vec2) {
	for i := 0; i < SparksPerContact; i++ {
		b.particles = append(b.particles, Particle{
			Pos:  p,
			Vel:  dynamo.Vec2{X: (b.rng.Float64() - 0.5) * 2 * sparkSpeed, Y: (b.rng.Float64() - 0.5) * 2 * sparkSpeed},
			Size: b.rng.Float64()*(sparkMaxSize-sparkMinSize) + sparkMinSize,
			Life: 1.0,
		})
	}
}

// UpdateParticles moves and ages every spark and drops the spent ones.
func (b *Body) UpdateParticles() {
	live := b.particles[:0]
	for _, p := range b.particles {
		p.Pos = p.Pos.Add(p.Vel)
		p.Life -= ParticleDecay
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(b.particles); i++ {
		b.particles[i] = Particle{}
	}
	b.particles = live
}

func (b *Body) Particles() []Particle {
	out := make([]Particle, len(b.particles))
	copy(out, b.particles)
	return out
}

func (b *Body) ParticleCount() int { return len(b.particles) }
