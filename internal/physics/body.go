package physics

import (
	"math"
	"math/rand"

	"github.com/san-kum/ballpit/internal/dynamo"
)

const (
	// MaxTrail is the number of recent positions a body keeps for rendering.
	MaxTrail = 10

	// PairGain scales the corrective vector applied on overlap.
	PairGain = 0.05

	// ReleaseDamping scales the throw velocity handed to EndDrag.
	ReleaseDamping = 0.5

	initialSpeed = 5.0
)

type Body struct {
	archetype Archetype
	profile   Profile
	radius    float64
	color     Color

	pos, vel dynamo.Vec2

	dragging   bool
	dragOffset dynamo.Vec2

	trail     []dynamo.Vec2
	particles []Particle

	rng *rand.Rand
}

// NewBody builds a body of archetype a centered at pos. Radius, palette color
// and an initial velocity in [-5, 5) per axis are drawn from rng.
func NewBody(pos dynamo.Vec2, a Archetype, rng *rand.Rand) (*Body, error) {
	p, err := a.Profile()
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	b := &Body{
		archetype: a,
		profile:   p,
		pos:       pos,
		trail:     make([]dynamo.Vec2, 0, MaxTrail+1),
		rng:       rng,
	}
	b.radius = rng.Float64()*(p.MaxRadius-p.MinRadius) + p.MinRadius
	if b.color, err = PickColor(a, rng); err != nil {
		return nil, err
	}
	b.vel = dynamo.Vec2{
		X: (rng.Float64() - 0.5) * 2 * initialSpeed,
		Y: (rng.Float64() - 0.5) * 2 * initialSpeed,
	}
	return b, nil
}

func (b *Body) Archetype() Archetype    { return b.archetype }
func (b *Body) Profile() Profile        { return b.profile }
func (b *Body) Radius() float64         { return b.radius }
func (b *Body) Color() Color            { return b.color }
func (b *Body) Position() dynamo.Vec2   { return b.pos }
func (b *Body) Velocity() dynamo.Vec2   { return b.vel }
func (b *Body) Dragging() bool          { return b.dragging }
func (b *Body) Speed() float64          { return b.vel.Len() }
func (b *Body) DragOffset() dynamo.Vec2 { return b.dragOffset }

// Mass is an area proxy (r²) used by aggregate metrics. It has no effect on motion.
func (b *Body) Mass() float64 { return b.radius * b.radius }

func (b *Body) SetVelocity(v dynamo.Vec2) { b.vel = v }
func (b *Body) SetPosition(p dynamo.Vec2) { b.pos = p }

// Trail returns a copy of the recorded samples, oldest first.
func (b *Body) Trail() []dynamo.Vec2 {
	out := make([]dynamo.Vec2, len(b.trail))
	copy(out, b.trail)
	return out
}

// Integrate advances one frame: trail sample, gravity, friction, move.
// A dragged body only records the sample; its velocity stays zero and the
// pointer owns its position.
func (b *Body) Integrate(gravityEnabled bool) {
	b.trail = append(b.trail, b.pos)
	if len(b.trail) > MaxTrail {
		copy(b.trail, b.trail[1:])
		b.trail = b.trail[:MaxTrail]
	}

	if b.dragging {
		b.vel = dynamo.Vec2{}
		return
	}

	if gravityEnabled {
		b.vel.Y += b.profile.Gravity
	}
	b.vel.X *= b.profile.Friction
	b.vel.Y *= b.profile.Friction

	b.pos.X += b.vel.X
	b.pos.Y += b.vel.Y
}

// ResolveWallCollision clamps the body inside bounds and reflects the
// crossing velocity component, scaled by bounce. Each axis resolves at most
// one wall per call.
func (b *Body) ResolveWallCollision(bounds dynamo.Bounds) {
	r := b.radius
	bounce := b.profile.Bounce

	if b.pos.X+r > bounds.Width {
		b.pos.X = bounds.Width - r
		b.vel.X = -(b.vel.X * bounce)
	} else if b.pos.X-r < 0 {
		b.pos.X = r
		b.vel.X = -(b.vel.X * bounce)
	}

	if b.pos.Y+r > bounds.Height {
		b.pos.Y = bounds.Height - r
		b.vel.Y = -(b.vel.Y * bounce)
	} else if b.pos.Y-r < 0 {
		b.pos.Y = r
		b.vel.Y = -(b.vel.Y * bounce)
	}
}

// Overlaps reports whether the centers are closer than the sum of radii.
func (b *Body) Overlaps(other *Body) bool {
	return b.pos.Dist(other.pos) < b.radius+other.radius
}

// ResolvePairCollision applies the soft velocity nudge between b and other
// when they overlap and reports whether it did. Positions are not corrected.
func (b *Body) ResolvePairCollision(other *Body) bool {
	if other == b {
		return false
	}
	d := b.pos.Sub(other.pos)
	minDist := b.radius + other.radius
	if d.Len() >= minDist {
		return false
	}

	angle := math.Atan2(d.Y, d.X)
	target := dynamo.Vec2{
		X: b.pos.X + math.Cos(angle)*minDist,
		Y: b.pos.Y + math.Sin(angle)*minDist,
	}
	nudge := target.Sub(other.pos).Scale(PairGain)

	b.vel = b.vel.Sub(nudge)
	other.vel = other.vel.Add(nudge)

	if b.archetype == Incendiary {
		b.EmitSparks(other.pos)
	}
	return true
}

// ContainsPoint reports whether p lies strictly inside the body.
func (b *Body) ContainsPoint(p dynamo.Vec2) bool {
	return b.pos.Dist(p) < b.radius
}

// BeginDrag grabs the body at pointer p, keeping the grab offset so the body
// does not snap its center to the pointer.
func (b *Body) BeginDrag(p dynamo.Vec2) {
	b.dragging = true
	b.dragOffset = b.pos.Sub(p)
	b.vel = dynamo.Vec2{}
}

func (b *Body) UpdateDrag(p dynamo.Vec2) {
	if !b.dragging {
		return
	}
	b.pos = p.Add(b.dragOffset)
}

// EndDrag lets go of the body with half the caller-supplied throw velocity.
func (b *Body) EndDrag(release dynamo.Vec2) {
	if !b.dragging {
		return
	}
	b.dragging = false
	b.vel = release.Scale(ReleaseDamping)
}
