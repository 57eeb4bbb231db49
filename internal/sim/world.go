package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
)

// spawnMargin keeps randomly spawned bodies off the walls.
const spawnMargin = 30

// World owns the body collection and the global toggles. It is not safe for
// concurrent use; hosts call it from their frame loop and input handlers.
type World struct {
	cfg    Config
	bounds dynamo.Bounds
	rng    *rand.Rand

	bodies  []*physics.Body
	grabbed *physics.Body
	frame   int

	metrics   []Metric
	observers []Observer
}

// NewWorld validates cfg and returns an empty world. A nil rng is replaced by
// a time-seeded source.
func NewWorld(cfg Config, rng *rand.Rand) (*World, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &World{
		cfg:       cfg,
		bounds:    cfg.Bounds(),
		rng:       rng,
		bodies:    make([]*physics.Body, 0),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func (w *World) AddMetric(m Metric)     { w.metrics = append(w.metrics, m) }
func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }

func (w *World) Metrics() []Metric { return w.metrics }

// Spawn appends a body of archetype a centered at pos.
func (w *World) Spawn(pos dynamo.Vec2, a physics.Archetype) (*physics.Body, error) {
	b, err := physics.NewBody(pos, a, w.rng)
	if err != nil {
		return nil, err
	}
	w.bodies = append(w.bodies, b)
	return b, nil
}

// SpawnRandom spawns a body of a random archetype at a random position.
func (w *World) SpawnRandom() (*physics.Body, error) {
	all := physics.Archetypes()
	return w.Scatter(all[w.rng.Intn(len(all))])
}

// Scatter spawns a body of archetype a somewhere inside the viewport, at
// least spawnMargin away from each wall when the viewport allows.
func (w *World) Scatter(a physics.Archetype) (*physics.Body, error) {
	pos := dynamo.V(
		w.rng.Float64()*span(w.bounds.Width)+spawnMargin,
		w.rng.Float64()*span(w.bounds.Height)+spawnMargin,
	)
	return w.Spawn(pos, a)
}

func span(dim float64) float64 {
	if s := dim - 2*spawnMargin; s > 0 {
		return s
	}
	return 0
}

// Clear removes every body and drops any grab in progress.
func (w *World) Clear() {
	w.bodies = make([]*physics.Body, 0)
	w.grabbed = nil
}

func (w *World) BodyCount() int { return len(w.bodies) }

// Bodies returns the bodies in creation order. The slice is a copy; the
// bodies are shared.
func (w *World) Bodies() []*physics.Body {
	out := make([]*physics.Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

func (w *World) Bounds() dynamo.Bounds { return w.bounds }
func (w *World) Frame() int            { return w.frame }
func (w *World) Config() Config        { return w.cfg }
func (w *World) Rand() *rand.Rand      { return w.rng }

func (w *World) SetViewport(width, height float64) error {
	b := dynamo.Bounds{Width: width, Height: height}
	if err := b.Validate(); err != nil {
		return err
	}
	w.bounds = b
	w.cfg.Width, w.cfg.Height = width, height
	return nil
}

func (w *World) SetGravityEnabled(on bool)    { w.cfg.Gravity = on }
func (w *World) SetTrailsEnabled(on bool)     { w.cfg.Trails = on }
func (w *World) SetCollisionsEnabled(on bool) { w.cfg.Collisions = on }
func (w *World) SetPairMode(m PairMode)       { w.cfg.PairMode = m }

func (w *World) GravityEnabled() bool    { return w.cfg.Gravity }
func (w *World) TrailsEnabled() bool     { return w.cfg.Trails }
func (w *World) CollisionsEnabled() bool { return w.cfg.Collisions }
func (w *World) PairMode() PairMode      { return w.cfg.PairMode }

func (w *World) ToggleGravity() bool {
	w.cfg.Gravity = !w.cfg.Gravity
	return w.cfg.Gravity
}

func (w *World) ToggleTrails() bool {
	w.cfg.Trails = !w.cfg.Trails
	return w.cfg.Trails
}

func (w *World) ToggleCollisions() bool {
	w.cfg.Collisions = !w.cfg.Collisions
	return w.cfg.Collisions
}

// Step advances one frame inside a width x height viewport. Bodies are
// updated in creation order and see neighbors already moved this frame.
func (w *World) Step(width, height float64) error {
	bounds := dynamo.Bounds{Width: width, Height: height}
	if err := bounds.Validate(); err != nil {
		return fmt.Errorf("step frame %d: %w", w.frame, err)
	}
	w.bounds = bounds
	w.cfg.Width, w.cfg.Height = width, height

	for i, b := range w.bodies {
		b.Integrate(w.cfg.Gravity)
		b.ResolveWallCollision(bounds)
		if w.cfg.Collisions {
			w.resolvePairs(i, b)
		}
		if b.Archetype() == physics.Incendiary {
			b.UpdateParticles()
		}
	}

	w.frame++
	for _, m := range w.metrics {
		m.Observe(w)
	}
	for _, obs := range w.observers {
		obs.OnStep(w, w.frame)
	}
	return nil
}

func (w *World) resolvePairs(i int, b *physics.Body) {
	if w.cfg.PairMode == PairSingle {
		for _, other := range w.bodies[i+1:] {
			if b.ResolvePairCollision(other) && other.Archetype() == physics.Incendiary {
				other.EmitSparks(b.Position())
			}
		}
		return
	}
	for _, other := range w.bodies {
		b.ResolvePairCollision(other)
	}
}

// HitTestTopmost returns the most recently created body containing p, or nil.
func (w *World) HitTestTopmost(p dynamo.Vec2) *physics.Body {
	for i := len(w.bodies) - 1; i >= 0; i-- {
		if w.bodies[i].ContainsPoint(p) {
			return w.bodies[i]
		}
	}
	return nil
}

// Grab starts dragging the topmost body under p. A grab already in progress
// is released at rest first.
func (w *World) Grab(p dynamo.Vec2) (*physics.Body, bool) {
	hit := w.HitTestTopmost(p)
	if hit == nil {
		return nil, false
	}
	if w.grabbed != nil {
		w.grabbed.EndDrag(dynamo.Vec2{})
	}
	hit.BeginDrag(p)
	w.grabbed = hit
	return hit, true
}

func (w *World) Grabbed() *physics.Body { return w.grabbed }

// DragTo moves the grabbed body. It is a no-op when nothing is grabbed.
func (w *World) DragTo(p dynamo.Vec2) {
	if w.grabbed == nil {
		return
	}
	w.grabbed.UpdateDrag(p)
}

// Release throws the grabbed body with release velocity v. It is a no-op when
// nothing is grabbed.
func (w *World) Release(v dynamo.Vec2) {
	if w.grabbed == nil {
		return
	}
	w.grabbed.EndDrag(v)
	w.grabbed = nil
}
