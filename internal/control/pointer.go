package control

import (
	"time"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

const (
	// ClickSlop is how far the pointer may travel between press and release
	// on empty space and still count as a click.
	ClickSlop = 5.0

	// minElapsed floors the drag duration so a zero-length drag stays finite.
	minElapsed = time.Millisecond
)

// ReleaseVelocity converts pointer displacement over elapsed time into a
// throw velocity: displacement / elapsed milliseconds * 100.
func ReleaseVelocity(start, end dynamo.Vec2, elapsed time.Duration) dynamo.Vec2 {
	if elapsed < minElapsed {
		elapsed = minElapsed
	}
	ms := float64(elapsed) / float64(time.Millisecond)
	d := end.Sub(start)
	return dynamo.Vec2{X: d.X / ms * 100, Y: d.Y / ms * 100}
}

// Release describes what a pointer release did.
type Release struct {
	Thrown   *physics.Body
	Velocity dynamo.Vec2
	Spawned  *physics.Body
}

// Pointer tracks one pointing device. The zero value is not usable; build it
// with NewPointer.
type Pointer struct {
	world    *sim.World
	selected physics.Archetype

	pressed  bool
	grabbing bool
	pressPos dynamo.Vec2
	pressAt  time.Time
	last     dynamo.Vec2
}

func NewPointer(w *sim.World) *Pointer {
	return &Pointer{world: w, selected: physics.Standard}
}

func (p *Pointer) Selected() physics.Archetype { return p.selected }

// Select sets the archetype spawned by clicks on empty space.
func (p *Pointer) Select(a physics.Archetype) error {
	if !a.Valid() {
		_, err := a.Profile()
		return err
	}
	p.selected = a
	return nil
}

func (p *Pointer) Pressed() bool     { return p.pressed }
func (p *Pointer) Grabbing() bool    { return p.grabbing }
func (p *Pointer) Last() dynamo.Vec2 { return p.last }
func (p *Pointer) World() *sim.World { return p.world }

// Press records the press and grabs the topmost body under pos, if any.
func (p *Pointer) Press(pos dynamo.Vec2, at time.Time) {
	_, p.grabbing = p.world.Grab(pos)
	p.pressed = true
	p.pressPos = pos
	p.pressAt = at
	p.last = pos
}

// Move drags the grabbed body. Moves without a press only update the last
// known position.
func (p *Pointer) Move(pos dynamo.Vec2) {
	p.last = pos
	if p.grabbing {
		p.world.DragTo(pos)
	}
}

// Release ends the gesture. It always clears the press state, even when the
// grabbed body disappeared in the meantime.
func (p *Pointer) Release(pos dynamo.Vec2, at time.Time) (Release, error) {
	if !p.pressed {
		return Release{}, nil
	}
	defer p.reset()
	p.last = pos

	if p.grabbing {
		r := Release{Thrown: p.world.Grabbed()}
		if r.Thrown == nil {
			return Release{}, nil
		}
		p.world.DragTo(pos)
		r.Velocity = ReleaseVelocity(p.pressPos, pos, at.Sub(p.pressAt))
		p.world.Release(r.Velocity)
		return r, nil
	}

	if pos.Dist(p.pressPos) > ClickSlop {
		return Release{}, nil
	}
	b, err := p.world.Spawn(pos, p.selected)
	if err != nil {
		return Release{}, err
	}
	return Release{Spawned: b}, nil
}

// Cancel drops the gesture and lets any grabbed body go at rest.
func (p *Pointer) Cancel() {
	if p.grabbing {
		p.world.Release(dynamo.Vec2{})
	}
	p.reset()
}

func (p *Pointer) reset() {
	p.pressed = false
	p.grabbing = false
}
