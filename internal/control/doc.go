// Package control relays pointer input into a [sim.World].
//
// Hosts translate their native mouse or touch events into viewport
// coordinates and forward them to a [Pointer]:
//
//	p := control.NewPointer(world)
//	p.Press(pos, time.Now())   // grabs the topmost body under pos
//	p.Move(pos)                // drags it, keeping the grab offset
//	r, err := p.Release(pos, time.Now())
//
// A release throws the grabbed body with [ReleaseVelocity]. A press and
// release on empty space counts as a click and spawns the selected archetype.
package control
