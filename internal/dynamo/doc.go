// Package dynamo provides the shared primitives of the ball simulation.
//
// The package is a leaf: it holds the plain value types and error values that
// the physics, sim and host packages exchange:
//
//   - [Vec2]: 2D position, velocity and pointer coordinates
//   - [Bounds]: viewport extent handed to every step
//   - [SimError]: error tied to a frame number
//
// # Errors
//
// Malformed construction and spawn arguments are the whole error surface.
// Callers match them with errors.Is:
//
//	if _, err := world.Spawn(p, a); errors.Is(err, dynamo.ErrInvalidArchetype) {
//	    // reject at the boundary
//	}
package dynamo
