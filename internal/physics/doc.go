// Package physics models a single ball and its archetype constants.
//
// A [Body] owns one ball's physical and visual state. Every body belongs to
// exactly one [Archetype], which fixes its radius range, bounce, gravity,
// friction and color rule at construction:
//
//   - [Standard]: palette color, moderate bounce
//   - [Bouncy]: bounce above 1, gains energy off walls
//   - [Heavy]: strong gravity, dull bounce
//   - [Buoyant]: negative gravity, floats to the top
//   - [Incendiary]: emits short-lived sparks on contact
//
// # Frame Order
//
// The owning world calls, per frame and per body:
//
//	b.Integrate(gravity)
//	b.ResolveWallCollision(bounds)
//	b.ResolvePairCollision(other) // for every other body, if enabled
//	b.UpdateParticles()           // Incendiary only
//
// Randomness comes from the *rand.Rand handed to [NewBody]; a seeded source
// makes radius, color, initial velocity and spark scatter reproducible.
package physics
