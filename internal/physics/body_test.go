package physics

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// testBody pins radius and velocity so expectations can be exact.
func testBody(a Archetype, pos, vel dynamo.Vec2, r float64) *Body {
	b, err := NewBody(pos, a, rand.New(rand.NewSource(1)))
	Expect(err).NotTo(HaveOccurred())
	b.radius = r
	b.vel = vel
	return b
}

var _ = Describe("Body", func() {
	bounds := dynamo.Bounds{Width: 800, Height: 600}

	Describe("NewBody", func() {
		It("draws radius and velocity inside the archetype ranges", func() {
			rng := rand.New(rand.NewSource(7))
			for _, a := range Archetypes() {
				p, _ := a.Profile()
				for i := 0; i < 200; i++ {
					b, err := NewBody(dynamo.V(100, 100), a, rng)
					Expect(err).NotTo(HaveOccurred())
					Expect(b.Radius()).To(BeNumerically(">=", p.MinRadius))
					Expect(b.Radius()).To(BeNumerically("<", p.MaxRadius))
					Expect(math.Abs(b.Velocity().X)).To(BeNumerically("<=", 5))
					Expect(math.Abs(b.Velocity().Y)).To(BeNumerically("<=", 5))
				}
			}
		})

		It("starts free with an empty trail and no sparks", func() {
			b, err := NewBody(dynamo.V(1, 2), Heavy, rand.New(rand.NewSource(1)))
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Dragging()).To(BeFalse())
			Expect(b.Trail()).To(BeEmpty())
			Expect(b.Particles()).To(BeEmpty())
			Expect(b.Color()).To(Equal(Color("#485460")))
			Expect(b.Position()).To(Equal(dynamo.V(1, 2)))
		})

		It("rejects archetypes outside the enum", func() {
			_, err := NewBody(dynamo.V(0, 0), Archetype(42), rand.New(rand.NewSource(1)))
			Expect(err).To(MatchError(dynamo.ErrInvalidArchetype))
		})

		It("is reproducible under a seeded source", func() {
			a, _ := NewBody(dynamo.V(0, 0), Standard, rand.New(rand.NewSource(99)))
			b, _ := NewBody(dynamo.V(0, 0), Standard, rand.New(rand.NewSource(99)))
			Expect(a.Radius()).To(Equal(b.Radius()))
			Expect(a.Color()).To(Equal(b.Color()))
			Expect(a.Velocity()).To(Equal(b.Velocity()))
		})
	})

	Describe("Integrate", func() {
		It("applies gravity before friction, then moves", func() {
			b := testBody(Standard, dynamo.V(100, 100), dynamo.V(0, 0), 20)
			b.Integrate(true)

			Expect(b.Velocity().Y).To(BeNumerically("~", 0.5*0.99, 1e-12))
			Expect(b.Position().X).To(Equal(100.0))
			Expect(b.Position().Y).To(BeNumerically("~", 100+0.5*0.99, 1e-12))
			Expect(b.Trail()).To(Equal([]dynamo.Vec2{dynamo.V(100, 100)}))
		})

		It("skips gravity when disabled", func() {
			b := testBody(Heavy, dynamo.V(100, 100), dynamo.V(2, 0), 30)
			b.Integrate(false)
			Expect(b.Velocity().X).To(BeNumerically("~", 2*0.98, 1e-12))
			Expect(b.Velocity().Y).To(Equal(0.0))
			Expect(b.Position().X).To(BeNumerically("~", 100+2*0.98, 1e-12))
			Expect(b.Position().Y).To(Equal(100.0))
		})

		It("pulls buoyant bodies upward", func() {
			b := testBody(Buoyant, dynamo.V(100, 100), dynamo.V(0, 0), 30)
			b.Integrate(true)
			Expect(b.Velocity().Y).To(BeNumerically("<", 0))
		})

		It("shrinks each velocity component through friction alone", func() {
			for _, a := range Archetypes() {
				b := testBody(a, dynamo.V(400, 300), dynamo.V(3, -4), 20)
				for i := 0; i < 50; i++ {
					before := b.Velocity()
					b.Integrate(false)
					after := b.Velocity()
					Expect(math.Abs(after.X)).To(BeNumerically("<", math.Abs(before.X)))
					Expect(math.Abs(after.Y)).To(BeNumerically("<", math.Abs(before.Y)))
				}
			}
			still := testBody(Standard, dynamo.V(0, 0), dynamo.V(0, 0), 20)
			still.Integrate(false)
			Expect(still.Velocity()).To(Equal(dynamo.V(0, 0)))
		})

		It("keeps at most ten trail samples, newest last", func() {
			b := testBody(Standard, dynamo.V(100, 100), dynamo.V(1, 0), 20)
			var last dynamo.Vec2
			for i := 0; i < 100; i++ {
				last = b.Position()
				b.Integrate(true)
				Expect(len(b.Trail())).To(BeNumerically("<=", MaxTrail))
			}
			trail := b.Trail()
			Expect(trail).To(HaveLen(MaxTrail))
			Expect(trail[len(trail)-1]).To(Equal(last))
		})

		It("holds a dragged body in place", func() {
			b := testBody(Standard, dynamo.V(100, 100), dynamo.V(3, 3), 20)
			b.BeginDrag(dynamo.V(100, 100))
			b.SetVelocity(dynamo.V(9, 9))
			b.Integrate(true)
			Expect(b.Position()).To(Equal(dynamo.V(100, 100)))
			Expect(b.Velocity()).To(Equal(dynamo.V(0, 0)))
			Expect(b.Trail()).To(HaveLen(1))
		})
	})

	Describe("ResolveWallCollision", func() {
		DescribeTable("clamps and reflects",
			func(pos, vel, wantPos, wantVel dynamo.Vec2) {
				b := testBody(Standard, pos, vel, 20)
				b.ResolveWallCollision(bounds)
				Expect(b.Position()).To(Equal(wantPos))
				Expect(b.Velocity().X).To(BeNumerically("~", wantVel.X, 1e-12))
				Expect(b.Velocity().Y).To(BeNumerically("~", wantVel.Y, 1e-12))
			},
			Entry("right wall", dynamo.V(790, 300), dynamo.V(5, 1), dynamo.V(780, 300), dynamo.V(-4, 1)),
			Entry("left wall", dynamo.V(5, 300), dynamo.V(-5, 1), dynamo.V(20, 300), dynamo.V(4, 1)),
			Entry("bottom wall", dynamo.V(400, 595), dynamo.V(1, 10), dynamo.V(400, 580), dynamo.V(1, -8)),
			Entry("top wall", dynamo.V(400, 10), dynamo.V(1, -10), dynamo.V(400, 20), dynamo.V(1, 8)),
			Entry("corner", dynamo.V(799, 599), dynamo.V(5, 5), dynamo.V(780, 580), dynamo.V(-4, -4)),
			Entry("inside", dynamo.V(400, 300), dynamo.V(5, 5), dynamo.V(400, 300), dynamo.V(5, 5)),
		)

		It("amplifies rebound speed for bouncy bodies", func() {
			b := testBody(Bouncy, dynamo.V(795, 300), dynamo.V(10, 0), 10)
			b.ResolveWallCollision(bounds)
			Expect(b.Velocity().X).To(BeNumerically("~", -12, 1e-12))
		})

		It("always leaves the center within [r, dim-r]", func() {
			rng := rand.New(rand.NewSource(3))
			for i := 0; i < 1000; i++ {
				r := rng.Float64()*40 + 10
				pos := dynamo.V(rng.Float64()*1000-100, rng.Float64()*800-100)
				b := testBody(Heavy, pos, dynamo.V(rng.Float64()*20-10, rng.Float64()*20-10), r)
				b.ResolveWallCollision(bounds)
				p := b.Position()
				Expect(p.X).To(BeNumerically(">=", r))
				Expect(p.X).To(BeNumerically("<=", bounds.Width-r))
				Expect(p.Y).To(BeNumerically(">=", r))
				Expect(p.Y).To(BeNumerically("<=", bounds.Height-r))
			}
		})
	})

	Describe("ResolvePairCollision", func() {
		It("nudges both bodies by the scaled corrective vector", func() {
			a := testBody(Standard, dynamo.V(100, 100), dynamo.V(0, 0), 12)
			b := testBody(Standard, dynamo.V(103, 104), dynamo.V(1, 1), 8)

			angle := math.Atan2(100-104, 100-103)
			tx := 100 + math.Cos(angle)*20
			ty := 100 + math.Sin(angle)*20
			nx, ny := (tx-103)*PairGain, (ty-104)*PairGain

			Expect(a.ResolvePairCollision(b)).To(BeTrue())
			Expect(a.Velocity()).To(Equal(dynamo.V(-nx, -ny)))
			Expect(b.Velocity()).To(Equal(dynamo.V(1+nx, 1+ny)))
			Expect(a.Position()).To(Equal(dynamo.V(100, 100)))
			Expect(b.Position()).To(Equal(dynamo.V(103, 104)))
		})

		It("triggers just inside the sum of radii and not just outside", func() {
			const eps = 1e-6
			near := testBody(Standard, dynamo.V(100, 100), dynamo.V(0, 0), 10)
			inside := testBody(Standard, dynamo.V(120-eps, 100), dynamo.V(0, 0), 10)
			Expect(near.ResolvePairCollision(inside)).To(BeTrue())
			Expect(inside.Velocity()).NotTo(Equal(dynamo.V(0, 0)))

			far := testBody(Standard, dynamo.V(100, 100), dynamo.V(0, 0), 10)
			outside := testBody(Standard, dynamo.V(120+eps, 100), dynamo.V(0, 0), 10)
			Expect(far.ResolvePairCollision(outside)).To(BeFalse())
			Expect(far.Velocity()).To(Equal(dynamo.V(0, 0)))
			Expect(outside.Velocity()).To(Equal(dynamo.V(0, 0)))
		})

		It("ignores itself", func() {
			a := testBody(Standard, dynamo.V(100, 100), dynamo.V(1, 1), 10)
			Expect(a.ResolvePairCollision(a)).To(BeFalse())
			Expect(a.Velocity()).To(Equal(dynamo.V(1, 1)))
		})

		It("emits five full-life sparks at the other body when incendiary", func() {
			fire := testBody(Incendiary, dynamo.V(100, 100), dynamo.V(0, 0), 15)
			other := testBody(Heavy, dynamo.V(110, 100), dynamo.V(0, 0), 30)
			Expect(fire.ResolvePairCollision(other)).To(BeTrue())

			sparks := fire.Particles()
			Expect(sparks).To(HaveLen(SparksPerContact))
			for _, s := range sparks {
				Expect(s.Pos).To(Equal(dynamo.V(110, 100)))
				Expect(s.Life).To(Equal(1.0))
				Expect(s.Size).To(BeNumerically(">=", 1))
				Expect(s.Size).To(BeNumerically("<", 4))
			}
			Expect(other.Particles()).To(BeEmpty())
		})

		It("does not emit sparks for other archetypes", func() {
			a := testBody(Bouncy, dynamo.V(100, 100), dynamo.V(0, 0), 15)
			b := testBody(Incendiary, dynamo.V(110, 100), dynamo.V(0, 0), 15)
			a.ResolvePairCollision(b)
			Expect(a.Particles()).To(BeEmpty())
			Expect(b.Particles()).To(BeEmpty())
		})
	})

	Describe("UpdateParticles", func() {
		It("decays life by exactly 0.02 per frame and drops spent sparks", func() {
			b := testBody(Incendiary, dynamo.V(100, 100), dynamo.V(0, 0), 15)
			b.EmitSparks(dynamo.V(50, 50))

			prev := b.Particles()
			for frame := 0; frame < 60; frame++ {
				b.UpdateParticles()
				cur := b.Particles()
				for _, p := range cur {
					Expect(p.Life).To(BeNumerically(">", 0))
				}
				if len(cur) == len(prev) {
					for i := range cur {
						Expect(prev[i].Life - cur[i].Life).To(BeNumerically("~", ParticleDecay, 1e-12))
						Expect(cur[i].Pos).To(Equal(prev[i].Pos.Add(prev[i].Vel)))
					}
				}
				prev = cur
			}
			Expect(b.Particles()).To(BeEmpty())
		})

		It("removes adjacent spent sparks without skipping", func() {
			b := testBody(Incendiary, dynamo.V(100, 100), dynamo.V(0, 0), 15)
			b.particles = []Particle{{Life: 0.01}, {Life: 0.02}, {Life: 0.5}, {Life: 0.015}, {Life: 0.9}}
			b.UpdateParticles()
			lives := []float64{}
			for _, p := range b.Particles() {
				lives = append(lives, p.Life)
			}
			Expect(lives).To(HaveLen(2))
			Expect(lives[0]).To(BeNumerically("~", 0.48, 1e-12))
			Expect(lives[1]).To(BeNumerically("~", 0.88, 1e-12))
		})
	})

	Describe("drag protocol", func() {
		It("preserves the grab offset exactly", func() {
			b := testBody(Standard, dynamo.V(100, 100), dynamo.V(4, -2), 20)
			grab := dynamo.V(93, 108)
			b.BeginDrag(grab)
			Expect(b.Dragging()).To(BeTrue())
			Expect(b.Velocity()).To(Equal(dynamo.V(0, 0)))

			p := dynamo.V(300, 250)
			b.UpdateDrag(p)
			Expect(b.Position()).To(Equal(p.Add(dynamo.V(100, 100).Sub(grab))))
		})

		It("releases with half the supplied velocity regardless of history", func() {
			b := testBody(Heavy, dynamo.V(100, 100), dynamo.V(40, 40), 30)
			b.BeginDrag(dynamo.V(100, 100))
			b.UpdateDrag(dynamo.V(200, 200))
			b.EndDrag(dynamo.V(-30, 12))
			Expect(b.Dragging()).To(BeFalse())
			Expect(b.Velocity()).To(Equal(dynamo.V(-15, 6)))
		})

		It("ignores update and release when free", func() {
			b := testBody(Standard, dynamo.V(100, 100), dynamo.V(1, 2), 20)
			b.UpdateDrag(dynamo.V(500, 500))
			b.EndDrag(dynamo.V(100, 100))
			Expect(b.Position()).To(Equal(dynamo.V(100, 100)))
			Expect(b.Velocity()).To(Equal(dynamo.V(1, 2)))
		})
	})

	Describe("ContainsPoint", func() {
		It("is strict on the rim", func() {
			b := testBody(Standard, dynamo.V(100, 100), dynamo.V(0, 0), 20)
			Expect(b.ContainsPoint(dynamo.V(100, 100))).To(BeTrue())
			Expect(b.ContainsPoint(dynamo.V(119.9, 100))).To(BeTrue())
			Expect(b.ContainsPoint(dynamo.V(120, 100))).To(BeFalse())
			Expect(b.ContainsPoint(dynamo.V(130, 130))).To(BeFalse())
		})
	})
})
