package metrics

import (
	"math"

	"github.com/san-kum/ballpit/internal/sim"
)

// KineticEnergy reports Σ ½·r²·|v|² over all bodies in the latest frame,
// using the area proxy r² as mass.
type KineticEnergy struct {
	name    string
	current float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(w *sim.World) {
	e.current = TotalKinetic(w)
	e.samples++
}

func (e *KineticEnergy) Value() float64 { return e.current }

func (e *KineticEnergy) Reset() {
	e.current = 0
	e.samples = 0
}

func TotalKinetic(w *sim.World) float64 {
	total := 0.0
	for _, b := range w.Bodies() {
		v := b.Velocity()
		total += 0.5 * b.Mass() * (v.X*v.X + v.Y*v.Y)
	}
	return total
}

// EnergyDrift tracks the largest relative change in kinetic energy since the
// first observed frame.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(w *sim.World) {
	energy := TotalKinetic(w)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
