package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/sim"
)

// SettleThreshold is the speed below which Settled counts a body as resting.
const SettleThreshold = 0.5

var factories = map[string]func() sim.Metric{
	"kinetic_energy": func() sim.Metric { return NewKineticEnergy() },
	"energy_drift":   func() sim.Metric { return NewEnergyDrift() },
	"mean_speed":     func() sim.Metric { return NewMeanSpeed() },
	"peak_speed":     func() sim.Metric { return NewPeakSpeed() },
	"settled":        func() sim.Metric { return NewSettled(SettleThreshold) },
	"contacts":       func() sim.Metric { return NewContacts() },
	"sparks":         func() sim.Metric { return NewSparks() },
}

// Default returns a fresh instance of every metric, in name order.
func Default() []sim.Metric {
	names := Names()
	out := make([]sim.Metric, 0, len(names))
	for _, n := range names {
		out = append(out, factories[n]())
	}
	return out
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func ByName(name string) (sim.Metric, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown metric %q", dynamo.ErrInvalidConfig, name)
	}
	return f(), nil
}
