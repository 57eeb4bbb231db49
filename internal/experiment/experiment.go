package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/sim"
)

// Result holds the aggregate output of one headless run. No body state is
// kept beyond the final count.
type Result struct {
	Frames  int
	Bodies  int
	Seed    int64
	Elapsed time.Duration
	Names   []string
	Series  map[string][]float64
	Metrics map[string]float64
}

type Experiment struct {
	cfg     *config.Config
	world   *sim.World
	metrics []sim.Metric
	series  map[string][]float64
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds and populates the world and attaches ms. A nil ms attaches
// every registered metric.
func (e *Experiment) Setup(ms []sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	w, err := e.cfg.NewWorld()
	if err != nil {
		return err
	}
	return e.attach(w, ms)
}

func (e *Experiment) attach(w *sim.World, ms []sim.Metric) error {
	if ms == nil {
		ms = metrics.Default()
	}
	e.world = w
	e.metrics = ms
	e.series = make(map[string][]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		w.AddMetric(m)
	}
	w.AddObserver(sim.ObserverFunc(e.record))
	return nil
}

func (e *Experiment) record(w *sim.World, frame int) {
	for _, m := range e.metrics {
		e.series[m.Name()] = append(e.series[m.Name()], m.Value())
	}
}

// Run steps the world for the configured number of frames. It stops with a
// SimError if any body leaves finite space, and with ctx.Err() on cancel.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.world == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	start := time.Now()
	b := e.world.Bounds()
	for i := 0; i < e.cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := e.world.Step(b.Width, b.Height); err != nil {
			return nil, err
		}
		if err := validate(e.world); err != nil {
			return nil, err
		}
	}

	return e.result(time.Since(start)), nil
}

func (e *Experiment) result(elapsed time.Duration) *Result {
	res := &Result{
		Frames:  e.world.Frame(),
		Bodies:  e.world.BodyCount(),
		Seed:    e.cfg.Seed,
		Elapsed: elapsed,
		Names:   make([]string, 0, len(e.metrics)),
		Series:  e.series,
		Metrics: make(map[string]float64, len(e.metrics)),
	}
	for _, m := range e.metrics {
		res.Names = append(res.Names, m.Name())
		res.Metrics[m.Name()] = m.Value()
	}
	return res
}

func validate(w *sim.World) error {
	for i, b := range w.Bodies() {
		if !b.Position().IsValid() || !b.Velocity().IsValid() {
			return dynamo.SimError{Frame: w.Frame(), Message: fmt.Sprintf("body %d left finite space", i)}
		}
	}
	return nil
}

// World returns the underlying world for adding observers.
func (e *Experiment) World() *sim.World {
	return e.world
}
