package automation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/experiment"
)

// Sweep runs the same configuration across a range of body counts
type Sweep struct {
	Base      *config.Config
	Archetype string
	MinBodies int
	MaxBodies int
	NumSteps  int
}

// SweepResult holds the aggregates of one sweep point
type SweepResult struct {
	Bodies        int
	KineticEnergy float64
	Contacts      float64
	Settled       float64
	Elapsed       time.Duration
	FrameTime     time.Duration
}

// RunSweep executes a body-count sweep
func RunSweep(ctx context.Context, sweep *Sweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 || sweep.MinBodies < 0 || sweep.MaxBodies < sweep.MinBodies {
		return nil, fmt.Errorf("%w: sweep %d..%d in %d steps", dynamo.ErrInvalidConfig, sweep.MinBodies, sweep.MaxBodies, sweep.NumSteps)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	stride := 0.0
	if sweep.NumSteps > 1 {
		stride = float64(sweep.MaxBodies-sweep.MinBodies) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		n := sweep.MinBodies + int(float64(i)*stride+0.5)

		cfg := sweep.Base.Clone()
		cfg.InitialBodies = 0
		cfg.Bodies = nil
		if sweep.Archetype == "" {
			cfg.InitialBodies = n
		} else {
			cfg.Bodies = []config.BodyGroup{{Archetype: sweep.Archetype, Count: n}}
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(nil); err != nil {
			return nil, err
		}
		res, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		sr := SweepResult{
			Bodies:        n,
			KineticEnergy: res.Metrics["kinetic_energy"],
			Contacts:      res.Metrics["contacts"],
			Settled:       res.Metrics["settled"],
			Elapsed:       res.Elapsed,
		}
		if res.Frames > 0 {
			sr.FrameTime = res.Elapsed / time.Duration(res.Frames)
		}
		results = append(results, sr)

		log.Printf("sweep %d/%d: bodies=%d", i+1, sweep.NumSteps, n)
	}

	return results, nil
}
