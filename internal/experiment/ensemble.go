package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/sim"
)

// RunEnsemble runs cfg runs times concurrently with seeds seedStart,
// seedStart+1, ... and returns one Result per run in seed order.
func RunEnsemble(ctx context.Context, cfg *config.Config, runs int, seedStart int64) ([]*Result, error) {
	if runs < 0 {
		return nil, fmt.Errorf("%w: %d runs", dynamo.ErrInvalidConfig, runs)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	wc, err := cfg.WorldConfig()
	if err != nil {
		return nil, err
	}

	exps := make([]*Experiment, runs)
	setup := func(idx int, w *sim.World) error {
		c := cfg.Clone()
		c.Seed = seedStart + int64(idx)
		if err := c.Populate(w); err != nil {
			return err
		}
		exps[idx] = New(c)
		return exps[idx].attach(w, nil)
	}

	start := time.Now()
	if _, err := sim.NewEnsemble(wc, runs, seedStart).Run(ctx, cfg.Frames, setup); err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	results := make([]*Result, runs)
	for i, e := range exps {
		results[i] = e.result(elapsed)
	}
	return results, nil
}
