package sim

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// Ensemble runs independent worlds concurrently, one goroutine per world.
// Each world gets seed seedStart+i and is only touched by its own goroutine.
type Ensemble struct {
	cfg       Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(cfg Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart}
}

// Run builds every world, hands it to setup (spawn bodies, attach metrics),
// then steps it frames times. The first error cancels the remaining runs.
func (e *Ensemble) Run(ctx context.Context, frames int, setup func(idx int, w *World) error) ([]*World, error) {
	if e.numRuns < 0 {
		return nil, fmt.Errorf("%w: %d runs", dynamo.ErrInvalidConfig, e.numRuns)
	}
	worlds := make([]*World, e.numRuns)
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			w, err := NewWorld(e.cfg, rand.New(rand.NewSource(e.seedStart+int64(idx))))
			if err != nil {
				return err
			}
			if setup != nil {
				if err := setup(idx, w); err != nil {
					return err
				}
			}
			if err := w.Run(ctx, frames); err != nil {
				return err
			}
			worlds[idx] = w
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return worlds, nil
}

// Run steps w frames times in its current viewport, stopping early if ctx is
// cancelled.
func (w *World) Run(ctx context.Context, frames int) error {
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := w.Step(w.bounds.Width, w.bounds.Height); err != nil {
			return err
		}
	}
	return nil
}
