package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/sim"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 21
	cfg.Frames = 120
	cfg.InitialBodies = 6
	return cfg
}

func TestExperimentRun(t *testing.T) {
	exp := New(testConfig())
	if err := exp.Setup(nil); err != nil {
		t.Fatalf("setup: %v", err)
	}

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Frames != 120 || res.Bodies != 6 {
		t.Errorf("frames=%d bodies=%d", res.Frames, res.Bodies)
	}
	if len(res.Names) != len(metrics.Names()) {
		t.Errorf("expected %d metrics, got %d", len(metrics.Names()), len(res.Names))
	}
	for _, name := range res.Names {
		if len(res.Series[name]) != 120 {
			t.Errorf("series %s has %d samples", name, len(res.Series[name]))
		}
		last := res.Series[name][len(res.Series[name])-1]
		if last != res.Metrics[name] {
			t.Errorf("%s: final value %f != last sample %f", name, res.Metrics[name], last)
		}
	}
}

func TestExperimentReproducible(t *testing.T) {
	run := func() *Result {
		exp := New(testConfig())
		if err := exp.Setup([]sim.Metric{metrics.NewKineticEnergy()}); err != nil {
			t.Fatal(err)
		}
		res, err := exp.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	a, b := run(), run()
	for i, v := range a.Series["kinetic_energy"] {
		if b.Series["kinetic_energy"][i] != v {
			t.Fatalf("frame %d differs: %f vs %f", i, v, b.Series["kinetic_energy"][i])
		}
	}
}

func TestExperimentNotSetup(t *testing.T) {
	if _, err := New(testConfig()).Run(context.Background()); err == nil {
		t.Error("expected error for run without setup")
	}
}

func TestExperimentCancelled(t *testing.T) {
	exp := New(testConfig())
	if err := exp.Setup(nil); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := exp.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunEnsemble(t *testing.T) {
	cfg := testConfig()
	cfg.Frames = 60

	results, err := RunEnsemble(context.Background(), cfg, 3, 500)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != 500+int64(i) {
			t.Errorf("run %d seed %d", i, r.Seed)
		}
		if r.Frames != 60 || r.Bodies != 6 {
			t.Errorf("run %d frames=%d bodies=%d", i, r.Frames, r.Bodies)
		}
	}

	single := cfg.Clone()
	single.Seed = 501
	exp := New(single)
	if err := exp.Setup(nil); err != nil {
		t.Fatal(err)
	}
	want, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want.Metrics["kinetic_energy"] != results[1].Metrics["kinetic_energy"] {
		t.Errorf("ensemble run differs from sequential run with the same seed")
	}
}

func TestRunEnsembleNegativeRuns(t *testing.T) {
	if _, err := RunEnsemble(context.Background(), testConfig(), -2, 1); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
