package automation

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/control"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

// Scenario defines a scripted sequence of world actions
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Config      *config.Config `yaml:"config"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single action. Which fields apply depends on Action.
type ScenarioStep struct {
	Action    string    `yaml:"action"`
	Archetype string    `yaml:"archetype,omitempty"`
	At        []float64 `yaml:"at,omitempty"`
	To        []float64 `yaml:"to,omitempty"`
	Velocity  []float64 `yaml:"velocity,omitempty"`
	Body      int       `yaml:"body,omitempty"`
	Count     int       `yaml:"count,omitempty"`
	Frames    int       `yaml:"frames,omitempty"`
	Millis    int       `yaml:"millis,omitempty"`
	Enabled   *bool     `yaml:"enabled,omitempty"`
	Expect    *Expect   `yaml:"expect,omitempty"`
}

// Expect is checked after the step's action runs.
type Expect struct {
	Bodies *int `yaml:"bodies,omitempty"`
}

// StepReport records the world after one step.
type StepReport struct {
	Index   int
	Action  string
	Frame   int
	Bodies  int
	Metrics map[string]float64
}

type Report struct {
	Name  string
	Steps []StepReport
	World *sim.World
}

// LoadScenario loads a scenario from a YAML file. Config keys not given in
// the file keep their defaults, except that no random bodies are spawned
// unless initial_bodies is set.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	scenario := Scenario{Config: config.DefaultConfig()}
	scenario.Config.InitialBodies = 0
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if scenario.Config == nil {
		scenario.Config = config.DefaultConfig()
		scenario.Config.InitialBodies = 0
	}
	if err := scenario.Config.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return &scenario, nil
}

// RunScenario builds a world from the scenario config and executes all steps
func RunScenario(ctx context.Context, scenario *Scenario) (*Report, error) {
	w, err := scenario.Config.NewWorld()
	if err != nil {
		return nil, err
	}
	ms := metrics.Default()
	for _, m := range ms {
		w.AddMetric(m)
	}

	r := &runner{world: w, pointer: control.NewPointer(w), clock: time.Unix(0, 0)}
	report := &Report{Name: scenario.Name, World: w, Steps: make([]StepReport, 0, len(scenario.Steps))}

	for i, step := range scenario.Steps {
		log.Printf("step %d/%d: %s", i+1, len(scenario.Steps), step.Action)

		if err := r.apply(ctx, step); err != nil {
			return report, fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.Expect != nil && step.Expect.Bodies != nil && *step.Expect.Bodies != w.BodyCount() {
			return report, fmt.Errorf("step %d: expected %d bodies, got %d", i+1, *step.Expect.Bodies, w.BodyCount())
		}

		sr := StepReport{Index: i + 1, Action: step.Action, Frame: w.Frame(), Bodies: w.BodyCount(), Metrics: make(map[string]float64, len(ms))}
		for _, m := range ms {
			sr.Metrics[m.Name()] = m.Value()
		}
		report.Steps = append(report.Steps, sr)
	}

	return report, nil
}

type runner struct {
	world   *sim.World
	pointer *control.Pointer
	clock   time.Time
}

func (r *runner) apply(ctx context.Context, step ScenarioStep) error {
	switch step.Action {
	case "spawn":
		a, err := physics.ParseArchetype(step.Archetype)
		if err != nil {
			return err
		}
		at, err := point("at", step.At)
		if err != nil {
			return err
		}
		_, err = r.world.Spawn(at, a)
		return err

	case "spawn_random":
		n := max(step.Count, 1)
		for i := 0; i < n; i++ {
			var err error
			if step.Archetype == "" {
				_, err = r.world.SpawnRandom()
			} else {
				var a physics.Archetype
				if a, err = physics.ParseArchetype(step.Archetype); err == nil {
					_, err = r.world.Scatter(a)
				}
			}
			if err != nil {
				return err
			}
		}
		return nil

	case "clear":
		r.world.Clear()
		return nil

	case "gravity":
		r.world.SetGravityEnabled(toggle(step.Enabled, r.world.GravityEnabled()))
		return nil

	case "trails":
		r.world.SetTrailsEnabled(toggle(step.Enabled, r.world.TrailsEnabled()))
		return nil

	case "collisions":
		r.world.SetCollisionsEnabled(toggle(step.Enabled, r.world.CollisionsEnabled()))
		return nil

	case "run":
		if step.Frames <= 0 {
			return fmt.Errorf("%w: run needs frames > 0", dynamo.ErrInvalidConfig)
		}
		if err := r.world.Run(ctx, step.Frames); err != nil {
			return err
		}
		r.clock = r.clock.Add(time.Duration(step.Frames) * time.Second / 60)
		return nil

	case "drag":
		return r.drag(step)

	case "velocity":
		v, err := point("velocity", step.Velocity)
		if err != nil {
			return err
		}
		bodies := r.world.Bodies()
		if step.Body < 0 || step.Body >= len(bodies) {
			return fmt.Errorf("%w: body %d of %d", dynamo.ErrInvalidConfig, step.Body, len(bodies))
		}
		bodies[step.Body].SetVelocity(v)
		return nil
	}
	return fmt.Errorf("%w: unknown action %q", dynamo.ErrInvalidConfig, step.Action)
}

// drag replays a press at At, a move to To and a release after Millis.
func (r *runner) drag(step ScenarioStep) error {
	from, err := point("at", step.At)
	if err != nil {
		return err
	}
	to, err := point("to", step.To)
	if err != nil {
		return err
	}
	if r.world.HitTestTopmost(from) == nil {
		return fmt.Errorf("%w at %v", dynamo.ErrNoDrag, from)
	}

	r.pointer.Press(from, r.clock)
	r.pointer.Move(to)
	r.clock = r.clock.Add(time.Duration(step.Millis) * time.Millisecond)
	_, err = r.pointer.Release(to, r.clock)
	return err
}

func point(field string, xy []float64) (dynamo.Vec2, error) {
	if len(xy) != 2 {
		return dynamo.Vec2{}, fmt.Errorf("%w: %s needs [x, y], got %v", dynamo.ErrInvalidConfig, field, xy)
	}
	return dynamo.V(xy[0], xy[1]), nil
}

func toggle(enabled *bool, current bool) bool {
	if enabled == nil {
		return !current
	}
	return *enabled
}
