package physics

import (
	"fmt"
	"strings"

	"github.com/san-kum/ballpit/internal/dynamo"
)

type Archetype int

const (
	Standard Archetype = iota
	Bouncy
	Heavy
	Buoyant
	Incendiary
	numArchetypes
)

// Profile holds the constants an archetype fixes at construction.
type Profile struct {
	Name        string
	MinRadius   float64
	MaxRadius   float64
	Bounce      float64
	Gravity     float64
	Friction    float64
	Color       Color
	UsesPalette bool
}

var profiles = [numArchetypes]Profile{
	Standard:   {Name: "standard", MinRadius: 15, MaxRadius: 35, Bounce: 0.8, Gravity: 0.5, Friction: 0.99, UsesPalette: true},
	Bouncy:     {Name: "bouncy", MinRadius: 10, MaxRadius: 25, Bounce: 1.2, Gravity: 0.3, Friction: 0.95, Color: "#ffdd59"},
	Heavy:      {Name: "heavy", MinRadius: 25, MaxRadius: 55, Bounce: 0.5, Gravity: 1.2, Friction: 0.98, Color: "#485460"},
	Buoyant:    {Name: "buoyant", MinRadius: 20, MaxRadius: 45, Bounce: 0.3, Gravity: -0.2, Friction: 0.90, Color: "#74b9ff"},
	Incendiary: {Name: "incendiary", MinRadius: 12, MaxRadius: 30, Bounce: 0.7, Gravity: 0.1, Friction: 0.97, Color: "#ff3838"},
}

// names accepted by ParseArchetype besides the canonical ones
var aliases = map[string]Archetype{
	"normal": Standard,
	"bubble": Buoyant,
	"fire":   Incendiary,
}

func (a Archetype) Valid() bool { return a >= 0 && a < numArchetypes }

func (a Archetype) String() string {
	if !a.Valid() {
		return fmt.Sprintf("archetype(%d)", int(a))
	}
	return profiles[a].Name
}

// Profile returns the constant record for a. It fails for values outside the enum.
func (a Archetype) Profile() (Profile, error) {
	if !a.Valid() {
		return Profile{}, fmt.Errorf("%w: %d", dynamo.ErrInvalidArchetype, int(a))
	}
	return profiles[a], nil
}

func ParseArchetype(name string) (Archetype, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, p := range profiles {
		if p.Name == key {
			return Archetype(i), nil
		}
	}
	if a, ok := aliases[key]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("%w: %q", dynamo.ErrInvalidArchetype, name)
}

// Archetypes lists every archetype in declaration order.
func Archetypes() []Archetype {
	out := make([]Archetype, numArchetypes)
	for i := range out {
		out[i] = Archetype(i)
	}
	return out
}

func (a Archetype) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", dynamo.ErrInvalidArchetype, int(a))
	}
	return []byte(a.String()), nil
}

func (a *Archetype) UnmarshalText(text []byte) error {
	parsed, err := ParseArchetype(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
