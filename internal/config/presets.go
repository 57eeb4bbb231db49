package config

import "sort"

var Presets = map[string]*Config{
	"classic": preset(func(c *Config) {}),
	"zero-g": preset(func(c *Config) {
		c.Gravity = false
		c.InitialBodies = 12
	}),
	"pileup": preset(func(c *Config) {
		c.InitialBodies = 0
		c.Bodies = []BodyGroup{{Archetype: "heavy", Count: 6}, {Archetype: "standard", Count: 10}}
	}),
	"bubbles": preset(func(c *Config) {
		c.Trails = true
		c.InitialBodies = 0
		c.Archetype = "buoyant"
		c.Bodies = []BodyGroup{{Archetype: "buoyant", Count: 10}}
	}),
	"inferno": preset(func(c *Config) {
		c.Trails = true
		c.InitialBodies = 0
		c.Archetype = "incendiary"
		c.Theme = "ember"
		c.Bodies = []BodyGroup{{Archetype: "incendiary", Count: 8}, {Archetype: "standard", Count: 6}}
	}),
	"single": preset(func(c *Config) {
		c.PairMode = "single"
		c.InitialBodies = 8
	}),
}

func preset(apply func(*Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
