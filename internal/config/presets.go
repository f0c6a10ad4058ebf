package config

import "sort"

// Presets only carry interaction settings; Apply copies them over a base
// config.
var Presets = map[string]InteractionConfig{
	"classic": {
		Tilt: 0.5, Decay: 0.8, TickMs: 50, MaxTrail: 15, FadeStep: 0.05, DecayMode: "recurrence",
	},
	"legacy": {
		Tilt: 0.5, Decay: 0.8, TickMs: 50, MaxTrail: 15, FadeStep: 0.05, DecayMode: "legacy",
	},
	"long-tail": {
		Tilt: 0.5, Decay: 0.8, TickMs: 50, MaxTrail: 30, FadeStep: 0.025, DecayMode: "recurrence",
	},
	"snappy": {
		Tilt: 0.7, Decay: 0.6, TickMs: 33, MaxTrail: 10, FadeStep: 0.08, DecayMode: "recurrence",
	},
}

func GetPreset(name string) *InteractionConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply overwrites the interaction settings with a preset. It reports false
// for unknown names.
func (c *Config) Apply(preset string) bool {
	p := GetPreset(preset)
	if p == nil {
		return false
	}
	c.Interaction = *p
	return true
}
