package config

import "sort"

var Presets = map[string]*Config{
	// two particles five units apart
	"pair": {
		Ticks: 1,
		Input: InputConfig{Pattern: "points", Points: [][2]float64{{0, 0}, {5, 0}}},
	},
	"collinear": {
		Ticks: 30,
		Input: InputConfig{Pattern: "points", Points: [][2]float64{{0, 0}, {10, 0}, {20, 0}}},
	},
	// a border particle one diameter from an interior one, and an
	// overlapping pair entirely inside the border ring
	"dead-zone": {
		Ticks: 10,
		Input: InputConfig{Pattern: "points", Points: [][2]float64{{-630, 0}, {-614, 0}, {-635, 300}, {-634, 300}}},
	},
	"stream": {
		Ticks: 900,
		Input: InputConfig{Pattern: "line", EventsPerTick: 1, Scale: 300, Speed: 6},
	},
	"ring": {
		Ticks: 900,
		Input: InputConfig{Pattern: "circle", EventsPerTick: 2, Scale: 150, Speed: 3},
	},
	"spiral": {
		Ticks: 1200,
		Input: InputConfig{Pattern: "spiral", EventsPerTick: 1, Scale: 250, Speed: 5},
	},
	"scribble": {
		Ticks: 1200,
		Input: InputConfig{Pattern: "wander", EventsPerTick: 2, Scale: 300, Speed: 4},
	},
	"storm": {
		Ticks: 600,
		Input: InputConfig{Pattern: "random", EventsPerTick: 8, Scale: 400},
	},
}

// GetPreset returns a full configuration for the named preset: defaults with
// the preset's non-zero fields laid over them. It returns nil for an unknown
// name.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	if p.Ticks != 0 {
		cfg.Ticks = p.Ticks
	}
	in := p.Input
	cfg.Input.Pattern = in.Pattern
	if in.EventsPerTick != 0 {
		cfg.Input.EventsPerTick = in.EventsPerTick
	}
	if in.Scale != 0 {
		cfg.Input.Scale = in.Scale
	}
	if in.Speed != 0 {
		cfg.Input.Speed = in.Speed
	}
	cfg.Input.CenterX, cfg.Input.CenterY = in.CenterX, in.CenterY
	cfg.Input.Points = append([][2]float64(nil), in.Points...)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
