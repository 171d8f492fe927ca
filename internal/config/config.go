package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/jostle/internal/collide"
	"github.com/san-kum/jostle/internal/dynamo"
	"github.com/san-kum/jostle/internal/input"
	"github.com/san-kum/jostle/internal/particle"
)

const (
	DefaultTicks         = 600
	DefaultFPS           = 60
	DefaultPattern       = "wander"
	DefaultEventsPerTick = 1
	DefaultScale         = 200.0
	DefaultSpeed         = 4.0
	DefaultTheme         = "cyberpunk"
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Radius       float64     `yaml:"radius"`
	GridSize     int         `yaml:"grid_size"`
	Ticks        int         `yaml:"ticks"`
	FPS          int         `yaml:"fps"`
	Seed         int64       `yaml:"seed"`
	Theme        string      `yaml:"theme"`
	ZeroDistance string      `yaml:"zero_distance"`
	Input        InputConfig `yaml:"input"`
}

type InputConfig struct {
	Pattern       string       `yaml:"pattern"`
	EventsPerTick int          `yaml:"events_per_tick"`
	CenterX       float64      `yaml:"center_x"`
	CenterY       float64      `yaml:"center_y"`
	Scale         float64      `yaml:"scale"`
	Speed         float64      `yaml:"speed"`
	Points        [][2]float64 `yaml:"points,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Radius:       dynamo.DefaultRadius,
		GridSize:     dynamo.DefaultGridSize,
		Ticks:        DefaultTicks,
		FPS:          DefaultFPS,
		Seed:         1,
		Theme:        DefaultTheme,
		ZeroDistance: collide.ZeroAxis.String(),
		Input: InputConfig{
			Pattern:       DefaultPattern,
			EventsPerTick: DefaultEventsPerTick,
			Scale:         DefaultScale,
			Speed:         DefaultSpeed,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Geometry().Validate(); err != nil {
		return err
	}
	if c.Ticks < 0 {
		return fmt.Errorf("%w: ticks %d", ErrInvalidConfig, c.Ticks)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.FPS)
	}
	if c.Input.EventsPerTick < 0 {
		return fmt.Errorf("%w: events_per_tick %d", ErrInvalidConfig, c.Input.EventsPerTick)
	}
	if _, err := collide.ParseZeroDistancePolicy(c.ZeroDistance); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !input.NewRegistry().Has(c.Input.Pattern) {
		return fmt.Errorf("%w: %s", input.ErrUnknownPattern, c.Input.Pattern)
	}
	return nil
}

func (c *Config) Geometry() dynamo.Geometry {
	return dynamo.Geometry{Radius: c.Radius, GridSize: c.GridSize}
}

// ZeroPolicy returns the configured policy, falling back to the axis policy
// for values Validate would reject.
func (c *Config) ZeroPolicy() collide.ZeroDistancePolicy {
	p, err := collide.ParseZeroDistancePolicy(c.ZeroDistance)
	if err != nil {
		return collide.ZeroAxis
	}
	return p
}

func (c *Config) InputParams() input.Params {
	pts := make([]particle.Vec2, len(c.Input.Points))
	for i, p := range c.Input.Points {
		pts[i] = particle.V(p[0], p[1])
	}
	return input.Params{
		Center:        particle.V(c.Input.CenterX, c.Input.CenterY),
		Scale:         c.Input.Scale,
		Speed:         c.Input.Speed,
		EventsPerTick: c.Input.EventsPerTick,
		Seed:          c.Seed,
		Points:        pts,
	}
}

// NewWorld builds an empty world from the geometry and zero distance policy.
func (c *Config) NewWorld() (*dynamo.World, error) {
	return dynamo.NewWorld(c.Geometry(), c.ZeroPolicy())
}

// NewSource builds the configured pointer event source.
func (c *Config) NewSource() (input.Source, error) {
	return input.NewRegistry().Get(c.Input.Pattern, c.InputParams())
}

// Clone returns a deep copy, so presets can be tweaked without changing the
// shared table.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Input.Points = append([][2]float64(nil), c.Input.Points...)
	return &cp
}
