package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/jostle/internal/collide"
	"github.com/san-kum/jostle/internal/dynamo"
	"github.com/san-kum/jostle/internal/particle"
)

var (
	// ErrInvalidTicks indicates a negative tick count.
	ErrInvalidTicks = errors.New("sim: ticks must not be negative")

	// ErrInvalidPosition indicates a particle position became NaN or Inf.
	ErrInvalidPosition = errors.New("sim: invalid particle position (NaN or Inf)")
)

// Metric accumulates a scalar over the ticks of a run.
type Metric interface {
	Name() string
	Observe(w *dynamo.World, st collide.Stats, tick int)
	Value() float64
	Reset()
}

// Observer is told about every completed tick.
type Observer interface {
	OnTick(w *dynamo.World, st collide.Stats, tick int)
}

type Config struct {
	Ticks         int
	Seed          int64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Ticks:         600,
		Seed:          1,
		ValidateState: true,
	}
}

// Result holds one value per completed tick in each series.
type Result struct {
	Population   []int
	PairsTested  []int
	Resolutions  []int
	ZeroDistance []int
	Final        []particle.Vec2
	Metrics      map[string]float64
	TicksTaken   int
	Errors       []error
}

type SimError struct {
	Tick    int
	Index   int
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d particle %d: %v", e.Tick, e.Index, e.Wrapped)
}

func (e SimError) Unwrap() error { return e.Wrapped }
