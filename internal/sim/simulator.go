package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/jostle/internal/dynamo"
	"github.com/san-kum/jostle/internal/input"
)

// Simulator feeds scripted pointer events into a World and ticks it.
type Simulator struct {
	world     *dynamo.World
	source    input.Source
	metrics   []Metric
	observers []Observer
}

func New(w *dynamo.World, src input.Source) *Simulator {
	return &Simulator{
		world:     w,
		source:    src,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) World() *dynamo.World { return s.world }

// Run delivers the source's events and then ticks, cfg.Ticks times. The
// context is checked between ticks; a tick that has started always finishes.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Population:   make([]int, 0, cfg.Ticks),
		PairsTested:  make([]int, 0, cfg.Ticks),
		Resolutions:  make([]int, 0, cfg.Ticks),
		ZeroDistance: make([]int, 0, cfg.Ticks),
		Metrics:      make(map[string]float64),
		Errors:       make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for tick := 0; tick < cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		if s.source != nil {
			for _, p := range s.source.Next(tick) {
				s.world.OnPointerMove(p.X, p.Y)
			}
		}

		s.world.OnTick()
		st := s.world.LastStats()

		for _, m := range s.metrics {
			m.Observe(s.world, st, tick)
		}
		for _, obs := range s.observers {
			obs.OnTick(s.world, st, tick)
		}

		result.TicksTaken++
		result.Population = append(result.Population, s.world.ParticleCount())
		result.PairsTested = append(result.PairsTested, st.PairsTested)
		result.Resolutions = append(result.Resolutions, st.Resolutions)
		result.ZeroDistance = append(result.ZeroDistance, st.ZeroDistance)

		if cfg.ValidateState {
			if err := s.validatePositions(tick); err != nil {
				result.Errors = append(result.Errors, err)
				break
			}
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	result.Final = s.world.Positions()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Ticks < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidTicks, cfg.Ticks)
	}
	return nil
}

func (s *Simulator) validatePositions(tick int) error {
	for i, p := range s.world.Particles() {
		if !p.IsValid() {
			return SimError{Tick: tick, Index: i, Wrapped: ErrInvalidPosition}
		}
	}
	return nil
}
