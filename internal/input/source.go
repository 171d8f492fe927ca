// Package input generates pointer events for headless runs.
//
// Each [Source] stands in for a mouse moving over the window: before every
// tick it is asked for the pointer positions reported since the previous
// tick, and each position becomes a new particle.
package input

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/aquilax/go-perlin"

	"github.com/san-kum/jostle/internal/particle"
)

// ErrUnknownPattern is returned by [Registry.Get] for an unregistered name.
var ErrUnknownPattern = errors.New("input: unknown pattern")

type Source interface {
	Name() string
	// Next returns the pointer events to deliver before the given tick.
	Next(tick int) []particle.Vec2
}

// Params shapes a generated pointer path.
type Params struct {
	Center        particle.Vec2
	Scale         float64
	Speed         float64
	EventsPerTick int
	Seed          int64
	Points        []particle.Vec2
}

func DefaultParams() Params {
	return Params{
		Scale:         200,
		Speed:         4,
		EventsPerTick: 1,
		Seed:          1,
	}
}

// path emits EventsPerTick samples of a parametric curve per tick.
type path struct {
	name  string
	every int
	k     int
	at    func(k int) particle.Vec2
}

func (p *path) Name() string { return p.name }

func (p *path) Next(int) []particle.Vec2 {
	out := make([]particle.Vec2, p.every)
	for i := range out {
		out[i] = p.at(p.k)
		p.k++
	}
	return out
}

func newPath(name string, prm Params, at func(k int) particle.Vec2) *path {
	every := prm.EventsPerTick
	if every < 0 {
		every = 0
	}
	return &path{name: name, every: every, at: at}
}

// Points delivers a fixed list of positions before the first tick.
type Points struct {
	points []particle.Vec2
	done   bool
}

func NewPoints(pts []particle.Vec2) *Points {
	cp := make([]particle.Vec2, len(pts))
	copy(cp, pts)
	return &Points{points: cp}
}

func (p *Points) Name() string { return "points" }

func (p *Points) Next(int) []particle.Vec2 {
	if p.done {
		return nil
	}
	p.done = true
	return p.points
}

// NewLine sweeps the pointer left and right across [-Scale, Scale].
func NewLine(prm Params) Source {
	span := 4 * prm.Scale
	return newPath("line", prm, func(k int) particle.Vec2 {
		if span <= 0 {
			return prm.Center
		}
		s := math.Mod(float64(k)*prm.Speed, span)
		x := s - prm.Scale
		if s > 2*prm.Scale {
			x = 3*prm.Scale - s
		}
		return prm.Center.Add(particle.V(x, 0))
	})
}

// NewCircle moves the pointer around a circle of radius Scale, Speed units of
// arc per event.
func NewCircle(prm Params) Source {
	return newPath("circle", prm, func(k int) particle.Vec2 {
		if prm.Scale <= 0 {
			return prm.Center
		}
		a := float64(k) * prm.Speed / prm.Scale
		return prm.Center.Add(particle.V(prm.Scale*math.Cos(a), prm.Scale*math.Sin(a)))
	})
}

// NewSpiral winds outwards from Center over four turns until it reaches
// Scale, then starts over.
func NewSpiral(prm Params) Source {
	const turns = 4
	return newPath("spiral", prm, func(k int) particle.Vec2 {
		if prm.Scale <= 0 || prm.Speed <= 0 {
			return prm.Center
		}
		steps := int(turns * 2 * math.Pi * prm.Scale / prm.Speed)
		if steps < 1 {
			steps = 1
		}
		f := float64(k%steps) / float64(steps)
		r := f * prm.Scale
		a := f * turns * 2 * math.Pi
		return prm.Center.Add(particle.V(r*math.Cos(a), r*math.Sin(a)))
	})
}

// NewWander drifts the pointer along smooth Perlin noise, like a hand moving
// the mouse without a plan.
func NewWander(prm Params) Source {
	noise := perlin.NewPerlin(2, 2, 3, prm.Seed)
	return newPath("wander", prm, func(k int) particle.Vec2 {
		t := float64(k) * prm.Speed / 400
		dx := noise.Noise2D(t, 0.5)
		dy := noise.Noise2D(0.5, t+17.25)
		return prm.Center.Add(particle.V(2*prm.Scale*dx, 2*prm.Scale*dy))
	})
}

// NewRandom scatters events uniformly over the square of half side Scale.
func NewRandom(prm Params) Source {
	rng := rand.New(rand.NewSource(prm.Seed))
	return newPath("random", prm, func(int) particle.Vec2 {
		x := (rng.Float64()*2 - 1) * prm.Scale
		y := (rng.Float64()*2 - 1) * prm.Scale
		return prm.Center.Add(particle.V(x, y))
	})
}

type Registry struct {
	sources map[string]func(Params) Source
}

func NewRegistry() *Registry {
	r := &Registry{sources: make(map[string]func(Params) Source)}

	r.sources["points"] = func(p Params) Source { return NewPoints(p.Points) }
	r.sources["line"] = NewLine
	r.sources["circle"] = NewCircle
	r.sources["spiral"] = NewSpiral
	r.sources["wander"] = NewWander
	r.sources["random"] = NewRandom

	return r
}

func (r *Registry) Get(name string, p Params) (Source, error) {
	fn, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPattern, name)
	}
	return fn(p), nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.sources[name]
	return ok
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
