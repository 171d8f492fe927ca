package dynamo

import (
	"fmt"
	"iter"
	"math"

	"github.com/san-kum/jostle/internal/collide"
	"github.com/san-kum/jostle/internal/grid"
	"github.com/san-kum/jostle/internal/particle"
)

const (
	DefaultRadius   = 8.0
	DefaultGridSize = 80
)

// Geometry fixes particle size and grid resolution for the life of a World.
// Together they cover a square domain of side 2*Radius*GridSize.
type Geometry struct {
	Radius   float64
	GridSize int
}

func DefaultGeometry() Geometry {
	return Geometry{Radius: DefaultRadius, GridSize: DefaultGridSize}
}

func (g Geometry) Diameter() float64 { return 2 * g.Radius }
func (g Geometry) Extent() float64 { return g.Diameter() * float64(g.GridSize) }

func (g Geometry) Validate() error {
	if !(g.Radius > 0) || math.IsInf(g.Radius, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidRadius, g.Radius)
	}
	if g.GridSize < 3 {
		return fmt.Errorf("%w: got %d", ErrInvalidGridSize, g.GridSize)
	}
	return nil
}

// World is the aggregate mutated by ticks and pointer events.
type World struct {
	geom     Geometry
	store    *particle.Store
	grid     *grid.Grid
	resolver *collide.Resolver
	ticks    int
	last     collide.Stats
}

func NewWorld(geom Geometry, zero collide.ZeroDistancePolicy) (*World, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	return &World{
		geom:     geom,
		store:    particle.NewStore(1024),
		grid:     grid.New(geom.GridSize, geom.Diameter()),
		resolver: collide.New(geom.Radius, zero),
	}, nil
}

func (w *World) Geometry() Geometry { return w.geom }

// OnTick runs one full simulation step and always completes.
func (w *World) OnTick() {
	w.rebuild()
	w.last = w.resolver.Resolve(w.grid, w.store)
	w.ticks++
}

func (w *World) rebuild() {
	w.grid.Clear()
	for i, p := range w.store.All() {
		w.grid.Insert(p, i)
	}
}

// OnPointerMove adds a particle at (x, y) and files it in the grid at once.
// Every call adds a particle.
func (w *World) OnPointerMove(x, y float64) int {
	p := particle.V(x, y)
	idx := w.store.Add(p)
	w.grid.Insert(p, idx)
	return idx
}

// Particles yields (index, position) pairs in index order.
func (w *World) Particles() iter.Seq2[int, particle.Vec2] { return w.store.All() }

func (w *World) ParticleCount() int { return w.store.Len() }

// Position returns the current position of particle i. It panics for an
// index that was never handed out.
func (w *World) Position(i int) particle.Vec2 { return w.store.Get(i) }

func (w *World) Positions() []particle.Vec2 { return w.store.Positions() }

// LastStats reports the resolver work done by the most recent tick.
func (w *World) LastStats() collide.Stats { return w.last }

func (w *World) Ticks() int { return w.ticks }

// Grid exposes the spatial grid as filled by the last tick or pointer event.
func (w *World) Grid() *grid.Grid { return w.grid }
