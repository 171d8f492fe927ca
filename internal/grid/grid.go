// Package grid partitions the simulation domain into a fixed square array of
// cells, each one particle diameter wide, for near-neighbour lookups.
//
// The covered domain is a square of side size*diameter centred on the origin.
// Positions outside it are not rejected: a coordinate past the positive edge
// wraps modulo size, a coordinate past the negative edge saturates to cell 0.
// Far-away particles can therefore alias into cells holding unrelated
// particles.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/jostle/internal/particle"
)

// ErrCellOutOfRange is wrapped by the panic value raised by [Grid.Get] for a
// coordinate outside [0,size).
var ErrCellOutOfRange = errors.New("grid: cell out of range")

// Grid is a size×size array of index lists stored flat at x*size+y.
type Grid struct {
	size     int
	diameter float64
	half     float64
	cells    [][]int
}

func New(size int, diameter float64) *Grid {
	return &Grid{
		size:     size,
		diameter: diameter,
		half:     diameter * float64(size) / 2,
		cells:    make([][]int, size*size),
	}
}

func (g *Grid) Size() int { return g.size }
func (g *Grid) Diameter() float64 { return g.diameter }
func (g *Grid) Extent() float64 { return 2 * g.half }

// Clear empties every cell but keeps its backing array.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Cell maps a position to its cell coordinate. The result always lies in
// [0,size).
func (g *Grid) Cell(p particle.Vec2) (int, int) {
	return g.axis(p.X), g.axis(p.Y)
}

func (g *Grid) axis(v float64) int {
	f := (v + g.half) / g.diameter
	switch {
	case !(f > 0):
		// negatives and NaN saturate to zero
		return 0
	case f >= math.MaxUint64:
		return int(math.MaxUint64 % uint64(g.size))
	}
	return int(uint64(f) % uint64(g.size))
}

// Contains reports whether p lies in the covered square, where Cell neither
// wraps nor saturates.
func (g *Grid) Contains(p particle.Vec2) bool {
	return g.inside(p.X) && g.inside(p.Y)
}

func (g *Grid) inside(v float64) bool {
	f := (v + g.half) / g.diameter
	return f >= 0 && f < float64(g.size)
}

// Insert appends idx to the cell containing p.
func (g *Grid) Insert(p particle.Vec2, idx int) {
	x, y := g.Cell(p)
	i := x*g.size + y
	g.cells[i] = append(g.cells[i], idx)
}

// Get returns the indices held by cell (x,y) in insertion order. The slice
// is owned by the grid and is only valid until the next Clear.
func (g *Grid) Get(x, y int) []int {
	if x < 0 || y < 0 || x >= g.size || y >= g.size {
		panic(fmt.Errorf("%w: (%d,%d) size %d", ErrCellOutOfRange, x, y, g.size))
	}
	return g.cells[x*g.size+y]
}

// Occupied counts the indices currently held across all cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, c := range g.cells {
		n += len(c)
	}
	return n
}

// Border reports whether (x,y) lies on the outer ring of cells.
func (g *Grid) Border(x, y int) bool {
	return x == 0 || y == 0 || x == g.size-1 || y == g.size-1
}
