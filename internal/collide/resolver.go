// Package collide finds overlapping particle pairs through a [grid.Grid] and
// separates them with a single positional correction per pair visit.
//
// Only interior cells (1..size-2 on both axes) are scanned, so particles in
// the outer ring of cells take part in no checks unless a neighbouring
// interior cell reaches them. A pair that straddles two scanned cells is
// visited from both sides and may be corrected twice in one pass. No attempt
// is made to converge: a correction can push a particle into a third one.
package collide

import (
	"fmt"

	"github.com/san-kum/jostle/internal/grid"
	"github.com/san-kum/jostle/internal/particle"
)

// ZeroDistancePolicy selects what happens to two particles sharing a centre,
// where the separation direction is undefined.
type ZeroDistancePolicy int

const (
	// ZeroAxis pushes the pair apart along +x: the second particle of the
	// pair ends radius to the right of the shared point, the first radius
	// to the left.
	ZeroAxis ZeroDistancePolicy = iota
	// ZeroSkip leaves coincident particles where they are.
	ZeroSkip
)

func (p ZeroDistancePolicy) String() string {
	switch p {
	case ZeroAxis:
		return "axis"
	case ZeroSkip:
		return "skip"
	}
	return fmt.Sprintf("ZeroDistancePolicy(%d)", int(p))
}

func ParseZeroDistancePolicy(s string) (ZeroDistancePolicy, error) {
	switch s {
	case "", "axis":
		return ZeroAxis, nil
	case "skip":
		return ZeroSkip, nil
	}
	return 0, fmt.Errorf("unknown zero distance policy: %s", s)
}

// Stats counts the work done by one Resolve call.
type Stats struct {
	CellsScanned int
	PairsTested  int
	Resolutions  int
	ZeroDistance int
}

func (s *Stats) add(o Stats) {
	s.CellsScanned += o.CellsScanned
	s.PairsTested += o.PairsTested
	s.Resolutions += o.Resolutions
	s.ZeroDistance += o.ZeroDistance
}

// Resolver separates overlapping particles of a shared radius.
type Resolver struct {
	radius   float64
	diameter float64
	zero     ZeroDistancePolicy
}

func New(radius float64, zero ZeroDistancePolicy) *Resolver {
	return &Resolver{radius: radius, diameter: 2 * radius, zero: zero}
}

func (r *Resolver) Radius() float64 { return r.radius }

// Resolve runs one pass over the interior cells of g, correcting positions
// in s in place. Cells are visited x then y ascending, neighbours dx then dy
// ascending, and indices in insertion order, so the outcome is fully
// determined by the grid contents.
func (r *Resolver) Resolve(g *grid.Grid, s *particle.Store) Stats {
	var st Stats
	n := g.Size()
	for x := 1; x < n-1; x++ {
		for y := 1; y < n-1; y++ {
			current := g.Get(x, y)
			st.CellsScanned++
			if len(current) == 0 {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					st.add(r.resolveCells(s, current, g.Get(x+dx, y+dy)))
				}
			}
		}
	}
	return st
}

func (r *Resolver) resolveCells(s *particle.Store, a, b []int) Stats {
	var st Stats
	for _, i := range a {
		for _, j := range b {
			if i == j {
				continue
			}
			st.PairsTested++
			pi, pj := s.Get(i), s.Get(j)
			if !r.Overlapping(pi, pj) {
				continue
			}
			if pi == pj {
				st.ZeroDistance++
			}
			if r.Separate(s, i, j) {
				st.Resolutions++
			}
		}
	}
	return st
}

// Overlapping reports whether two particles are closer than one diameter.
func (r *Resolver) Overlapping(a, b particle.Vec2) bool {
	return a.Distance(b) < r.diameter
}

// Separate moves particles i and j symmetrically along the line joining
// their current centres so they end one diameter apart with their midpoint
// unchanged. It reports false when the pair was coincident and the zero
// distance policy left it in place.
func (r *Resolver) Separate(s *particle.Store, i, j int) bool {
	a, b := s.Get(i), s.Get(j)
	d := a.Distance(b)
	if d == 0 {
		if r.zero == ZeroSkip {
			return false
		}
		off := particle.V(r.radius, 0)
		s.Set(j, a.Add(off))
		s.Set(i, a.Sub(off))
		return true
	}
	t := (r.radius + d*0.5) / d
	s.Set(j, a.Lerp(b, t))
	s.Set(i, b.Lerp(a, t))
	return true
}
