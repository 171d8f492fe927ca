package analysis

import (
	"sort"

	"github.com/san-kum/jostle/internal/grid"
	"github.com/san-kum/jostle/internal/particle"
)

// Pair is an overlapping pair with I < J.
type Pair struct {
	I, J     int
	Distance float64
}

// Overlaps lists every pair closer than one diameter. Particles inside the
// covered square are matched through a size×size grid, scanning border cells
// too and never wrapping at the edges. Particles outside it, which the grid
// would wrap or saturate onto unrelated cells, are compared against everyone.
// Pairs come back sorted by (I, J).
func Overlaps(positions []particle.Vec2, radius float64, size int) []Pair {
	return collect(positions, 2*radius, size)
}

func collect(positions []particle.Vec2, diameter float64, size int) []Pair {
	g := grid.New(size, diameter)
	outside := make([]bool, len(positions))
	var strays []int
	for i, p := range positions {
		if !g.Contains(p) {
			outside[i] = true
			strays = append(strays, i)
			continue
		}
		g.Insert(p, i)
	}

	pairs := scan(g, positions, diameter)
	for _, i := range strays {
		for j, q := range positions {
			// stray pairs are reported once, from the lower index
			if j == i || (outside[j] && j < i) {
				continue
			}
			if d := positions[i].Distance(q); d < diameter {
				pairs = append(pairs, Pair{I: min(i, j), J: max(i, j), Distance: d})
			}
		}
	}

	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].I != pairs[b].I {
			return pairs[a].I < pairs[b].I
		}
		return pairs[a].J < pairs[b].J
	})
	return pairs
}

func scan(g *grid.Grid, positions []particle.Vec2, diameter float64) []Pair {
	size := g.Size()
	var pairs []Pair
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			current := g.Get(x, y)
			if len(current) == 0 {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= size || ny >= size {
						continue
					}
					for _, i := range current {
						for _, j := range g.Get(nx, ny) {
							if i >= j {
								continue
							}
							if d := positions[i].Distance(positions[j]); d < diameter {
								pairs = append(pairs, Pair{I: i, J: j, Distance: d})
							}
						}
					}
				}
			}
		}
	}
	return pairs
}

// OverlapsBrute compares every pair. It is quadratic and meant for tests and
// small configurations.
func OverlapsBrute(positions []particle.Vec2, radius float64) []Pair {
	diameter := 2 * radius
	var pairs []Pair
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			if d := positions[i].Distance(positions[j]); d < diameter {
				pairs = append(pairs, Pair{I: i, J: j, Distance: d})
			}
		}
	}
	return pairs
}

// Summary describes a configuration at one instant.
type Summary struct {
	Count           int
	Overlapping     int
	MaxPenetration  float64
	MeanPenetration float64
	Border          int
}

// Summarize reports overlap depth and how many particles sit in the border
// ring, where the resolver never scans.
func Summarize(positions []particle.Vec2, radius float64, size int) Summary {
	s := Summary{Count: len(positions)}
	diameter := 2 * radius

	pairs := collect(positions, diameter, size)
	s.Overlapping = len(pairs)
	total := 0.0
	for _, p := range pairs {
		depth := diameter - p.Distance
		total += depth
		if depth > s.MaxPenetration {
			s.MaxPenetration = depth
		}
	}
	if len(pairs) > 0 {
		s.MeanPenetration = total / float64(len(pairs))
	}

	// out-of-domain particles count where the resolver files them
	g := grid.New(size, diameter)
	for _, p := range positions {
		if x, y := g.Cell(p); g.Border(x, y) {
			s.Border++
		}
	}
	return s
}
