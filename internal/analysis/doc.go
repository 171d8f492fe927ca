// Package analysis measures particle configurations without changing them.
//
//   - [Overlaps]: every overlapping pair, found through a bounds-checked scan
//     of the whole grid including the border ring
//   - [OverlapsBrute]: the same by comparing every pair, used as an oracle
//   - [Summarize]: counts and penetration depth for a configuration
//   - [DensityMap]: a character map of where particles sit
//
// # Overlap Depth
//
// Penetration is diameter minus centre distance, so a touching pair has
// depth zero and coincident particles have depth equal to the diameter:
//
//	s := analysis.Summarize(w.Positions(), geom.Radius, geom.GridSize)
//	if s.MaxPenetration > 0.5 {
//	    // still visibly overlapping
//	}
package analysis
