// Package viz provides the terminal frontend for the collision simulation.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view; every mouse event over the canvas adds a particle
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume ticking
//	.     - Advance one tick while paused
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
//
// The outline drawn inside the canvas marks the ring of border cells where
// overlaps are never resolved.
package viz
