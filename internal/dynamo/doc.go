// Package dynamo drives the particle collision simulation.
//
// A [World] owns a [particle.Store] and a [grid.Grid] and exposes the four
// entry points used by frontends:
//
//   - [World.OnTick]: clear the grid, reinsert every particle, resolve once
//   - [World.OnPointerMove]: append a particle at the pointer position
//   - [World.Particles]: iterate (index, position) pairs for drawing
//   - [World.ParticleCount]: number of particles so far
//
// # Example
//
//	w, _ := dynamo.NewWorld(dynamo.DefaultGeometry(), collide.ZeroAxis)
//	w.OnPointerMove(0, 0)
//	w.OnPointerMove(5, 0)
//	w.OnTick()
//	for i, p := range w.Particles() {
//	    draw(i, p)
//	}
//
// # Thread Safety
//
// A World is NOT thread-safe. Ticks and pointer events must be delivered
// strictly one after another, which is what the bubbletea and raylib event
// loops in this module do.
package dynamo
