package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/jostle/internal/export"
)

// screenToWorld maps window pixels (origin top left, y down) to world
// coordinates (origin centre, y up).
func screenToWorld(sx, sy, side float32) (float64, float64) {
	half := side / 2
	return float64(sx - half), float64(half - sy)
}

func worldToScreen(x, y float64, side float32) (float32, float32) {
	half := side / 2
	return float32(x) + half, half - float32(y)
}

func (a *App) drawParticles() {
	side := float32(a.Side)
	r := float32(a.World.Geometry().Radius)
	for i, p := range a.World.Particles() {
		x, y := worldToScreen(p.X, p.Y, side)
		rl.DrawCircleV(rl.NewVector2(x, y), r, export.Palette(i))
		rl.DrawCircleLines(int32(x), int32(y), r, ColStroke)
	}
}

func (a *App) drawBorder() {
	d := int32(a.World.Geometry().Diameter())
	rl.DrawRectangleLines(d, d, a.Side-2*d, a.Side-2*d, ColBorder)
}
