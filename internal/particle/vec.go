package particle

import (
	"fmt"
	"math"
)

// Vec2 is a position in simulation space. The origin is the centre of the
// grid and y grows upwards.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Distance(o Vec2) float64 { return v.Sub(o).Len() }

// Lerp returns (1-t)*v + t*o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{
		X: (1-t)*v.X + t*o.X,
		Y: (1-t)*v.Y + t*o.Y,
	}
}

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y)
}
