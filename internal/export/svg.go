package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/jostle/internal/particle"
)

// Palette colours a particle by index, cycling through hues as more
// particles arrive.
func Palette(i int) color.RGBA {
	return color.RGBA{
		R: uint8(int(float64(i)*1.1) % 256),
		G: uint8(int(float64(i)*1.3) % 256),
		B: uint8(int(float64(i)*1.5) % 256),
		A: 255,
	}
}

// ParticlesToSVG draws particles of the given radius on a square of side
// extent centred on the origin, pixels per world unit set by scale. The y
// axis is flipped so positive y points up as in simulation space.
func ParticlesToSVG(positions []particle.Vec2, radius, extent, scale float64) string {
	if extent <= 0 || scale <= 0 {
		return ""
	}

	size := extent * scale
	half := extent / 2

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#dda0dd"/>
<g stroke="#000000" stroke-width="1">
`, size, size, size, size))

	for i, p := range positions {
		cx := (p.X + half) * scale
		cy := (half - p.Y) * scale
		c := Palette(i)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="#%02x%02x%02x"/>
`, cx, cy, radius*scale, c.R, c.G, c.B))
	}

	sb.WriteString(fmt.Sprintf(`</g>
<text x="10" y="20" font-family="monospace" font-size="14">Elements: %d</text>
</svg>`, len(positions)))
	return sb.String()
}
