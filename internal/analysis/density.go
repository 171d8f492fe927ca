package analysis

import (
	"strings"

	"github.com/san-kum/jostle/internal/particle"
)

var densityRamp = []rune(" .:-=+*#%@")

// DensityMap draws the square [-extent/2, extent/2]² as width×height
// characters, darker where more particles fall in a character cell. Particles
// outside the square are dropped. The y axis points up.
func DensityMap(positions []particle.Vec2, extent float64, width, height int) string {
	if width <= 0 || height <= 0 || extent <= 0 {
		return ""
	}

	counts := make([][]int, height)
	for i := range counts {
		counts[i] = make([]int, width)
	}

	half := extent / 2
	peak := 0
	for _, p := range positions {
		col := int((p.X + half) / extent * float64(width))
		row := height - 1 - int((p.Y+half)/extent*float64(height))
		if p.X < -half || p.Y < -half || row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		counts[row][col]++
		if counts[row][col] > peak {
			peak = counts[row][col]
		}
	}

	var sb strings.Builder
	for _, row := range counts {
		for _, n := range row {
			sb.WriteRune(shade(n, peak))
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

func shade(n, peak int) rune {
	if n == 0 || peak == 0 {
		return densityRamp[0]
	}
	idx := 1 + (n-1)*(len(densityRamp)-2)/max(peak-1, 1)
	if idx >= len(densityRamp) {
		idx = len(densityRamp) - 1
	}
	return densityRamp[idx]
}
