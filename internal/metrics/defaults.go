// Package metrics provides per-run measurements for the headless simulator.
package metrics

import "github.com/san-kum/jostle/internal/sim"

// Default returns the metrics recorded for every saved run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewPopulation(),
		NewResolutions(),
		NewPenetration(),
		NewSettled(0.5),
		NewDeadZone(),
	}
}
