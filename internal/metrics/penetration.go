package metrics

import (
	"github.com/san-kum/jostle/internal/analysis"
	"github.com/san-kum/jostle/internal/collide"
	"github.com/san-kum/jostle/internal/dynamo"
)

// Penetration reports the deepest remaining overlap after the last observed
// tick, in world units.
type Penetration struct {
	name    string
	last    float64
	history []float64
}

func NewPenetration() *Penetration {
	return &Penetration{name: "penetration"}
}

func (p *Penetration) Name() string { return p.name }

func (p *Penetration) Observe(w *dynamo.World, st collide.Stats, tick int) {
	p.last = summarize(w).MaxPenetration
	p.history = append(p.history, p.last)
}

func (p *Penetration) Value() float64 { return p.last }

// History returns the penetration after every observed tick.
func (p *Penetration) History() []float64 { return p.history }

func (p *Penetration) Reset() {
	p.last = 0
	p.history = p.history[:0]
}

// Settled is the fraction of ticks after which no overlap deeper than
// threshold remained.
type Settled struct {
	name      string
	threshold float64
	settled   int
	samples   int
}

func NewSettled(threshold float64) *Settled {
	return &Settled{
		name:      "settled",
		threshold: threshold,
	}
}

func (s *Settled) Name() string {
	return s.name
}

func (s *Settled) Observe(w *dynamo.World, st collide.Stats, tick int) {
	s.samples++
	if summarize(w).MaxPenetration <= s.threshold {
		s.settled++
	}
}

func (s *Settled) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.settled) / float64(s.samples)
}

func (s *Settled) Reset() {
	s.settled = 0
	s.samples = 0
}

// DeadZone counts particles sitting in the border ring of cells, which the
// resolver never scans, at the last observed tick.
type DeadZone struct {
	count int
}

func NewDeadZone() *DeadZone { return &DeadZone{} }

func (d *DeadZone) Name() string { return "dead_zone" }

func (d *DeadZone) Observe(w *dynamo.World, st collide.Stats, tick int) {
	d.count = summarize(w).Border
}

func (d *DeadZone) Value() float64 { return float64(d.count) }

func (d *DeadZone) Reset() { d.count = 0 }

func summarize(w *dynamo.World) analysis.Summary {
	g := w.Geometry()
	return analysis.Summarize(w.Positions(), g.Radius, g.GridSize)
}
