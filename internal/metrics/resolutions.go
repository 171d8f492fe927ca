package metrics

import (
	"github.com/san-kum/jostle/internal/collide"
	"github.com/san-kum/jostle/internal/dynamo"
)

// Resolutions is the mean number of positional corrections per tick.
type Resolutions struct {
	name    string
	sum     int
	samples int
}

func NewResolutions() *Resolutions {
	return &Resolutions{
		name: "mean_resolutions",
	}
}

func (r *Resolutions) Name() string {
	return r.name
}

func (r *Resolutions) Observe(w *dynamo.World, st collide.Stats, tick int) {
	r.sum += st.Resolutions
	r.samples++
}

func (r *Resolutions) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.sum) / float64(r.samples)
}

func (r *Resolutions) Reset() {
	r.sum = 0
	r.samples = 0
}

// Population is the particle count at the last observed tick.
type Population struct {
	count int
}

func NewPopulation() *Population { return &Population{} }

func (p *Population) Name() string { return "population" }

func (p *Population) Observe(w *dynamo.World, st collide.Stats, tick int) {
	p.count = w.ParticleCount()
}

func (p *Population) Value() float64 { return float64(p.count) }

func (p *Population) Reset() { p.count = 0 }
