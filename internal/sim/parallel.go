package sim

import (
	"context"
	"sync"
)

// Factory builds an independent simulator for one ensemble member.
type Factory func(seed int64) (*Simulator, error)

// Ensemble runs the same scenario under consecutive seeds. Every member owns
// its own World, so members share nothing while running.
type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart int64
}

func NewEnsemble(f Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: f, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			s, err := e.factory(cfgCopy.Seed)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
