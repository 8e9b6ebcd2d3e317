package scenario

import (
	"fmt"
	"math"
	"sync"

	"crimson-sprawl/internal/core"
	"crimson-sprawl/internal/growth"
)

// SweepOptions controls a parameter sweep.
type SweepOptions struct {
	MaxTicks int
	Passes   int
	Workers  int
	// TargetCoverage is the minimum coverage a run must reach to beat a
	// run that does not.
	TargetCoverage float64
	// RandomSamples seeds the descent with that many random configs.
	RandomSamples int
	Seed          int64
}

// SweepRecord documents a single improvement found while sweeping.
type SweepRecord struct {
	Pass      int
	Parameter string
	Value     string
	Result    Result
	Config    growth.Config
}

type floatSpec struct {
	name   string
	values []float64
	min    float64
	max    float64
	getter func(growth.Config) float64
	setter func(*growth.Config, float64)
}

var sweepSpecs = []floatSpec{
	{
		name:   "expansion_rate",
		values: []float64{0.5, 1, 2, 4, 8},
		min:    0.1,
		max:    10,
		getter: func(c growth.Config) float64 { return c.ExpansionRate },
		setter: func(c *growth.Config, v float64) { c.ExpansionRate = v },
	},
	{
		name:   "max_radius",
		values: []float64{8, 16, 32, 64, 120},
		min:    4,
		max:    160,
		getter: func(c growth.Config) float64 { return c.MaxRadius },
		setter: func(c *growth.Config, v float64) { c.MaxRadius = v },
	},
	{
		name:   "maturation_rate",
		values: []float64{0.05, 0.1, 0.25, 0.5, 1, 2},
		min:    0.01,
		max:    3,
		getter: func(c growth.Config) float64 { return c.MaturationRate },
		setter: func(c *growth.Config, v float64) { c.MaturationRate = v },
	},
	{
		name:   "starvation_threshold",
		values: []float64{0, 2, 4, 8},
		min:    0,
		max:    16,
		getter: func(c growth.Config) float64 { return c.StarvationThreshold },
		setter: func(c *growth.Config, v float64) { c.StarvationThreshold = v },
	},
}

// Sweep performs a coarse coordinate-descent search over the growth rates
// for the given designations and returns the best config found, its
// telemetry and the improvement trace.
func Sweep(base growth.Config, designations []Designation, opts SweepOptions) (growth.Config, Result, []SweepRecord) {
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = DefaultMaxTicks
	}
	if opts.Passes <= 0 {
		opts.Passes = 1
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	// Runs already fan out across candidates.
	base.SpreadWorkers = 1

	current := base
	currentResult := Run(current, designations, opts.MaxTicks)
	records := []SweepRecord{{Parameter: "baseline", Result: currentResult, Config: current}}

	if opts.RandomSamples > 0 {
		rng := core.NewRNG(opts.Seed)
		for i := 0; i < opts.RandomSamples; i++ {
			candidate := base
			for _, spec := range sweepSpecs {
				spec.setter(&candidate, rng.Range(spec.min, spec.max))
			}
			res := Run(candidate, designations, opts.MaxTicks)
			if BetterResult(res, currentResult, opts.TargetCoverage) {
				current = candidate
				currentResult = res
				records = append(records, SweepRecord{
					Parameter: fmt.Sprintf("random#%d", i+1),
					Result:    res,
					Config:    candidate,
				})
			}
		}
	}

	for pass := 1; pass <= opts.Passes; pass++ {
		improved := false
		for _, spec := range sweepSpecs {
			best, bestResult, changed, rec := evaluateSpec(current, currentResult, designations, spec, opts, pass)
			if changed {
				current = best
				currentResult = bestResult
				records = append(records, rec...)
				improved = true
			}
		}
		if !improved {
			break
		}
	}
	return current, currentResult, records
}

func evaluateSpec(cfg growth.Config, baseline Result, designations []Designation, spec floatSpec, opts SweepOptions, pass int) (growth.Config, Result, bool, []SweepRecord) {
	best := cfg
	bestResult := baseline
	changed := false
	var records []SweepRecord

	type candidate struct {
		result Result
		valid  bool
	}

	candidates := make([]candidate, len(spec.values))
	var wg sync.WaitGroup
	sem := make(chan struct{}, opts.Workers)

	for idx, value := range spec.values {
		if almostEqual(value, spec.getter(cfg)) {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, v float64) {
			defer wg.Done()
			next := cfg
			spec.setter(&next, v)
			candidates[i] = candidate{result: Run(next, designations, opts.MaxTicks), valid: true}
			<-sem
		}(idx, value)
	}
	wg.Wait()

	for idx, value := range spec.values {
		cand := candidates[idx]
		if !cand.valid {
			continue
		}
		if BetterResult(cand.result, bestResult, opts.TargetCoverage) {
			next := cfg
			spec.setter(&next, value)
			best = next
			bestResult = cand.result
			changed = true
			records = append(records, SweepRecord{
				Pass:      pass,
				Parameter: spec.name,
				Value:     fmt.Sprintf("%.3f", value),
				Result:    cand.result,
				Config:    next,
			})
		}
	}
	return best, bestResult, changed, records
}

// BetterResult ranks a above b: completed runs that reach the target
// coverage first, then fewer ticks to completion, then higher coverage.
func BetterResult(a, b Result, targetCoverage float64) bool {
	aOK := a.Complete && a.Coverage >= targetCoverage
	bOK := b.Complete && b.Coverage >= targetCoverage
	if aOK != bOK {
		return aOK
	}
	if aOK && a.TicksToComplete != b.TicksToComplete {
		return a.TicksToComplete < b.TicksToComplete
	}
	return a.Coverage > b.Coverage+1e-9
}

func almostEqual(a, b float64) bool {
	const eps = 1e-6
	return math.Abs(a-b) <= eps
}
