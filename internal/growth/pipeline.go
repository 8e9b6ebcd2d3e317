package growth

import "sort"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseExpansion  Phase = iota // grow radii
	PhaseSpread                  // seed patches inside radii
	PhaseMaturation              // age patches
	PhaseCompletion              // recompute the global flag
)

// System is one stage of the per-tick pipeline. Update receives the world
// being stepped and the fixed tick length in seconds.
type System interface {
	Phase() Phase
	Update(w *World, dt float64)
}

// Runner executes systems in phase order. Systems sharing a phase keep their
// registration order.
type Runner struct {
	systems []System
	sorted  bool
}

// NewRunner returns an empty runner.
func NewRunner() *Runner {
	return &Runner{systems: make([]System, 0, 4)}
}

// Register adds a system to the pipeline.
func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs every system once.
func (r *Runner) Tick(w *World, dt float64) {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(w, dt)
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
