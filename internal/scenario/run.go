package scenario

import "crimson-sprawl/internal/growth"

// Result captures telemetry from a headless growth run.
type Result struct {
	// Steps counts the fixed steps the run executed.
	Steps int
	// Complete reports whether the world completed after its last
	// designation.
	Complete bool
	// TicksToComplete is the step at which the world completed, or -1.
	TicksToComplete int
	Origins         int
	Patches         int
	// Starved counts origins that completed by running out of room.
	Starved int
	// PeakInserted is the largest number of patches seeded in one step.
	PeakInserted     int
	PeakInsertedStep int
	// Coverage is the fraction of in-bounds lattice cells holding a patch.
	Coverage float64
}

// Run drives a fresh world through designations, stepping until it completes
// with nothing left to designate or maxTicks steps have run.
func Run(cfg growth.Config, designations []Designation, maxTicks int, opts ...growth.Option) Result {
	res, _ := RunWorld(cfg, designations, maxTicks, opts...)
	return res
}

// RunWorld is Run that also hands back the final world for snapshots.
func RunWorld(cfg growth.Config, designations []Designation, maxTicks int, opts ...growth.Option) (Result, *growth.World) {
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	w := growth.NewWorld(cfg, opts...)
	res := Result{TicksToComplete: -1}
	schedule := NewSchedule(designations)

	for step := 0; step < maxTicks; step++ {
		schedule.Apply(w, step)
		w.Step()
		res.Steps = step + 1
		stats := w.LastTick()
		if stats.Inserted > res.PeakInserted {
			res.PeakInserted = stats.Inserted
			res.PeakInsertedStep = res.Steps
		}
		if w.IsComplete() && schedule.Pending() == 0 {
			res.Complete = true
			res.TicksToComplete = res.Steps
			break
		}
	}

	res.Origins = w.OriginCount()
	res.Patches = w.PatchCount()
	w.Origins(func(_ growth.OriginID, o growth.Origin) bool {
		if o.Starved {
			res.Starved++
		}
		return true
	})
	res.Coverage = coverage(w)
	return res, w
}

func coverage(w *growth.World) float64 {
	total := w.Size().Cells()
	if total == 0 {
		return 0
	}
	inside := 0
	size := w.Size()
	w.Patches(func(v growth.PatchView) bool {
		x, y := w.RasterCell(v.Position)
		if x >= 0 && y >= 0 && x < size.W && y < size.H {
			inside++
		}
		return true
	})
	return float64(inside) / float64(total)
}
