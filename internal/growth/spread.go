package growth

import (
	"math"
	"sync"

	"go.uber.org/zap"
)

// SpreadEngine seeds patches inside each origin's current radius.
//
// Every origin is scanned against a snapshot of the patch store taken at the
// start of the tick; the collected candidates are committed afterwards in
// registration order. An earlier origin therefore wins a cell both origins
// reach in the same tick, and scan order cannot change the outcome.
//
// An origin that seeded nothing once its radius passed the starvation
// threshold is only marked starved when no free in-bounds cell is left
// anywhere within its max radius, not merely within its current radius.
type SpreadEngine struct {
	// Workers > 1 scans origins on that many goroutines. Commits stay serial.
	Workers int
}

func (SpreadEngine) Phase() Phase { return PhaseSpread }

func (e SpreadEngine) Update(w *World, _ float64) {
	n := w.origins.Len()
	if n == 0 {
		return
	}
	snap := w.patches.Snapshot()
	plans := make([][]CellKey, n)
	scanned := make([]bool, n)

	scan := func(i int) {
		o := w.origins.origins[i]
		plans[i] = w.spreadCandidates(o, snap)
	}

	var pending []int
	for i, o := range w.origins.origins {
		if o.Settled {
			continue
		}
		scanned[i] = true
		pending = append(pending, i)
	}

	if e.Workers > 1 && len(pending) > 1 {
		var wg sync.WaitGroup
		sem := make(chan struct{}, e.Workers)
		for _, i := range pending {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				scan(i)
				<-sem
			}(i)
		}
		wg.Wait()
	} else {
		for _, i := range pending {
			scan(i)
		}
	}

	inserted := make([]int, n)
	for i, keys := range plans {
		if len(keys) == 0 {
			continue
		}
		o := w.origins.origins[i]
		for _, key := range keys {
			pos := w.lattice.Point(key, o.Position.Y)
			if _, ok := w.patches.Insert(pos, w.cfg.InitialAge, o.MaturationRate, OriginID(i)); ok {
				inserted[i]++
			}
		}
		w.stats.Inserted += inserted[i]
	}
	if w.stats.Inserted > 0 {
		w.displayDirty = true
	}

	for i := range scanned {
		if !scanned[i] {
			continue
		}
		id := OriginID(i)
		o := w.origins.origins[i]
		if o.ExpansionComplete {
			w.origins.settle(id)
			continue
		}
		if inserted[i] > 0 || o.Radius < w.cfg.StarvationThreshold {
			continue
		}
		if w.hasFreeCell(o) {
			continue
		}
		if w.origins.MarkStarved(id) {
			w.stats.Starved = append(w.stats.Starved, id)
			w.log.Debug("origin starved",
				zap.Int("origin", i),
				zap.Float64("radius", o.Radius),
				zap.Float64("max_radius", o.MaxRadius),
				zap.Int("tick", w.tick))
		}
	}
}

// spreadCandidates lists free in-bounds cells with cell <= d <= radius from
// the origin, in lexicographic (x, z) order.
func (w *World) spreadCandidates(o Origin, snap Occupancy) []CellKey {
	return w.ringCells(o, o.Radius, func(pos Vec3) bool {
		return !snap.IsOccupied(pos, w.cfg.Tolerance)
	}, -1)
}

// hasFreeCell reports whether any cell the origin could ever seed is still
// unoccupied.
func (w *World) hasFreeCell(o Origin) bool {
	free := w.ringCells(o, o.MaxRadius, func(pos Vec3) bool {
		return !w.patches.IsOccupied(pos, w.cfg.Tolerance)
	}, 1)
	return len(free) > 0
}

// ringCells walks the square of lattice offsets covering radius, cut to the
// world bounds, and keeps the cells within [cell, radius] of the origin for
// which keep returns true. limit > 0 stops after that many hits.
func (w *World) ringCells(o Origin, radius float64, keep func(Vec3) bool, limit int) []CellKey {
	cell := w.lattice.CellSize
	if !(radius >= cell) {
		return nil
	}
	center := w.lattice.Cell(o.Position)
	half := w.cfg.WorldHalfExtent
	bound := cellIndex(math.Floor(half / cell))
	reach := float64(2*bound + 1)
	if r := math.Floor(radius / cell); r < reach {
		reach = r
	}
	maxOffset := int(reach)
	xLo, xHi := max(-maxOffset, -bound-center.X), min(maxOffset, bound-center.X)
	zLo, zHi := max(-maxOffset, -bound-center.Z), min(maxOffset, bound-center.Z)
	var out []CellKey
	for x := xLo; x <= xHi; x++ {
		for z := zLo; z <= zHi; z++ {
			key := CellKey{X: center.X + x, Z: center.Z + z}
			pos := w.lattice.Point(key, o.Position.Y)
			if math.Abs(pos.X) > half || math.Abs(pos.Z) > half {
				continue
			}
			d := pos.Distance(o.Position)
			if d < cell || d > radius {
				continue
			}
			if !keep(pos) {
				continue
			}
			out = append(out, key)
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
	}
	return out
}
