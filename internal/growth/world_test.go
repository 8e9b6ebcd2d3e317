package growth

import (
	"math"
	"slices"
	"testing"
	"time"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.CellSize = 2
	cfg.Tolerance = 1
	cfg.WorldHalfExtent = 100
	cfg.TerrainOffset = 0
	cfg.TickInterval = time.Second
	cfg.MaxAge = 1
	cfg.MaturationRate = 0.5
	cfg.ExpansionRate = 2
	cfg.MaxRadius = 10
	cfg.StarvationThreshold = 2
	return cfg
}

func latticeCells(w *World) map[CellKey]Patch {
	cells := make(map[CellKey]Patch)
	w.patches.Each(func(_ PatchID, p Patch) bool {
		cells[w.lattice.Cell(p.Position)] = p
		return true
	})
	return cells
}

func TestScenarioSingleOriginFillsRing(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRadius = 4
	cfg.ExpansionRate = 100
	w := NewWorld(cfg)
	id := w.Designate(Vec3{})

	w.Step()

	o, _ := w.Origin(id)
	if o.Radius != 4 {
		t.Fatalf("radius = %f, want 4", o.Radius)
	}
	if !o.ExpansionComplete {
		t.Fatal("origin should be expansion complete after reaching max radius")
	}
	if o.Starved {
		t.Fatal("capped origin must not be marked starved")
	}

	cells := latticeCells(w)
	for x := -3; x <= 3; x++ {
		for z := -3; z <= 3; z++ {
			d := math.Hypot(float64(x)*2, float64(z)*2)
			_, ok := cells[CellKey{X: x, Z: z}]
			switch {
			case x == 0 && z == 0:
				if !ok {
					t.Fatal("seed patch missing")
				}
			case d >= 2 && d <= 4:
				if !ok {
					t.Fatalf("expected patch at cell (%d,%d), distance %.2f", x, z, d)
				}
			default:
				if ok {
					t.Fatalf("unexpected patch at cell (%d,%d), distance %.2f", x, z, d)
				}
			}
		}
	}
	if w.PatchCount() != 13 {
		t.Fatalf("expected 12 ring patches plus the seed, got %d", w.PatchCount())
	}
	w.Patches(func(v PatchView) bool {
		if v.Position != w.lattice.Snap(v.Position) {
			t.Fatalf("patch %d off lattice: %+v", v.ID, v.Position)
		}
		return true
	})

	for i := 0; i < 2; i++ {
		w.Step()
	}
	if w.PatchCount() != 13 {
		t.Fatalf("settled origin kept spreading: %d patches", w.PatchCount())
	}
	if !w.IsComplete() {
		t.Fatal("world should complete once every patch has matured")
	}
}

func TestScenarioOverlappingOriginsNoDuplicates(t *testing.T) {
	cfg := testConfig()
	w := NewWorld(cfg)
	a := w.Designate(Vec3{X: 0})
	b := w.Designate(Vec3{X: 6})

	for i := 0; i < 5; i++ {
		w.Step()
		for _, id := range []OriginID{a, b} {
			o, _ := w.Origin(id)
			if o.Starved {
				t.Fatalf("tick %d: origin %d starved while room remains", w.Tick(), id)
			}
		}
		if len(w.LastTick().Starved) != 0 {
			t.Fatalf("tick %d: unexpected starvation %v", w.Tick(), w.LastTick().Starved)
		}
	}

	seen := make(map[CellKey]PatchID)
	w.patches.Each(func(id PatchID, p Patch) bool {
		key := w.lattice.Cell(p.Position)
		if prev, dup := seen[key]; dup {
			t.Fatalf("patches %d and %d share cell %+v", prev, id, key)
		}
		seen[key] = id
		return true
	})

	// Cell (1,2) enters both frontiers on tick 3; registration order
	// decides the owner.
	cells := latticeCells(w)
	mid, ok := cells[CellKey{X: 1, Z: 2}]
	if !ok {
		t.Fatal("overlap cell not filled")
	}
	if mid.Origin != a {
		t.Fatalf("overlap cell owned by origin %d, want %d", mid.Origin, a)
	}
}

func TestScenarioZeroRadiusOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRadius = 0
	w := NewWorld(cfg)
	id := w.Designate(Vec3{X: 3.1, Z: -4.9})

	w.Step()
	o, _ := w.Origin(id)
	if !o.ExpansionComplete {
		t.Fatal("zero radius origin should complete on its first expansion")
	}
	if w.IsComplete() {
		t.Fatal("seed patch has not matured yet")
	}
	w.Step()
	if !w.IsComplete() {
		t.Fatal("world should complete once the seed matures")
	}
	if w.PatchCount() != 1 {
		t.Fatalf("only the seed patch may exist, got %d", w.PatchCount())
	}
	p, _ := w.Patch(0)
	if p.Position != (Vec3{X: 4, Z: -4}) {
		t.Fatalf("seed not snapped: %+v", p.Position)
	}
}

func TestScenarioDesignateAfterCompletion(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRadius = 0
	w := NewWorld(cfg)
	w.Designate(Vec3{})
	for i := 0; i < 4 && !w.IsComplete(); i++ {
		w.Step()
	}
	if !w.IsComplete() {
		t.Fatal("first run should complete")
	}

	w.Designate(Vec3{X: 20})
	if w.IsComplete() {
		t.Fatal("designation must clear the completion flag immediately")
	}
	first, _ := w.Origin(0)
	if !first.ExpansionComplete {
		t.Fatal("existing origin must stay complete")
	}
}

func TestEmptyWorldCompletesOnFirstStep(t *testing.T) {
	w := NewWorld(testConfig())
	if w.IsComplete() {
		t.Fatal("flag must be false before any step")
	}
	w.Step()
	if !w.IsComplete() {
		t.Fatal("empty world is vacuously complete after a step")
	}
	w.Step()
	if w.Tick() != 1 {
		t.Fatalf("complete world must not advance, tick = %d", w.Tick())
	}
}

func TestGrowthBoundedAndMonotonic(t *testing.T) {
	cfg := testConfig()
	cfg.ExpansionRate = 1.3
	cfg.MaxRadius = 9
	cfg.MaturationRate = 0.15
	w := NewWorld(cfg)
	w.Designate(Vec3{X: -5, Z: 3})
	w.Designate(Vec3{X: 7, Z: 1})
	w.DesignateWith(Vec3{X: 0, Z: -12}, OriginParams{ExpansionRate: 3, MaxRadius: 5, MaturationRate: 0.4})

	prevRadius := map[OriginID]float64{}
	prevAge := map[PatchID]float64{}
	occupied := map[CellKey]bool{}

	for i := 0; i < 40 && !w.IsComplete(); i++ {
		w.Step()

		w.Origins(func(id OriginID, o Origin) bool {
			if o.Radius < 0 || o.Radius > o.MaxRadius {
				t.Fatalf("origin %d radius %f outside [0,%f]", id, o.Radius, o.MaxRadius)
			}
			if o.Radius < prevRadius[id] {
				t.Fatalf("origin %d radius shrank: %f -> %f", id, prevRadius[id], o.Radius)
			}
			prevRadius[id] = o.Radius
			return true
		})
		w.Patches(func(v PatchView) bool {
			if v.Age < 0 || v.Age > cfg.MaxAge {
				t.Fatalf("patch %d age %f outside [0,%f]", v.ID, v.Age, cfg.MaxAge)
			}
			if v.Age < prevAge[v.ID] {
				t.Fatalf("patch %d age decreased", v.ID)
			}
			prevAge[v.ID] = v.Age
			return true
		})
		for key := range occupied {
			if !w.IsOccupied(w.lattice.Point(key, 0)) {
				t.Fatalf("cell %+v became unoccupied", key)
			}
		}
		for key := range latticeCells(w) {
			occupied[key] = true
		}

		allComplete := true
		w.Origins(func(_ OriginID, o Origin) bool {
			allComplete = allComplete && o.ExpansionComplete
			return true
		})
		allMature := w.patches.AllMature(cfg.MaxAge)
		if w.IsComplete() != (allComplete && allMature) {
			t.Fatalf("tick %d: complete=%v but origins=%v patches=%v", w.Tick(), w.IsComplete(), allComplete, allMature)
		}
	}
	if !w.IsComplete() {
		t.Fatal("run should complete within 40 ticks")
	}
}

func TestStarvationWhenBoxedInByBounds(t *testing.T) {
	cfg := testConfig()
	cfg.WorldHalfExtent = 2
	cfg.MaxRadius = 20
	w := NewWorld(cfg)
	id := w.Designate(Vec3{})

	for i := 0; i < 3; i++ {
		w.Step()
	}
	o, _ := w.Origin(id)
	if !o.Starved || !o.ExpansionComplete {
		t.Fatalf("origin should starve once the bounded area is full: %+v", o)
	}
	if o.Radius >= o.MaxRadius {
		t.Fatalf("starvation should fire before max radius, radius %f", o.Radius)
	}
	if got := w.LastTick().Starved; !slices.Equal(got, []OriginID{id}) {
		t.Fatalf("tick stats starved = %v", got)
	}
	if w.PatchCount() != 9 {
		t.Fatalf("expected the 3x3 in-bounds block, got %d patches", w.PatchCount())
	}
	w.Patches(func(v PatchView) bool {
		if math.Abs(v.Position.X) > 2 || math.Abs(v.Position.Z) > 2 {
			t.Fatalf("patch outside bounds: %+v", v.Position)
		}
		return true
	})
}

func TestStarvationWaitsForThreshold(t *testing.T) {
	cases := []struct {
		threshold  float64
		starveTick int
	}{
		{threshold: 6, starveTick: 3},
		{threshold: 0, starveTick: 1},
	}
	for _, tc := range cases {
		cfg := testConfig()
		cfg.WorldHalfExtent = 0
		cfg.StarvationThreshold = tc.threshold
		w := NewWorld(cfg)
		id := w.Designate(Vec3{})

		for tick := 1; tick <= 4; tick++ {
			w.Step()
			o, _ := w.Origin(id)
			if want := tick >= tc.starveTick; o.Starved != want {
				t.Fatalf("threshold %v, tick %d (radius %v): starved = %v, want %v",
					tc.threshold, tick, o.Radius, o.Starved, want)
			}
			if o.Starved {
				break
			}
		}
		if w.PatchCount() != 1 {
			t.Fatalf("threshold %v: only the seed fits, got %d patches", tc.threshold, w.PatchCount())
		}
	}
}

func TestHugeRadiusClippedToWorld(t *testing.T) {
	cfg := testConfig()
	cfg.WorldHalfExtent = 20
	cfg.MaxRadius = 1e4
	cfg.ExpansionRate = 1e4
	w := NewWorld(cfg)
	id := w.Designate(Vec3{X: 20, Z: -20})

	w.Step()
	if got := w.PatchCount(); got != 21*21 {
		t.Fatalf("expected every in-bounds cell seeded, got %d", got)
	}
	o, _ := w.Origin(id)
	if !o.ExpansionComplete || o.Starved {
		t.Fatalf("corner origin should be capped, not starved: %+v", o)
	}
}

func TestSlowExpansionDoesNotStarve(t *testing.T) {
	cfg := testConfig()
	cfg.ExpansionRate = 0.5
	cfg.MaxRadius = 8
	w := NewWorld(cfg)
	id := w.Designate(Vec3{})

	sawEmptyTick := false
	for i := 0; i < 16; i++ {
		w.Step()
		o, _ := w.Origin(id)
		if w.LastTick().Inserted == 0 && o.Radius >= cfg.StarvationThreshold && !o.ExpansionComplete {
			sawEmptyTick = true
		}
		if o.Starved {
			t.Fatalf("tick %d: origin starved with free cells in reach", w.Tick())
		}
	}
	if !sawEmptyTick {
		t.Fatal("expected at least one tick past the threshold without insertions")
	}
}

func TestParallelScanMatchesSerial(t *testing.T) {
	run := func(workers int) []PatchView {
		cfg := testConfig()
		cfg.SpreadWorkers = workers
		cfg.MaxRadius = 12
		cfg.ExpansionRate = 3
		w := NewWorld(cfg)
		for _, p := range []Vec3{{X: 0}, {X: 8, Z: 2}, {X: -6, Z: 6}, {X: 3, Z: -9}, {X: 10, Z: 10}} {
			w.Designate(p)
		}
		for i := 0; i < 8; i++ {
			w.Step()
		}
		var out []PatchView
		w.Patches(func(v PatchView) bool {
			out = append(out, v)
			return true
		})
		return out
	}

	serial := run(1)
	parallel := run(4)
	if !slices.Equal(serial, parallel) {
		t.Fatalf("parallel scan diverged: %d vs %d patches", len(serial), len(parallel))
	}
}

func TestAdvanceUsesFixedSteps(t *testing.T) {
	cfg := testConfig()
	cfg.TickInterval = 200 * time.Millisecond
	w := NewWorld(cfg)
	w.Designate(Vec3{})

	if steps := w.Advance(450 * time.Millisecond); steps != 2 {
		t.Fatalf("Advance(450ms) = %d steps, want 2", steps)
	}
	if steps := w.Advance(150 * time.Millisecond); steps != 1 {
		t.Fatalf("remainder should carry, got %d steps", steps)
	}
	if w.Tick() != 3 {
		t.Fatalf("tick = %d, want 3", w.Tick())
	}
}

func TestMaturationObserver(t *testing.T) {
	var calls []int
	w := NewWorld(testConfig(), WithMaturationObserver(func(changed int) {
		calls = append(calls, changed)
	}))
	w.Designate(Vec3{})
	w.Step()
	if len(calls) != 1 || calls[0] == 0 {
		t.Fatalf("observer calls = %v", calls)
	}
}

func TestResetClearsWorld(t *testing.T) {
	w := NewWorld(testConfig())
	w.Designate(Vec3{})
	w.Step()
	w.Reset(0)
	if w.OriginCount() != 0 || w.PatchCount() != 0 || w.Tick() != 0 || w.IsComplete() {
		t.Fatal("Reset must return the world to its empty state")
	}
	if w.IsOccupied(Vec3{}) {
		t.Fatal("occupancy must be cleared by Reset")
	}
}

func TestDesignateUsesTerrainOffset(t *testing.T) {
	cfg := testConfig()
	cfg.TerrainOffset = 0.25
	w := NewWorld(cfg)
	id := w.Designate(Vec3{X: 1.2, Y: 9, Z: 0})
	o, _ := w.Origin(id)
	if o.Position != (Vec3{X: 2, Y: 0.25, Z: 0}) {
		t.Fatalf("origin position = %+v", o.Position)
	}
	w.Step()
	w.Patches(func(v PatchView) bool {
		if v.Position.Y != 0.25 {
			t.Fatalf("patch %d vertical = %f", v.ID, v.Position.Y)
		}
		return true
	})
}
