package growth

import (
	"time"

	"crimson-sprawl/internal/core"

	"go.uber.org/zap"
)

// TickStats summarizes what the most recent step did.
type TickStats struct {
	Tick     int
	Inserted int
	Matured  int
	Capped   []OriginID
	Starved  []OriginID
	Complete bool
}

// PatchView is the read-only per-patch record handed to renderers.
type PatchView struct {
	ID       PatchID
	Origin   OriginID
	Position Vec3
	Age      float64
	// Maturity is Age normalized to [0, 1].
	Maturity float64
	// Alpha fades with distance from the spawning origin.
	Alpha float64
}

// World is the simulation context: it owns the origin registry, the patch
// store, the per-tick pipeline and the global completion flag. A World is
// single-writer; callers serialize Designate and Step.
type World struct {
	cfg     Config
	lattice Lattice

	origins  *OriginRegistry
	patches  *PatchStore
	runner   *Runner
	observer MaturationObserver
	clock    *core.FixedStep

	complete bool
	tick     int
	stats    TickStats

	display      *core.ByteGrid
	displayDirty bool

	log *zap.Logger
}

// Option customizes a World at construction.
type Option func(*World)

// WithLogger routes simulation events to log.
func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithMaturationObserver registers fn to run after each maturation phase.
func WithMaturationObserver(fn MaturationObserver) Option {
	return func(w *World) {
		w.observer = fn
	}
}

// NewWorld returns an empty world using cfg (normalized).
func NewWorld(cfg Config, opts ...Option) *World {
	cfg = cfg.Normalize()
	lattice := NewLattice(cfg.CellSize)
	w := &World{
		cfg:     cfg,
		lattice: lattice,
		origins: NewOriginRegistry(),
		patches: NewPatchStore(lattice, cfg.Tolerance),
		clock:   core.NewFixedStepInterval(cfg.TickInterval),
		log:     zap.NewNop(),
	}
	w.clock.Reset()
	for _, opt := range opts {
		opt(w)
	}
	w.runner = newPipeline(cfg, w.observer)
	size := w.Size()
	w.display = core.NewByteGrid(size.W, size.H)
	return w
}

func newPipeline(cfg Config, observer MaturationObserver) *Runner {
	r := NewRunner()
	r.Register(CompletionDetector{})
	r.Register(MaturationEngine{Observer: observer})
	r.Register(SpreadEngine{Workers: cfg.SpreadWorkers})
	r.Register(ExpansionEngine{})
	return r
}

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Lattice returns the quantizer used for designations and spread.
func (w *World) Lattice() Lattice { return w.lattice }

// DefaultOriginParams returns the rates new designations receive.
func (w *World) DefaultOriginParams() OriginParams {
	return OriginParams{
		InitialRadius:  w.cfg.InitialRadius,
		ExpansionRate:  w.cfg.ExpansionRate,
		MaxRadius:      w.cfg.MaxRadius,
		MaturationRate: w.cfg.MaturationRate,
	}
}

// Designate registers an origin at the snapped world position p and seeds
// the patch under it. It always succeeds; the seed is skipped when the cell
// is already occupied.
func (w *World) Designate(p Vec3) OriginID {
	return w.DesignateWith(p, w.DefaultOriginParams())
}

// DesignateWith is Designate with colony-specific rates.
func (w *World) DesignateWith(p Vec3, params OriginParams) OriginID {
	pos := w.lattice.Snap(p)
	pos.Y = w.cfg.TerrainOffset
	id := w.origins.Register(pos, params)
	o, _ := w.origins.At(id)
	_, seeded := w.patches.Insert(pos, w.cfg.InitialAge, o.MaturationRate, id)
	w.complete = false
	w.displayDirty = true
	w.log.Debug("origin designated",
		zap.Int("origin", int(id)),
		zap.Float64("x", pos.X),
		zap.Float64("z", pos.Z),
		zap.Bool("seeded", seeded),
		zap.Float64("max_radius", o.MaxRadius))
	return id
}

// Step advances the simulation by exactly one fixed tick: expansion, spread,
// maturation, completion. It does nothing once the world is complete.
func (w *World) Step() {
	if w.complete {
		return
	}
	w.tick++
	w.stats = TickStats{Tick: w.tick}
	w.runner.Tick(w, w.cfg.TickInterval.Seconds())
}

// Advance feeds elapsed time into the fixed-step accumulator and runs every
// step that became due. It returns the number of steps taken.
func (w *World) Advance(elapsed time.Duration) int {
	steps := w.clock.Advance(elapsed)
	for i := 0; i < steps; i++ {
		w.Step()
	}
	return steps
}

// IsComplete reports the global completion flag.
func (w *World) IsComplete() bool { return w.complete }

// Tick returns the number of steps run since the last reset.
func (w *World) Tick() int { return w.tick }

// LastTick returns the stats of the most recent step.
func (w *World) LastTick() TickStats { return w.stats }

// OriginCount returns the number of registered origins.
func (w *World) OriginCount() int { return w.origins.Len() }

// PatchCount returns the number of patches.
func (w *World) PatchCount() int { return w.patches.Len() }

// Origin returns the origin with the given id.
func (w *World) Origin(id OriginID) (Origin, bool) { return w.origins.At(id) }

// Patch returns the patch with the given id.
func (w *World) Patch(id PatchID) (Patch, bool) { return w.patches.At(id) }

// Origins calls fn for each origin in registration order until fn returns
// false.
func (w *World) Origins(fn func(OriginID, Origin) bool) { w.origins.Each(fn) }

// Patches calls fn with a view of each patch until fn returns false.
func (w *World) Patches(fn func(PatchView) bool) {
	w.patches.Each(func(id PatchID, p Patch) bool {
		return fn(w.view(id, p))
	})
}

// IsOccupied reports whether a patch lies within the configured tolerance of
// p after snapping.
func (w *World) IsOccupied(p Vec3) bool {
	pos := w.lattice.Snap(p)
	pos.Y = w.cfg.TerrainOffset
	return w.patches.IsOccupied(pos, w.cfg.Tolerance)
}

func (w *World) view(id PatchID, p Patch) PatchView {
	v := PatchView{
		ID:       id,
		Origin:   p.Origin,
		Position: p.Position,
		Age:      p.Age,
		Alpha:    1,
	}
	if w.cfg.MaxAge > 0 {
		v.Maturity = clamp01(p.Age / w.cfg.MaxAge)
	}
	if o, ok := w.origins.At(p.Origin); ok {
		v.Alpha = DistanceAlpha(p.Position.Distance(o.Position), w.cfg.AlphaFadeDistance, w.cfg.MinAlpha)
	}
	return v
}

// Reset tears the scene down: every origin and patch is dropped and the
// completion flag cleared. The seed is unused; growth is deterministic.
func (w *World) Reset(int64) {
	w.origins.Reset()
	w.patches.Reset()
	w.clock.Reset()
	w.complete = false
	w.tick = 0
	w.stats = TickStats{}
	w.displayDirty = true
}

// Name identifies the active profile.
func (w *World) Name() string { return w.cfg.Name }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
