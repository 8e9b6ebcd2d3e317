package growth

import "go.uber.org/zap"

// ExpansionEngine grows origin radii by one fixed increment per tick.
type ExpansionEngine struct{}

func (ExpansionEngine) Phase() Phase { return PhaseExpansion }

func (ExpansionEngine) Update(w *World, dt float64) {
	capped := w.origins.AdvanceRadii(dt)
	w.stats.Capped = append(w.stats.Capped, capped...)
	for _, id := range capped {
		o, _ := w.origins.At(id)
		w.log.Debug("origin reached max radius",
			zap.Int("origin", int(id)),
			zap.Float64("radius", o.Radius),
			zap.Int("tick", w.tick))
	}
}
