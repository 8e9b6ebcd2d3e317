package growth

// MaturationObserver is notified after patches age. changed is the number of
// patches whose age moved this tick.
type MaturationObserver func(changed int)

// MaturationEngine ages every patch toward MaxAge.
type MaturationEngine struct {
	Observer MaturationObserver
}

func (MaturationEngine) Phase() Phase { return PhaseMaturation }

func (m MaturationEngine) Update(w *World, dt float64) {
	changed := w.patches.AdvanceAges(dt, w.cfg.MaxAge)
	w.stats.Matured = changed
	if changed > 0 {
		w.displayDirty = true
	}
	if m.Observer != nil {
		m.Observer(changed)
	}
}
