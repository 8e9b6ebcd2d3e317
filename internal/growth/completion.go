package growth

import "go.uber.org/zap"

// CompletionDetector raises the global flag once every origin has finished
// expanding and every patch is fully aged.
type CompletionDetector struct{}

func (CompletionDetector) Phase() Phase { return PhaseCompletion }

func (CompletionDetector) Update(w *World, _ float64) {
	was := w.complete
	w.complete = w.origins.AllComplete() && w.patches.AllMature(w.cfg.MaxAge)
	w.stats.Complete = w.complete
	if w.complete && !was {
		w.log.Info("growth complete",
			zap.Int("tick", w.tick),
			zap.Int("origins", w.origins.Len()),
			zap.Int("patches", w.patches.Len()))
	}
}
