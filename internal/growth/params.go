package growth

import "crimson-sprawl/internal/core"

// Parameters exposes the active configuration and run status for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	cfg := w.cfg
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.FloatParam("cell_size", "Cell size", cfg.CellSize),
				core.FloatParam("tolerance", "Tolerance", cfg.Tolerance),
				core.FloatParam("world_half_extent", "World half extent", cfg.WorldHalfExtent),
				core.IntParam("spread_workers", "Spread workers", cfg.SpreadWorkers),
			},
		},
		{
			Name:    "Growth",
			Summary: "applies to new origins",
			Params: []core.Parameter{
				core.FloatParam("expansion_rate", "Expansion rate", cfg.ExpansionRate),
				core.FloatParam("max_radius", "Max radius", cfg.MaxRadius),
				core.FloatParam("maturation_rate", "Maturation rate", cfg.MaturationRate),
				core.FloatParam("starvation_threshold", "Starvation threshold", cfg.StarvationThreshold),
			},
		},
		{
			Name: "Visual",
			Params: []core.Parameter{
				core.FloatParam("alpha_fade_distance", "Alpha fade distance", cfg.AlphaFadeDistance),
				core.FloatParam("min_alpha", "Min alpha", cfg.MinAlpha),
			},
		},
		{
			Name: "Status",
			Params: []core.Parameter{
				core.IntParam("tick", "Tick", w.tick),
				core.IntParam("origins", "Origins", w.origins.Len()),
				core.IntParam("active", "Active origins", w.origins.Active()),
				core.IntParam("patches", "Patches", w.patches.Len()),
				core.BoolParam("complete", "Complete", w.complete),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

var growthControls = []core.ParameterControl{
	core.FloatControl("expansion_rate", "Expansion rate", 0.1, 0, 50),
	core.FloatControl("max_radius", "Max radius", 2, 0, 500),
	core.FloatControl("maturation_rate", "Maturation rate", 0.05, 0, 10),
	core.FloatControl("starvation_threshold", "Starvation threshold", 1, 0, 500),
	core.FloatControl("alpha_fade_distance", "Alpha fade distance", 1, 0, 500),
	core.FloatControl("min_alpha", "Min alpha", 0.05, 0, 1),
	{Key: "spread_workers", Label: "Spread workers", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 64, HasMin: true, HasMax: true},
}

// ParameterControls lists the HUD-adjustable parameters.
func (w *World) ParameterControls() []core.ParameterControl {
	out := make([]core.ParameterControl, len(growthControls))
	copy(out, growthControls)
	return out
}

func findControl(key string) (core.ParameterControl, bool) {
	for _, ctrl := range growthControls {
		if ctrl.Key == key {
			return ctrl, true
		}
	}
	return core.ParameterControl{}, false
}

// SetFloatParameter updates a float control. Expansion rate, max radius and
// maturation rate only affect origins designated afterwards; the starvation
// threshold and the alpha settings apply to existing origins and patches
// at once.
func (w *World) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := findControl(key)
	if !ok || ctrl.Type != core.ParamTypeFloat {
		return false
	}
	value = core.ClampControl(ctrl, value)
	switch key {
	case "expansion_rate":
		w.cfg.ExpansionRate = value
	case "max_radius":
		w.cfg.MaxRadius = value
		if w.cfg.InitialRadius > value {
			w.cfg.InitialRadius = value
		}
	case "maturation_rate":
		w.cfg.MaturationRate = value
	case "starvation_threshold":
		w.cfg.StarvationThreshold = value
	case "alpha_fade_distance":
		w.cfg.AlphaFadeDistance = value
		w.displayDirty = true
	case "min_alpha":
		w.cfg.MinAlpha = value
		w.displayDirty = true
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer control.
func (w *World) SetIntParameter(key string, value int) bool {
	ctrl, ok := findControl(key)
	if !ok || ctrl.Type != core.ParamTypeInt {
		return false
	}
	value = int(core.ClampControl(ctrl, float64(value)))
	switch key {
	case "spread_workers":
		w.cfg.SpreadWorkers = value
		w.runner = newPipeline(w.cfg, w.observer)
	default:
		return false
	}
	return true
}
