package growth

import "math"

// OriginID indexes an origin inside its OriginRegistry.
type OriginID int

// OriginParams are the per-colony rates an origin is registered with.
type OriginParams struct {
	InitialRadius  float64
	ExpansionRate  float64
	MaxRadius      float64
	MaturationRate float64
}

// Origin is a designated growth source with an expanding frontier.
type Origin struct {
	Position       Vec3
	Radius         float64
	ExpansionRate  float64
	MaxRadius      float64
	MaturationRate float64

	// ExpansionComplete is set once Radius reaches MaxRadius or the origin
	// starves. It never clears.
	ExpansionComplete bool
	// Starved records that completion came from running out of free cells.
	Starved bool
	// Settled is set once no further spread scans are needed: after the
	// scan at the final radius, or on starvation.
	Settled bool
}

// OriginRegistry stores origins in registration order.
type OriginRegistry struct {
	origins []Origin
}

// NewOriginRegistry returns an empty registry.
func NewOriginRegistry() *OriginRegistry {
	return &OriginRegistry{}
}

// Register appends a new, not yet complete origin. Negative or non-finite
// parameters are treated as 0.
func (r *OriginRegistry) Register(pos Vec3, p OriginParams) OriginID {
	maxRadius := finiteNonNegative(p.MaxRadius)
	radius := min(finiteNonNegative(p.InitialRadius), maxRadius)
	rate := finiteNonNegative(p.ExpansionRate)
	maturation := finiteNonNegative(p.MaturationRate)
	r.origins = append(r.origins, Origin{
		Position:       pos,
		Radius:         radius,
		ExpansionRate:  rate,
		MaxRadius:      maxRadius,
		MaturationRate: maturation,
	})
	return OriginID(len(r.origins) - 1)
}

// Len returns the number of registered origins.
func (r *OriginRegistry) Len() int { return len(r.origins) }

// At returns the origin with the given id.
func (r *OriginRegistry) At(id OriginID) (Origin, bool) {
	if id < 0 || int(id) >= len(r.origins) {
		return Origin{}, false
	}
	return r.origins[id], true
}

// Each calls fn for every origin in registration order until fn returns
// false.
func (r *OriginRegistry) Each(fn func(OriginID, Origin) bool) {
	for i, o := range r.origins {
		if !fn(OriginID(i), o) {
			return
		}
	}
}

// AdvanceRadii grows every incomplete origin by one fixed increment of
// ExpansionRate*dt, clamped to MaxRadius. It returns the origins that reached
// their cap during this call.
func (r *OriginRegistry) AdvanceRadii(dt float64) []OriginID {
	if dt < 0 {
		dt = 0
	}
	var capped []OriginID
	for i := range r.origins {
		o := &r.origins[i]
		if o.ExpansionComplete {
			continue
		}
		next := o.Radius + o.ExpansionRate*dt
		if next >= o.MaxRadius {
			next = o.MaxRadius
		}
		o.Radius = next
		if o.Radius == o.MaxRadius {
			o.ExpansionComplete = true
			capped = append(capped, OriginID(i))
		}
	}
	return capped
}

// MarkComplete freezes an origin's radius. It reports whether the state
// changed.
func (r *OriginRegistry) MarkComplete(id OriginID) bool {
	if id < 0 || int(id) >= len(r.origins) {
		return false
	}
	o := &r.origins[id]
	if o.ExpansionComplete {
		return false
	}
	o.ExpansionComplete = true
	return true
}

// MarkStarved completes and settles an origin that has no free cells left.
func (r *OriginRegistry) MarkStarved(id OriginID) bool {
	if !r.MarkComplete(id) {
		return false
	}
	o := &r.origins[id]
	o.Starved = true
	o.Settled = true
	return true
}

// settle records that the final spread scan of a complete origin has run.
func (r *OriginRegistry) settle(id OriginID) {
	if id < 0 || int(id) >= len(r.origins) {
		return
	}
	if r.origins[id].ExpansionComplete {
		r.origins[id].Settled = true
	}
}

// AllComplete reports whether every origin is expansion-complete. An empty
// registry is complete.
func (r *OriginRegistry) AllComplete() bool {
	for _, o := range r.origins {
		if !o.ExpansionComplete {
			return false
		}
	}
	return true
}

// Active returns how many origins are still expanding.
func (r *OriginRegistry) Active() int {
	n := 0
	for _, o := range r.origins {
		if !o.ExpansionComplete {
			n++
		}
	}
	return n
}

// Reset drops every origin.
func (r *OriginRegistry) Reset() {
	r.origins = r.origins[:0]
}

func finiteNonNegative(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 1) {
		return 0
	}
	return v
}
