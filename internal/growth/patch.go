package growth

// PatchID indexes a patch inside its PatchStore.
type PatchID int

// Patch is a single seeded growth cell.
type Patch struct {
	Position       Vec3
	Age            float64
	MaturationRate float64
	// Origin identifies the spawning origin. It is a lookup key into the
	// OriginRegistry, not an ownership link.
	Origin OriginID
}

// PatchStore holds every patch of a run in insertion order and answers
// occupancy queries through a lattice-bucketed index.
type PatchStore struct {
	lattice   Lattice
	tolerance float64

	patches []Patch
	buckets map[CellKey][]PatchID
}

// NewPatchStore returns an empty store. Insertions are rejected when an
// existing patch lies closer than tolerance.
func NewPatchStore(l Lattice, tolerance float64) *PatchStore {
	return &PatchStore{
		lattice:   l,
		tolerance: tolerance,
		buckets:   make(map[CellKey][]PatchID),
	}
}

// Len returns the number of stored patches.
func (s *PatchStore) Len() int { return len(s.patches) }

// Tolerance returns the occupancy distance used by Insert.
func (s *PatchStore) Tolerance() float64 { return s.tolerance }

// At returns the patch with the given id.
func (s *PatchStore) At(id PatchID) (Patch, bool) {
	if id < 0 || int(id) >= len(s.patches) {
		return Patch{}, false
	}
	return s.patches[id], true
}

// Each calls fn for every patch in insertion order until fn returns false.
func (s *PatchStore) Each(fn func(PatchID, Patch) bool) {
	for i, p := range s.patches {
		if !fn(PatchID(i), p) {
			return
		}
	}
}

// IsOccupied reports whether any patch lies strictly closer than tolerance
// to pos.
func (s *PatchStore) IsOccupied(pos Vec3, tolerance float64) bool {
	return s.occupied(pos, tolerance, len(s.patches))
}

// occupied only considers patches with id < limit so snapshots can ignore
// later insertions.
func (s *PatchStore) occupied(pos Vec3, tolerance float64, limit int) bool {
	if tolerance <= 0 || limit == 0 {
		return false
	}
	center := s.lattice.Cell(pos)
	reach := s.lattice.Reach(tolerance)
	tolSq := tolerance * tolerance
	for dz := -reach; dz <= reach; dz++ {
		for dx := -reach; dx <= reach; dx++ {
			bucket := s.buckets[CellKey{X: center.X + dx, Z: center.Z + dz}]
			for _, id := range bucket {
				if int(id) >= limit {
					continue
				}
				if s.patches[id].Position.DistanceSq(pos) < tolSq {
					return true
				}
			}
		}
	}
	return false
}

// Insert adds a patch unless the position is occupied. The boolean reports
// whether the patch was created.
func (s *PatchStore) Insert(pos Vec3, initialAge, maturationRate float64, origin OriginID) (PatchID, bool) {
	if s.IsOccupied(pos, s.tolerance) {
		return -1, false
	}
	id := PatchID(len(s.patches))
	s.patches = append(s.patches, Patch{
		Position:       pos,
		Age:            initialAge,
		MaturationRate: maturationRate,
		Origin:         origin,
	})
	key := s.lattice.Cell(pos)
	s.buckets[key] = append(s.buckets[key], id)
	return id, true
}

// AdvanceAges ages every immature patch by rate*dt, clamped to maxAge, and
// returns how many patches changed.
func (s *PatchStore) AdvanceAges(dt, maxAge float64) int {
	if dt <= 0 {
		return 0
	}
	changed := 0
	for i := range s.patches {
		p := &s.patches[i]
		if p.Age >= maxAge {
			continue
		}
		next := p.Age + p.MaturationRate*dt
		if next > maxAge {
			next = maxAge
		}
		if next != p.Age {
			p.Age = next
			changed++
		}
	}
	return changed
}

// AllMature reports whether every patch has reached maxAge. An empty store
// is mature.
func (s *PatchStore) AllMature(maxAge float64) bool {
	for _, p := range s.patches {
		if p.Age < maxAge {
			return false
		}
	}
	return true
}

// Snapshot freezes the current patch set for occupancy queries. Patches
// inserted after the call are invisible to the snapshot.
func (s *PatchStore) Snapshot() Occupancy {
	return Occupancy{store: s, limit: len(s.patches)}
}

// Reset drops every patch.
func (s *PatchStore) Reset() {
	s.patches = s.patches[:0]
	clear(s.buckets)
}

// Occupancy is a read-only view of a PatchStore at a point in time. It is
// safe for concurrent readers as long as the store is not written.
type Occupancy struct {
	store *PatchStore
	limit int
}

// IsOccupied reports whether a snapshotted patch lies closer than tolerance.
func (o Occupancy) IsOccupied(pos Vec3, tolerance float64) bool {
	if o.store == nil {
		return false
	}
	return o.store.occupied(pos, tolerance, o.limit)
}

// Len returns the number of patches visible to the snapshot.
func (o Occupancy) Len() int { return o.limit }
