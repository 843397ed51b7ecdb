package model

// Influence is one entry of a solar system's sparse owner contribution
// list: the amount of sovereignty pressure a single owner projects onto
// this system.
type Influence struct {
	OwnerID uint64
	Value   float64
}

// SolarSystem is a star system with a pre-projected pixel position and,
// once propagation has run, a sparse list of owner contributions. The
// list is mutated only by the influence propagator and is read-only for
// the duration of a render.
type SolarSystem struct {
	ID               uint64
	ConstellationID  uint64
	RegionID         uint64
	X, Y             uint32
	HasStation       bool
	SovPower         float64
	OwnerID          uint64 // 0 means unowned
	Influences       []Influence
}

// AddInfluence merges value into the system's contribution for owner,
// summing in place if owner already contributes and appending a new
// sparse entry otherwise. Order of first appearance is preserved.
func (s *SolarSystem) AddInfluence(owner uint64, value float64) {
	for i := range s.Influences {
		if s.Influences[i].OwnerID == owner {
			s.Influences[i].Value += value
			return
		}
	}
	s.Influences = append(s.Influences, Influence{OwnerID: owner, Value: value})
}

// ResetInfluence clears the contribution list, used at the start of each
// CalculateInfluence pass so repeated calls don't double-count.
func (s *SolarSystem) ResetInfluence() {
	s.Influences = s.Influences[:0]
}
