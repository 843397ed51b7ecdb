// Package scorer implements the per-pixel ownership kernel: an
// inverse-square-with-bias falloff from every seeded system, summed per
// owner and resolved to a single winner by deterministic argmax.
package scorer

import (
	"sort"

	"sovmap/internal/config"
	"sovmap/internal/model"
)

// Scorer evaluates a single pixel's owner and winning score against a
// propagated World.
type Scorer struct {
	World  *model.World
	Config config.Config
}

// New returns a Scorer bound to world and cfg.
func New(world *model.World, cfg config.Config) *Scorer {
	return &Scorer{World: world, Config: cfg}
}

// Score evaluates pixel (x, y) against every system in the SeedSet,
// skipping any whose squared distance exceeds Config.ScorerRadiusSquared,
// and accumulates each remaining system's influence contributions into a
// per-owner sum using p / (ScorerBias + d²). The owner with the highest
// sum wins; ties (equal sums) are broken in favor of the lowest owner
// id by iterating owners in ascending order and requiring a strict
// improvement to replace the incumbent. If the winning sum is below
// Config.InfluenceCutoff, ownerID is 0 (unowned) but sum is still
// returned for callers that want it (e.g. debugging, tests).
func (s *Scorer) Score(x, y int) (ownerID uint64, sum float64) {
	totals := make(map[uint64]float64)

	for _, seedID := range s.World.Seeds.IDs() {
		sys, ok := s.World.Systems[seedID]
		if !ok {
			continue
		}
		dx := float64(int(sys.X) - x)
		dy := float64(int(sys.Y) - y)
		distSq := dx*dx + dy*dy
		if distSq > s.Config.ScorerRadiusSquared {
			continue
		}
		for _, inf := range sys.Influences {
			totals[inf.OwnerID] += inf.Value / (s.Config.ScorerBias + distSq)
		}
	}

	if len(totals) == 0 {
		return 0, 0
	}

	ids := make([]uint64, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var bestID uint64
	var bestSum float64
	for _, id := range ids {
		if totals[id] > bestSum {
			bestID = id
			bestSum = totals[id]
		}
	}

	if bestSum < s.Config.InfluenceCutoff {
		return 0, bestSum
	}
	return bestID, bestSum
}
