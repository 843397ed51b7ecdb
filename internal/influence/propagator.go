// Package influence implements the bounded diffusion that turns a set
// of sovereign solar systems into a weighted influence value on every
// system reachable from them within a small hop radius. It is the
// graph-walk analog of the teacher's internal/graph pathfinding, but
// instead of finding a shortest path it spreads a decaying value outward
// and stops at the hop cap.
package influence

import (
	"fmt"

	"sovmap/internal/config"
	"sovmap/internal/model"
)

// Propagator fills in every SolarSystem's Influences by diffusing
// outward from every owned system.
type Propagator struct {
	World  *model.World
	Config config.Config
}

// New returns a Propagator bound to world and cfg.
func New(world *model.World, cfg config.Config) *Propagator {
	return &Propagator{World: world, Config: cfg}
}

// Run resets every system's influence accumulator and the world's seed
// set, then diffuses outward from every system with a nonzero OwnerID,
// including owned systems whose SovPower is 0.
// Systems are visited in ascending id order so that, for a fixed input,
// the resulting seed set and influence accumulation order are identical
// across runs.
func (p *Propagator) Run() error {
	p.World.Seeds.Reset()
	for _, sys := range p.World.Systems {
		sys.ResetInfluence()
	}

	for _, id := range p.World.SortedSystemIDs() {
		sys := p.World.Systems[id]
		if sys.OwnerID == 0 {
			continue
		}
		base, startHop := seedStrength(sys.SovPower)
		visited := map[uint64]bool{sys.ID: true}
		if err := p.diffuse(sys, sys.OwnerID, base, startHop, visited); err != nil {
			return err
		}
	}
	return nil
}

// seedStrength maps a system's sovereignty power to its initial
// influence value and starting hop count. A fully sovereign system
// (power >= 6.0) starts its diffusion at hop 1 rather than hop 2,
// letting its larger payload travel one hop further before the hop
// cap stops it — the starting hop, not a separate per-seed radius, is
// what makes high-sov influence reach further.
func seedStrength(sovPower float64) (base float64, startHop int) {
	if sovPower >= 6.0 {
		return 60, 1
	}
	return 10 * (sovPower / 2), 2
}

// diffuse pushes value onto sys at hop, then—unless hop has reached the
// configured hop cap—recurses onto every unvisited neighbor with value
// scaled by Config.PowerFalloff at hop+1.
func (p *Propagator) diffuse(sys *model.SolarSystem, ownerID uint64, value float64, hop int, visited map[uint64]bool) error {
	sys.AddInfluence(ownerID, value)
	p.World.Seeds.Add(sys.ID)

	if hop >= p.Config.HopCap {
		return nil
	}

	for _, neighborID := range p.World.Jumps.Neighbors(sys.ID) {
		if visited[neighborID] {
			continue
		}
		neighbor, ok := p.World.Systems[neighborID]
		if !ok {
			return fmt.Errorf("jump graph references unknown system %d: %w", neighborID, model.ErrDataCorrupt)
		}
		visited[neighborID] = true
		if err := p.diffuse(neighbor, ownerID, value*p.Config.PowerFalloff, hop+1, visited); err != nil {
			return err
		}
	}
	return nil
}
