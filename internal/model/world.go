package model

import (
	"sort"

	"sovmap/internal/graph"
)

// World is the full loaded data model for one map: owners and systems
// keyed by id, the jump graph between systems, and the seed set the
// propagator maintains. It is populated exclusively by load/propagate
// operations and is read-only for the duration of a render — the engine
// coordinator is responsible for enforcing that with its own lock.
type World struct {
	Owners  map[uint64]*Owner
	Systems map[uint64]*SolarSystem
	Jumps   *graph.JumpGraph
	Seeds   *SeedSet
}

// NewWorld returns an empty World with initialized containers.
func NewWorld() *World {
	return &World{
		Owners:  make(map[uint64]*Owner),
		Systems: make(map[uint64]*SolarSystem),
		Jumps:   graph.NewJumpGraph(),
		Seeds:   NewSeedSet(),
	}
}

// SortedSystemIDs returns every loaded system id in ascending order.
// Iteration order over a Go map is unspecified; anything that must be
// deterministic across runs (seeding order, for instance) walks this
// slice instead of the map directly.
func (w *World) SortedSystemIDs() []uint64 {
	ids := make([]uint64, 0, len(w.Systems))
	for id := range w.Systems {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
