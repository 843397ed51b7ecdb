package model

import "sync/atomic"

// Owner is a territory-owning entity: an alliance, corporation, or NPC
// faction. The pixel counter is the only field mutated after load, and
// only ever by an atomic increment from a column worker — it must not be
// read until every worker has joined.
type Owner struct {
	ID     uint64
	Name   string
	Color  Color
	NPC    bool
	pixels atomic.Uint64
}

// NewOwner constructs an Owner. id must be nonzero; 0 is reserved to mean
// "no owner" throughout the pipeline.
func NewOwner(id uint64, name string, color Color, npc bool) *Owner {
	return &Owner{ID: id, Name: name, Color: color, NPC: npc}
}

// IncrementPixelCount atomically bumps the owner's rendered-pixel count
// and returns the new total.
func (o *Owner) IncrementPixelCount() uint64 {
	return o.pixels.Add(1)
}

// PixelCount returns the number of pixels last attributed to this owner.
// Only meaningful after a render has fully joined.
func (o *Owner) PixelCount() uint64 {
	return o.pixels.Load()
}

// ResetPixelCount zeroes the counter, used before a render pass that will
// repopulate it from scratch.
func (o *Owner) ResetPixelCount() {
	o.pixels.Store(0)
}
