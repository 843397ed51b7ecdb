// Package codec implements the two fixed external byte formats the
// engine consumes and produces: the big-endian universe input and the
// SOVNV1.0 owner-index format. Both formats are specified at the byte
// level and are treated as external interfaces — this package's job is
// to decode/encode them faithfully and turn any inconsistency into a
// model.ErrDataCorrupt or model.ErrDimensionMismatch, not to interpret
// the domain.
package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"sovmap/internal/model"
)

// OwnerRecord is one decoded owner entry from the input stream.
type OwnerRecord struct {
	ID    uint64
	Name  string
	Color model.Color
	NPC   bool
}

// SystemRecord is one decoded solar system entry from the input stream.
// OwnerID is 0 for an unowned system.
type SystemRecord struct {
	ID              uint64
	X, Y            uint32
	RegionID        uint64
	ConstellationID uint64
	HasStation      bool
	SovPower        float64
	OwnerID         uint64
}

// JumpRecord is one decoded adjacency entry: source connects to every id
// in Neighbors.
type JumpRecord struct {
	Source    uint64
	Neighbors []uint64
}

// Universe is the fully decoded input stream, validated against itself:
// every owner/system id referenced by a system or jump entry is known.
type Universe struct {
	Owners  []OwnerRecord
	Systems []SystemRecord
	Jumps   []JumpRecord
}

// Decode reads the big-endian binary universe format described in the
// external interface section: an owner table, a system table, and a
// jump adjacency table, each length-prefixed with a u32 count.
func Decode(r io.Reader) (*Universe, error) {
	br := bufio.NewReader(r)

	ownerCount, err := readU32(br)
	if err != nil {
		return nil, err
	}
	owners := make([]OwnerRecord, ownerCount)
	knownOwners := make(map[uint64]bool, ownerCount)
	for i := range owners {
		id, err := readU32(br)
		if err != nil {
			return nil, err
		}
		nameLen, err := readU16(br)
		if err != nil {
			return nil, err
		}
		name, err := readBytes(br, int(nameLen))
		if err != nil {
			return nil, err
		}
		red, err := readU32(br)
		if err != nil {
			return nil, err
		}
		green, err := readU32(br)
		if err != nil {
			return nil, err
		}
		blue, err := readU32(br)
		if err != nil {
			return nil, err
		}
		isNPC, err := readU8(br)
		if err != nil {
			return nil, err
		}
		color, err := toColor(red, green, blue)
		if err != nil {
			return nil, err
		}
		owners[i] = OwnerRecord{ID: uint64(id), Name: string(name), Color: color, NPC: isNPC != 0}
		knownOwners[uint64(id)] = true
	}

	systemCount, err := readU32(br)
	if err != nil {
		return nil, err
	}
	systems := make([]SystemRecord, systemCount)
	knownSystems := make(map[uint64]bool, systemCount)
	for i := range systems {
		id, err := readU32(br)
		if err != nil {
			return nil, err
		}
		x, err := readU32(br)
		if err != nil {
			return nil, err
		}
		y, err := readU32(br)
		if err != nil {
			return nil, err
		}
		regionID, err := readU32(br)
		if err != nil {
			return nil, err
		}
		constellationID, err := readU32(br)
		if err != nil {
			return nil, err
		}
		hasStation, err := readU8(br)
		if err != nil {
			return nil, err
		}
		sovPower, err := readF64(br)
		if err != nil {
			return nil, err
		}
		ownerID, err := readU32(br)
		if err != nil {
			return nil, err
		}
		if ownerID != 0 && !knownOwners[uint64(ownerID)] {
			return nil, fmt.Errorf("system %d references unknown owner %d: %w", id, ownerID, model.ErrDataCorrupt)
		}
		if sovPower < 0 {
			return nil, fmt.Errorf("system %d has negative sov_power %v: %w", id, sovPower, model.ErrDataCorrupt)
		}
		systems[i] = SystemRecord{
			ID:              uint64(id),
			X:               x,
			Y:               y,
			RegionID:        uint64(regionID),
			ConstellationID: uint64(constellationID),
			HasStation:      hasStation != 0,
			SovPower:        sovPower,
			OwnerID:         uint64(ownerID),
		}
		knownSystems[uint64(id)] = true
	}

	jumpCount, err := readU32(br)
	if err != nil {
		return nil, err
	}
	jumps := make([]JumpRecord, jumpCount)
	for i := range jumps {
		sourceID, err := readU32(br)
		if err != nil {
			return nil, err
		}
		if sourceID == 0 {
			return nil, fmt.Errorf("jump table entry %d has forbidden source id 0: %w", i, model.ErrDataCorrupt)
		}
		if !knownSystems[uint64(sourceID)] {
			return nil, fmt.Errorf("jump table entry %d references unknown system %d: %w", i, sourceID, model.ErrDataCorrupt)
		}
		valueSize, err := readU32(br)
		if err != nil {
			return nil, err
		}
		neighbors := make([]uint64, valueSize)
		for j := range neighbors {
			neighborID, err := readU32(br)
			if err != nil {
				return nil, err
			}
			if neighborID == 0 {
				return nil, fmt.Errorf("jump table entry %d has forbidden neighbor id 0: %w", i, model.ErrDataCorrupt)
			}
			if !knownSystems[uint64(neighborID)] {
				return nil, fmt.Errorf("jump table entry %d references unknown neighbor %d: %w", i, neighborID, model.ErrDataCorrupt)
			}
			neighbors[j] = uint64(neighborID)
		}
		jumps[i] = JumpRecord{Source: uint64(sourceID), Neighbors: neighbors}
	}

	return &Universe{Owners: owners, Systems: systems, Jumps: jumps}, nil
}

func toColor(red, green, blue uint32) (model.Color, error) {
	if red > 255 || green > 255 || blue > 255 {
		return model.Color{}, fmt.Errorf("color channel out of range (%d,%d,%d): %w", red, green, blue, model.ErrDataCorrupt)
	}
	return model.Color{R: byte(red), G: byte(green), B: byte(blue)}, nil
}

func readU8(r io.Reader) (byte, error) {
	var v [1]byte
	if _, err := io.ReadFull(r, v[:]); err != nil {
		return 0, truncated(err)
	}
	return v[0], nil
}

func readU16(r io.Reader) (uint16, error) {
	var v [2]byte
	if _, err := io.ReadFull(r, v[:]); err != nil {
		return 0, truncated(err)
	}
	return binary.BigEndian.Uint16(v[:]), nil
}

func readU32(r io.Reader) (uint32, error) {
	var v [4]byte
	if _, err := io.ReadFull(r, v[:]); err != nil {
		return 0, truncated(err)
	}
	return binary.BigEndian.Uint32(v[:]), nil
}

func readF64(r io.Reader) (float64, error) {
	var v [8]byte
	if _, err := io.ReadFull(r, v[:]); err != nil {
		return 0, truncated(err)
	}
	return math.Float64frombits(binary.BigEndian.Uint64(v[:])), nil
}

func readBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, truncated(err)
	}
	return buf, nil
}

func truncated(cause error) error {
	return fmt.Errorf("truncated input: %w", model.ErrDataCorrupt)
}
