package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"sovmap/internal/model"
)

// ownerIndexMagic is the fixed 8-byte header every owner-index file
// starts with, identifying the format and its version.
const ownerIndexMagic = "SOVNV1.0"

// noOwner is the on-disk sentinel for "no owner claims this pixel",
// stored as a signed -1 so it can share the int64 entry width with real
// owner ids without a separate bitmap.
const noOwner int64 = -1

// EncodeOwnerIndex writes width, height, then width*height int64 entries
// in column-major order (all of column 0 top-to-bottom, then column 1,
// ...), each either an owner id or -1 for unowned, as produced by
// ownerAt(x, y).
func EncodeOwnerIndex(w io.Writer, width, height int, ownerAt func(x, y int) uint64) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(ownerIndexMagic); err != nil {
		return fmt.Errorf("write owner index header: %w", model.ErrIOFailure)
	}
	if err := writeU32(bw, uint32(width)); err != nil {
		return err
	}
	if err := writeU32(bw, uint32(height)); err != nil {
		return err
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			id := ownerAt(x, y)
			var entry int64
			if id == 0 {
				entry = noOwner
			} else {
				entry = int64(id)
			}
			if err := writeI64(bw, entry); err != nil {
				return err
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush owner index: %w", model.ErrIOFailure)
	}
	return nil
}

// DecodeOwnerIndex reads a SOVNV1.0 owner index and returns it as a
// row-major slice of length width*height, indexed by x+y*width, with 0
// standing for "no owner" — the in-memory convention used everywhere
// else in this module. expectedWidth/expectedHeight of 0 skip the
// corresponding dimension check.
func DecodeOwnerIndex(r io.Reader, expectedWidth, expectedHeight int) ([]uint64, error) {
	br := bufio.NewReader(r)

	header, err := readBytes(br, len(ownerIndexMagic))
	if err != nil {
		return nil, err
	}
	if string(header) != ownerIndexMagic {
		return nil, fmt.Errorf("unrecognized owner index header %q: %w", header, model.ErrDataCorrupt)
	}

	width, err := readU32(br)
	if err != nil {
		return nil, err
	}
	height, err := readU32(br)
	if err != nil {
		return nil, err
	}
	if expectedWidth != 0 && int(width) != expectedWidth {
		return nil, fmt.Errorf("owner index width %d, want %d: %w", width, expectedWidth, model.ErrDimensionMismatch)
	}
	if expectedHeight != 0 && int(height) != expectedHeight {
		return nil, fmt.Errorf("owner index height %d, want %d: %w", height, expectedHeight, model.ErrDimensionMismatch)
	}

	out := make([]uint64, int(width)*int(height))
	for x := 0; x < int(width); x++ {
		for y := 0; y < int(height); y++ {
			entry, err := readI64(br)
			if err != nil {
				return nil, err
			}
			if entry == noOwner {
				continue
			}
			if entry < 0 {
				return nil, fmt.Errorf("owner index entry (%d,%d) has invalid negative owner id %d: %w", x, y, entry, model.ErrDataCorrupt)
			}
			out[x+y*int(width)] = uint64(entry)
		}
	}
	return out, nil
}

func writeU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("write owner index: %w", model.ErrIOFailure)
	}
	return nil
}

func writeI64(w io.Writer, v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("write owner index: %w", model.ErrIOFailure)
	}
	return nil
}

func readI64(r io.Reader) (int64, error) {
	var v [8]byte
	if _, err := io.ReadFull(r, v[:]); err != nil {
		return 0, truncated(err)
	}
	return int64(binary.BigEndian.Uint64(v[:])), nil
}
