package codec

import (
	"bytes"
	"errors"
	"testing"

	"sovmap/internal/model"
)

func TestOwnerIndex_RoundTrip(t *testing.T) {
	width, height := 3, 2
	owners := map[[2]int]uint64{
		{0, 0}: 5,
		{2, 1}: 8,
	}
	ownerAt := func(x, y int) uint64 { return owners[[2]int{x, y}] }

	var buf bytes.Buffer
	if err := EncodeOwnerIndex(&buf, width, height, ownerAt); err != nil {
		t.Fatalf("EncodeOwnerIndex: %v", err)
	}

	got, err := DecodeOwnerIndex(bytes.NewReader(buf.Bytes()), width, height)
	if err != nil {
		t.Fatalf("DecodeOwnerIndex: %v", err)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			want := owners[[2]int{x, y}]
			if got[x+y*width] != want {
				t.Errorf("(%d,%d) = %d, want %d", x, y, got[x+y*width], want)
			}
		}
	}
}

func TestOwnerIndex_DimensionMismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeOwnerIndex(&buf, 3, 2, func(x, y int) uint64 { return 0 }); err != nil {
		t.Fatalf("EncodeOwnerIndex: %v", err)
	}

	_, err := DecodeOwnerIndex(bytes.NewReader(buf.Bytes()), 4, 4)
	if !errors.Is(err, model.ErrDimensionMismatch) {
		t.Fatalf("DecodeOwnerIndex mismatch err = %v, want ErrDimensionMismatch", err)
	}
}

func TestOwnerIndex_BadHeaderIsDataCorrupt(t *testing.T) {
	_, err := DecodeOwnerIndex(bytes.NewReader([]byte("NOTAHEADER00000000000000")), 0, 0)
	if !errors.Is(err, model.ErrDataCorrupt) {
		t.Fatalf("DecodeOwnerIndex bad header err = %v, want ErrDataCorrupt", err)
	}
}
