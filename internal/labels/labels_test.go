package labels

import (
	"testing"

	"sovmap/internal/config"
)

func TestExtract_ThreeByThreeBlock(t *testing.T) {
	cfg := config.Default()
	cfg.SampleRate = 8
	width, height := 32, 32

	idx := make([]uint64, width*height)
	// A 3x3 block of grid cells at stride 8, starting at (8,8), all
	// owned by 4: (8,8) (16,8) (24,8) (8,16) (16,16) (24,16) (8,24)
	// (16,24) (24,24).
	for gy := 8; gy <= 24; gy += 8 {
		for gx := 8; gx <= 24; gx += 8 {
			idx[gx+gy*width] = 4
		}
	}

	got := Extract(idx, width, height, cfg)
	if len(got) != 1 {
		t.Fatalf("len(labels) = %d, want 1: %+v", len(got), got)
	}
	lbl := got[0]
	if lbl.OwnerID != 4 {
		t.Fatalf("OwnerID = %d, want 4", lbl.OwnerID)
	}
	if lbl.Count != 9 {
		t.Fatalf("Count = %d, want 9", lbl.Count)
	}
	// Block centroid is (16,16); +(sample_rate/2, sample_rate/2) = (20,20).
	if lbl.X != 20 || lbl.Y != 20 {
		t.Fatalf("centroid = (%d,%d), want (20,20)", lbl.X, lbl.Y)
	}

	for _, v := range idx {
		if v != 0 {
			t.Fatal("Extract should have zeroed every consumed cell")
		}
	}
}

func TestExtractPreserving_LeavesInputIntact(t *testing.T) {
	cfg := config.Default()
	cfg.SampleRate = 8
	width, height := 16, 16
	idx := make([]uint64, width*height)
	idx[0] = 3

	got := ExtractPreserving(idx, width, height, cfg)
	if len(got) != 1 {
		t.Fatalf("len(labels) = %d, want 1", len(got))
	}
	if idx[0] != 3 {
		t.Fatalf("ExtractPreserving mutated its input: idx[0] = %d, want 3", idx[0])
	}
}

func TestExtract_EmptyIndexProducesNoLabels(t *testing.T) {
	cfg := config.Default()
	cfg.SampleRate = 8
	got := Extract(make([]uint64, 16*16), 16, 16, cfg)
	if len(got) != 0 {
		t.Fatalf("len(labels) = %d, want 0", len(got))
	}
}
