package scorer

import (
	"testing"

	"sovmap/internal/config"
	"sovmap/internal/model"
)

func worldWithSeed(x, y uint32, ownerID uint64, value float64) *model.World {
	w := model.NewWorld()
	sys := &model.SolarSystem{ID: 1, X: x, Y: y, OwnerID: ownerID}
	sys.AddInfluence(ownerID, value)
	w.Systems[1] = sys
	w.Seeds.Add(1)
	return w
}

func TestScorer_WinnerAtSeedCenter(t *testing.T) {
	w := worldWithSeed(32, 32, 7, 60)
	cfg := config.Default()
	s := New(w, cfg)

	ownerID, sum := s.Score(32, 32)
	if ownerID != 7 {
		t.Fatalf("ownerID = %d, want 7", ownerID)
	}
	want := 60.0 / cfg.ScorerBias
	if diff := sum - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("sum = %v, want %v", sum, want)
	}
}

func TestScorer_BeyondRadiusIsUnowned(t *testing.T) {
	w := worldWithSeed(0, 0, 7, 60)
	cfg := config.Default()
	s := New(w, cfg)

	// Distance² at (1000, 0) is 1_000_000, well past the 160_000 cutoff.
	ownerID, _ := s.Score(1000, 0)
	if ownerID != 0 {
		t.Fatalf("ownerID = %d, want 0 (unowned)", ownerID)
	}
}

func TestScorer_BelowCutoffIsUnowned(t *testing.T) {
	w := worldWithSeed(0, 0, 7, 0.001)
	cfg := config.Default()
	s := New(w, cfg)

	ownerID, sum := s.Score(0, 0)
	if ownerID != 0 {
		t.Fatalf("ownerID = %d, sum = %v, want unowned", ownerID, sum)
	}
}

func TestScorer_TieBreaksToLowestOwnerID(t *testing.T) {
	w := model.NewWorld()
	sysA := &model.SolarSystem{ID: 1, X: 0, Y: 0, OwnerID: 9}
	sysA.AddInfluence(9, 60)
	sysB := &model.SolarSystem{ID: 2, X: 0, Y: 0, OwnerID: 3}
	sysB.AddInfluence(3, 60)
	w.Systems[1] = sysA
	w.Systems[2] = sysB
	w.Seeds.Add(1)
	w.Seeds.Add(2)

	s := New(w, config.Default())
	ownerID, _ := s.Score(0, 0)
	if ownerID != 3 {
		t.Fatalf("ownerID = %d, want 3 (lowest id on exact tie)", ownerID)
	}
}
