package model

import "testing"

func TestAddInfluence_MergesSameOwner(t *testing.T) {
	s := &SolarSystem{ID: 1}
	s.AddInfluence(10, 5)
	s.AddInfluence(20, 3)
	s.AddInfluence(10, 2)

	if len(s.Influences) != 2 {
		t.Fatalf("len(Influences) = %d, want 2", len(s.Influences))
	}
	want := map[uint64]float64{10: 7, 20: 3}
	for _, inf := range s.Influences {
		if inf.Value != want[inf.OwnerID] {
			t.Errorf("owner %d value = %v, want %v", inf.OwnerID, inf.Value, want[inf.OwnerID])
		}
	}
}

func TestResetInfluence_ClearsList(t *testing.T) {
	s := &SolarSystem{ID: 1}
	s.AddInfluence(10, 5)
	s.ResetInfluence()
	if len(s.Influences) != 0 {
		t.Fatalf("len(Influences) = %d, want 0", len(s.Influences))
	}
	s.AddInfluence(10, 1)
	if len(s.Influences) != 1 || s.Influences[0].Value != 1 {
		t.Fatalf("influence after reset+add = %+v, want single entry value 1", s.Influences)
	}
}

func TestSeedSet_AddIsIdempotentAndOrdered(t *testing.T) {
	s := NewSeedSet()
	if !s.Add(5) {
		t.Fatal("first Add(5) should return true")
	}
	if s.Add(5) {
		t.Fatal("second Add(5) should return false")
	}
	s.Add(3)
	s.Add(9)

	if got := s.IDs(); len(got) != 3 || got[0] != 5 || got[1] != 3 || got[2] != 9 {
		t.Fatalf("IDs() = %v, want [5 3 9]", got)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", s.Len())
	}
	if !s.Add(5) {
		t.Fatal("Add(5) after Reset should return true again")
	}
}

func TestWorld_SortedSystemIDs(t *testing.T) {
	w := NewWorld()
	for _, id := range []uint64{9, 1, 5, 3} {
		w.Systems[id] = &SolarSystem{ID: id}
	}
	got := w.SortedSystemIDs()
	want := []uint64{1, 3, 5, 9}
	for i, id := range want {
		if got[i] != id {
			t.Fatalf("SortedSystemIDs() = %v, want %v", got, want)
		}
	}
}

func TestOwner_PixelCounter(t *testing.T) {
	o := NewOwner(1, "Test Alliance", Color{R: 1, G: 2, B: 3}, false)
	o.IncrementPixelCount()
	o.IncrementPixelCount()
	if got := o.PixelCount(); got != 2 {
		t.Fatalf("PixelCount() = %d, want 2", got)
	}
	o.ResetPixelCount()
	if got := o.PixelCount(); got != 0 {
		t.Fatalf("PixelCount() after reset = %d, want 0", got)
	}
}
