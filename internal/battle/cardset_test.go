package battle

import "testing"

func TestCardSetInsertRemoveContains(t *testing.T) {
	var s CardSet[CardID]

	if !s.Insert(5) {
		t.Fatalf("expected first insert to report a change")
	}
	if s.Insert(5) {
		t.Fatalf("expected duplicate insert to report no change")
	}
	if !s.Contains(5) {
		t.Fatalf("expected set to contain 5")
	}
	if s.Contains(6) {
		t.Fatalf("did not expect set to contain 6")
	}
	if !s.Remove(5) {
		t.Fatalf("expected remove to report a change")
	}
	if s.Remove(5) {
		t.Fatalf("expected second remove to report no change")
	}
	if !s.IsEmpty() {
		t.Fatalf("expected empty set")
	}
}

func TestCardSetAllIsAscending(t *testing.T) {
	s := SetOf[CardID](9, 1, 130, 64, 2)

	got := s.All()
	want := []CardID{1, 2, 9, 64, 130}
	if len(got) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v at index %d, got %v", want[i], i, got[i])
		}
	}
}

func TestCardSetGrowsBeyondInitialWords(t *testing.T) {
	var s CardSet[CardID]
	ids := []CardID{0, 63, 64, 127, 128, 500, 1000}
	for _, id := range ids {
		s.Insert(id)
	}
	if s.Len() != len(ids) {
		t.Fatalf("expected %d ids, got %d", len(ids), s.Len())
	}
	for _, id := range ids {
		if !s.Contains(id) {
			t.Fatalf("expected set to contain %v", id)
		}
	}
}

func TestCardSetAt(t *testing.T) {
	s := SetOf[CardID](10, 20, 30)

	for i, want := range []CardID{10, 20, 30} {
		got, ok := s.At(i)
		if !ok || got != want {
			t.Fatalf("At(%d) = %v, %v; want %v", i, got, ok, want)
		}
	}
	if _, ok := s.At(3); ok {
		t.Fatalf("expected At past the end to report false")
	}
}

func TestCardSetOperations(t *testing.T) {
	a := SetOf[CardID](1, 2, 3)
	b := SetOf[CardID](3, 4)

	union := a.Clone()
	union.UnionWith(b)
	if union.Len() != 4 {
		t.Fatalf("expected union of 4, got %d", union.Len())
	}

	diff := a.Clone()
	diff.DifferenceWith(b)
	if diff.Len() != 2 || diff.Contains(3) {
		t.Fatalf("unexpected difference %v", diff)
	}

	inter := a.Clone()
	inter.IntersectWith(b)
	if inter.Len() != 1 || !inter.Contains(3) {
		t.Fatalf("unexpected intersection %v", inter)
	}
}

func TestCardSetCloneIsIndependent(t *testing.T) {
	a := SetOf[CardID](1, 2)
	b := a.Clone()
	b.Insert(3)

	if a.Contains(3) {
		t.Fatalf("clone insert must not affect the original")
	}
}

func TestCardSetReinterpret(t *testing.T) {
	hand := SetOf[HandCardID](4, 8)
	flat := Reinterpret[CardID](hand)

	if !flat.Contains(4) || !flat.Contains(8) || flat.Len() != 2 {
		t.Fatalf("unexpected reinterpreted set %v", flat)
	}
}
