package sparse

import "testing"

func TestSetInsertContains(t *testing.T) {
	s := NewSet(16)

	if !s.Insert(3) {
		t.Error("first Insert(3) should report newly inserted")
	}
	if s.Insert(3) {
		t.Error("second Insert(3) should report already present")
	}
	if !s.Contains(3) {
		t.Error("set should contain 3")
	}
	if s.Contains(4) {
		t.Error("set should not contain 4")
	}
}

func TestSetInsertionOrder(t *testing.T) {
	s := NewSet(32)
	for _, v := range []uint32{9, 1, 17, 1, 4} {
		s.Insert(v)
	}

	want := []uint32{9, 1, 17, 4}
	got := s.Values()
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Values()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSetClear(t *testing.T) {
	s := NewSet(8)
	s.Insert(1)
	s.Insert(5)
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("expected empty set after Clear, got len %d", s.Len())
	}
	if s.Contains(1) || s.Contains(5) {
		t.Error("cleared set should contain nothing")
	}
	// Reusable after Clear.
	if !s.Insert(5) {
		t.Error("Insert(5) after Clear should report newly inserted")
	}
}

func TestSetOutOfRange(t *testing.T) {
	s := NewSet(4)
	if s.Insert(4) {
		t.Error("Insert at capacity should be rejected")
	}
	if s.Contains(100) {
		t.Error("Contains above capacity should be false")
	}
}
