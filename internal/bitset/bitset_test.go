package bitset

import "testing"

func TestSetBasic(t *testing.T) {
	s := New(130)
	if !s.IsEmpty() {
		t.Fatal("new set should be empty")
	}
	s.Add(0)
	s.Add(64)
	s.Add(129)
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	for _, b := range []int{0, 64, 129} {
		if !s.Has(b) {
			t.Errorf("Has(%d) = false", b)
		}
	}
	if s.Has(1) || s.Has(130) || s.Has(-1) {
		t.Error("Has reports bits that were never added")
	}
	if got := s.String(); got != "{0 64 129}" {
		t.Errorf("String() = %q", got)
	}
}

func TestSetAlgebra(t *testing.T) {
	a := Of(10, 1, 2, 3)
	b := Of(10, 3, 4)

	if got := a.Union(b).Bits(); len(got) != 4 {
		t.Errorf("Union bits = %v", got)
	}
	if got := a.Intersect(b); !got.Equal(Of(10, 3)) {
		t.Errorf("Intersect = %v", got)
	}
	if !a.Intersects(b) {
		t.Error("a and b share bit 3")
	}
	if a.Intersects(Of(10, 7)) {
		t.Error("a does not contain 7")
	}
	// Union/Intersect must not mutate their operands.
	if !a.Equal(Of(10, 1, 2, 3)) {
		t.Errorf("a mutated: %v", a)
	}
}

func TestSetKey(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Set
		equal bool
	}{
		{"same bits", Of(70, 1, 69), Of(70, 69, 1), true},
		{"different bits", Of(70, 1), Of(70, 2), false},
		{"both empty", New(5), New(5), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.a.Key() == tt.b.Key()) != tt.equal {
				t.Errorf("Key equality = %v, want %v", !tt.equal, tt.equal)
			}
			if tt.a.Equal(tt.b) != tt.equal {
				t.Errorf("Equal = %v, want %v", !tt.equal, tt.equal)
			}
		})
	}
}

func TestSetFullAndClone(t *testing.T) {
	f := Full(65)
	if f.Len() != 65 {
		t.Errorf("Full(65).Len() = %d", f.Len())
	}
	c := f.Clone()
	c.And(Of(65, 3))
	if f.Len() != 65 || c.Len() != 1 {
		t.Error("Clone shares storage with the original")
	}
}

func TestSetWidthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on width mismatch")
		}
	}()
	New(3).Or(New(4))
}
