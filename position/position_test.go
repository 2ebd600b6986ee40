package position

import (
	"testing"

	"github.com/coregx/glushkov/ast"
	"github.com/coregx/glushkov/internal/bitset"
)

func analyze(t *testing.T, pattern string) *Analysis {
	t.Helper()
	n, err := ast.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return Analyze(ast.Normalize(n))
}

func TestAnalyzeConcatStar(t *testing.T) {
	// a*b: position 1 = 'a', position 2 = 'b'
	a := analyze(t, "a*b")
	if a.N != 2 {
		t.Fatalf("N = %d, want 2", a.N)
	}
	w := a.Width()
	checks := []struct {
		name string
		got  bitset.Set
		want bitset.Set
	}{
		{"First", a.First, bitset.Of(w, 1, 2)},
		{"Last", a.Last, bitset.Of(w, 2)},
		{"Final", a.Final, bitset.Of(w, 2)},
		{"Follow(0)", a.Follow[0], bitset.Of(w, 1, 2)},
		{"Follow(1)", a.Follow[1], bitset.Of(w, 1, 2)},
		{"Follow(2)", a.Follow[2], bitset.New(w)},
		{"Precede(1)", a.Precede[1], bitset.Of(w, 0, 1)},
		{"Precede(2)", a.Precede[2], bitset.Of(w, 0, 1)},
	}
	for _, c := range checks {
		if !c.got.Equal(c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if a.MinLength != 1 || a.MaxLength != Unbounded {
		t.Errorf("lengths = (%d, %d), want (1, unbounded)", a.MinLength, a.MaxLength)
	}
}

func TestAnalyzeNullableConcat(t *testing.T) {
	// a b? c: 'a' must be followed by both 'b' and 'c'.
	a := analyze(t, "ab?c")
	w := a.Width()
	if !a.Follow[1].Equal(bitset.Of(w, 2, 3)) {
		t.Errorf("Follow(a) = %v", a.Follow[1])
	}
	if !a.Precede[3].Equal(bitset.Of(w, 1, 2)) {
		t.Errorf("Precede(c) = %v", a.Precede[3])
	}
	if a.MinLength != 2 || a.MaxLength != 3 {
		t.Errorf("lengths = (%d, %d), want (2, 3)", a.MinLength, a.MaxLength)
	}
}

func TestAnalyzeNullablePattern(t *testing.T) {
	a := analyze(t, "a?b?")
	if !a.Nullable() {
		t.Fatal("a?b? accepts the empty string")
	}
	if !a.Final.Has(0) {
		t.Error("Final must contain 0 when the pattern is nullable")
	}
	if !a.First.Equal(bitset.Of(a.Width(), 1, 2)) {
		t.Errorf("First = %v", a.First)
	}
	if !a.Last.Equal(bitset.Of(a.Width(), 1, 2)) {
		t.Errorf("Last = %v", a.Last)
	}
}

func TestAnalyzeInvariants(t *testing.T) {
	patterns := []string{"abc", "a|ab", "(ab)+", "[a-c]{2,4}x", "(a|b)*c(d|e)?", "x*", "(?:)"}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			a := analyze(t, p)
			if !a.Follow[0].Equal(a.First) {
				t.Errorf("Follow(0) = %v, First = %v", a.Follow[0], a.First)
			}
			a.First.Each(func(f int) {
				if !a.Precede[f].Has(0) {
					t.Errorf("Precede(%d) lacks 0", f)
				}
			})
			for q := 0; q <= a.N; q++ {
				a.Follow[q].Each(func(r int) {
					if !a.Precede[r].Has(q) {
						t.Errorf("%d ∈ Follow(%d) but %d ∉ Precede(%d)", r, q, q, r)
					}
				})
			}
			for c := 0; c < 256; c++ {
				if a.Accepts(0, byte(c)) {
					t.Fatal("position 0 must not consume input")
				}
			}
		})
	}
}

func TestAnalyzeEmptyLanguage(t *testing.T) {
	a := Analyze(ast.Concat(ast.Char('a'), ast.Alternatives()))
	if a.MinLength != Infinite {
		t.Errorf("MinLength = %d, want Infinite", a.MinLength)
	}
	if !a.Final.IsEmpty() {
		t.Errorf("Final = %v, want empty", a.Final)
	}
}

func TestAnalyzeRejectsRawNodes(t *testing.T) {
	raw := []*ast.Node{
		ast.Literal("ab"),
		ast.Loop(ast.Char('a'), 2, 3),
		ast.Concat(ast.Char('a'), ast.AnyChar(false)),
	}
	for _, n := range raw {
		t.Run(n.String(), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Analyze accepted a non-normalized tree")
				}
			}()
			Analyze(n)
		})
	}
}
