package ast

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, pattern string) *Node {
	t.Helper()
	n, err := Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return n
}

func TestNormalizeRewrites(t *testing.T) {
	tests := []struct {
		name string
		in   *Node
		want *Node
	}{
		{
			name: "literal becomes concat of chars",
			in:   Literal("ab"),
			want: Concat(Char('a'), Char('b')),
		},
		{
			name: "one byte literal",
			in:   Literal("x"),
			want: Char('x'),
		},
		{
			name: "empty literal",
			in:   Literal(""),
			want: Empty(),
		},
		{
			name: "class with merge",
			in:   Class(false, ByteRange{'c', 'd'}, ByteRange{'a', 'b'}, ByteRange{'x', 'x'}),
			want: Alternatives(Range('a', 'd'), Char('x')),
		},
		{
			name: "negated class",
			in:   Class(true, ByteRange{0x01, 0xFE}),
			want: Alternatives(Char(0x00), Char(0xFF)),
		},
		{
			name: "any char without newline",
			in:   AnyChar(false),
			want: Alternatives(Range(0x00, 0x09), Range(0x0B, 0xFF)),
		},
		{
			name: "loop zero zero",
			in:   Loop(Char('a'), 0, 0),
			want: Empty(),
		},
		{
			name: "question",
			in:   Loop(Char('a'), 0, 1),
			want: Optional(Char('a')),
		},
		{
			name: "plus",
			in:   Loop(Char('a'), 1, -1),
			want: Concat(Char('a'), Star(Char('a'))),
		},
		{
			name: "bounded",
			in:   Loop(Char('a'), 2, 4),
			want: Concat(Char('a'), Char('a'), Optional(Char('a')), Optional(Char('a'))),
		},
		{
			name: "unbounded from three",
			in:   Loop(Literal("ab"), 3, -1),
			want: Concat(
				Concat(Char('a'), Char('b')),
				Concat(Char('a'), Char('b')),
				Concat(Char('a'), Char('b')),
				Star(Concat(Char('a'), Char('b'))),
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if !got.IsNormal() {
				t.Errorf("Normalize(%v) is not in normal form", tt.in)
			}
		})
	}
}

func TestNormalizeClonesAreIndependent(t *testing.T) {
	n := Normalize(Loop(Char('a'), 3, 3))
	if n.Kind != KindConcat || len(n.Subs) != 3 {
		t.Fatalf("unexpected shape %v", n)
	}
	if n.Subs[0] == n.Subs[1] || n.Subs[1] == n.Subs[2] {
		t.Error("unrolled copies share a node")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	patterns := []string{
		"a", "abc", "a|b|c", "a*b", "(ab)+", "a?b?", "[a-z]{2,5}", "x{3,}",
		`\d+\.\d*`, "[^abc]", ".", "(?s).", "(foo|bar)baz", "((a|b)*c){0,2}",
		"(?i)hello", "a{0}",
	}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			once := Normalize(mustParse(t, p))
			twice := Normalize(once)
			if !once.Equal(twice) {
				t.Errorf("not idempotent:\n once  %v\n twice %v", once, twice)
			}
		})
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := Loop(Literal("ab"), 1, 2)
	before := in.Clone()
	Normalize(in)
	if !in.Equal(before) {
		t.Errorf("input mutated: %v", in)
	}
}

func TestParseUnsupported(t *testing.T) {
	tests := []string{`^a`, `a$`, `\bword`, `\Ax`}
	for _, p := range tests {
		t.Run(p, func(t *testing.T) {
			_, err := Parse(p)
			if !errors.Is(err, ErrUnsupported) {
				t.Errorf("Parse(%q) error = %v, want ErrUnsupported", p, err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Pattern != p {
				t.Errorf("Parse(%q) error %v is not a *ParseError for the pattern", p, err)
			}
		})
	}
}

func TestParseWideRunes(t *testing.T) {
	tests := []struct {
		pattern string
		want    *Node
	}{
		{"Ā", Literal("\xc4\x80")},
		{"é", Char(0xE9)},
		{"a日b", Literal("a\xe6\x97\xa5b")},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := Normalize(mustParse(t, tt.pattern))
			want := Normalize(tt.want)
			if !got.Equal(want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.pattern, got, want)
			}
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("(")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse(\"(\") error = %v, want *ParseError", err)
	}
}

func TestParseFoldCase(t *testing.T) {
	n := Normalize(mustParse(t, "(?i)k"))
	// 'K', 'k' and U+212A (Kelvin, as its UTF-8 bytes).
	want := Normalize(Alternatives(
		Class(false, ByteRange{'K', 'K'}, ByteRange{'k', 'k'}),
		Literal("\xe2\x84\xaa"),
	))
	if !n.Equal(want) {
		t.Errorf("got %v, want %v", n, want)
	}
}

func TestStringRoundTrip(t *testing.T) {
	patterns := []string{"a*b", "(ab)+", "a|ab", "[a-c]x?", `a\.b`, "x{2,3}"}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			n := Normalize(mustParse(t, p))
			back := Normalize(mustParse(t, n.String()))
			if back.String() != n.String() {
				t.Errorf("round trip changed %q into %q", n.String(), back.String())
			}
		})
	}
}
