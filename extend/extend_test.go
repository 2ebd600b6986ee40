package extend_test

import (
	"bytes"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/glushkov/ast"
	"github.com/coregx/glushkov/automaton"
	"github.com/coregx/glushkov/extend"
	"github.com/coregx/glushkov/literal"
	"github.com/coregx/glushkov/match"
	"github.com/coregx/glushkov/position"
)

type compiled struct {
	node *ast.Node
	an   *position.Analysis
	prog *automaton.Program
}

func compile(t testing.TB, pattern string) compiled {
	t.Helper()
	n, err := ast.Parse(pattern)
	require.NoError(t, err)
	n = ast.Normalize(n)
	a := position.Analyze(n)
	prog, err := automaton.Compile(a, automaton.DefaultConfig())
	require.NoError(t, err)
	return compiled{node: n, an: a, prog: prog}
}

func direct(prog *automaton.Program, text []byte) []match.Span {
	m := match.NewMatcher(prog, match.NewBytesCursor(text), match.DefaultPolicy)
	var out []match.Span
	for _, mt := range m.FindAll() {
		out = append(out, match.Span{Start: mt.Start, End: mt.End})
	}
	return out
}

// viaLiterals finds every occurrence of every literal by brute force and
// extends it, returning the sorted, deduplicated union.
func viaLiterals(f extend.Factory, lits *literal.Seq, text []byte, border int) []match.Span {
	seen := make(map[match.Span]bool)
	var out []match.Span
	cur := match.NewBytesCursor(text)
	for _, lit := range lits.Literals() {
		x := f.ForLiteral(lit)
		for i := 0; i+len(lit) <= len(text); i++ {
			if !bytes.Equal(text[i:i+len(lit)], lit) {
				continue
			}
			x.Extend(cur, i, i+len(lit), border, func(sp match.Span) {
				if !seen[sp] {
					seen[sp] = true
					out = append(out, sp)
				}
			})
		}
	}
	slices.SortFunc(out, func(a, b match.Span) int {
		if a.Less(b) {
			return -1
		}
		if b.Less(a) {
			return 1
		}
		return 0
	})
	return out
}

func randomText(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = "abcdxy"[rng.Intn(6)]
	}
	return b
}

func TestExtendersAgreeWithDirectEngine(t *testing.T) {
	patterns := []string{
		"abc", "a(b|c)d", "x*yab", "(ab|cd)+", "a.b", "ab{1,3}c", "y?ab",
		"(a|bc)(d|xy)", "d[a-c]*x", "a+b+", "c(ab)*d",
	}
	ex := literal.New(literal.DefaultConfig())
	rng := rand.New(rand.NewSource(11))
	for _, p := range patterns {
		c := compile(t, p)
		sel := ex.Select(c.node, c.an)
		require.True(t, sel.Seq.Usable(), p)
		sets := ex.Extract(c.node)
		for i := 0; i < 30; i++ {
			text := randomText(rng, 4+rng.Intn(14))
			want := direct(c.prog, text)

			got := viaLiterals(extend.New(c.prog, sel.Mode), sel.Seq, text, 0)
			require.Equal(t, want, got, "selected %v pattern %q text %q", sel.Mode, p, text)

			// Any factor set works in factor mode.
			for _, seq := range []*literal.Seq{sets.Factor, sets.Prefix, sets.Suffix} {
				if !seq.Usable() {
					continue
				}
				got = viaLiterals(extend.NewFactor(c.prog), seq, text, 0)
				require.Equal(t, want, got, "factor set %s pattern %q text %q", seq, p, text)
			}
		}
	}
}

func TestFallbackFirstBytes(t *testing.T) {
	c := compile(t, "[a-z]+1")
	sel := literal.New(literal.DefaultConfig()).Select(c.node, c.an)
	require.True(t, sel.Fallback || sel.Mode == literal.ModeFactor)

	first := literal.FirstBytes(c.an)
	text := []byte("ab1 zz9 q1")
	got := viaLiterals(extend.NewPrefix(c.prog), first, text, 0)
	require.Equal(t, direct(c.prog, text), got)
}

func TestExtendRespectsBorder(t *testing.T) {
	c := compile(t, "a+b")
	text := []byte("aaab")
	lits := literal.NewSeq("b")

	got := viaLiterals(extend.NewFactor(c.prog), lits, text, 0)
	require.Equal(t, []match.Span{{Start: 0, End: 4}, {Start: 1, End: 4}, {Start: 2, End: 4}}, got)

	got = viaLiterals(extend.NewFactor(c.prog), lits, text, 2)
	require.Equal(t, []match.Span{{Start: 2, End: 4}}, got)

	got = viaLiterals(extend.NewPrefix(c.prog), literal.NewSeq("a"), text, 2)
	require.Equal(t, []match.Span{{Start: 2, End: 4}}, got)
}

func TestForLiteralIsCached(t *testing.T) {
	c := compile(t, "abc")
	f := extend.NewPrefix(c.prog)
	require.Same(t, f.ForLiteral([]byte("ab")), f.ForLiteral([]byte("ab")))
	require.NotSame(t, f.ForLiteral([]byte("ab")), f.ForLiteral([]byte("abc")))

	g := extend.NewFactor(c.prog)
	require.Equal(t, literal.ModeFactor, g.Mode())
	require.Same(t, g.ForLiteral([]byte("b")), g.ForLiteral([]byte("b")))
}

func TestPrefixLiteralMismatch(t *testing.T) {
	c := compile(t, "abc")
	x := extend.NewPrefix(c.prog).ForLiteral([]byte("xb"))
	called := false
	x.Extend(match.NewBytesCursor([]byte("xbc")), 0, 2, 0, func(match.Span) { called = true })
	require.False(t, called, "a literal the pattern cannot start with yields nothing")
}
