package automaton

import (
	"errors"
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/glushkov/ast"
	"github.com/coregx/glushkov/internal/bitset"
	"github.com/coregx/glushkov/position"
)

func analyze(t *testing.T, pattern string) *position.Analysis {
	t.Helper()
	n, err := ast.Parse(pattern)
	require.NoError(t, err)
	return position.Analyze(ast.Normalize(n))
}

func compile(t *testing.T, pattern string) *Program {
	t.Helper()
	p, err := Compile(analyze(t, pattern), DefaultConfig())
	require.NoError(t, err)
	return p
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

var testPatterns = []string{
	"a*b", "a|ab", "(ab)+", "a?b?", "abc", "[a-c]{2,3}", "(a|b)*c(a|b)?",
	"a(b|c)*d", "(aa|b)*a", "x", "(?:)", "b+a+", "(a|ab)(c|bcd)",
}

func TestAcceptsMatchesStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, pat := range testPatterns {
		t.Run(pat, func(t *testing.T) {
			p := compile(t, pat)
			std := regexp.MustCompile(`^(?:` + pat + `)$`)
			for i := 0; i < 300; i++ {
				s := randomString(rng, "abcd", 7)
				require.Equal(t, std.MatchString(s), p.Anchored.Accepts([]byte(s)),
					"forward acceptance of %q", s)
			}
		})
	}
}

func TestDuality(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, pat := range testPatterns {
		t.Run(pat, func(t *testing.T) {
			p := compile(t, pat)
			for i := 0; i < 300; i++ {
				s := randomString(rng, "abcd", 7)
				require.Equal(t, p.Anchored.Accepts([]byte(s)), p.Dual.Accepts([]byte(reverse(s))),
					"duality for %q", s)
			}
		})
	}
}

func TestMinLength(t *testing.T) {
	for _, pat := range testPatterns {
		t.Run(pat, func(t *testing.T) {
			a := analyze(t, pat)
			p, err := Compile(a, DefaultConfig())
			require.NoError(t, err)
			require.Equal(t, a.MinLength, p.MinLength())
			require.Equal(t, a.MinLength, p.Dual.MinLength())
		})
	}
}

func TestMinLengthEmptyLanguage(t *testing.T) {
	a := position.Analyze(ast.Concat(ast.Char('a'), ast.Alternatives()))
	auto, err := Build(a, Forward, 0, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, position.Infinite, auto.MinLength())
	require.False(t, auto.Accepts([]byte("a")))
}

func TestMemoizationIsValueAddressed(t *testing.T) {
	a := analyze(t, "(a|b)*c")
	first, err := Build(a, Forward, 0, DefaultConfig())
	require.NoError(t, err)
	second, err := Build(a, Forward, 0, DefaultConfig(), bitset.Of(a.Width(), 1, 2))
	require.NoError(t, err)

	for id := 0; id < first.NumStates(); id++ {
		v := first.Set(StateID(id))
		got, ok := first.Lookup(v)
		require.True(t, ok)
		require.Equal(t, StateID(id), got)

		// Equal vectors have equal successors regardless of discovery order.
		other, ok := second.Lookup(v)
		require.True(t, ok)
		for c := 0; c < 256; c++ {
			require.True(t, first.Set(first.Next(StateID(id), byte(c))).Equal(
				second.Set(second.Next(other, byte(c)))))
		}
	}
}

func TestSelfLoopReturnsToInitial(t *testing.T) {
	p := compile(t, "abc")
	s := p.Scan.Replay(p.Scan.Initial(), []byte("xab"))
	require.False(t, p.Scan.IsInitial(s))
	s = p.Scan.Next(s, 'c')
	require.True(t, p.Scan.IsFinal(s))
	s = p.Scan.Next(s, 'z')
	require.True(t, p.Scan.IsInitial(s))

	// Without SelfLoop a mismatch is fatal.
	require.True(t, p.Anchored.IsDead(p.Anchored.Replay(p.Anchored.Initial(), []byte("x"))))
}

func TestFactorDualReadsInterior(t *testing.T) {
	p := compile(t, "xa*bcy")
	// Reading "bc" backwards from an interior anchor leaves state that can
	// reach the start through "xa".
	s := p.FactorDual.ReplayBackward(p.FactorDual.Initial(), []byte("bc"))
	require.False(t, p.FactorDual.IsDead(s))
	require.False(t, p.FactorDual.IsFinal(s))
	s = p.FactorDual.ReplayBackward(s, []byte("xaa"))
	require.True(t, p.FactorDual.IsFinal(s))

	dead := p.FactorDual.ReplayBackward(p.FactorDual.Initial(), []byte("cb"))
	require.True(t, p.FactorDual.IsDead(dead))
}

func TestDualSeedsCoverScanStates(t *testing.T) {
	for _, limit := range []int{0, 10} {
		cfg := DefaultConfig()
		cfg.PowerSetLimit = limit
		a := analyze(t, "(a|b)*(ab|ba)")
		p, err := Compile(a, cfg)
		require.NoError(t, err)
		require.Equal(t, limit > 0, p.PowerSetSeeded())
		for id := 0; id < p.Scan.NumStates(); id++ {
			want := p.Scan.Set(StateID(id)).Intersect(a.Final)
			require.True(t, p.Dual.Set(p.DualSeed(StateID(id))).Equal(want))
		}
	}
}

func TestBuildLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxStates = 2
	_, err := Build(analyze(t, "abcdef"), Forward, 0, cfg)
	require.True(t, errors.Is(err, ErrTooManyStates))
	var be *BuildError
	require.True(t, errors.As(err, &be))
	require.Equal(t, Forward, be.Direction)

	cfg = DefaultConfig()
	cfg.MaxPositions = 3
	_, err = Build(analyze(t, "abcd"), Reverse, 0, cfg)
	require.True(t, errors.Is(err, ErrTooManyPositions))
}

func TestByteClasses(t *testing.T) {
	a := analyze(t, "a*[b-d]")
	auto, err := Build(a, Forward, 0, DefaultConfig())
	require.NoError(t, err)
	cls := auto.Classes()
	require.Equal(t, 4, cls.Len())
	require.Equal(t, cls.Get('b'), cls.Get('d'))
	require.NotEqual(t, cls.Get('a'), cls.Get('b'))
	require.Equal(t, cls.Get(0x00), cls.Get('`'))
	require.Equal(t, []byte{0x00, 'a', 'b', 'e'}, cls.Representatives())
}

func randomString(rng *rand.Rand, alphabet string, maxLen int) string {
	n := rng.Intn(maxLen + 1)
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}
