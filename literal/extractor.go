package literal

import (
	"fmt"

	"github.com/coregx/glushkov/ast"
	"github.com/coregx/glushkov/position"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits keep extraction bounded on complex patterns:
//   - MaxLiterals: caps the size of every intermediate set
//   - MaxLiteralLen: the target length; longer prefixes, suffixes and factors are shortened to it
//   - MaxClassSize: character sets larger than this poison the sets of their node
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals in any set. A set that
	// would grow past it is poisoned. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each literal. Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the size of character sets to expand. Default: 16.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  16,
	}
}

// Sets are the literal sets extracted from one node.
//
// All is the exact (finite) language of the node. Prefix holds a prefix of
// every string of the language, Suffix a suffix and Factor a substring.
// Each may be poisoned.
type Sets struct {
	All    *Seq
	Prefix *Seq
	Suffix *Seq
	Factor *Seq
}

func poisoned() Sets { return Sets{} }

// Mode tells how a selected literal relates to the matches of its pattern.
type Mode uint8

const (
	// ModePrefix literals start every match.
	ModePrefix Mode = iota
	// ModeFactor literals occur somewhere inside every match.
	ModeFactor
)

func (m Mode) String() string {
	if m == ModePrefix {
		return "prefix"
	}
	return "factor"
}

// Factor is the literal set selected to accelerate a pattern.
type Factor struct {
	Mode Mode
	// Seq holds the literals. It is poisoned when the pattern matches the
	// empty string, which no literal occurrence can witness.
	Seq *Seq
	// Fallback is set when no useful literal exists and Seq holds the
	// single bytes a match can start with.
	Fallback bool
}

// Extractor computes the literal sets of a normalized pattern.
//
// The analysis is an attribute grammar over the tree: each node derives its
// four sets from those of its children. Unbounded repetition and optional
// parts poison the prefix, suffix and factor sets of their node because a
// guaranteed substring may be absent from them.
//
// Example:
//
//	n := ast.Normalize(must(ast.Parse("(foo|bar)baz")))
//	sets := literal.New(literal.DefaultConfig()).Extract(n)
//	// sets.All = ["barbaz" "foobaz"]
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// Extract computes the sets of a normalized node. It panics on a node that
// is not in normal form.
func (e *Extractor) Extract(n *ast.Node) Sets {
	switch n.Kind {
	case ast.KindEmpty:
		return Sets{All: emptyString(), Prefix: emptyString(), Suffix: emptyString(), Factor: emptyString()}
	case ast.KindChar, ast.KindRange:
		return e.class(n.Lo, n.Hi)
	case ast.KindGroup:
		return e.Extract(n.Sub())
	case ast.KindAlternatives:
		return e.alternatives(n.Subs)
	case ast.KindConcat:
		subs := make([]Sets, len(n.Subs))
		for i, sub := range n.Subs {
			subs[i] = e.Extract(sub)
		}
		return e.concat(subs)
	case ast.KindOptional:
		sub := e.Extract(n.Sub())
		return Sets{All: Union(sub.All, emptyString(), e.config.MaxLiterals)}
	case ast.KindStar:
		return poisoned()
	}
	panic(fmt.Sprintf("literal: node kind %v is not in normal form", n.Kind))
}

// Select picks the literal set used to accelerate the pattern rooted at n,
// whose position analysis is a.
//
// Prefix mode is preferred when its literals are at least as selective as
// the best factor. When neither is usable the pattern falls back to the
// single bytes its matches can start with.
func (e *Extractor) Select(n *ast.Node, a *position.Analysis) Factor {
	if a.Nullable() {
		return Factor{Mode: ModePrefix}
	}
	sets := e.Extract(n)
	prefix := Better(sets.All, sets.Prefix)
	best := Better(Better(prefix, sets.Factor), sets.Suffix)
	if prefix.Usable() && prefix.Score() >= best.Score() {
		seq := prefix.Clone()
		seq.Minimize()
		return Factor{Mode: ModePrefix, Seq: seq}
	}
	if best.Usable() {
		return Factor{Mode: ModeFactor, Seq: best}
	}
	return Factor{Mode: ModePrefix, Seq: FirstBytes(a), Fallback: true}
}

// FirstBytes returns the one-byte literals every match of a starts with.
func FirstBytes(a *position.Analysis) *Seq {
	var seen [256]bool
	s := &Seq{}
	a.First.Each(func(p int) {
		r := a.Chars[p]
		for c := int(r.Lo); c <= int(r.Hi); c++ {
			if !seen[c] {
				seen[c] = true
				s.lits = append(s.lits, []byte{byte(c)})
			}
		}
	})
	s.canonicalize()
	return s
}

func (e *Extractor) class(lo, hi byte) Sets {
	if n := int(hi) - int(lo) + 1; n > e.config.MaxClassSize || n > e.config.MaxLiterals {
		return poisoned()
	}
	s := &Seq{}
	for c := int(lo); c <= int(hi); c++ {
		s.lits = append(s.lits, []byte{byte(c)})
	}
	return Sets{All: s, Prefix: s, Suffix: s, Factor: s}
}

func (e *Extractor) alternatives(subs []*ast.Node) Sets {
	// No alternative: the empty language, witnessed by no literal at all.
	out := Sets{All: &Seq{}, Prefix: &Seq{}, Suffix: &Seq{}, Factor: &Seq{}}
	limit := e.config.MaxLiterals
	for _, sub := range subs {
		s := e.Extract(sub)
		out.All = Union(out.All, s.All, limit)
		out.Prefix = Union(out.Prefix, s.Prefix, limit)
		out.Suffix = Union(out.Suffix, s.Suffix, limit)
		out.Factor = Union(out.Factor, s.Factor, limit)
	}
	return out
}

func (e *Extractor) concat(subs []Sets) Sets {
	m := len(subs)
	if m == 0 {
		return Sets{All: emptyString(), Prefix: emptyString(), Suffix: emptyString(), Factor: emptyString()}
	}

	// prefixFrom[k] is the prefix set of subs[k:], suffixTo[k] the suffix
	// set of subs[:k].
	prefixFrom := make([]*Seq, m+1)
	suffixTo := make([]*Seq, m+1)
	prefixFrom[m] = emptyString()
	suffixTo[0] = emptyString()
	for k := 0; k < m; k++ {
		prefixFrom[k] = e.prefixOf(subs[k:])
		suffixTo[k+1] = e.suffixOf(subs[:k+1])
	}

	out := Sets{
		All:    e.allOf(subs),
		Prefix: prefixFrom[0],
		Suffix: suffixTo[m],
	}
	var factor *Seq
	for _, s := range subs {
		factor = Better(factor, s.Factor)
	}
	for k := 0; k <= m; k++ {
		joined := Cross(suffixTo[k], prefixFrom[k], e.config.MaxLiterals, e.config.MaxLiteralLen, CutKeepPrefix)
		factor = Better(factor, joined)
	}
	out.Factor = factor
	return out
}

func (e *Extractor) allOf(subs []Sets) *Seq {
	all := emptyString()
	for _, s := range subs {
		all = Cross(all, s.All, e.config.MaxLiterals, e.config.MaxLiteralLen, CutPoison)
		if all == nil {
			return nil
		}
	}
	return all
}

// prefixOf grows the exact language of a leading run of subs and closes it
// with the prefix set of the next node, keeping the best such candidate.
func (e *Extractor) prefixOf(subs []Sets) *Seq {
	var best *Seq
	running := emptyString()
	for _, s := range subs {
		best = Better(best, Cross(running, s.Prefix, e.config.MaxLiterals, e.config.MaxLiteralLen, CutKeepPrefix))
		running = Cross(running, s.All, e.config.MaxLiterals, e.config.MaxLiteralLen, CutPoison)
		if running == nil {
			return best
		}
	}
	return Better(best, running)
}

// suffixOf mirrors prefixOf from the right.
func (e *Extractor) suffixOf(subs []Sets) *Seq {
	var best *Seq
	running := emptyString()
	for i := len(subs) - 1; i >= 0; i-- {
		s := subs[i]
		best = Better(best, Cross(s.Suffix, running, e.config.MaxLiterals, e.config.MaxLiteralLen, CutKeepSuffix))
		running = Cross(s.All, running, e.config.MaxLiterals, e.config.MaxLiteralLen, CutPoison)
		if running == nil {
			return best
		}
	}
	return Better(best, running)
}
