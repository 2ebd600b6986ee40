package glushkov

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/coregx/glushkov/extend"
	"github.com/coregx/glushkov/literal"
	"github.com/coregx/glushkov/match"
	"github.com/coregx/glushkov/position"
	"github.com/coregx/glushkov/prefilter"
)

// SetMatch is a match of one pattern of a Set.
type SetMatch struct {
	// Pattern is the index of the pattern in the slice given to CompileSet.
	Pattern    int
	Start, End int
	Text       string
}

func (m SetMatch) String() string {
	return fmt.Sprintf("%d(%d,%d,%q)", m.Pattern, m.Start, m.End, m.Text)
}

func compareSetMatch(a, b SetMatch) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(a.End, b.End); c != 0 {
		return c
	}
	return cmp.Compare(a.Pattern, b.Pattern)
}

type planKind uint8

const (
	// planNever: the pattern accepts nothing.
	planNever planKind = iota
	// planDirect: the pattern accepts the empty string and is scanned by
	// its own Matcher.
	planDirect
	// planLiteral: matches are found by extending literal occurrences.
	planLiteral
)

type plan struct {
	kind   planKind
	factor literal.Factor
	// lag bounds how far before an occurrence of one of the literals a
	// match witnessed by it can start. -1 when unbounded.
	lag int
}

// watermark returns the largest start at which every match of the pattern
// is known once the occurrences up to offset at have been extended.
func (p plan) watermark(at int) int {
	if p.lag < 0 || at < 0 {
		return math.MinInt
	}
	return at - p.lag
}

type owner struct {
	pattern int
	ext     extend.Extender
}

// Set matches many patterns in one pass over the input.
//
// The literals selected for every pattern are merged into one prefilter;
// each occurrence is handed to the extenders of the patterns owning the
// literal. Patterns matching the empty string, which no literal can
// witness, run their own matcher alongside. For every pattern the matches
// reported equal those of the pattern's own Regex under the same policy.
//
// A Set is immutable and safe for concurrent use; each scan uses its own
// SetScanner.
type Set struct {
	regexes []*Regex
	config  Config
	plans   []plan
	finder  prefilter.Finder
	owners  [][]owner
	direct  []int

	// lag is the largest plan lag; unbounded is set when any is -1.
	lag       int
	unbounded bool

	stats counters
}

// CompileSet compiles patterns into a Set with DefaultConfig.
func CompileSet(patterns []string) (*Set, error) {
	return CompileSetWithConfig(patterns, DefaultConfig())
}

// MustCompileSet is like CompileSet but panics on error.
func MustCompileSet(patterns []string) *Set {
	s, err := CompileSet(patterns)
	if err != nil {
		panic("glushkov: CompileSet: " + err.Error())
	}
	return s
}

// CompileSetWithConfig compiles patterns into a Set. The config's Policy
// applies to every pattern.
func CompileSetWithConfig(patterns []string, config Config) (*Set, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s := &Set{
		regexes: make([]*Regex, len(patterns)),
		config:  config,
		plans:   make([]plan, len(patterns)),
	}
	for i, p := range patterns {
		re, err := compile(p, i, config)
		if err != nil {
			return nil, err
		}
		s.regexes[i] = re
	}

	literalLen := s.literalLen()
	index := make(map[string]int)
	var lits [][]byte
	for i, re := range s.regexes {
		a := re.prog.Analysis
		switch {
		case re.MinLength() == position.Infinite:
			continue
		case a.Nullable():
			s.plans[i] = plan{kind: planDirect}
			s.direct = append(s.direct, i)
			continue
		}

		f := re.factor(literalLen)
		pl := plan{kind: planLiteral, factor: f}
		if f.Mode == literal.ModeFactor {
			pl.lag = -1
			if a.MaxLength != position.Unbounded {
				pl.lag = a.MaxLength - f.Seq.MinLen()
			}
		}
		s.plans[i] = pl
		if pl.lag < 0 {
			s.unbounded = true
		} else {
			s.lag = max(s.lag, pl.lag)
		}

		factory := extend.New(re.prog, f.Mode)
		for _, lit := range f.Seq.Literals() {
			k, ok := index[string(lit)]
			if !ok {
				k = len(lits)
				index[string(lit)] = k
				lits = append(lits, lit)
				s.owners = append(s.owners, nil)
			}
			s.owners[k] = append(s.owners[k], owner{pattern: i, ext: factory.ForLiteral(lit)})
		}
	}

	finder, err := prefilter.NewBuilder(lits).Build()
	if err != nil {
		return nil, fmt.Errorf("glushkov: building literal finder: %w", err)
	}
	s.finder = finder
	return s, nil
}

// literalLen returns the target literal length: the shortest match among
// the patterns that need literals, raised to Config.MinFactorLen and capped
// at Config.MaxFactorLen.
func (s *Set) literalLen() int {
	shortest := 0
	for _, re := range s.regexes {
		n := re.MinLength()
		if n == 0 || n == position.Infinite {
			continue
		}
		if shortest == 0 || n < shortest {
			shortest = n
		}
	}
	return min(max(s.config.MinFactorLen, shortest, 1), s.config.MaxFactorLen)
}

// Len returns the number of patterns.
func (s *Set) Len() int {
	return len(s.regexes)
}

// Regex returns the compiled i-th pattern.
func (s *Set) Regex(i int) *Regex {
	return s.regexes[i]
}

// Patterns returns the source text of the patterns.
func (s *Set) Patterns() []string {
	out := make([]string, len(s.regexes))
	for i, re := range s.regexes {
		out[i] = re.pattern
	}
	return out
}

// Factor returns the literals the i-th pattern is found by. ok is false
// when the pattern is scanned directly or never matches.
func (s *Set) Factor(i int) (f literal.Factor, ok bool) {
	pl := s.plans[i]
	return pl.factor, pl.kind == planLiteral
}

// Literals returns the merged literal set searched for.
func (s *Set) Literals() [][]byte {
	return s.finder.Literals()
}

// HeapBytes returns the heap memory held by the literal finder's tables.
func (s *Set) HeapBytes() int {
	return s.finder.HeapBytes()
}

// Scanner returns a scanner over haystack.
func (s *Set) Scanner(haystack []byte) *SetScanner {
	s.stats.scans.Add(1)
	s.stats.directScans.Add(uint64(len(s.direct)))
	sc := &SetScanner{
		set:      s,
		hay:      haystack,
		cur:      match.NewBytesCursor(haystack),
		bufs:     make([]*match.Buffer, len(s.regexes)),
		isActive: make([]bool, len(s.regexes)),
		last:     -1,
		bound:    math.MinInt,
	}
	for i, pl := range s.plans {
		if pl.kind == planLiteral {
			sc.bufs[i] = match.NewBuffer(s.config.Policy)
		}
	}
	for _, i := range s.direct {
		sc.directs = append(sc.directs, directScan{
			pattern: i,
			m:       s.regexes[i].Matcher(match.NewBytesCursor(haystack)),
		})
	}
	return sc
}

// FindAll returns every match in haystack, ordered by start, end and
// pattern index.
func (s *Set) FindAll(haystack []byte) []SetMatch {
	sc := s.Scanner(haystack)
	var out []SetMatch
	for {
		m, ok := sc.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

// FindAllString is like FindAll for a string.
func (s *Set) FindAllString(haystack string) []SetMatch {
	return s.FindAll([]byte(haystack))
}

// Match reports whether any pattern matches in haystack.
func (s *Set) Match(haystack []byte) bool {
	_, ok := s.Scanner(haystack).Next()
	return ok
}

// Stats returns the accumulated counters of all scans.
func (s *Set) Stats() Stats {
	return s.stats.snapshot()
}

// ResetStats clears the counters.
func (s *Set) ResetStats() {
	s.stats.reset()
}

type directScan struct {
	pattern int
	m       *match.Matcher
	next    match.Match
	ok      bool
	primed  bool
}

// SetScanner streams the matches of a Set over one haystack.
//
// The prefilter reports occurrences one start offset at a time. After each
// batch a pattern's buffered matches are released up to its watermark: the
// offset below which no later occurrence can witness another match of that
// pattern. Released matches are held until no pattern can still produce an
// earlier one.
//
// A SetScanner is not safe for concurrent use.
type SetScanner struct {
	set *Set
	hay []byte
	cur *match.BytesCursor

	bufs     []*match.Buffer
	active   []int
	isActive []bool
	directs  []directScan

	batch []prefilter.Occurrence
	out   []SetMatch

	at    int // next prefilter offset
	last  int // start of the last batch, -1 before the first
	bound int // every match still to come starts at or after bound
	done  bool
}

// Next returns the next match, or false when there are no more.
func (sc *SetScanner) Next() (SetMatch, bool) {
	for {
		if len(sc.out) > 0 && (sc.done || sc.out[0].Start < sc.bound) {
			m := sc.out[0]
			sc.out = sc.out[1:]
			sc.set.stats.matches.Add(1)
			return m, true
		}
		if sc.done {
			return SetMatch{}, false
		}
		sc.advance()
	}
}

// advance extends the next batch of occurrences, or drains everything at
// the end of the haystack.
func (sc *SetScanner) advance() {
	s := sc.set
	sc.batch = s.finder.FindAt(sc.hay, sc.at, sc.batch[:0])
	if len(sc.batch) == 0 {
		for _, i := range sc.active {
			sc.release(i, math.MaxInt)
			sc.isActive[i] = false
		}
		sc.active = sc.active[:0]
		sc.pullDirect(math.MaxInt)
		sc.done = true
		return
	}

	p := sc.batch[0].Start
	sc.at = p + 1
	s.stats.occurrences.Add(uint64(len(sc.batch)))
	for _, occ := range sc.batch {
		owners := s.owners[occ.Literal]
		s.stats.extensions.Add(uint64(len(owners)))
		for _, o := range owners {
			sc.extend(o, occ)
		}
	}
	sc.last = p

	kept := sc.active[:0]
	for _, i := range sc.active {
		sc.release(i, s.plans[i].watermark(p))
		if sc.bufs[i].Len() > 0 {
			kept = append(kept, i)
		} else {
			sc.isActive[i] = false
		}
	}
	sc.active = kept

	sc.bound = math.MinInt
	if !s.unbounded {
		sc.bound = p + 1 - s.lag
	}
	sc.pullDirect(sc.bound)
}

func (sc *SetScanner) extend(o owner, occ prefilter.Occurrence) {
	buf := sc.bufs[o.pattern]
	// Matches starting at or before the previous watermark were released;
	// the border keeps them from being reported twice.
	buf.Advance(sc.set.plans[o.pattern].watermark(sc.last) + 1)
	o.ext.Extend(sc.cur, occ.Start, occ.End, buf.Border(), func(sp match.Span) {
		if buf.Add(sp.Start, sp.End) && !sc.isActive[o.pattern] {
			sc.isActive[o.pattern] = true
			sc.active = append(sc.active, o.pattern)
		}
	})
}

// release moves the buffered matches of pattern i starting at or before w
// to the output.
func (sc *SetScanner) release(i, w int) {
	buf := sc.bufs[i]
	noOverlap := buf.Policy().Has(match.NoOverlap)
	for buf.Len() > 0 && buf.MinStart() <= w {
		sp := buf.Pop()
		sc.emit(i, sp.Start, sp.End)
		if noOverlap {
			buf.Advance(sp.End)
		}
	}
	if w < math.MaxInt {
		buf.Advance(w + 1)
	}
}

// pullDirect moves the matches of directly scanned patterns starting before
// bound to the output.
func (sc *SetScanner) pullDirect(bound int) {
	for k := range sc.directs {
		d := &sc.directs[k]
		if !d.primed {
			d.next, d.ok = d.m.FindNext()
			d.primed = true
		}
		for d.ok && d.next.Start < bound {
			sc.emit(d.pattern, d.next.Start, d.next.End)
			d.next, d.ok = d.m.FindNext()
		}
	}
}

func (sc *SetScanner) emit(pattern, start, end int) {
	m := SetMatch{Pattern: pattern, Start: start, End: end, Text: string(sc.hay[start:end])}
	i, _ := slices.BinarySearchFunc(sc.out, m, compareSetMatch)
	sc.out = slices.Insert(sc.out, i, m)
}
