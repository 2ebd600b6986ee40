// Package glushkov provides a regular expression engine built on the
// Glushkov position automaton, simulated bit-parallel, with literal-factor
// acceleration for scanning many patterns at once.
//
// A pattern is parsed with regexp/syntax, rewritten into a small normal form
// and analyzed into Glushkov positions. From the analysis four memoized
// automata are built: a forward scanner, an anchored forward automaton and
// two reverse (dual) automata used to recover where a match starts once its
// end is known. Matching therefore reports every match, not only the
// leftmost-first one, and a Policy selects among them.
//
// Basic usage:
//
//	re, err := glushkov.Compile(`a*b`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range re.Matches([]byte("aaab")) {
//	    fmt.Println(m) // (0,4,"aaab") (1,4,"aab") (2,4,"ab") (3,4,"b")
//	}
//
// Selecting matches:
//
//	config := glushkov.DefaultConfig()
//	config.Policy = match.LongestMatch | match.NoOverlap
//	re, err := glushkov.CompileWithConfig(`a*b`, config)
//	// re.Matches([]byte("aaab")) = [(0,4,"aaab")]
//
// Many patterns:
//
//	set, err := glushkov.CompileSet([]string{`abc`, `x[yz]+`})
//	for _, m := range set.FindAll([]byte("zzabcxyzaa")) {
//	    fmt.Println(m.Pattern, m.Start, m.End)
//	}
//
// The byte is the unit of matching. Runes above 0xFF in a pattern are
// matched as their UTF-8 encoding. Anchors and word boundaries are not
// supported.
package glushkov

import (
	"github.com/coregx/glushkov/ast"
	"github.com/coregx/glushkov/automaton"
	"github.com/coregx/glushkov/literal"
	"github.com/coregx/glushkov/match"
	"github.com/coregx/glushkov/position"
)

// Regex is a compiled regular expression.
//
// A Regex is immutable and safe to use concurrently from multiple
// goroutines. Each scan runs its own match.Matcher.
type Regex struct {
	pattern string
	config  Config
	node    *ast.Node
	prog    *automaton.Program
}

// Compile compiles a regular expression pattern with DefaultConfig.
//
// Example:
//
//	re, err := glushkov.Compile(`[a-z]+@example\.com`)
//	if err != nil {
//	    return err
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// Example:
//
//	var digits = glushkov.MustCompile(`[0-9]+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("glushkov: Compile(" + quote(pattern) + "): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a regular expression pattern with config.
// Compilation errors are returned as *CompileError.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return compile(pattern, -1, config)
}

func compile(pattern string, index int, config Config) (*Regex, error) {
	raw, err := ast.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Index: index, Err: err}
	}
	node := ast.Normalize(raw)
	prog, err := automaton.Compile(position.Analyze(node), config.automaton())
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Index: index, Err: err}
	}
	return &Regex{pattern: pattern, config: config, node: node, prog: prog}, nil
}

// QuoteMeta returns a string that escapes all regular expression
// metacharacters inside the argument text; the returned string is a regular
// expression matching the literal text.
//
// Example:
//
//	glushkov.QuoteMeta("1.5+2") // `1\.5\+2`
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+n)
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf = append(buf, '\\')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

func quote(s string) string {
	return "`" + s + "`"
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// Policy returns the selection policy the Regex was compiled with.
func (r *Regex) Policy() match.Policy {
	return r.config.Policy
}

// Program returns the compiled automata.
func (r *Regex) Program() *automaton.Program {
	return r.prog
}

// MinLength returns the length of the shortest string the pattern accepts,
// or position.Infinite when it accepts none.
func (r *Regex) MinLength() int {
	return r.prog.MinLength()
}

// MaxLength returns the length of the longest string the pattern accepts,
// or position.Unbounded.
func (r *Regex) MaxLength() int {
	return r.prog.Analysis.MaxLength
}

// Factor returns the literals selected to accelerate the pattern, at most
// Config.MaxFactorLen bytes long.
func (r *Regex) Factor() literal.Factor {
	return r.factor(r.factorLen())
}

func (r *Regex) factorLen() int {
	n := max(r.config.MinFactorLen, r.MinLength())
	return min(n, r.config.MaxFactorLen)
}

func (r *Regex) factor(literalLen int) literal.Factor {
	return literal.New(r.config.extractor(literalLen)).Select(r.node, r.prog.Analysis)
}

// Matcher returns a new matcher scanning cur with the Regex's policy.
func (r *Regex) Matcher(cur match.Cursor) *match.Matcher {
	return match.NewMatcher(r.prog, cur, r.config.Policy)
}

// Matches returns every match in b selected by the policy, ordered by start
// and then end (longest first under match.LongestMatch).
func (r *Regex) Matches(b []byte) []match.Match {
	return r.Matcher(match.NewBytesCursor(b)).FindAll()
}

// Match reports whether b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	_, ok := r.Matcher(match.NewBytesCursor(b)).FindNext()
	return ok
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// Find returns the text of the first match in b, or nil.
func (r *Regex) Find(b []byte) []byte {
	loc := r.FindIndex(b)
	if loc == nil {
		return nil
	}
	return b[loc[0]:loc[1]:loc[1]]
}

// FindString returns the text of the first match in s, or "".
// Use FindStringIndex to tell an empty match from no match.
func (r *Regex) FindString(s string) string {
	loc := r.FindIndex([]byte(s))
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindIndex returns the location of the first match in b as
// [start, end], or nil.
func (r *Regex) FindIndex(b []byte) []int {
	m, ok := r.Matcher(match.NewBytesCursor(b)).FindNext()
	if !ok {
		return nil
	}
	return []int{m.Start, m.End}
}

// FindStringIndex returns the location of the first match in s, or nil.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindAll returns the text of the matches in b, at most n of them when
// n ≥ 0.
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	locs := r.FindAllIndex(b, n)
	if locs == nil {
		return nil
	}
	out := make([][]byte, len(locs))
	for i, loc := range locs {
		out[i] = b[loc[0]:loc[1]:loc[1]]
	}
	return out
}

// FindAllString returns the text of the matches in s, at most n of them
// when n ≥ 0.
func (r *Regex) FindAllString(s string, n int) []string {
	locs := r.FindAllIndex([]byte(s), n)
	if locs == nil {
		return nil
	}
	out := make([]string, len(locs))
	for i, loc := range locs {
		out[i] = s[loc[0]:loc[1]]
	}
	return out
}

// FindAllIndex returns the locations of the matches in b, at most n of them
// when n ≥ 0.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	m := r.Matcher(match.NewBytesCursor(b))
	var out [][]int
	for n < 0 || len(out) < n {
		next, ok := m.FindNext()
		if !ok {
			break
		}
		out = append(out, []int{next.Start, next.End})
	}
	return out
}

// Count returns the number of matches in b, counting at most n when n ≥ 0.
func (r *Regex) Count(b []byte, n int) int {
	if n == 0 {
		return 0
	}
	m := r.Matcher(match.NewBytesCursor(b))
	count := 0
	for n < 0 || count < n {
		if _, ok := m.FindNext(); !ok {
			break
		}
		count++
	}
	return count
}

// ReplaceAllLiteral returns a copy of src with the matches replaced by
// repl. Matches are selected as if match.NoOverlap were part of the policy,
// so replaced regions never overlap.
func (r *Regex) ReplaceAllLiteral(src, repl []byte) []byte {
	m := match.NewMatcher(r.prog, match.NewBytesCursor(src), r.config.Policy|match.NoOverlap)
	var out []byte
	last := 0
	for {
		next, ok := m.FindNext()
		if !ok {
			break
		}
		out = append(out, src[last:next.Start]...)
		out = append(out, repl...)
		last = next.End
	}
	if out == nil {
		return append([]byte(nil), src...)
	}
	return append(out, src[last:]...)
}

// ReplaceAllLiteralString is like ReplaceAllLiteral for strings.
func (r *Regex) ReplaceAllLiteralString(src, repl string) string {
	return string(r.ReplaceAllLiteral([]byte(src), []byte(repl)))
}
