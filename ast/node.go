// Package ast defines the regex syntax tree consumed by the Glushkov
// compiler, converts trees produced by regexp/syntax into it, and rewrites
// arbitrary trees into the decomposed normal form the position analysis
// accepts.
//
// The tree is a tagged sum type: a Node carries a Kind and only the fields
// that Kind uses. Code that consumes trees switches exhaustively on Kind.
//
// The alphabet is the byte (code unit) domain 0..255. Normal form contains
// only KindEmpty, KindChar, KindRange, KindConcat, KindAlternatives,
// KindOptional, KindStar and KindGroup; KindLiteral, KindClass, KindAnyChar
// and KindLoop are raw kinds that Normalize rewrites away.
package ast

import (
	"fmt"
	"strings"
)

// Kind identifies the variant a Node holds.
type Kind uint8

const (
	// KindEmpty matches the empty string.
	KindEmpty Kind = iota
	// KindChar matches the single byte Lo.
	KindChar
	// KindRange matches one byte in [Lo, Hi].
	KindRange
	// KindConcat matches Subs in sequence.
	KindConcat
	// KindAlternatives matches any one of Subs. With no Subs it matches nothing.
	KindAlternatives
	// KindOptional matches Subs[0] or the empty string.
	KindOptional
	// KindStar matches zero or more repetitions of Subs[0].
	KindStar
	// KindGroup matches Subs[0]; it only marks grouping.
	KindGroup

	// KindLiteral matches the byte string Text.
	KindLiteral
	// KindClass matches one byte from Ranges (or outside them when Negated).
	KindClass
	// KindAnyChar matches any byte; newline only when MatchNL is set.
	KindAnyChar
	// KindLoop matches Min to Max repetitions of Subs[0]; Max < 0 is unbounded.
	KindLoop
)

var kindNames = [...]string{
	KindEmpty:        "Empty",
	KindChar:         "Char",
	KindRange:        "Range",
	KindConcat:       "Concat",
	KindAlternatives: "Alternatives",
	KindOptional:     "Optional",
	KindStar:         "Star",
	KindGroup:        "Group",
	KindLiteral:      "Literal",
	KindClass:        "Class",
	KindAnyChar:      "AnyChar",
	KindLoop:         "Loop",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsNormal reports whether k may appear in a normalized tree.
func (k Kind) IsNormal() bool {
	return k <= KindGroup
}

// ByteRange is an inclusive byte interval.
type ByteRange struct {
	Lo, Hi byte
}

// Node is a regex syntax tree node.
type Node struct {
	Kind Kind

	// Lo and Hi bound KindChar (Lo == Hi) and KindRange.
	Lo, Hi byte

	// Text holds the bytes of a KindLiteral.
	Text []byte

	// Ranges and Negated describe a KindClass.
	Ranges  []ByteRange
	Negated bool

	// MatchNL makes KindAnyChar match '\n' too.
	MatchNL bool

	// Min and Max bound a KindLoop; Max < 0 means no upper bound.
	Min, Max int

	Subs []*Node
}

// Empty returns a node matching the empty string.
func Empty() *Node { return &Node{Kind: KindEmpty} }

// Char returns a node matching the byte c.
func Char(c byte) *Node { return &Node{Kind: KindChar, Lo: c, Hi: c} }

// Range returns a node matching one byte in [lo, hi].
func Range(lo, hi byte) *Node {
	if lo > hi {
		panic(fmt.Sprintf("ast: invalid range %#x-%#x", lo, hi))
	}
	return &Node{Kind: KindRange, Lo: lo, Hi: hi}
}

// Concat returns a node matching subs in sequence.
func Concat(subs ...*Node) *Node { return &Node{Kind: KindConcat, Subs: subs} }

// Alternatives returns a node matching any one of subs.
func Alternatives(subs ...*Node) *Node { return &Node{Kind: KindAlternatives, Subs: subs} }

// Optional returns a node matching sub or the empty string.
func Optional(sub *Node) *Node { return &Node{Kind: KindOptional, Subs: []*Node{sub}} }

// Star returns a node matching zero or more repetitions of sub.
func Star(sub *Node) *Node { return &Node{Kind: KindStar, Subs: []*Node{sub}} }

// Group returns a grouping node around sub.
func Group(sub *Node) *Node { return &Node{Kind: KindGroup, Subs: []*Node{sub}} }

// Literal returns a node matching the string s byte for byte.
func Literal(s string) *Node { return &Node{Kind: KindLiteral, Text: []byte(s)} }

// Class returns a character class node.
func Class(negated bool, ranges ...ByteRange) *Node {
	return &Node{Kind: KindClass, Ranges: ranges, Negated: negated}
}

// AnyChar returns a node matching any byte, or any byte but '\n' unless
// matchNL is set.
func AnyChar(matchNL bool) *Node { return &Node{Kind: KindAnyChar, MatchNL: matchNL} }

// Loop returns a node matching min to max repetitions of sub; max < 0 means
// unbounded.
func Loop(sub *Node, minCount, maxCount int) *Node {
	if minCount < 0 || (maxCount >= 0 && minCount > maxCount) {
		panic(fmt.Sprintf("ast: invalid loop bounds {%d,%d}", minCount, maxCount))
	}
	return &Node{Kind: KindLoop, Min: minCount, Max: maxCount, Subs: []*Node{sub}}
}

// Sub returns the single child of a unary node.
func (n *Node) Sub() *Node {
	return n.Subs[0]
}

// Clone returns a deep copy of n. Clones share no memory with n, so loop
// unrolling can give every copy its own positions.
func (n *Node) Clone() *Node {
	c := *n
	if n.Text != nil {
		c.Text = append([]byte(nil), n.Text...)
	}
	if n.Ranges != nil {
		c.Ranges = append([]ByteRange(nil), n.Ranges...)
	}
	if n.Subs != nil {
		c.Subs = make([]*Node, len(n.Subs))
		for i, s := range n.Subs {
			c.Subs[i] = s.Clone()
		}
	}
	return &c
}

// Equal reports whether n and m are structurally identical.
func (n *Node) Equal(m *Node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.Kind != m.Kind || len(n.Subs) != len(m.Subs) {
		return false
	}
	switch n.Kind {
	case KindChar, KindRange:
		if n.Lo != m.Lo || n.Hi != m.Hi {
			return false
		}
	case KindLiteral:
		if string(n.Text) != string(m.Text) {
			return false
		}
	case KindClass:
		if n.Negated != m.Negated || len(n.Ranges) != len(m.Ranges) {
			return false
		}
		for i := range n.Ranges {
			if n.Ranges[i] != m.Ranges[i] {
				return false
			}
		}
	case KindAnyChar:
		if n.MatchNL != m.MatchNL {
			return false
		}
	case KindLoop:
		if n.Min != m.Min || n.Max != m.Max {
			return false
		}
	}
	for i := range n.Subs {
		if !n.Subs[i].Equal(m.Subs[i]) {
			return false
		}
	}
	return true
}

// IsNormal reports whether every node of the tree has a normal-form kind.
func (n *Node) IsNormal() bool {
	if !n.Kind.IsNormal() {
		return false
	}
	for _, s := range n.Subs {
		if !s.IsNormal() {
			return false
		}
	}
	return true
}

// String renders the tree in regex syntax. The rendering is for diagnostics;
// it round-trips through Parse for trees built from printable bytes.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Kind {
	case KindEmpty:
		b.WriteString("(?:)")
	case KindChar:
		writeByte(b, n.Lo, false)
	case KindRange:
		b.WriteByte('[')
		writeRange(b, n.Lo, n.Hi)
		b.WriteByte(']')
	case KindLiteral:
		for _, c := range n.Text {
			writeByte(b, c, false)
		}
	case KindClass:
		b.WriteByte('[')
		if n.Negated {
			b.WriteByte('^')
		}
		for _, r := range n.Ranges {
			writeRange(b, r.Lo, r.Hi)
		}
		b.WriteByte(']')
	case KindAnyChar:
		if n.MatchNL {
			b.WriteString("(?s:.)")
		} else {
			b.WriteByte('.')
		}
	case KindConcat:
		if len(n.Subs) == 0 {
			b.WriteString("(?:)")
		}
		for _, s := range n.Subs {
			if s.Kind == KindAlternatives {
				b.WriteString("(?:")
				s.write(b)
				b.WriteByte(')')
				continue
			}
			s.write(b)
		}
	case KindAlternatives:
		if len(n.Subs) == 0 {
			b.WriteString(`[^\x00-\xff]`)
		}
		for i, s := range n.Subs {
			if i > 0 {
				b.WriteByte('|')
			}
			s.write(b)
		}
	case KindGroup:
		b.WriteByte('(')
		n.Sub().write(b)
		b.WriteByte(')')
	case KindOptional:
		writeAtom(b, n.Sub())
		b.WriteByte('?')
	case KindStar:
		writeAtom(b, n.Sub())
		b.WriteByte('*')
	case KindLoop:
		writeAtom(b, n.Sub())
		switch {
		case n.Max < 0:
			fmt.Fprintf(b, "{%d,}", n.Min)
		case n.Min == n.Max:
			fmt.Fprintf(b, "{%d}", n.Min)
		default:
			fmt.Fprintf(b, "{%d,%d}", n.Min, n.Max)
		}
	default:
		fmt.Fprintf(b, "<%v>", n.Kind)
	}
}

// writeAtom writes s so that a following postfix operator applies to all of it.
func writeAtom(b *strings.Builder, s *Node) {
	switch s.Kind {
	case KindChar, KindRange, KindClass, KindAnyChar, KindGroup:
		s.write(b)
	default:
		b.WriteString("(?:")
		s.write(b)
		b.WriteByte(')')
	}
}

func writeRange(b *strings.Builder, lo, hi byte) {
	writeByte(b, lo, true)
	if hi != lo {
		b.WriteByte('-')
		writeByte(b, hi, true)
	}
}

const metaChars = `\.+*?()|[]{}^$`

func writeByte(b *strings.Builder, c byte, inClass bool) {
	switch {
	case inClass && (c == '\\' || c == ']' || c == '-' || c == '^' || c == '['):
		b.WriteByte('\\')
		b.WriteByte(c)
	case !inClass && strings.IndexByte(metaChars, c) >= 0:
		b.WriteByte('\\')
		b.WriteByte(c)
	case c >= 0x20 && c < 0x7f:
		b.WriteByte(c)
	default:
		fmt.Fprintf(b, `\x%02x`, c)
	}
}
