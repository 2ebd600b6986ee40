package ast

import (
	"fmt"
	"sort"
)

// Normalize rewrites n into normal form. The result shares no nodes with n.
//
// Rewrites:
//   - Literal: Concat of Char nodes (a single Char for one byte, Empty for none)
//   - Class, AnyChar: the enumerated intervals, one Char/Range node when the
//     set is a single interval, Alternatives otherwise (no branches for an
//     empty set); negation is interval subtraction over 0..255
//   - Loop{0,0}: Empty
//   - Loop{0,1}: Optional
//   - Loop{0,∞}: Star
//   - Loop{m,∞}: m clones of the body followed by one residual Star clone
//   - Loop{m,n}: m clones followed by n-m Optional clones
//
// Every clone is a fresh deep copy so each unrolled occurrence receives its
// own positions. Normalize is idempotent: normalizing a normalized tree
// yields an Equal tree.
func Normalize(n *Node) *Node {
	switch n.Kind {
	case KindEmpty:
		return Empty()

	case KindChar:
		return Char(n.Lo)

	case KindRange:
		return Range(n.Lo, n.Hi)

	case KindConcat, KindAlternatives:
		subs := make([]*Node, len(n.Subs))
		for i, s := range n.Subs {
			subs[i] = Normalize(s)
		}
		return &Node{Kind: n.Kind, Subs: subs}

	case KindOptional, KindStar, KindGroup:
		return &Node{Kind: n.Kind, Subs: []*Node{Normalize(n.Sub())}}

	case KindLiteral:
		switch len(n.Text) {
		case 0:
			return Empty()
		case 1:
			return Char(n.Text[0])
		}
		subs := make([]*Node, len(n.Text))
		for i, c := range n.Text {
			subs[i] = Char(c)
		}
		return Concat(subs...)

	case KindClass:
		ranges := canonicalRanges(n.Ranges)
		if n.Negated {
			ranges = complementRanges(ranges)
		}
		return rangesNode(ranges)

	case KindAnyChar:
		if n.MatchNL {
			return Range(0x00, 0xFF)
		}
		return rangesNode([]ByteRange{{0x00, '\n' - 1}, {'\n' + 1, 0xFF}})

	case KindLoop:
		return unrollLoop(Normalize(n.Sub()), n.Min, n.Max)
	}
	panic(fmt.Sprintf("ast: Normalize: unknown node kind %v", n.Kind))
}

// unrollLoop expands {minCount,maxCount} repetition of an already normalized
// body.
func unrollLoop(body *Node, minCount, maxCount int) *Node {
	switch {
	case maxCount == 0:
		return Empty()
	case minCount == 0 && maxCount == 1:
		return Optional(body)
	case minCount == 0 && maxCount < 0:
		return Star(body)
	}

	parts := make([]*Node, 0, minCount+1)
	clone := func() *Node {
		if len(parts) == 0 {
			return body
		}
		return body.Clone()
	}
	for i := 0; i < minCount; i++ {
		parts = append(parts, clone())
	}
	if maxCount < 0 {
		parts = append(parts, Star(clone()))
	} else {
		for i := minCount; i < maxCount; i++ {
			parts = append(parts, Optional(clone()))
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return Concat(parts...)
}

// rangesNode builds the normal-form node for a canonical interval list.
func rangesNode(ranges []ByteRange) *Node {
	if len(ranges) == 1 {
		return charOrRange(ranges[0])
	}
	subs := make([]*Node, len(ranges))
	for i, r := range ranges {
		subs[i] = charOrRange(r)
	}
	return Alternatives(subs...)
}

func charOrRange(r ByteRange) *Node {
	if r.Lo == r.Hi {
		return Char(r.Lo)
	}
	return Range(r.Lo, r.Hi)
}

// canonicalRanges sorts ranges and merges overlapping or adjacent ones.
func canonicalRanges(in []ByteRange) []ByteRange {
	rs := make([]ByteRange, 0, len(in))
	for _, r := range in {
		if r.Lo > r.Hi {
			r.Lo, r.Hi = r.Hi, r.Lo
		}
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].Lo < rs[j].Lo })

	out := rs[:0]
	for _, r := range rs {
		if n := len(out); n > 0 && int(r.Lo) <= int(out[n-1].Hi)+1 {
			if r.Hi > out[n-1].Hi {
				out[n-1].Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// complementRanges subtracts a canonical interval list from 0..255.
func complementRanges(rs []ByteRange) []ByteRange {
	var out []ByteRange
	next := 0
	for _, r := range rs {
		if int(r.Lo) > next {
			out = append(out, ByteRange{byte(next), r.Lo - 1})
		}
		next = int(r.Hi) + 1
	}
	if next <= 0xFF {
		out = append(out, ByteRange{byte(next), 0xFF})
	}
	return out
}
