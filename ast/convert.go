package ast

import (
	"fmt"
	"regexp/syntax"
	"unicode"
	"unicode/utf8"
)

// Parse parses pattern with regexp/syntax (Perl flags) and converts the
// result with FromSyntax. Errors are *ParseError.
func Parse(pattern string) (*Node, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, &ParseError{Pattern: pattern, Err: err}
	}
	n, err := FromSyntax(re)
	if err != nil {
		return nil, &ParseError{Pattern: pattern, Err: err}
	}
	return n, nil
}

// FromSyntax converts a parsed regexp/syntax tree into a raw Node tree.
//
// Code points are read as code units: runes up to 0xFF become the byte of
// the same value and class ranges are clipped to 0..255. A literal rune
// above 0xFF becomes the byte sequence of its UTF-8 encoding. Case-folded
// literals are expanded into their fold orbit. Non-greedy markers are dropped;
// match selection is a scan-time policy.
func FromSyntax(re *syntax.Regexp) (*Node, error) {
	switch re.Op {
	case syntax.OpNoMatch:
		return Alternatives(), nil

	case syntax.OpEmptyMatch:
		return Empty(), nil

	case syntax.OpLiteral:
		return convertLiteral(re)

	case syntax.OpCharClass:
		return Class(false, clipRanges(re.Rune)...), nil

	case syntax.OpAnyCharNotNL:
		return AnyChar(false), nil

	case syntax.OpAnyChar:
		return AnyChar(true), nil

	case syntax.OpCapture:
		sub, err := FromSyntax(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return Group(sub), nil

	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		sub, err := FromSyntax(re.Sub[0])
		if err != nil {
			return nil, err
		}
		switch re.Op {
		case syntax.OpStar:
			return Loop(sub, 0, -1), nil
		case syntax.OpPlus:
			return Loop(sub, 1, -1), nil
		case syntax.OpQuest:
			return Loop(sub, 0, 1), nil
		}
		if re.Max >= 0 && re.Min > re.Max {
			return nil, fmt.Errorf("invalid repeat range {%d,%d}", re.Min, re.Max)
		}
		return Loop(sub, re.Min, re.Max), nil

	case syntax.OpConcat, syntax.OpAlternate:
		subs := make([]*Node, len(re.Sub))
		for i, s := range re.Sub {
			n, err := FromSyntax(s)
			if err != nil {
				return nil, err
			}
			subs[i] = n
		}
		if re.Op == syntax.OpConcat {
			return Concat(subs...), nil
		}
		return Alternatives(subs...), nil

	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, re.Op)
	}
	return nil, fmt.Errorf("%w: operator %v", ErrUnsupported, re.Op)
}

func convertLiteral(re *syntax.Regexp) (*Node, error) {
	fold := re.Flags&syntax.FoldCase != 0
	if !fold {
		text := make([]byte, 0, len(re.Rune))
		for _, r := range re.Rune {
			if r > 0xFF {
				text = utf8.AppendRune(text, r)
				continue
			}
			text = append(text, byte(r))
		}
		return &Node{Kind: KindLiteral, Text: text}, nil
	}

	subs := make([]*Node, 0, len(re.Rune))
	for _, r := range re.Rune {
		var (
			ranges []ByteRange
			wide   []*Node
		)
		for f := r; ; {
			if f <= 0xFF {
				ranges = append(ranges, ByteRange{byte(f), byte(f)})
			} else {
				wide = append(wide, &Node{Kind: KindLiteral, Text: utf8.AppendRune(nil, f)})
			}
			f = unicode.SimpleFold(f)
			if f == r {
				break
			}
		}
		switch {
		case len(wide) == 0:
			subs = append(subs, Class(false, ranges...))
		case len(ranges) == 0 && len(wide) == 1:
			subs = append(subs, wide[0])
		case len(ranges) == 0:
			subs = append(subs, Alternatives(wide...))
		default:
			subs = append(subs, Alternatives(append([]*Node{Class(false, ranges...)}, wide...)...))
		}
	}
	if len(subs) == 1 {
		return subs[0], nil
	}
	return Concat(subs...), nil
}

// clipRanges turns regexp/syntax's flat [lo, hi, lo, hi, ...] rune pairs into
// byte ranges, dropping whatever lies above 0xFF.
func clipRanges(runes []rune) []ByteRange {
	out := make([]ByteRange, 0, len(runes)/2)
	for i := 0; i+1 < len(runes); i += 2 {
		lo, hi := runes[i], runes[i+1]
		if lo > 0xFF {
			continue
		}
		if hi > 0xFF {
			hi = 0xFF
		}
		out = append(out, ByteRange{byte(lo), byte(hi)})
	}
	return out
}
