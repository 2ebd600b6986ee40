package match

import "strings"

// Policy selects which matches a scan reports.
type Policy uint8

const (
	// LongestMatch reports, among the matches sharing the smallest pending
	// start, only the one with the largest end.
	LongestMatch Policy = 1 << iota
	// NonEmpty drops zero-length matches.
	NonEmpty
	// NoOverlap discards every match starting before the end of the last
	// reported one.
	NoOverlap
)

// DefaultPolicy reports every match in leftmost order.
const DefaultPolicy Policy = 0

// Has reports whether every flag of f is set in p.
func (p Policy) Has(f Policy) bool {
	return p&f == f
}

// String renders the set flags, e.g. "LongestMatch|NoOverlap".
func (p Policy) String() string {
	var parts []string
	if p.Has(LongestMatch) {
		parts = append(parts, "LongestMatch")
	}
	if p.Has(NonEmpty) {
		parts = append(parts, "NonEmpty")
	}
	if p.Has(NoOverlap) {
		parts = append(parts, "NoOverlap")
	}
	if len(parts) == 0 {
		return "Default"
	}
	return strings.Join(parts, "|")
}
