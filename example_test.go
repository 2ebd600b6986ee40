package glushkov_test

import (
	"fmt"

	"github.com/coregx/glushkov"
	"github.com/coregx/glushkov/match"
)

// ExampleCompile lists every match of a pattern.
func ExampleCompile() {
	re, err := glushkov.Compile(`a*b`)
	if err != nil {
		panic(err)
	}
	for _, m := range re.Matches([]byte("aaab")) {
		fmt.Println(m)
	}
	// Output:
	// (0,4,"aaab")
	// (1,4,"aab")
	// (2,4,"ab")
	// (3,4,"b")
}

// ExampleCompileWithConfig selects leftmost-longest, non-overlapping matches.
func ExampleCompileWithConfig() {
	config := glushkov.DefaultConfig()
	config.Policy = match.LongestMatch | match.NoOverlap
	re, err := glushkov.CompileWithConfig(`(ab)+`, config)
	if err != nil {
		panic(err)
	}
	fmt.Println(re.FindAllString("ababab xab", -1))
	// Output: [ababab ab]
}

// ExampleCompileSet scans for several patterns at once.
func ExampleCompileSet() {
	set, err := glushkov.CompileSet([]string{`abc`, `xyz`})
	if err != nil {
		panic(err)
	}
	for _, m := range set.FindAll([]byte("zzabcxyzaa")) {
		fmt.Println(m.Pattern, m.Start, m.End, m.Text)
	}
	// Output:
	// 0 2 5 abc
	// 1 5 8 xyz
}

// ExampleRegex_Matcher drives a matcher by hand and skips ahead.
func ExampleRegex_Matcher() {
	re := glushkov.MustCompile(`[0-9]+`)
	m := re.Matcher(match.NewBytesCursor([]byte("12 345")))
	first, _ := m.FindNext()
	fmt.Println(first)
	m.SkipTo(3)
	next, _ := m.FindNext()
	fmt.Println(next)
	// Output:
	// (0,1,"1")
	// (3,4,"3")
}

func ExampleQuoteMeta() {
	fmt.Println(glushkov.QuoteMeta(`1.5+2`))
	// Output: 1\.5\+2
}
