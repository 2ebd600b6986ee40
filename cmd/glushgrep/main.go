// Command glushgrep prints every match of one or more patterns in files.
//
// Usage:
//
//	glushgrep [-longest] [-nonempty] [-overlap] [-stats] -e PATTERN [-e PATTERN...] [FILE...]
//
// Each match is printed as file:start:end:pattern-index:text, with byte
// offsets. Standard input is read when no file is given. The exit status is
// 0 when something matched, 1 when nothing did and 2 on error.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/coregx/glushkov"
	"github.com/coregx/glushkov/match"
)

// patternList collects repeated -e flags.
type patternList []string

func (p *patternList) String() string { return strings.Join(*p, ",") }

func (p *patternList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("glushgrep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var patterns patternList
	fs.Var(&patterns, "e", "pattern to search for (repeatable)")
	longest := fs.Bool("longest", false, "report only the longest match at each start")
	nonEmpty := fs.Bool("nonempty", false, "drop empty matches")
	overlap := fs.Bool("overlap", false, "report overlapping matches")
	stats := fs.Bool("stats", false, "print scan statistics to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if len(patterns) == 0 {
		fmt.Fprintln(stderr, "glushgrep: no pattern given (use -e)")
		return 2
	}

	config := glushkov.DefaultConfig()
	if *longest {
		config.Policy |= match.LongestMatch
	}
	if *nonEmpty {
		config.Policy |= match.NonEmpty
	}
	if !*overlap {
		config.Policy |= match.NoOverlap
	}
	set, err := glushkov.CompileSetWithConfig(patterns, config)
	if err != nil {
		fmt.Fprintf(stderr, "glushgrep: %v\n", err)
		return 2
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	found := false
	files := fs.Args()
	if len(files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "glushgrep: reading stdin: %v\n", err)
			return 2
		}
		found = scan(out, set, "-", data)
	}
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			fmt.Fprintf(stderr, "glushgrep: %v\n", err)
			return 2
		}
		if scan(out, set, name, data) {
			found = true
		}
	}

	if *stats {
		s := set.Stats()
		fmt.Fprintf(stderr, "occurrences=%d extensions=%d direct=%d matches=%d finder=%dB\n",
			s.Occurrences, s.Extensions, s.DirectScans, s.Matches, set.HeapBytes())
	}
	if found {
		return 0
	}
	return 1
}

func scan(w *bufio.Writer, set *glushkov.Set, name string, data []byte) bool {
	sc := set.Scanner(data)
	found := false
	for {
		m, ok := sc.Next()
		if !ok {
			return found
		}
		found = true
		w.WriteString(name)
		w.WriteByte(':')
		w.WriteString(strconv.Itoa(m.Start))
		w.WriteByte(':')
		w.WriteString(strconv.Itoa(m.End))
		w.WriteByte(':')
		w.WriteString(strconv.Itoa(m.Pattern))
		w.WriteByte(':')
		w.WriteString(m.Text)
		w.WriteByte('\n')
	}
}
