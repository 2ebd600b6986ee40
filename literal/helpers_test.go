package literal_test

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/coregx/glushkov/literal"
)

func compileAnchored(t testing.TB, pattern string) *regexp.Regexp {
	t.Helper()
	return regexp.MustCompile(`^(?:` + pattern + `)$`)
}

func witnessed(f literal.Factor, w string) bool {
	for _, lit := range f.Seq.Literals() {
		if f.Mode == literal.ModePrefix && bytes.HasPrefix([]byte(w), lit) {
			return true
		}
		if f.Mode == literal.ModeFactor && bytes.Contains([]byte(w), lit) {
			return true
		}
	}
	return false
}
