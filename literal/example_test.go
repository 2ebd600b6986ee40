package literal_test

import (
	"fmt"

	"github.com/coregx/glushkov/ast"
	"github.com/coregx/glushkov/literal"
	"github.com/coregx/glushkov/position"
)

// Example shows the literal selected for a pattern with an unbounded gap.
func Example() {
	n, _ := ast.Parse(`[a-z]+@example\.com`)
	n = ast.Normalize(n)

	f := literal.New(literal.DefaultConfig()).Select(n, position.Analyze(n))
	fmt.Println(f.Mode, f.Seq)

	// Output:
	// factor ["@example.com"]
}

// ExampleSeq_Minimize demonstrates removing redundant prefixes.
func ExampleSeq_Minimize() {
	seq := literal.NewSeq("foo", "foobar", "bar")
	seq.Minimize()
	fmt.Println(seq)

	// Output:
	// ["bar" "foo"]
}

// ExampleCross demonstrates the concatenation of two literal sets.
func ExampleCross() {
	a := literal.NewSeq("a", "b")
	b := literal.NewSeq("x", "yz")
	fmt.Println(literal.Cross(a, b, 64, 64, literal.CutPoison))

	// Output:
	// ["ax" "ayz" "bx" "byz"]
}
