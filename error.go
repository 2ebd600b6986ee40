package glushkov

import (
	"errors"
	"fmt"

	"github.com/coregx/glushkov/ast"
)

// CompileError wraps every failure to compile a pattern: syntax errors and
// unsupported constructs (*ast.ParseError) as well as automaton limits
// (*automaton.BuildError).
type CompileError struct {
	Pattern string
	// Index is the position of the pattern in a Set, or -1.
	Index int
	Err   error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	cause := e.Err
	// The pattern is already named here.
	var pe *ast.ParseError
	if errors.As(cause, &pe) {
		cause = pe.Err
	}
	if e.Index >= 0 {
		return fmt.Sprintf("glushkov: compiling pattern %d %q: %v", e.Index, e.Pattern, cause)
	}
	return fmt.Sprintf("glushkov: compiling %q: %v", e.Pattern, cause)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
