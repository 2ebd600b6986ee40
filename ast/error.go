package ast

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported indicates a regexp/syntax construct that has no meaning
	// for a byte-level Glushkov automaton, such as anchors and word
	// boundaries.
	ErrUnsupported = errors.New("unsupported regex construct")
)

// ParseError reports why a pattern could not be turned into a syntax tree.
type ParseError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("glushkov: parsing %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("glushkov: parsing: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
