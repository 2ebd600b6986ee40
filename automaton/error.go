package automaton

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyStates indicates the memoized transition table outgrew
	// Config.MaxStates.
	ErrTooManyStates = errors.New("too many automaton states")

	// ErrTooManyPositions indicates the pattern has more literal positions
	// than Config.MaxPositions.
	ErrTooManyPositions = errors.New("too many pattern positions")
)

// BuildError reports which automaton could not be built.
type BuildError struct {
	Direction Direction
	Flags     Flags
	Err       error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("building %v automaton (flags %v): %v", e.Direction, e.Flags, e.Err)
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error {
	return e.Err
}
