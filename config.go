package glushkov

import (
	"github.com/coregx/glushkov/automaton"
	"github.com/coregx/glushkov/literal"
	"github.com/coregx/glushkov/match"
)

// Config controls compilation limits, literal selection and the match
// selection policy.
//
// Example:
//
//	config := glushkov.DefaultConfig()
//	config.Policy = match.LongestMatch | match.NoOverlap
//	re, err := glushkov.CompileWithConfig(`(ab)+`, config)
type Config struct {
	// MaxStates caps the memo table of each automaton. Compilation fails
	// with automaton.ErrTooManyStates beyond it.
	// Default: 10000
	MaxStates int

	// MaxPositions caps the number of character positions of a pattern.
	// Default: 4096
	MaxPositions int

	// PowerSetLimit is the largest number of final positions for which the
	// dual automaton is seeded with every subset of them. Larger patterns
	// are seeded with the subsets the forward scan actually reaches.
	// Default: 10
	PowerSetLimit int

	// MinFactorLen is the smallest literal length the multi-pattern scan
	// asks for. Patterns whose matches are shorter still get literals as
	// long as their shortest match.
	// Default: 1
	MinFactorLen int

	// MaxFactorLen caps the literal length of the multi-pattern scan.
	// Default: 64
	MaxFactorLen int

	// MaxLiterals caps the number of literals per pattern during factor
	// analysis.
	// Default: 64
	MaxLiterals int

	// MaxClassSize is the largest character set expanded into literals.
	// Default: 16
	MaxClassSize int

	// Policy selects which matches are reported.
	// Default: match.DefaultPolicy (every match, leftmost order)
	Policy match.Policy
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates:     10_000,
		MaxPositions:  4096,
		PowerSetLimit: 10,
		MinFactorLen:  1,
		MaxFactorLen:  64,
		MaxLiterals:   64,
		MaxClassSize:  16,
		Policy:        match.DefaultPolicy,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.MaxStates < 1 || c.MaxStates > 1_000_000 {
		return &ConfigError{Field: "MaxStates", Message: "must be between 1 and 1,000,000"}
	}
	if c.MaxPositions < 1 || c.MaxPositions > 65_536 {
		return &ConfigError{Field: "MaxPositions", Message: "must be between 1 and 65,536"}
	}
	if c.PowerSetLimit < 0 || c.PowerSetLimit > 20 {
		return &ConfigError{Field: "PowerSetLimit", Message: "must be between 0 and 20"}
	}
	if c.MaxFactorLen < 1 || c.MaxFactorLen > 256 {
		return &ConfigError{Field: "MaxFactorLen", Message: "must be between 1 and 256"}
	}
	if c.MinFactorLen < 1 || c.MinFactorLen > c.MaxFactorLen {
		return &ConfigError{Field: "MinFactorLen", Message: "must be between 1 and MaxFactorLen"}
	}
	if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
		return &ConfigError{Field: "MaxLiterals", Message: "must be between 1 and 1,000"}
	}
	if c.MaxClassSize < 1 || c.MaxClassSize > 256 {
		return &ConfigError{Field: "MaxClassSize", Message: "must be between 1 and 256"}
	}
	if c.Policy > match.LongestMatch|match.NonEmpty|match.NoOverlap {
		return &ConfigError{Field: "Policy", Message: "unknown policy flags"}
	}
	return nil
}

func (c Config) automaton() automaton.Config {
	return automaton.Config{
		MaxStates:     c.MaxStates,
		MaxPositions:  c.MaxPositions,
		PowerSetLimit: c.PowerSetLimit,
	}
}

func (c Config) extractor(literalLen int) literal.ExtractorConfig {
	return literal.ExtractorConfig{
		MaxLiterals:   c.MaxLiterals,
		MaxLiteralLen: literalLen,
		MaxClassSize:  c.MaxClassSize,
	}
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "glushkov: invalid config: " + e.Field + ": " + e.Message
}
