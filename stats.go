package glushkov

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Stats tracks the work done by the scans of a Set.
//
// Stats are useful for seeing how much of the input the literal scan
// filtered out: Extensions close to Occurrences with few Matches suggests
// the selected literals are too common.
type Stats struct {
	// Scans counts the scanners created.
	Scans uint64

	// Occurrences counts literal occurrences reported by the prefilter.
	Occurrences uint64

	// Extensions counts extender invocations, one per owning pattern of an
	// occurrence.
	Extensions uint64

	// DirectScans counts scans of patterns served by the direct engine
	// because they match the empty string.
	DirectScans uint64

	// Matches counts the matches returned to callers.
	Matches uint64
}

// counters are updated by concurrent scans; each sits on its own cache line.
type counters struct {
	scans       atomic.Uint64
	_           cpu.CacheLinePad
	occurrences atomic.Uint64
	_           cpu.CacheLinePad
	extensions  atomic.Uint64
	_           cpu.CacheLinePad
	directScans atomic.Uint64
	_           cpu.CacheLinePad
	matches     atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Scans:       c.scans.Load(),
		Occurrences: c.occurrences.Load(),
		Extensions:  c.extensions.Load(),
		DirectScans: c.directScans.Load(),
		Matches:     c.matches.Load(),
	}
}

func (c *counters) reset() {
	c.scans.Store(0)
	c.occurrences.Store(0)
	c.extensions.Store(0)
	c.directScans.Store(0)
	c.matches.Store(0)
}
