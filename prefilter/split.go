package prefilter

// splitFinder serves a literal set mixing one-byte and longer literals. The
// one-byte literals go to a byte scan, the rest to a multi-byte finder, and
// each call keeps the occurrences at the smallest start either side found.
type splitFinder struct {
	short, long       Finder
	shortIdx, longIdx []int
	maxLen            int
	lits              [][]byte
}

func newSplitFinder(lits [][]byte) (*splitFinder, error) {
	f := &splitFinder{lits: lits}
	var short, long [][]byte
	for i, l := range lits {
		if len(l) == 1 {
			short = append(short, l)
			f.shortIdx = append(f.shortIdx, i)
			continue
		}
		long = append(long, l)
		f.longIdx = append(f.longIdx, i)
		f.maxLen = max(f.maxLen, len(l))
	}
	var err error
	if f.short, err = NewBuilder(short).Build(); err != nil {
		return nil, err
	}
	if f.long, err = NewBuilder(long).Build(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *splitFinder) FindAt(haystack []byte, at int, dst []Occurrence) []Occurrence {
	n := len(dst)
	dst = f.short.FindAt(haystack, at, dst)
	limit := len(haystack)
	if len(dst) > n {
		// Longer literals starting after the one-byte hit cannot win.
		limit = min(limit, dst[n].Start+f.maxLen)
	}
	m := len(dst)
	dst = f.long.FindAt(haystack[:limit], at, dst)
	if len(dst) == n {
		return dst
	}

	lo := dst[n].Start
	for _, o := range dst[n+1:] {
		lo = min(lo, o.Start)
	}
	out := dst[:n]
	for i, o := range dst[n:] {
		if o.Start != lo {
			continue
		}
		if n+i < m {
			o.Literal = f.shortIdx[o.Literal]
		} else {
			o.Literal = f.longIdx[o.Literal]
		}
		out = append(out, o)
	}
	return out
}

func (f *splitFinder) Literals() [][]byte { return f.lits }

func (f *splitFinder) HeapBytes() int {
	return f.short.HeapBytes() + f.long.HeapBytes() + 8*(len(f.shortIdx)+len(f.longIdx))
}
