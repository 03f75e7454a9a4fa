package wikidump

import (
	"io"

	"go.uber.org/multierr"
)

// RunCounters tallies a filter run.
type RunCounters struct {
	Total   int64
	Kept    int64
	Skipped int64
	// SkippedByModel has an entry for every blocked model, even those
	// that never matched.
	SkippedByModel map[string]int64
}

// NewRunCounters returns zeroed counters for the given blocklist.
func NewRunCounters(b Blocklist) RunCounters {
	rv := RunCounters{SkippedByModel: make(map[string]int64, len(b))}
	for n := range b {
		rv.SkippedByModel[n] = 0
	}
	return rv
}

func (c *RunCounters) record(d Decision) {
	c.Total++
	if d.Dropped() {
		c.Skipped++
		c.SkippedByModel[d.Model]++
	} else {
		c.Kept++
	}
}

// Filter copies every page from p to w except those whose latest
// revision has a blocked content model.
//
// w is opened before the first page and always closed before Filter
// returns, so it holds a complete document even when parsing or
// writing fails part way.  The counters reflect the pages handled up
// to that point.
func Filter(p Parser, w *Writer, b Blocklist) (rv RunCounters, err error) {
	return FilterFunc(p, w, b, nil)
}

// FilterFunc is Filter with a callback invoked for every page after
// it has been classified and, if kept, written.
func FilterFunc(p Parser, w *Writer, b Blocklist,
	cb func(*Page, Decision)) (rv RunCounters, err error) {

	rv = NewRunCounters(b)
	defer func() {
		err = multierr.Append(err, w.Close())
	}()
	if err = w.Open(); err != nil {
		return rv, err
	}

	for {
		page, perr := p.Next()
		if perr == io.EOF {
			return rv, nil
		}
		if perr != nil {
			return rv, perr
		}

		d := Classify(page, b)
		if !d.Dropped() {
			if err = w.Write(page); err != nil {
				return rv, err
			}
		}
		rv.record(d)
		if cb != nil {
			cb(page, d)
		}
	}
}
