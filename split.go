package wikidump

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/multierr"
)

var partRE = regexp.MustCompile(`^part[0-9]+\.xml$`)

// SplitCounters tallies a split run.
type SplitCounters struct {
	Total int64
	// Parts holds the number of pages written to each output.
	Parts []int64
}

// PartIndex gives the output a page goes to: the k-th page (counting
// from zero) goes to k mod parts.
func PartIndex(ordinal int64, parts int) int {
	return int(ordinal % int64(parts))
}

// Split deals the pages of p round-robin across outs.
//
// Every writer is opened before the first page and all are closed
// before Split returns, whatever happens, so outputs that receive no
// pages still hold an empty, well-formed document.
func Split(p Parser, outs []*Writer) (rv SplitCounters, err error) {
	return SplitFunc(p, outs, nil)
}

// SplitFunc is Split with a callback invoked after each page is
// written, with the index of the output that received it.
func SplitFunc(p Parser, outs []*Writer,
	cb func(*Page, int)) (rv SplitCounters, err error) {

	if len(outs) == 0 {
		return rv, &ConfigError{Msg: "need at least one output part"}
	}

	rv.Parts = make([]int64, len(outs))
	defer func() {
		for _, w := range outs {
			err = multierr.Append(err, w.Close())
		}
	}()
	for _, w := range outs {
		if err = w.Open(); err != nil {
			return rv, err
		}
	}

	for {
		page, perr := p.Next()
		if perr == io.EOF {
			return rv, nil
		}
		if perr != nil {
			return rv, perr
		}

		i := PartIndex(rv.Total, len(outs))
		if err = outs[i].Write(page); err != nil {
			return rv, err
		}
		rv.Total++
		rv.Parts[i]++
		if cb != nil {
			cb(page, i)
		}
	}
}

// PartPath names the i-th (zero based) output file in dir.  Files are
// numbered from one: part1.xml, part2.xml, ...
func PartPath(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("part%d.xml", i+1))
}

// ClearParts removes part files left in dir by an earlier run.  Other
// files are left alone.
func ClearParts(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &IOError{Op: "read dir", Path: dir, Err: err}
	}
	for _, e := range entries {
		if e.IsDir() || !partRE.MatchString(e.Name()) {
			continue
		}
		fn := filepath.Join(dir, e.Name())
		if err := os.Remove(fn); err != nil {
			return &IOError{Op: "remove", Path: fn, Err: err}
		}
	}
	return nil
}

// CreateParts prepares dir and creates parts output files in it.
//
// A non-positive parts is rejected before anything touches the
// filesystem.  If creating one of the files fails, the files already
// created are closed as empty documents.
func CreateParts(dir string, parts int) ([]*Writer, error) {
	if parts <= 0 {
		return nil, &ConfigError{Msg: fmt.Sprintf("parts must be a positive integer, got %d", parts)}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &IOError{Op: "mkdir", Path: dir, Err: err}
	}
	if err := ClearParts(dir); err != nil {
		return nil, err
	}

	rv := make([]*Writer, 0, parts)
	for i := 0; i < parts; i++ {
		w, err := CreateWriter(PartPath(dir, i))
		if err != nil {
			for _, c := range rv {
				err = multierr.Append(err, c.Close())
			}
			return nil, err
		}
		rv = append(rv, w)
	}
	return rv, nil
}
