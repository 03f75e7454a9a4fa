package wikidump

import (
	"compress/bzip2"
	"io"
	"os"
	"strings"
)

type dumpFile struct {
	io.Reader
	f *os.File
}

func (d dumpFile) Close() error {
	if d.f == os.Stdin {
		return nil
	}
	return d.f.Close()
}

// OpenDump opens a dump for reading.  "-" reads standard input, and
// names ending in .bz2 are decompressed on the fly.
func OpenDump(path string) (io.ReadCloser, error) {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, &IOError{Op: "open", Path: path, Err: err}
		}
	}

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		r = bzip2.NewReader(f)
	}
	return dumpFile{Reader: r, f: f}, nil
}
