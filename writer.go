package wikidump

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync"

	"go.uber.org/multierr"
)

// The fixed document framing of every output file.
const (
	XMLHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"
	RootOpen  = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.11/" version="0.11">` + "\n"
	RootClose = "</mediawiki>\n"
)

var errWriterClosed = errors.New("writer is closed")

// A Writer produces one output dump document.
//
// The header and root start tag are written once, before the first
// page; the root end tag is written once by Close.  Close must be
// called on every path, including after errors, for the output to be
// well-formed.
type Writer struct {
	Name string

	mu     sync.Mutex
	bw     *bufio.Writer
	c      io.Closer
	opened bool
	closed bool
	pages  int64
}

// NewWriter returns a Writer over w.  If w is an io.Closer it is closed
// by Close.
func NewWriter(w io.Writer, name string) *Writer {
	rv := &Writer{Name: name, bw: bufio.NewWriterSize(w, 256*1024)}
	if c, ok := w.(io.Closer); ok {
		rv.c = c
	}
	return rv
}

// CreateWriter creates (or truncates) the named file and returns a
// Writer for it.
func CreateWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &IOError{Op: "create", Path: path, Err: err}
	}
	return NewWriter(f, path), nil
}

// Open writes the document header.  Calling it more than once is
// harmless.
func (w *Writer) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open()
}

func (w *Writer) open() error {
	if w.closed {
		return w.ioError("write", errWriterClosed)
	}
	if w.opened {
		return nil
	}
	w.opened = true
	if _, err := w.bw.WriteString(XMLHeader + RootOpen); err != nil {
		return w.ioError("write", err)
	}
	return nil
}

// Write appends a page's markup.  The page is written in one piece;
// concurrent calls never interleave.
func (w *Writer) Write(p *Page) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.open(); err != nil {
		return err
	}
	// bufio.Writer errors are sticky, so WriteByte reports any failure
	// of the two writes before it.
	w.bw.WriteString("  ")
	w.bw.Write(p.Raw)
	if err := w.bw.WriteByte('\n'); err != nil {
		return w.ioError("write", err)
	}
	w.pages++
	return nil
}

// Pages returns how many pages have been written.
func (w *Writer) Pages() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pages
}

// Close ends the document and releases the underlying sink.  Only the
// first call does anything.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}

	if !w.opened {
		w.opened = true
		w.bw.WriteString(XMLHeader + RootOpen)
	}
	w.closed = true
	w.bw.WriteString(RootClose)

	// Write errors are sticky in the bufio.Writer, so Flush reports
	// any that happened earlier too.
	var err error
	if ferr := w.bw.Flush(); ferr != nil {
		err = w.ioError("write", ferr)
	}
	if w.c != nil {
		if cerr := w.c.Close(); cerr != nil {
			err = multierr.Append(err, w.ioError("close", cerr))
		}
	}
	return err
}

func (w *Writer) ioError(op string, err error) error {
	return &IOError{Op: op, Path: w.Name, Err: err}
}
