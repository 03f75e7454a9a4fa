package wikidump

import (
	"bufio"
	"io"
)

// recorder hands bytes to the xml decoder one at a time and remembers
// them, so the raw markup of a token range can be recovered by input
// offset.
//
// Because it is an io.ByteReader the decoder does no read-ahead of its
// own, which keeps the decoder's InputOffset in step with what has
// been recorded here.
type recorder struct {
	r    *bufio.Reader
	buf  []byte
	base int64 // input offset of buf[0]
	err  error // first read failure other than io.EOF
}

func newRecorder(r io.Reader) *recorder {
	return &recorder{r: bufio.NewReaderSize(r, 64*1024)}
}

func (rc *recorder) ReadByte() (byte, error) {
	b, err := rc.r.ReadByte()
	if err == nil {
		rc.buf = append(rc.buf, b)
	} else if err != io.EOF && rc.err == nil {
		rc.err = err
	}
	return b, err
}

func (rc *recorder) Read(p []byte) (int, error) {
	n, err := rc.r.Read(p)
	rc.buf = append(rc.buf, p[:n]...)
	if err != nil && err != io.EOF && rc.err == nil {
		rc.err = err
	}
	return n, err
}

// discard forgets everything before the given input offset.
func (rc *recorder) discard(off int64) {
	k := int(off - rc.base)
	if k <= 0 {
		return
	}
	if k > len(rc.buf) {
		k = len(rc.buf)
	}
	n := copy(rc.buf, rc.buf[k:])
	rc.buf = rc.buf[:n]
	rc.base += int64(k)
}

// span returns the recorded bytes in [from, to).  The slice aliases the
// recorder's buffer and is only valid until the next discard.
func (rc *recorder) span(from, to int64) []byte {
	return rc.buf[from-rc.base : to-rc.base]
}
