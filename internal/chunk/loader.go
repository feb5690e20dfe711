// Package chunk buffers a streamed CSV document so that at least one
// complete logical row is in memory before it is tokenized.
package chunk

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
)

// Loader owns the byte buffer for a streamed source. The buffer grows
// by fixed increments of one chunk, never multiplicatively, and after
// each row the consumed bytes are shifted out of the front, so peak
// growth is bounded by the longest single row rather than the whole
// document.
type Loader struct {
	r       io.Reader
	buf     []byte
	scan    int  // persistent cursor; scanned bytes are never rescanned
	size    int  // chunk size for refills and growth increments
	eof     bool // underlying stream exhausted
	started bool // at least one row has been consumed
	log     logr.Logger
}

// NewLoader wraps r with a buffer that refills size bytes at a time.
func NewLoader(r io.Reader, size int, log logr.Logger) *Loader {
	return &Loader{
		r:    r,
		size: size,
		log:  log,
	}
}

// Ensure makes the buffer hold at least one complete logical row, or
// the final bytes of the document when the stream ends without a
// terminator, and returns it. done reports that the stream is
// exhausted with nothing left buffered.
func (l *Loader) Ensure() ([]byte, bool, error) {
	for {
		// Terminator bytes at the head of the buffer are the tail of
		// the previous row's terminator run; drop them so blank lines
		// split across refills collapse exactly as they do when the
		// whole document is in memory.
		if l.started {
			n := 0
			for n < len(l.buf) && (l.buf[n] == '\r' || l.buf[n] == '\n') {
				n++
			}
			l.shift(n)
		}

		for l.scan < len(l.buf) {
			b := l.buf[l.scan]
			if b == '\r' || b == '\n' {
				return l.buf, false, nil
			}
			if b == 0 {
				// Embedded NUL acts as end of document.
				l.buf = l.buf[:l.scan]
				l.eof = true
				break
			}
			l.scan++
		}

		if l.eof {
			if len(l.buf) == 0 {
				return nil, true, nil
			}
			// No terminator will arrive: the buffered remainder is
			// the final row.
			return l.buf, false, nil
		}

		if err := l.refill(); err != nil {
			return nil, false, err
		}
	}
}

// Consume discards the first n bytes of the buffer, retaining the
// allocated capacity for reuse.
func (l *Loader) Consume(n int) {
	l.shift(n)
	l.started = true
}

// Buffered returns the number of unconsumed bytes currently held.
func (l *Loader) Buffered() int {
	return len(l.buf)
}

func (l *Loader) shift(n int) {
	if n <= 0 {
		return
	}
	if n > len(l.buf) {
		n = len(l.buf)
	}
	copy(l.buf, l.buf[n:])
	l.buf = l.buf[:len(l.buf)-n]
	if n >= l.scan {
		l.scan = 0
	} else {
		l.scan -= n
	}
}

// refill grows the buffer when headroom is below one chunk, then reads
// up to one chunk from the stream. A short read that reaches the end
// of the stream is not an error.
func (l *Loader) refill() error {
	if cap(l.buf)-len(l.buf) < l.size {
		l.log.V(1).Info("growing buffer", "capacity", cap(l.buf), "grown", cap(l.buf)+l.size)
		grown := make([]byte, len(l.buf), cap(l.buf)+l.size)
		copy(grown, l.buf)
		l.buf = grown
	}

	n, err := l.r.Read(l.buf[len(l.buf) : len(l.buf)+l.size])
	l.buf = l.buf[:len(l.buf)+n]
	if err == io.EOF {
		l.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("stream read: %w", err)
	}
	if n == 0 {
		// A zero-count read without an error only happens on broken
		// readers; treat it as end of stream rather than spinning.
		l.eof = true
	}
	return nil
}
