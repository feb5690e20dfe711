package csv

import (
	"os"
	"unsafe"

	"github.com/fieldline/csvdoc/internal/chunk"
)

// source supplies document bytes to a Session one logical row at a
// time. The in-memory variants hold the whole document, so ensuring
// the next row is buffered is a no-op; the streaming variant delegates
// to the chunk loader.
type source interface {
	// ensure guarantees the returned buffer holds, from pos on, at
	// least one complete logical row or the final bytes of the
	// document. done reports that no data remains at pos.
	ensure(pos int) (buf []byte, done bool, err error)

	// advance marks the row ending at end as consumed and returns the
	// cursor position for the next row.
	advance(end int) int

	// rewind returns the cursor to the start of the document. Only
	// meaningful before any row has been consumed.
	rewind() int

	// close releases the underlying stream, if any.
	close() error
}

// memorySource serves the three fully-buffered modes: owned file
// buffer, owned (copied) string buffer, and borrowed string buffer.
// The buffer never changes after open; only the cursor moves.
type memorySource struct {
	buf []byte
}

func (m *memorySource) ensure(pos int) ([]byte, bool, error) {
	// A NUL byte ends the document, matching the tokenizer's scan
	// sentinel.
	if pos >= len(m.buf) || m.buf[pos] == 0 {
		return m.buf, true, nil
	}
	return m.buf, false, nil
}

func (m *memorySource) advance(end int) int {
	return end
}

func (m *memorySource) rewind() int {
	return 0
}

func (m *memorySource) close() error {
	return nil
}

// streamSource serves the incremental file mode.
type streamSource struct {
	f      *os.File
	loader *chunk.Loader
}

func (s *streamSource) ensure(int) ([]byte, bool, error) {
	return s.loader.Ensure()
}

func (s *streamSource) advance(end int) int {
	s.loader.Consume(end)
	return 0
}

func (s *streamSource) rewind() int {
	// The schema row is still buffered; leaving it unconsumed is the
	// rewind.
	return 0
}

func (s *streamSource) close() error {
	return s.f.Close()
}

// borrowBytes views a caller-owned string as a byte slice without
// copying. The session never writes through the view; the caller must
// keep the string alive while the document is open.
func borrowBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
