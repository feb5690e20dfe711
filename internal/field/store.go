// Package field stores materialized CSV field values in per-column
// buffers that are reused from row to row.
package field

import "github.com/go-logr/logr"

// A cell is the storage for one column: an exactly sized allocation
// that only ever grows, plus the length of the value currently held.
// A length of zero marks the column as absent for the current row.
type cell struct {
	buf []byte
	n   int
}

// Store holds one reusable cell per column of the document's schema.
// Cell capacity is never released until the store itself is dropped,
// so steady-state reads allocate only when a value outgrows every
// value previously seen in its column.
type Store struct {
	cells []cell
	log   logr.Logger
}

// NewStore creates storage for width columns.
func NewStore(width int, log logr.Logger) *Store {
	return &Store{
		cells: make([]cell, width),
		log:   log,
	}
}

// Width returns the number of columns.
func (s *Store) Width() int {
	return len(s.cells)
}

// Set materializes the raw field span into column i. When escaped is
// set the copy collapses each doubled quote pair into a single literal
// quote; otherwise the span is copied verbatim. The cell's allocation
// is replaced only when the value does not fit, and replacements are
// sized exactly, with no slack.
func (s *Store) Set(i int, raw []byte, escaped bool) {
	c := &s.cells[i]

	if len(raw) == 0 {
		c.n = 0
		return
	}

	if len(raw) > len(c.buf) {
		s.log.V(1).Info("growing field", "column", i, "capacity", len(c.buf), "need", len(raw))
		c.buf = make([]byte, len(raw))
	}

	if !escaped {
		copy(c.buf, raw)
		c.n = len(raw)
		return
	}

	j := 0
	for k := 0; k < len(raw); k++ {
		if raw[k] == '"' && k+1 < len(raw) && raw[k+1] == '"' {
			k++
		}
		c.buf[j] = raw[k]
		j++
	}
	c.n = j
}

// Bytes returns the value of column i, borrowing the cell's buffer.
// The slice is valid only until the column is materialized again. ok
// is false when the column is absent or i is out of range: an absent
// column is distinct from an empty string.
func (s *Store) Bytes(i int) ([]byte, bool) {
	if i < 0 || i >= len(s.cells) {
		return nil, false
	}
	c := &s.cells[i]
	if c.n == 0 {
		return nil, false
	}
	return c.buf[:c.n], true
}
