package csv

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"

	"github.com/fieldline/csvdoc/internal/chunk"
	"github.com/fieldline/csvdoc/internal/field"
	"github.com/fieldline/csvdoc/internal/tokenizer"
)

// maxErrorLen bounds the text returned by LastError.
const maxErrorLen = 64

// Session reads one CSV document row by row. Opening a source derives
// the schema (the column count) from the first logical row; every
// subsequent row must match it. Field values are materialized into
// per-column buffers that are reused from row to row.
//
// Example usage:
//
//	s := csv.New()
//	if err := s.OpenFile("people.csv", false); err != nil {
//	    // handle error
//	}
//	defer s.Close()
//
//	for s.Scan() {
//	    name, ok := s.Field(0)
//	    // ...
//	}
//	if err := s.Err(); err != nil {
//	    // handle error
//	}
//
// A Session is not safe for concurrent use. After an error, Scan keeps
// returning false; close and reopen to retry.
type Session struct {
	opts    Options
	log     logr.Logger
	src     source
	store   *field.Store
	pos     int // cursor into the source buffer
	width   int // schema column count; 0 until derived
	line    int // current logical row, 1-indexed
	done    bool
	lastErr error
}

// New returns a session with the default configuration.
func New() *Session {
	return &Session{
		opts: DefaultOptions(),
		log:  logr.Discard(),
	}
}

// Configure replaces the session configuration. It must be called
// before a source is opened and fails with ErrAlreadyOpen afterwards.
func (s *Session) Configure(opts Options) error {
	if s.src != nil {
		return s.fail(ErrAlreadyOpen)
	}
	if err := opts.Validate(); err != nil {
		return s.fail(err)
	}
	s.opts = opts
	return nil
}

// SetLogger routes the session's trace output. The default logger
// discards everything.
func (s *Session) SetLogger(log logr.Logger) {
	s.log = log
}

// OpenFile opens the document at path. With materialize the whole
// file is read into memory up front; otherwise it is consumed
// incrementally in ChunkSize reads.
func (s *Session) OpenFile(path string, materialize bool) error {
	if s.src != nil {
		return s.fail(ErrAlreadyOpen)
	}
	if materialize {
		data, err := os.ReadFile(path)
		if err != nil {
			return s.fail(fmt.Errorf("open source: %w", err))
		}
		return s.open(&memorySource{buf: data})
	}
	f, err := os.Open(path)
	if err != nil {
		return s.fail(fmt.Errorf("open source: %w", err))
	}
	return s.open(&streamSource{
		f:      f,
		loader: chunk.NewLoader(f, s.opts.ChunkSize, s.log),
	})
}

// OpenString opens an in-memory document. With copy the data is
// duplicated into a session-owned buffer; without it the session
// borrows the caller's string, which must outlive the open document.
func (s *Session) OpenString(data string, copy bool) error {
	if s.src != nil {
		return s.fail(ErrAlreadyOpen)
	}
	if copy {
		return s.open(&memorySource{buf: []byte(data)})
	}
	return s.open(&memorySource{buf: borrowBytes(data)})
}

// open installs the source and performs the one internal read that
// derives the schema from the first logical row.
func (s *Session) open(src source) error {
	s.src = src
	s.store = nil
	s.pos = 0
	s.width = 0
	s.line = 0
	s.done = false
	s.lastErr = nil

	end, err := s.readRow()
	if err == nil && s.done {
		err = ErrEmptyDocument
	}
	if err != nil {
		src.close()
		s.src = nil
		return s.fail(err)
	}

	s.store = field.NewStore(s.width, s.log)

	if s.opts.Header {
		s.pos = s.src.advance(end)
	} else {
		// Re-read the schema row as the first data row.
		s.pos = s.src.rewind()
		s.line--
	}
	return nil
}

// Scan advances to the next data row. It returns false at the end of
// the document or on error; Err distinguishes the two.
func (s *Session) Scan() bool {
	if s.lastErr != nil {
		return false
	}
	if s.src == nil {
		s.fail(ErrNotOpen)
		return false
	}
	if s.done {
		return false
	}

	end, err := s.readRow()
	if err != nil {
		s.fail(err)
		return false
	}
	if s.done {
		return false
	}
	s.pos = s.src.advance(end)
	return true
}

// readRow tokenizes one logical row, returning the cursor position
// just past it. The first row of a document only counts fields to
// derive the schema; later rows materialize fields into the store and
// are checked against the schema's column count.
func (s *Session) readRow() (int, error) {
	buf, done, err := s.src.ensure(s.pos)
	if err != nil {
		return 0, err
	}
	if done {
		s.done = true
		return s.pos, nil
	}

	first := s.width == 0
	s.line++
	s.log.V(1).Info("reading row", "line", s.line)

	pos := s.pos
	index := 0
	for {
		if !first && index == s.width {
			return 0, &RowError{Line: s.line, Expected: s.width, Err: ErrTooManyFields}
		}
		f, next, res := tokenizer.Scan(buf, pos)
		if first {
			s.width++
		} else {
			s.materialize(index, buf, f)
		}
		pos = next
		index++
		if res == tokenizer.EndOfRow {
			break
		}
	}

	if !first && index != s.width {
		return 0, &RowError{Line: s.line, Expected: s.width, Found: index, Err: ErrTooFewFields}
	}
	return pos, nil
}

// materialize trims and stores one raw field span. Trimming applies
// only to unquoted fields: quoting opts a field out of it.
func (s *Session) materialize(index int, buf []byte, f tokenizer.Field) {
	raw := buf[f.Start:f.End]
	if !f.Quoted {
		if s.opts.LeftTrim {
			for len(raw) > 0 && raw[0] == ' ' {
				raw = raw[1:]
			}
		}
		if s.opts.RightTrim {
			for len(raw) > 0 && raw[len(raw)-1] == ' ' {
				raw = raw[:len(raw)-1]
			}
		}
	}
	s.store.Set(index, raw, f.Escaped)
}

// Field returns the value of the column at index for the current row.
// ok is false when the column is absent (empty after trimming) or
// index is out of range: an absent column is distinct from "".
func (s *Session) Field(index int) (string, bool) {
	if s.store == nil {
		return "", false
	}
	b, ok := s.store.Bytes(index)
	if !ok {
		return "", false
	}
	return string(b), true
}

// FieldBytes is the zero-copy variant of Field. The returned slice
// borrows the column's reusable buffer and is valid only until the
// next Scan.
func (s *Session) FieldBytes(index int) ([]byte, bool) {
	if s.store == nil {
		return nil, false
	}
	return s.store.Bytes(index)
}

// Row returns the current row as a string slice, with absent columns
// rendered as empty strings.
func (s *Session) Row() []string {
	if s.store == nil {
		return nil
	}
	row := make([]string, s.width)
	for i := range row {
		row[i], _ = s.Field(i)
	}
	return row
}

// Width returns the schema's column count, 0 before a source is open.
func (s *Session) Width() int {
	return s.width
}

// Line returns the logical row number of the most recent read.
func (s *Session) Line() int {
	return s.line
}

// Err returns the error that stopped Scan, or nil at a normal end of
// data.
func (s *Session) Err() error {
	return s.lastErr
}

// LastError returns the most recent error's message, truncated to a
// fixed length. It is overwritten by the next failing operation and
// cleared by Close.
func (s *Session) LastError() string {
	if s.lastErr == nil {
		return ""
	}
	msg := s.lastErr.Error()
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen]
	}
	return msg
}

// Close releases the stream and buffers and leaves the session ready
// for another open. The configuration is retained.
func (s *Session) Close() error {
	var err error
	if s.src != nil {
		err = s.src.close()
	}
	s.src = nil
	s.store = nil
	s.pos = 0
	s.width = 0
	s.line = 0
	s.done = false
	s.lastErr = nil
	return err
}

func (s *Session) fail(err error) error {
	s.lastErr = err
	return err
}
