// Package csv reads comma-separated documents row by row through a
// reusable Session.
//
// A Session supports four input sources: a fully materialized file, a
// copied string, a borrowed (zero-copy) string, and a file consumed
// incrementally in bounded chunks. All four yield the same field
// sequences for the same document.
//
// The format is RFC 4180-adjacent: comma-delimited fields, rows
// terminated by CR and/or LF, double-quoted fields with doubled-quote
// escaping. Runs of terminators collapse into a single row boundary,
// so blank lines never produce rows. Fields that are empty (after any
// configured trimming) are reported as absent rather than as empty
// strings.
package csv

import "errors"

// ReadAllString parses an in-memory document and returns every data
// row, with absent columns rendered as empty strings. An empty
// document yields no rows.
func ReadAllString(data string, opts Options) ([][]string, error) {
	s := New()
	if err := s.Configure(opts); err != nil {
		return nil, err
	}
	if err := s.OpenString(data, true); err != nil {
		if errors.Is(err, ErrEmptyDocument) {
			return [][]string{}, nil
		}
		return nil, err
	}
	defer s.Close()
	return readAll(s)
}

// ReadAllFile parses the fully materialized file at path and returns
// every data row, with absent columns rendered as empty strings.
func ReadAllFile(path string, opts Options) ([][]string, error) {
	s := New()
	if err := s.Configure(opts); err != nil {
		return nil, err
	}
	if err := s.OpenFile(path, true); err != nil {
		if errors.Is(err, ErrEmptyDocument) {
			return [][]string{}, nil
		}
		return nil, err
	}
	defer s.Close()
	return readAll(s)
}

func readAll(s *Session) ([][]string, error) {
	rows := [][]string{}
	for s.Scan() {
		rows = append(rows, s.Row())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
