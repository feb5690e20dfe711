// Package tokenizer scans CSV fields out of a raw byte buffer.
//
// The scanner is cursor based: the caller owns the buffer and a
// position into it, and each Scan call consumes exactly one field,
// reporting whether more fields remain on the current row. The
// delimiter and quote characters are fixed (comma and double quote).
package tokenizer

// Result classifies the outcome of scanning one field.
type Result int

const (
	// More means a field was scanned and more fields follow on this row.
	More Result = iota

	// EndOfRow means a field was scanned and the row terminator (or
	// the end of the buffer) was consumed. The field itself is still
	// valid: end-of-row is a successful field result, not a failure.
	EndOfRow
)

// Field describes one scanned field as a raw span into the buffer,
// before any unescaping or trimming.
type Field struct {
	// Start and End delimit the field's bytes. For a quoted field the
	// span excludes the surrounding quotes but still contains doubled
	// quote pairs when Escaped is set.
	Start, End int

	// Quoted is set when the field was delimited by double quotes.
	Quoted bool

	// Escaped is set when the span contains doubled quote pairs that
	// must be collapsed to single quotes during materialization.
	Escaped bool
}

// Scan consumes one field of the row beginning at pos and returns the
// field's span, the cursor position for the next call, and whether the
// row continues. A NUL byte is treated the same as the end of the
// buffer; documents must not contain embedded NUL bytes.
//
// After the field is delimited, exactly one comma is skipped if
// present. A run of contiguous CR/LF bytes is consumed as a single row
// terminator, so a blank line between two terminators never produces a
// row of its own.
//
// Two departures from common CSV semantics are intentional properties
// of the format this scanner implements:
//
//   - A quote in the middle of an unquoted field switches the scanner
//     into quoted mode at that position, discarding the bytes already
//     scanned for the field.
//   - Bytes between a closing quote and the next delimiter or
//     terminator are scanned and dropped.
func Scan(buf []byte, pos int) (Field, int, Result) {
	var f Field

	if !atEnd(buf, pos) && buf[pos] == '"' {
		f.Quoted = true
		pos++
	}

	start := pos
	end := pos

	for {
		if f.Quoted {
			if atEnd(buf, end) {
				// Unterminated quote: the field runs to the end of
				// the buffer.
				f.Start, f.End = start, end
				break
			}
			if buf[end] != '"' {
				end++
				continue
			}
			if !atEnd(buf, end+1) && buf[end+1] == '"' {
				f.Escaped = true
				end += 2
				continue
			}
			// Closing quote. Anything between it and the next
			// delimiter or terminator is dropped.
			f.Start, f.End = start, end
			end++
			for !atEnd(buf, end) && buf[end] != ',' && buf[end] != '\r' && buf[end] != '\n' {
				end++
			}
			break
		}

		if atEnd(buf, end) || buf[end] == ',' || buf[end] == '\r' || buf[end] == '\n' {
			f.Start, f.End = start, end
			break
		}
		if buf[end] == '"' {
			// Quote in the middle of an unquoted field: restart in
			// quoted mode, dropping what was scanned so far.
			f.Quoted = true
			end++
			start = end
			continue
		}
		end++
	}

	if !atEnd(buf, end) && buf[end] == ',' {
		end++
	}

	if atEnd(buf, end) || buf[end] == '\r' || buf[end] == '\n' {
		for !atEnd(buf, end) && (buf[end] == '\r' || buf[end] == '\n') {
			end++
		}
		return f, end, EndOfRow
	}

	return f, end, More
}

// atEnd reports whether i is past the usable bytes of buf. A NUL byte
// acts as an end-of-buffer sentinel.
func atEnd(buf []byte, i int) bool {
	return i >= len(buf) || buf[i] == 0
}
