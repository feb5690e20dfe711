package csv

import (
	"errors"
	"fmt"
)

// Session misuse and document shape errors.
var (
	// ErrNotOpen indicates a read before a source was successfully
	// opened.
	ErrNotOpen = errors.New("no source open")

	// ErrAlreadyOpen indicates Configure or an open call on a session
	// that already has an open source. The schema is derived under the
	// configuration in force at open time, so reconfiguring an open
	// session is rejected rather than left undefined.
	ErrAlreadyOpen = errors.New("source already open")

	// ErrEmptyDocument indicates an open call on a document with no
	// logical rows, leaving no first row to derive a schema from.
	ErrEmptyDocument = errors.New("empty document")

	// ErrTooManyFields indicates a row wider than the schema.
	ErrTooManyFields = errors.New("too many fields")

	// ErrTooFewFields indicates a row narrower than the schema.
	ErrTooFewFields = errors.New("too few fields")
)

// RowError reports a row whose field count does not match the schema
// established by the document's first logical row.
type RowError struct {
	// Line is the logical row number of the offending row (1-indexed).
	Line int
	// Expected is the schema's column count.
	Expected int
	// Found is the number of fields the row produced. It is only
	// meaningful for ErrTooFewFields: a too-wide row fails as soon as
	// the count is exceeded, before the row is fully scanned.
	Found int
	// Err is ErrTooManyFields or ErrTooFewFields.
	Err error
}

// Error returns a message naming the offending line.
func (e *RowError) Error() string {
	if errors.Is(e.Err, ErrTooManyFields) {
		return fmt.Sprintf("found more than %d fields on line %d", e.Expected, e.Line)
	}
	return fmt.Sprintf("expected %d fields but found %d on line %d", e.Expected, e.Found, e.Line)
}

// Unwrap returns the sentinel classifying the mismatch.
func (e *RowError) Unwrap() error {
	return e.Err
}

// OptionsError reports an invalid configuration value.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}
