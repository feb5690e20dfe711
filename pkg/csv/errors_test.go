package csv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowError_TooMany(t *testing.T) {
	err := &RowError{Line: 7, Expected: 4, Err: ErrTooManyFields}

	assert.Equal(t, "found more than 4 fields on line 7", err.Error())
	assert.True(t, errors.Is(err, ErrTooManyFields))
	assert.False(t, errors.Is(err, ErrTooFewFields))
}

func TestRowError_TooFew(t *testing.T) {
	err := &RowError{Line: 3, Expected: 5, Found: 2, Err: ErrTooFewFields}

	assert.Equal(t, "expected 5 fields but found 2 on line 3", err.Error())
	assert.True(t, errors.Is(err, ErrTooFewFields))
}

func TestRowError_Unwrap(t *testing.T) {
	err := &RowError{Line: 1, Expected: 2, Err: ErrTooManyFields}
	assert.Equal(t, ErrTooManyFields, errors.Unwrap(err))
}

func TestOptionsError_Message(t *testing.T) {
	err := &OptionsError{Field: "ChunkSize", Message: "must be at least 1 byte"}
	assert.Equal(t, "csv: invalid ChunkSize: must be at least 1 byte", err.Error())
}
