package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAllString(t *testing.T) {
	rows, err := ReadAllString("name,age\nAlice,30\nBob,25", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Alice", "30"},
		{"Bob", "25"},
	}, rows)
}

func TestReadAllString_NoHeader(t *testing.T) {
	opts := DefaultOptions()
	opts.Header = false

	rows, err := ReadAllString("a,b\nc,d", opts)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, rows)
}

func TestReadAllString_Empty(t *testing.T) {
	rows, err := ReadAllString("", DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadAllString_MalformedRow(t *testing.T) {
	_, err := ReadAllString("a,b\nc,d,e", DefaultOptions())
	assert.ErrorIs(t, err, ErrTooManyFields)
}

func TestReadAllFile(t *testing.T) {
	path := writeDoc(t, "h1,h2\nv1,v2\n")

	rows, err := ReadAllFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"v1", "v2"}}, rows)
}

func TestReadAllFile_Missing(t *testing.T) {
	_, err := ReadAllFile("does-not-exist.csv", DefaultOptions())
	assert.Error(t, err)
}
