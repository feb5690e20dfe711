package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tok is one scanned field with its raw span and flags.
type tok struct {
	raw     string
	quoted  bool
	escaped bool
}

// scanRow consumes fields until EndOfRow and returns them along with
// the cursor position past the row.
func scanRow(t *testing.T, buf []byte, pos int) ([]tok, int) {
	t.Helper()
	var out []tok
	for {
		f, next, res := Scan(buf, pos)
		require.GreaterOrEqual(t, f.End, f.Start)
		out = append(out, tok{raw: string(buf[f.Start:f.End]), quoted: f.Quoted, escaped: f.Escaped})
		pos = next
		if res == EndOfRow {
			return out, pos
		}
	}
}

func TestScan_PlainFields(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     []tok
		wantNext int
	}{
		{
			name:     "single field",
			input:    "hello",
			want:     []tok{{raw: "hello"}},
			wantNext: 5,
		},
		{
			name:     "three fields",
			input:    "a,b,c",
			want:     []tok{{raw: "a"}, {raw: "b"}, {raw: "c"}},
			wantNext: 5,
		},
		{
			name:     "terminator not consumed into fields",
			input:    "a,b\nc,d",
			want:     []tok{{raw: "a"}, {raw: "b"}},
			wantNext: 4,
		},
		{
			name:     "crlf terminator",
			input:    "a,b\r\nc",
			want:     []tok{{raw: "a"}, {raw: "b"}},
			wantNext: 5,
		},
		{
			name:     "cr only terminator",
			input:    "a\rb",
			want:     []tok{{raw: "a"}},
			wantNext: 2,
		},
		{
			name:     "empty leading field",
			input:    ",a",
			want:     []tok{{raw: ""}, {raw: "a"}},
			wantNext: 2,
		},
		{
			name:     "empty middle field",
			input:    "a,,c",
			want:     []tok{{raw: "a"}, {raw: ""}, {raw: "c"}},
			wantNext: 4,
		},
		{
			name:     "terminator-only row",
			input:    "\n",
			want:     []tok{{raw: ""}},
			wantNext: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, next := scanRow(t, []byte(tt.input), 0)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantNext, next)
		})
	}
}

func TestScan_QuotedFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "quoted field",
			input: `"a",b`,
			want:  []tok{{raw: "a", quoted: true}, {raw: "b"}},
		},
		{
			name:  "quoted with embedded comma",
			input: `"a,b",c`,
			want:  []tok{{raw: "a,b", quoted: true}, {raw: "c"}},
		},
		{
			name:  "quoted with embedded terminator",
			input: "\"a\nb\",c",
			want:  []tok{{raw: "a\nb", quoted: true}, {raw: "c"}},
		},
		{
			name:  "escaped quote pair kept raw in span",
			input: `"a""b",c`,
			want:  []tok{{raw: `a""b`, quoted: true, escaped: true}, {raw: "c"}},
		},
		{
			name:  "span ending in escaped pair",
			input: `"a""",c`,
			want:  []tok{{raw: `a""`, quoted: true, escaped: true}, {raw: "c"}},
		},
		{
			name:  "empty quoted field",
			input: `"",c`,
			want:  []tok{{raw: "", quoted: true}, {raw: "c"}},
		},
		{
			name:  "unterminated quote runs to end of buffer",
			input: `"abc`,
			want:  []tok{{raw: "abc", quoted: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := scanRow(t, []byte(tt.input), 0)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The scanner keeps two deliberate departures from common CSV
// semantics; both are load-bearing format behavior, not bugs.
func TestScan_FormatQuirks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "mid-field quote discards scanned prefix",
			input: `ab"cd",e`,
			want:  []tok{{raw: "cd", quoted: true}, {raw: "e"}},
		},
		{
			name:  "garbage after closing quote dropped",
			input: `"ab"junk,c`,
			want:  []tok{{raw: "ab", quoted: true}, {raw: "c"}},
		},
		{
			name:  "garbage after closing quote dropped before terminator",
			input: "\"ab\"junk\nc",
			want:  []tok{{raw: "ab", quoted: true}},
		},
		{
			name:  "trailing comma before terminator yields no extra field",
			input: "a,b,\nc",
			want:  []tok{{raw: "a"}, {raw: "b"}},
		},
		{
			name:  "trailing comma at end of buffer yields no extra field",
			input: "a,b,",
			want:  []tok{{raw: "a"}, {raw: "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := scanRow(t, []byte(tt.input), 0)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScan_TerminatorCollapsing(t *testing.T) {
	// All contiguous CR/LF bytes collapse into one row boundary, so
	// blank lines are invisible.
	buf := []byte("a,b\r\n\r\n\nc,d")

	row1, next := scanRow(t, buf, 0)
	assert.Equal(t, []tok{{raw: "a"}, {raw: "b"}}, row1)
	assert.Equal(t, 8, next)

	row2, next := scanRow(t, buf, next)
	assert.Equal(t, []tok{{raw: "c"}, {raw: "d"}}, row2)
	assert.Equal(t, len(buf), next)
}

func TestScan_NulActsAsEndOfBuffer(t *testing.T) {
	buf := []byte("a,b\x00c,d")

	row, next := scanRow(t, buf, 0)
	assert.Equal(t, []tok{{raw: "a"}, {raw: "b"}}, row)

	// The cursor stays on the NUL; the bytes beyond it are never
	// reached.
	assert.Equal(t, 3, next)
	assert.True(t, atEnd(buf, next))
}

func TestScan_MultiRowWalk(t *testing.T) {
	buf := []byte("First,Last,Age\nJohn,Smith,55\nJane,Doe,43")

	var rows [][]tok
	pos := 0
	for !atEnd(buf, pos) {
		row, next := scanRow(t, buf, pos)
		rows = append(rows, row)
		pos = next
	}

	require.Len(t, rows, 3)
	assert.Equal(t, []tok{{raw: "First"}, {raw: "Last"}, {raw: "Age"}}, rows[0])
	assert.Equal(t, []tok{{raw: "John"}, {raw: "Smith"}, {raw: "55"}}, rows[1])
	assert.Equal(t, []tok{{raw: "Jane"}, {raw: "Doe"}, {raw: "43"}}, rows[2])
}
