package csv

// Options configures a Session. The configuration must be in place
// before a source is opened: the schema is derived from the first
// logical row under these settings, so Configure fails once a source
// is open.
type Options struct {
	// Header controls whether the first logical row is a header. A
	// header row establishes the column count and is not surfaced as
	// data. When disabled the first row still establishes the column
	// count but is then re-read as the first data row.
	// Default: true
	Header bool

	// LeftTrim strips leading space characters from unquoted fields.
	// Quoting a field opts it out of trimming.
	// Default: false
	LeftTrim bool

	// RightTrim strips trailing space characters from unquoted fields.
	// Default: false
	RightTrim bool

	// ChunkSize is the number of bytes read per refill in streaming
	// mode, and the fixed increment by which the streaming buffer
	// grows. The in-memory modes ignore it.
	// Default: 1024
	ChunkSize int
}

// DefaultOptions returns the default session configuration.
func DefaultOptions() Options {
	return Options{
		Header:    true,
		LeftTrim:  false,
		RightTrim: false,
		ChunkSize: 1024,
	}
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	if o.ChunkSize < 1 {
		return &OptionsError{Field: "ChunkSize", Message: "must be at least 1 byte"}
	}
	return nil
}
