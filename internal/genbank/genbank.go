// Package genbank parses flat-file genome records: the header block, the
// feature table with its location expressions, and the origin sequence.
package genbank

import (
	"errors"
	"fmt"
)

// Structural error kinds. Any of these aborts the parse of the whole
// record; no partial Record is returned.
var (
	// ErrTruncatedRecord reports input that ended before the // terminator.
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrUnrecognizedSection reports content outside the header, feature
	// table, and sequence sections.
	ErrUnrecognizedSection = errors.New("unrecognized section")

	// ErrMalformedFeature reports a feature-table entry that does not
	// follow the key/location/qualifier layout.
	ErrMalformedFeature = errors.New("malformed feature")

	// ErrMalformedLocation reports a location expression outside the
	// recognized grammar, or one that resolves outside the sequence.
	ErrMalformedLocation = errors.New("malformed location")
)

// ParseError represents an error during record parsing with line context.
type ParseError struct {
	Line    int
	Message string
	Err     error // underlying error kind, if any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("genbank parse error at line %d: %s", e.Line, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
