package inventory

import "errors"

// Error kinds shared by the fact sources. Sources wrap them together with the
// underlying cause, so callers test with errors.Is.
var (
	// ErrIO reports an input source that could not be read.
	ErrIO = errors.New("io error")
	// ErrParse reports a readable source that is malformed or lacks a field.
	ErrParse = errors.New("parse error")
	// ErrExternalQuery reports a failed booted-system status query.
	ErrExternalQuery = errors.New("external query error")
)
