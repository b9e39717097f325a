package store

import "errors"

// Sentinel errors classifying store failures. Callers match them with
// errors.Is; plain read/write faults from the filesystem are returned
// wrapped without a sentinel.
var (
	// ErrNotFound reports a lookup or mutation against an unknown task ID.
	ErrNotFound = errors.New("task not found")

	// ErrDuplicate reports an insert whose task ID is already present.
	ErrDuplicate = errors.New("task already exists")

	// ErrParse reports a data file whose content is not valid JSON, or a
	// record inside it that cannot be decoded.
	ErrParse = errors.New("data file is not valid JSON")

	// ErrSchema reports a data file whose top level is not a JSON array.
	ErrSchema = errors.New("data file is not a JSON array")
)
