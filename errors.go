package taglib

import "errors"

// Error taxonomy (spec.md §7). Parse-time errors (NotRecognized,
// MalformedHeader, TruncatedInput) are returned, wrapped, from the format
// packages' Open and Parse functions, and no handle is returned with them;
// a handle carries no validity flag. Save-time errors (ReadOnlyTarget,
// IOFailure) are returned directly from Save.
var (
	// ErrNotRecognized means the file does not match the container family
	// a reader was asked to open it as.
	ErrNotRecognized = errors.New("taglib: file not recognized")

	// ErrMalformedHeader means a fixed signature or structurally required
	// field was absent or inconsistent.
	ErrMalformedHeader = errors.New("taglib: malformed header")

	// ErrTruncatedInput means a required read returned fewer bytes than
	// requested.
	ErrTruncatedInput = errors.New("taglib: truncated input")

	// ErrReadOnlyTarget means Save was attempted on a read-only handle.
	ErrReadOnlyTarget = errors.New("taglib: read-only target")

	// ErrIOFailure means an underlying write or truncate failed during
	// Save; the file may be left in an inconsistent state.
	ErrIOFailure = errors.New("taglib: io failure during save")
)
