package taglib

import "io"

// Stream is the injected random-access medium every reader/coordinator in
// this module is built against (spec.md §6 "IOStream"). It is satisfied by
// the *os.File adapter OpenFile returns and by the in-memory tagtest.Mem
// test double; every seek this module makes uses io.SeekStart.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker

	// Len returns the total length of the underlying medium in bytes.
	Len() (int64, error)

	// Truncate drops everything at or after offset.
	Truncate(offset int64) error

	// ReadOnly reports whether the stream rejects writes/truncation.
	ReadOnly() bool
}
