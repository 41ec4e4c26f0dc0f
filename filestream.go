package taglib

import (
	"fmt"
	"os"
)

// fileStream adapts *os.File to Stream.
type fileStream struct {
	*os.File
	readOnly bool
}

// OpenFile opens path as a Stream. readOnly controls whether Save-side
// operations (Replace, Truncate) are permitted; queries always work
// regardless.
func OpenFile(path string, readOnly bool) (Stream, error) {
	flag := os.O_RDWR
	if readOnly {
		flag = os.O_RDONLY
	}

	f, err := os.OpenFile(path, flag, 0) //nolint:gosec // CLI tool operates on user-specified audio files
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	return &fileStream{File: f, readOnly: readOnly}, nil
}

// Len returns the file's current size.
func (s *fileStream) Len() (int64, error) {
	info, err := s.Stat()
	if err != nil {
		return 0, fmt.Errorf("stating file: %w", err)
	}

	return info.Size(), nil
}

// Truncate drops everything at or after offset.
func (s *fileStream) Truncate(offset int64) error {
	if s.readOnly {
		return ErrReadOnlyTarget
	}

	return s.File.Truncate(offset) //nolint:wrapcheck // os.File error is already descriptive
}

// ReadOnly reports whether the stream rejects writes.
func (s *fileStream) ReadOnly() bool { return s.readOnly }
