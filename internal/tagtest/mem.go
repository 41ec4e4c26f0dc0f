// Package tagtest provides an in-memory taglib.Stream used by every
// package's tests instead of touching the filesystem.
package tagtest

import (
	"errors"
	"io"

	"github.com/jpalus/taglib"
)

// Mem is a growable, seekable in-memory taglib.Stream.
type Mem struct {
	buf      []byte
	pos      int64
	readOnly bool
}

var _ taglib.Stream = (*Mem)(nil)

// NewMem wraps initial as a writable stream, copying it so the caller's
// slice is never mutated.
func NewMem(initial []byte) *Mem {
	buf := make([]byte, len(initial))
	copy(buf, initial)

	return &Mem{buf: buf}
}

// ReadOnlyMem wraps initial as a read-only stream.
func ReadOnlyMem(initial []byte) *Mem {
	m := NewMem(initial)
	m.readOnly = true

	return m
}

func (m *Mem) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}

	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)

	return n, nil
}

func (m *Mem) Write(p []byte) (int, error) {
	if m.readOnly {
		return 0, errors.New("tagtest: write to read-only stream")
	}

	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}

	n := copy(m.buf[m.pos:end], p)
	m.pos = end

	return n, nil
}

func (m *Mem) Seek(offset int64, whence int) (int64, error) {
	var target int64

	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = m.pos + offset
	case io.SeekEnd:
		target = int64(len(m.buf)) + offset
	default:
		return 0, errors.New("tagtest: invalid whence")
	}

	if target < 0 {
		return 0, errors.New("tagtest: negative seek position")
	}

	m.pos = target

	return m.pos, nil
}

func (m *Mem) Len() (int64, error) { return int64(len(m.buf)), nil }

func (m *Mem) Truncate(offset int64) error {
	if m.readOnly {
		return errors.New("tagtest: truncate of read-only stream")
	}

	if offset >= int64(len(m.buf)) {
		grown := make([]byte, offset)
		copy(grown, m.buf)
		m.buf = grown

		return nil
	}

	m.buf = m.buf[:offset]

	return nil
}

func (m *Mem) ReadOnly() bool { return m.readOnly }

// Bytes returns the current backing buffer. Do not mutate it.
func (m *Mem) Bytes() []byte { return m.buf }
