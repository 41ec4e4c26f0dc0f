package tagutils

import (
	"fmt"
	"io"

	"github.com/jpalus/taglib"
)

// chunkSize bounds the buffered tail-shift copy, matching the teacher's
// 32KiB streaming chunk size (mp3/decode.go's decode loop).
const chunkSize = 32 * 1024

// Replace overwrites the byte range [offset, offset+oldLen) with data,
// shifting any trailing bytes to accommodate a length difference
// (spec.md §4.2 C3). No partial-write recovery is attempted: a write
// error leaves the file in an undefined state and is surfaced as
// ErrIOFailure.
func Replace(rs taglib.Stream, offset, oldLen int64, data []byte) error {
	if rs.ReadOnly() {
		return taglib.ErrReadOnlyTarget
	}

	length, err := rs.Len()
	if err != nil {
		return fmt.Errorf("getting length: %w", err)
	}

	if offset < 0 || oldLen < 0 || offset+oldLen > length {
		return fmt.Errorf("replace range [%d,%d) exceeds length %d: %w", offset, offset+oldLen, length, taglib.ErrIOFailure)
	}

	delta := int64(len(data)) - oldLen

	switch {
	case delta == 0:
		if err := writeAt(rs, offset, data); err != nil {
			return err
		}
	case delta > 0:
		if err := shiftTailRight(rs, offset+oldLen, length, delta); err != nil {
			return err
		}

		if err := writeAt(rs, offset, data); err != nil {
			return err
		}
	default:
		if err := writeAt(rs, offset, data); err != nil {
			return err
		}

		if err := shiftTailLeft(rs, offset+oldLen, length, -delta); err != nil {
			return err
		}

		if err := rs.Truncate(length + delta); err != nil {
			return fmt.Errorf("truncating: %w: %w", err, taglib.ErrIOFailure)
		}
	}

	return nil
}

// Truncate drops everything at or after offset.
func Truncate(rs taglib.Stream, offset int64) error {
	if rs.ReadOnly() {
		return taglib.ErrReadOnlyTarget
	}

	if err := rs.Truncate(offset); err != nil {
		return fmt.Errorf("truncating: %w: %w", err, taglib.ErrIOFailure)
	}

	return nil
}

func writeAt(rs taglib.Stream, offset int64, data []byte) error {
	if _, err := rs.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to %d: %w: %w", offset, err, taglib.ErrIOFailure)
	}

	if _, err := rs.Write(data); err != nil {
		return fmt.Errorf("writing at %d: %w: %w", offset, err, taglib.ErrIOFailure)
	}

	return nil
}

// shiftTailRight grows the file by delta bytes and moves [tailStart,
// oldLength) to [tailStart+delta, oldLength+delta), copying from the end
// of the tail backward so no unread source byte is ever overwritten.
func shiftTailRight(rs taglib.Stream, tailStart, oldLength, delta int64) error {
	buf := make([]byte, chunkSize)

	for pos := oldLength; pos > tailStart; {
		n := chunkSize
		if int64(n) > pos-tailStart {
			n = int(pos - tailStart)
		}

		srcOff := pos - int64(n)

		if _, err := rs.Seek(srcOff, io.SeekStart); err != nil {
			return fmt.Errorf("seeking to %d: %w: %w", srcOff, err, taglib.ErrIOFailure)
		}

		if _, err := io.ReadFull(rs, buf[:n]); err != nil {
			return fmt.Errorf("reading tail chunk at %d: %w: %w", srcOff, err, taglib.ErrIOFailure)
		}

		if err := writeAt(rs, srcOff+delta, buf[:n]); err != nil {
			return err
		}

		pos = srcOff
	}

	return nil
}

// shiftTailLeft compacts [tailStart, oldLength) to [tailStart-delta,
// oldLength-delta), copying forward from the start of the tail since the
// destination never runs ahead of bytes not yet read.
func shiftTailLeft(rs taglib.Stream, tailStart, oldLength, delta int64) error {
	buf := make([]byte, chunkSize)

	for pos := tailStart; pos < oldLength; {
		n := chunkSize
		if int64(n) > oldLength-pos {
			n = int(oldLength - pos)
		}

		if _, err := rs.Seek(pos, io.SeekStart); err != nil {
			return fmt.Errorf("seeking to %d: %w: %w", pos, err, taglib.ErrIOFailure)
		}

		if _, err := io.ReadFull(rs, buf[:n]); err != nil {
			return fmt.Errorf("reading tail chunk at %d: %w: %w", pos, err, taglib.ErrIOFailure)
		}

		if err := writeAt(rs, pos-delta, buf[:n]); err != nil {
			return err
		}

		pos += int64(n)
	}

	return nil
}
