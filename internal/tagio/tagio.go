// Package tagio provides the byte-buffer and fixed-width encoding
// primitives (spec.md C1) every tag locator/codec in this module builds
// on: reading a bounded window at an offset, and encoding/decoding
// big/little-endian integers and synchsafe sizes.
package tagio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jpalus/taglib"
)

// ReadAt reads exactly n bytes at offset from rs, leaving the stream
// position unspecified on return (spec.md §5: "every public operation
// that seeks leaves the stream position unspecified on return").
func ReadAt(rs taglib.Stream, offset int64, n int) ([]byte, error) {
	if _, err := rs.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to %d: %w", offset, err)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(rs, buf); err != nil {
		return nil, fmt.Errorf("reading %d bytes at %d: %w", n, offset, err)
	}

	return buf, nil
}

// ReadTail reads the last n bytes of rs. Returns an error if the stream is
// shorter than n bytes.
func ReadTail(rs taglib.Stream, n int) ([]byte, error) {
	length, err := rs.Len()
	if err != nil {
		return nil, fmt.Errorf("getting length: %w", err)
	}

	if length < int64(n) {
		return nil, fmt.Errorf("tail read of %d bytes: %w", n, io.ErrUnexpectedEOF)
	}

	return ReadAt(rs, length-int64(n), n)
}

// SynchsafeDecode combines the low 7 bits of each of 4 bytes, big-endian,
// into a 28-bit value -- the ID3v2 "synchsafe" integer encoding (spec.md
// §4.1).
func SynchsafeDecode(b [4]byte) uint32 {
	return uint32(b[0]&0x7F)<<21 | uint32(b[1]&0x7F)<<14 | uint32(b[2]&0x7F)<<7 | uint32(b[3]&0x7F)
}

// SynchsafeEncode is the inverse of SynchsafeDecode.
func SynchsafeEncode(v uint32) [4]byte {
	return [4]byte{
		byte((v >> 21) & 0x7F),
		byte((v >> 14) & 0x7F),
		byte((v >> 7) & 0x7F),
		byte(v & 0x7F),
	}
}

// BE32 decodes a big-endian uint32 at the start of b.
func BE32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }

// LE32 decodes a little-endian uint32 at the start of b.
func LE32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// PutBE32 returns the 4-byte big-endian encoding of v.
func PutBE32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, v)

	return buf
}

// PutLE32 returns the 4-byte little-endian encoding of v.
func PutLE32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)

	return buf
}

// LE64 decodes a little-endian uint64 at the start of b.
func LE64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

// PutLE64 returns the 8-byte little-endian encoding of v.
func PutLE64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)

	return buf
}

// FixedString trims trailing NUL and space padding from a fixed-width
// field, the convention ID3v1's Title/Artist/Album/Comment fields use.
func FixedString(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == 0 || b[end-1] == ' ') {
		end--
	}

	return string(b[:end])
}

// PutFixedString copies s into a field of exactly n bytes, NUL-padding or
// truncating as needed.
func PutFixedString(s string, n int) []byte {
	buf := make([]byte, n)
	copy(buf, s)

	return buf
}
