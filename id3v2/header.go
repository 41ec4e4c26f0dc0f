// Package id3v2 implements the ID3v2 header collaborator (spec.md §6):
// enough of the format to locate and size a leading ID3v2 tag. Frame-level
// decoding is out of this module's scope (spec.md §1).
package id3v2

import (
	"errors"
	"fmt"

	"github.com/jpalus/taglib/internal/tagio"
)

// HeaderSize is the fixed size of an ID3v2 header.
const HeaderSize = 10

// ErrMalformed is returned when 10 bytes do not begin with the "ID3"
// signature.
var ErrMalformed = errors.New("id3v2: malformed header")

const (
	flagUnsynchronisation = 1 << 7
	flagExtendedHeader    = 1 << 6
	flagExperimental      = 1 << 5
	flagFooterPresent     = 1 << 4
)

// Header is the fixed 10-byte ID3v2 tag header: signature, version,
// flags, and a synchsafe-encoded body size.
type Header struct {
	MajorVersion byte
	MinorVersion byte
	Flags        byte
	bodySize     uint32
}

// NewHeader parses a 10-byte ID3v2 header.
func NewHeader(data []byte) (Header, error) {
	if len(data) != HeaderSize || string(data[0:3]) != "ID3" {
		return Header{}, fmt.Errorf("parsing header: %w", ErrMalformed)
	}

	var sizeBytes [4]byte
	copy(sizeBytes[:], data[6:10])

	return Header{
		MajorVersion: data[3],
		MinorVersion: data[4],
		Flags:        data[5],
		bodySize:     tagio.SynchsafeDecode(sizeBytes),
	}, nil
}

// Unsynchronized reports whether the unsynchronisation flag is set.
func (h Header) Unsynchronized() bool { return h.Flags&flagUnsynchronisation != 0 }

// ExtendedHeader reports whether an extended header follows.
func (h Header) ExtendedHeader() bool { return h.Flags&flagExtendedHeader != 0 }

// Experimental reports whether the experimental indicator is set.
func (h Header) Experimental() bool { return h.Flags&flagExperimental != 0 }

// FooterPresent reports whether a 10-byte footer follows the tag body.
func (h Header) FooterPresent() bool { return h.Flags&flagFooterPresent != 0 }

// BodySize is the synchsafe-decoded size of the tag body, excluding the
//10-byte header and any footer.
func (h Header) BodySize() uint32 { return h.bodySize }

// CompleteTagSize is the full on-disk size of the tag: header (10) + body
// + optional 10-byte footer (spec.md §4.1).
func (h Header) CompleteTagSize() uint32 {
	size := uint32(HeaderSize) + h.bodySize
	if h.FooterPresent() {
		size += 10
	}

	return size
}

// Render serializes the header back to its 10-byte wire form. The body
// size must already reflect the current body.
func (h Header) Render() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:3], "ID3")
	buf[3] = h.MajorVersion
	buf[4] = h.MinorVersion
	buf[5] = h.Flags

	encoded := tagio.SynchsafeEncode(h.bodySize)
	copy(buf[6:10], encoded[:])

	return buf
}

// SetBodySize updates the header's body size field.
func (h *Header) SetBodySize(size uint32) { h.bodySize = size }
