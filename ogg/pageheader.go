// Package ogg implements the Ogg page header codec (spec.md C5) and a
// shared file coordinator that the vorbis, opus, and speex subpackages
// build their per-family File types on.
package ogg

import (
	"errors"

	"github.com/jpalus/taglib/internal/tagio"
)

// FixedHeaderSize is the size of an Ogg page header before its variable-
// length segment table.
const FixedHeaderSize = 27

// ErrMalformed names the condition of a page that does not begin with the
// "OggS" capture pattern. ParseHeader does not return it: it reports that
// case as ok=false.
var ErrMalformed = errors.New("ogg: malformed page header")

const capturePattern = "OggS"

const (
	headerTypeContinued         = 1 << 0
	headerTypeFirstPageOfStream = 1 << 1
	headerTypeLastPageOfStream  = 1 << 2
)

// PageHeader is a decoded Ogg page header: capture pattern onward, up to
// and including the segment (lacing) table.
type PageHeader struct {
	Version           byte
	Continued         bool
	FirstPageOfStream bool
	LastPageOfStream  bool
	GranulePosition   int64
	SerialNumber      uint32
	SequenceNumber    uint32
	Checksum          uint32
	LacingValues      []byte
}

// Size is the total on-disk size of the header: 27 fixed bytes plus one
// byte per lacing entry.
func (h PageHeader) Size() int { return FixedHeaderSize + len(h.LacingValues) }

// ParseHeader decodes a page header from data, which must hold at least
// FixedHeaderSize bytes; callers re-read with the correct length once
// PageSegments (data[26]) is known. Returns the header and its total
// size, or ok=false if the capture pattern doesn't match or data is too
// short for the declared segment count.
func ParseHeader(data []byte) (PageHeader, int, bool) {
	if len(data) < FixedHeaderSize || string(data[0:4]) != capturePattern {
		return PageHeader{}, 0, false
	}

	segments := int(data[26])
	total := FixedHeaderSize + segments

	if len(data) < total {
		return PageHeader{}, total, false
	}

	headerType := data[5]

	h := PageHeader{
		Version:           data[4],
		Continued:         headerType&headerTypeContinued != 0,
		FirstPageOfStream: headerType&headerTypeFirstPageOfStream != 0,
		LastPageOfStream:  headerType&headerTypeLastPageOfStream != 0,
		GranulePosition:   int64(tagio.LE64(data[6:14])), //nolint:gosec // wire field is a signed 64-bit granule position
		SerialNumber:      tagio.LE32(data[14:18]),
		SequenceNumber:    tagio.LE32(data[18:22]),
		Checksum:          tagio.LE32(data[22:26]),
		LacingValues:      append([]byte(nil), data[27:total]...),
	}

	return h, total, true
}

// Render serializes the header, recomputing its checksum over headerBytes
// followed by the page's packet payload. The checksum field itself is
// zeroed while computing, per the Ogg CRC convention.
//
// Render sets the first-page-of-stream bit from SequenceNumber == 0,
// while ParseHeader decodes that same bit directly from the header-type
// byte into FirstPageOfStream -- an asymmetry between this package's
// read and write paths that traces back to the original coordinator and
// is kept as found rather than reconciled.
func (h PageHeader) Render(payload []byte) []byte {
	buf := make([]byte, h.Size()+len(payload))
	copy(buf[0:4], capturePattern)
	buf[4] = h.Version

	headerType := byte(0)
	if h.Continued {
		headerType |= headerTypeContinued
	}

	if h.SequenceNumber == 0 {
		headerType |= headerTypeFirstPageOfStream
	}

	if h.LastPageOfStream {
		headerType |= headerTypeLastPageOfStream
	}

	buf[5] = headerType

	copy(buf[6:14], tagio.PutLE64(uint64(h.GranulePosition))) //nolint:gosec // round-trips through the same signed/unsigned wire convention as ParseHeader
	copy(buf[14:18], tagio.PutLE32(h.SerialNumber))
	copy(buf[18:22], tagio.PutLE32(h.SequenceNumber))
	// buf[22:26] (checksum) left zero for the CRC pass below.
	buf[26] = byte(len(h.LacingValues))
	copy(buf[27:27+len(h.LacingValues)], h.LacingValues)
	copy(buf[h.Size():], payload)

	crc := checksum(buf)
	copy(buf[22:26], tagio.PutLE32(crc))

	return buf
}

// PacketSizes decodes the segment table into packet lengths: a run of 255
// values is a continuation of one packet, terminated by a value < 255. If
// the table ends mid-run (its last entry is 255), the final packet's
// bytes continue onto the next page: the bytes it has on this page are
// still reported as the last entry of sizes, and continues is true.
func (h PageHeader) PacketSizes() (sizes []int, continues bool) {
	current := 0
	any := false

	for _, v := range h.LacingValues {
		current += int(v)
		any = true

		if v < 255 {
			sizes = append(sizes, current)
			current = 0
			any = false
		}
	}

	if any {
		sizes = append(sizes, current)

		return sizes, true
	}

	return sizes, false
}

// BuildLacing encodes packetLen as a segment-table run: packetLen/255
// entries of 255 followed by one entry with the remainder (always
// present, even when the remainder is 0, so an empty packet still
// terminates the lacing run).
func BuildLacing(packetLen int) []byte {
	lacing := make([]byte, 0, packetLen/255+1)

	for packetLen >= 255 {
		lacing = append(lacing, 255)
		packetLen -= 255
	}

	return append(lacing, byte(packetLen)) //nolint:gosec // packetLen < 255 after the loop
}
