package mpeg

import (
	"bytes"

	"github.com/jpalus/taglib/internal/tagio"
)

const (
	xingFlagFrames  = 1 << 0
	xingFlagBytes   = 1 << 1
	xingFlagTOC     = 1 << 2
	xingFlagQuality = 1 << 3
)

// VBRHeader is a decoded Xing, Info, or VBRI variable-bitrate summary
// header: the frame and byte totals that let Properties compute an exact
// duration and average bitrate without walking every frame in the file
// (spec.md C6's VBR path).
type VBRHeader struct {
	Frames uint32
	Bytes  uint32
}

// Valid reports whether the header carries a usable frame count.
func (v VBRHeader) Valid() bool { return v.Frames > 0 }

// findXing locates a Xing/Info header immediately after the side
// information of the first frame (mirroring the teacher's findLAMETag
// walk) and decodes the frame/byte fields its flags advertise.
func findXing(frameData []byte, h Header) (VBRHeader, bool) {
	offset := HeaderSize + h.SideInfoSize()
	if offset+8 > len(frameData) {
		return VBRHeader{}, false
	}

	region := frameData[offset:]
	if !bytes.HasPrefix(region, []byte("Xing")) && !bytes.HasPrefix(region, []byte("Info")) {
		return VBRHeader{}, false
	}

	flags := tagio.BE32(region[4:8])
	pos := 8

	var vbr VBRHeader

	if flags&xingFlagFrames != 0 {
		if pos+4 > len(region) {
			return VBRHeader{}, false
		}

		vbr.Frames = tagio.BE32(region[pos : pos+4])
		pos += 4
	}

	if flags&xingFlagBytes != 0 {
		if pos+4 > len(region) {
			return VBRHeader{}, false
		}

		vbr.Bytes = tagio.BE32(region[pos : pos+4])
		pos += 4
	}

	return vbr, true
}

// findVBRI locates a Fraunhofer VBRI header, which sits at a fixed offset
// (36 bytes from the start of the frame, i.e. 32 bytes past the 4-byte
// frame header) regardless of side-information size, unlike Xing/Info.
func findVBRI(frameData []byte) (VBRHeader, bool) {
	const vbriOffset = HeaderSize + 32

	if vbriOffset+26 > len(frameData) {
		return VBRHeader{}, false
	}

	region := frameData[vbriOffset:]
	if !bytes.HasPrefix(region, []byte("VBRI")) {
		return VBRHeader{}, false
	}

	return VBRHeader{
		Bytes:  tagio.BE32(region[10:14]),
		Frames: tagio.BE32(region[14:18]),
	}, true
}

// FindVBRHeader tries Xing/Info first, falling back to VBRI, returning
// ok=false if neither is present.
func FindVBRHeader(frameData []byte, h Header) (VBRHeader, bool) {
	if vbr, ok := findXing(frameData, h); ok {
		return vbr, true
	}

	return findVBRI(frameData)
}
