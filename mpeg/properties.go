package mpeg

import (
	"math"

	"github.com/jpalus/taglib"
	"github.com/jpalus/taglib/internal/tagio"
)

// scanWindow bounds the read used to locate the first frame header and any
// following Xing/Info/VBRI header, and the backward scan for the last
// recognizable frame.
const scanWindow = 8192

// Properties is spec.md C6's full estimation result: the common
// AudioProperties fields plus the optional Xing/Info/VBRI header, when one
// was found, that let the VBR path compute an exact length and bitrate.
type Properties struct {
	taglib.AudioProperties
	XingHeader VBRHeader
	HasXing    bool
}

// EstimateProperties computes audio properties for the byte range
// [audioStart, audioEnd) of rs (spec.md C6): a VBR path when a Xing/Info/
// VBRI header is present and valid, otherwise a CBR path using the first
// frame's bitrate and a backward scan to the last recognizable frame.
// Returns the zero value, no error, if no frame sync is found in the scan
// window -- unrecognized audio content is absorbed, not treated as a
// failure (spec.md §7).
func EstimateProperties(rs taglib.Stream, audioStart, audioEnd int64) (Properties, error) {
	window := int64(scanWindow)
	if audioEnd-audioStart < window {
		window = audioEnd - audioStart
	}

	if window < HeaderSize {
		return Properties{}, nil
	}

	buf, err := tagio.ReadAt(rs, audioStart, int(window))
	if err != nil {
		return Properties{}, nil //nolint:nilerr // truncated input absorbed per spec.md §7
	}

	headerOffset := -1

	var first Header

	for i := 0; i+HeaderSize <= len(buf); i++ {
		if h, ok := ParseHeader(buf[i:]); ok {
			first = h
			headerOffset = i

			break
		}
	}

	if headerOffset < 0 {
		return Properties{}, nil
	}

	if vbr, ok := FindVBRHeader(buf[headerOffset:], first); ok && vbr.Valid() {
		return vbrProperties(first, vbr), nil
	}

	return cbrProperties(rs, first, audioStart+int64(headerOffset), audioEnd)
}

func scalarFields(h Header) taglib.AudioProperties {
	return taglib.AudioProperties{
		SampleRate:        h.SampleRate,
		Channels:          h.Channels,
		Layer:             int(h.Layer),
		Version:           int(h.Version),
		ProtectionEnabled: h.Protected,
		IsCopyrighted:     h.Copyrighted,
		IsOriginal:        h.Original,
	}
}

// vbrProperties mirrors mpegproperties.cpp's VBR branch exactly: the
// bitrate divides by the unrounded double length (timePerFrame *
// totalFrames), not by the rounded lengthMS -- dividing by the rounded
// integer instead measurably changes the result for some frame/byte
// totals (spec.md §4.6 step 4, worked example S5).
func vbrProperties(h Header, vbr VBRHeader) Properties {
	timePerFrame := float64(h.SamplesPerFrame()) * 1000 / float64(h.SampleRate)
	length := timePerFrame * float64(vbr.Frames)

	bitrateKbps := 0
	if length > 0 && vbr.Bytes > 0 {
		bitrateKbps = roundHalfAwayFromZero(float64(vbr.Bytes) * 8 / length)
	}

	props := scalarFields(h)
	props.LengthMS = roundHalfAwayFromZero(length)
	props.BitrateKbps = bitrateKbps

	return Properties{AudioProperties: props, XingHeader: vbr, HasXing: true}
}

// cbrProperties uses the first frame's own bitrate directly and locates
// the last recognizable frame via a backward scan from the end of the
// audio range, then derives the length from the resulting stream byte
// span and that bitrate (mpegproperties.cpp's
// `streamLength*8.0/bitrate + 0.5`) rather than a forward frame-count
// walk -- the two are not equivalent once padding or a partial trailing
// frame is involved.
func cbrProperties(rs taglib.Stream, first Header, firstFrameOffset, audioEnd int64) (Properties, error) {
	if first.BitrateKbps <= 0 {
		return Properties{}, nil
	}

	props := scalarFields(first)
	props.BitrateKbps = first.BitrateKbps

	lastOffset, lastHeader, ok := lastFrameOffset(rs, firstFrameOffset, audioEnd)
	if ok {
		streamLength := lastOffset - firstFrameOffset + int64(lastHeader.FrameLength())
		if streamLength > 0 {
			props.LengthMS = roundHalfAwayFromZero(float64(streamLength) * 8 / float64(first.BitrateKbps))
		}
	}

	return Properties{AudioProperties: props}, nil
}

// lastFrameOffset scans backward from audioEnd, within scanWindow bytes of
// it (bounded by firstFrameOffset), for the last offset holding a
// recognizable frame header -- the original's lastFrameOffset(), which
// mpegproperties.cpp pairs with firstFrameOffset() to size the stream.
func lastFrameOffset(rs taglib.Stream, firstFrameOffset, audioEnd int64) (int64, Header, bool) {
	start := audioEnd - scanWindow
	if start < firstFrameOffset {
		start = firstFrameOffset
	}

	length := audioEnd - start
	if length < HeaderSize {
		return 0, Header{}, false
	}

	buf, err := tagio.ReadAt(rs, start, int(length))
	if err != nil {
		return 0, Header{}, false //nolint:nilerr // truncated input absorbed per spec.md §7
	}

	for i := len(buf) - HeaderSize; i >= 0; i-- {
		if h, ok := ParseHeader(buf[i:]); ok {
			return start + int64(i), h, true
		}
	}

	return 0, Header{}, false
}

// roundHalfAwayFromZero implements the rounding rule spec.md uses
// throughout its duration/bitrate arithmetic (as opposed to
// round-half-to-even, math.RoundToEven). math.Round follows the same rule;
// this wrapper exists to make that choice explicit and keep every
// estimator call site consistent.
func roundHalfAwayFromZero(x float64) int {
	if x < 0 {
		return -int(math.Floor(-x + 0.5))
	}

	return int(math.Floor(x + 0.5))
}
