// Package mpeg implements the MPEG audio frame header codec (spec.md C6's
// input) and the file coordinator for MP3-family containers: leading
// ID3v2, trailing APEv2 + ID3v1, and bitrate/length estimation from Xing,
// Info, or VBRI headers.
package mpeg

import "errors"

// ErrMalformed names the condition of 4 bytes that do not carry a valid
// frame sync and version/layer/bitrate-index combination. ParseHeader does
// not return it: it reports that case as ok=false.
var ErrMalformed = errors.New("mpeg: malformed frame header")

// Version identifies the MPEG audio version carried in a frame header.
type Version int

const (
	Version1   Version = 1
	Version2   Version = 2
	Version2_5 Version = 3 // named distinctly from Version2; not "2.5" to stay a valid identifier
)

// Layer identifies the MPEG audio layer.
type Layer int

const (
	LayerI   Layer = 1
	LayerII  Layer = 2
	LayerIII Layer = 3
)

// ChannelMode identifies the frame's channel configuration.
type ChannelMode int

const (
	ChannelStereo ChannelMode = iota
	ChannelJointStereo
	ChannelDualChannel
	ChannelSingleChannel
)

var bitrateTableV1 = map[Layer][15]int{
	LayerI:   {0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448},
	LayerII:  {0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384},
	LayerIII: {0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320},
}

var bitrateTableV2 = map[Layer][15]int{
	LayerI:   {0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256},
	LayerII:  {0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160},
	LayerIII: {0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160},
}

var sampleRateTable = map[Version][3]int{
	Version1:   {44100, 48000, 32000},
	Version2:   {22050, 24000, 16000},
	Version2_5: {11025, 12000, 8000},
}

// Header is a parsed 4-byte MPEG audio frame header: the fields needed to
// compute its on-disk length and, over a run of frames, the stream's
// audio properties.
type Header struct {
	Version     Version
	Layer       Layer
	Protected   bool // CRC-protected (the wire bit is inverted: 0 means protected)
	BitrateKbps int
	SampleRate  int
	Channels    int
	Mode        ChannelMode
	Padding     bool
	Copyrighted bool
	Original    bool
}

// HeaderSize is the fixed size of an MPEG frame header.
const HeaderSize = 4

// SamplesPerFrame returns the number of PCM samples a frame of this
// version/layer combination carries.
func (h Header) SamplesPerFrame() int {
	switch h.Layer {
	case LayerI:
		return 384
	case LayerII:
		return 1152
	case LayerIII:
		if h.Version == Version1 {
			return 1152
		}

		return 576
	default:
		return 0
	}
}

// FrameLength is the total on-disk size of a frame with this header,
// including the 4-byte header itself and any padding byte.
func (h Header) FrameLength() int {
	if h.BitrateKbps == 0 || h.SampleRate == 0 {
		return 0
	}

	padding := 0
	if h.Padding {
		padding = 1
	}

	bitrateBps := h.BitrateKbps * 1000

	switch h.Layer {
	case LayerI:
		return (12*bitrateBps/h.SampleRate + padding) * 4
	case LayerII:
		return 144*bitrateBps/h.SampleRate + padding
	case LayerIII:
		if h.Version == Version1 {
			return 144*bitrateBps/h.SampleRate + padding
		}

		return 72*bitrateBps/h.SampleRate + padding
	default:
		return 0
	}
}

// ParseHeader decodes a 4-byte MPEG frame header. It returns ok=false
// (never an error) when the bytes do not carry a valid sync/version/layer/
// bitrate-index combination -- frame sync failures are routine while
// scanning for frame boundaries, not malformed input.
func ParseHeader(data []byte) (Header, bool) {
	if len(data) < HeaderSize {
		return Header{}, false
	}

	if data[0] != 0xFF || data[1]&0xE0 != 0xE0 {
		return Header{}, false
	}

	versionBits := (data[1] >> 3) & 0x03
	layerBits := (data[1] >> 1) & 0x03

	if versionBits == 0x01 || layerBits == 0x00 {
		return Header{}, false
	}

	var version Version

	switch versionBits {
	case 0x00:
		version = Version2_5
	case 0x02:
		version = Version2
	case 0x03:
		version = Version1
	}

	var layer Layer

	switch layerBits {
	case 0x01:
		layer = LayerIII
	case 0x02:
		layer = LayerII
	case 0x03:
		layer = LayerI
	}

	bitrateIndex := (data[2] >> 4) & 0x0F
	if bitrateIndex == 0x0F {
		return Header{}, false
	}

	sampleRateIndex := (data[2] >> 2) & 0x03
	if sampleRateIndex == 0x03 {
		return Header{}, false
	}

	table := bitrateTableV1
	if version != Version1 {
		table = bitrateTableV2
	}

	rateTableVersion := version
	if version == Version2_5 {
		rateTableVersion = Version2_5
	}

	channelBits := (data[3] >> 6) & 0x03
	mode := ChannelMode(channelBits)

	h := Header{
		Version:     version,
		Layer:       layer,
		Protected:   data[1]&0x01 == 0,
		BitrateKbps: table[layer][bitrateIndex],
		SampleRate:  sampleRateTable[rateTableVersion][sampleRateIndex],
		Mode:        mode,
		Padding:     data[2]&0x02 != 0,
		Copyrighted: data[3]&0x08 != 0,
		Original:    data[3]&0x04 != 0,
	}

	h.Channels = 2
	if mode == ChannelSingleChannel {
		h.Channels = 1
	}

	if h.BitrateKbps == 0 {
		return Header{}, false
	}

	return h, true
}

// SideInfoSize returns the number of side-information bytes immediately
// following the frame header, which a Xing/Info/VBRI probe must skip
// before checking for its signature.
func (h Header) SideInfoSize() int {
	mono := h.Mode == ChannelSingleChannel

	switch h.Version {
	case Version1:
		if mono {
			return 17
		}

		return 32
	default:
		if mono {
			return 9
		}

		return 17
	}
}
