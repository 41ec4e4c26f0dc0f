// Package detect sniffs a stream's leading bytes to decide which tag
// coordinator owns it, without fully parsing any container.
package detect

import (
	"bytes"
	"errors"

	"github.com/jpalus/taglib"
	"github.com/jpalus/taglib/internal/tagio"
)

// Family identifies which coordinator package should open a file.
type Family int

const (
	Unknown Family = iota
	APE
	MPEG
	Vorbis
	Opus
	Speex
)

func (f Family) String() string {
	switch f {
	case APE:
		return "APE"
	case MPEG:
		return "MPEG"
	case Vorbis:
		return "Ogg Vorbis"
	case Opus:
		return "Ogg Opus"
	case Speex:
		return "Ogg Speex"
	default:
		return "unknown"
	}
}

// ErrUnrecognized is returned by Identify when none of the known
// container signatures match.
var ErrUnrecognized = errors.New("detect: could not identify container family")

// sniffWindow is the number of leading bytes inspected; large enough to
// reach past an Ogg identification page's magic into its codec header.
const sniffWindow = 8192

// Identify sniffs stream for each family's leading signature.
func Identify(stream taglib.Stream) (Family, error) {
	length, err := stream.Len()
	if err != nil {
		return Unknown, err
	}

	window := int64(sniffWindow)
	if window > length {
		window = length
	}

	buf, err := tagio.ReadAt(stream, 0, int(window))
	if err != nil {
		return Unknown, ErrUnrecognized
	}

	if bytes.Contains(buf, []byte("OggS")) {
		switch {
		case bytes.Contains(buf, []byte("OpusHead")):
			return Opus, nil
		case bytes.Contains(buf, []byte{0x01, 'v', 'o', 'r', 'b', 'i', 's'}):
			return Vorbis, nil
		case bytes.Contains(buf, []byte("Speex   ")):
			return Speex, nil
		}
	}

	if bytes.HasPrefix(buf, []byte("MAC ")) {
		return APE, nil
	}

	if bytes.HasPrefix(buf, []byte("ID3")) || hasMPEGSync(buf) {
		return MPEG, nil
	}

	return Unknown, ErrUnrecognized
}

func hasMPEGSync(buf []byte) bool {
	for i := 0; i+1 < len(buf); i++ {
		if buf[i] == 0xFF && buf[i+1]&0xE0 == 0xE0 {
			return true
		}
	}

	return false
}
