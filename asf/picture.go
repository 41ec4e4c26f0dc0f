// Package asf implements the ASF picture frame codec (spec.md C7): the
// cover-art attachment format used by WMA's "WM/Picture" content
// descriptor. Full ASF object/header coordination is out of scope --
// only the picture frame's own binary layout is modeled here.
package asf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jpalus/taglib/internal/tagio"
	"golang.org/x/text/encoding/unicode"
)

// Type identifies the role of a picture within a tagged file (front
// cover, back cover, artist, etc.), matching the ID3v2 APIC picture-type
// enumeration ASF borrows.
type Type byte

const (
	TypeOther             Type = 0
	TypeFileIcon          Type = 1
	TypeOtherFileIcon     Type = 2
	TypeFrontCover        Type = 3
	TypeBackCover         Type = 4
	TypeLeafletPage       Type = 5
	TypeMedia             Type = 6
	TypeLeadArtist        Type = 7
	TypeArtist            Type = 8
	TypeConductor         Type = 9
	TypeBand              Type = 10
	TypeComposer          Type = 11
	TypeLyricist          Type = 12
	TypeRecordingLocation Type = 13
	TypeDuringRecording   Type = 14
	TypeDuringPerformance Type = 15
	TypeMovieScreenCapture Type = 16
	TypeColoredFish       Type = 17
	TypeIllustration      Type = 18
	TypeBandLogo          Type = 19
	TypePublisherLogo     Type = 20
)

// ErrMalformed is returned when a picture frame's fixed fields don't add
// up: a missing null terminator on either UTF-16LE string, or a declared
// picture-data length that doesn't match what remains.
var ErrMalformed = errors.New("asf: malformed picture frame")

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Picture is a decoded ASF picture attachment.
type Picture struct {
	Valid       bool
	Type        Type
	Mime        string
	Description string
	Data        []byte
}

// Parse decodes a picture frame from its raw "WM/Picture" content
// descriptor bytes.
func Parse(data []byte) (Picture, error) {
	if len(data) < 9 {
		return Picture{}, fmt.Errorf("parsing picture: %w", ErrMalformed)
	}

	p := Picture{Type: Type(data[0])}
	dataLen := tagio.LE32(data[1:5])
	pos := 5

	mimeEnd := indexUTF16Null(data[pos:])
	if mimeEnd < 0 {
		return Picture{}, fmt.Errorf("parsing picture mime type: %w", ErrMalformed)
	}

	mime, err := decodeUTF16LE(data[pos : pos+mimeEnd])
	if err != nil {
		return Picture{}, fmt.Errorf("decoding picture mime type: %w", ErrMalformed)
	}

	p.Mime = mime
	pos += mimeEnd + 2

	descEnd := indexUTF16Null(data[pos:])
	if descEnd < 0 {
		return Picture{}, fmt.Errorf("parsing picture description: %w", ErrMalformed)
	}

	desc, err := decodeUTF16LE(data[pos : pos+descEnd])
	if err != nil {
		return Picture{}, fmt.Errorf("decoding picture description: %w", ErrMalformed)
	}

	p.Description = desc
	pos += descEnd + 2

	if int(dataLen)+pos != len(data) {
		return Picture{}, fmt.Errorf("picture data length mismatch: %w", ErrMalformed)
	}

	p.Data = append([]byte(nil), data[pos:]...)
	p.Valid = true

	return p, nil
}

// Render serializes the picture back to its wire form. An invalid
// picture renders to an empty byte slice, matching the original
// coordinator's behavior for a picture that failed to parse.
func (p Picture) Render() ([]byte, error) {
	if !p.Valid {
		return nil, nil
	}

	mime, err := encodeUTF16LE(p.Mime)
	if err != nil {
		return nil, fmt.Errorf("encoding picture mime type: %w", err)
	}

	desc, err := encodeUTF16LE(p.Description)
	if err != nil {
		return nil, fmt.Errorf("encoding picture description: %w", err)
	}

	var out bytes.Buffer
	out.WriteByte(byte(p.Type))
	out.Write(tagio.PutLE32(uint32(len(p.Data)))) //nolint:gosec // picture payloads are bounded by practical tag sizes
	out.Write(mime)
	out.Write([]byte{0, 0})
	out.Write(desc)
	out.Write([]byte{0, 0})
	out.Write(p.Data)

	return out.Bytes(), nil
}

// indexUTF16Null finds the offset of the first UTF-16LE NUL code unit
// (two zero bytes on an even boundary) in b, or -1 if absent.
func indexUTF16Null(b []byte) int {
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return i
		}
	}

	return -1
}

func decodeUTF16LE(b []byte) (string, error) {
	decoded, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(decoded), nil
}

func encodeUTF16LE(s string) ([]byte, error) {
	return utf16le.NewEncoder().Bytes([]byte(s))
}
