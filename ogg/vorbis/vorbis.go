// Package vorbis implements the Ogg Vorbis file coordinator: three
// header packets (identification, comment, setup) followed by audio
// packets, ported from the original Vorbis::File coordinator.
package vorbis

import (
	"bytes"
	"fmt"

	"github.com/jpalus/taglib"
	"github.com/jpalus/taglib/ogg"
	"github.com/jpalus/taglib/ogg/xiphcomment"
)

const (
	identificationPacket = 0
	commentPacket        = 1
	setupPacket           = 2
	headerPacketCount    = 3
)

// commentHeaderID is the one-byte packet type (0x03) plus the "vorbis"
// magic that prefixes a Vorbis comment header packet.
const commentHeaderID = "\x03vorbis"

const defaultVendor = "jpalus/taglib"

// File coordinates tag and property access for an Ogg Vorbis stream.
type File struct {
	base    *ogg.File
	comment *xiphcomment.Comment
}

// Open reads the three Vorbis header packets from stream.
func Open(stream taglib.Stream) (*File, error) {
	base, err := ogg.Open(stream, headerPacketCount)
	if err != nil {
		return nil, err
	}

	idHeader := base.Packet(identificationPacket)
	if !bytes.HasPrefix(idHeader, []byte{0x01, 'v', 'o', 'r', 'b', 'i', 's'}) {
		return nil, fmt.Errorf("vorbis: missing identification header: %w", taglib.ErrMalformedHeader)
	}

	commentData := base.Packet(commentPacket)

	comment, err := xiphcomment.Parse(commentData, commentHeaderID)
	if err != nil {
		return nil, err
	}

	return &File{base: base, comment: comment}, nil
}

// Tag returns the stream's Xiph comment.
func (f *File) Tag() *xiphcomment.Comment { return f.comment }

// Properties returns the comment's fields as a property map.
func (f *File) Properties() taglib.PropertyMap { return f.comment.Properties() }

// SetProperties replaces the comment's fields.
func (f *File) SetProperties(props taglib.PropertyMap) {
	f.comment.SetProperties(props)
}

// Save re-renders the comment packet (the setup header, packet 2, is
// carried through unchanged) and splices it back into the stream.
func (f *File) Save() error {
	if f.comment == nil {
		f.comment = xiphcomment.New(defaultVendor)
	}

	rendered, err := f.comment.Render()
	if err != nil {
		return fmt.Errorf("rendering comment header: %w", err)
	}

	f.base.SetPacket(commentPacket, append([]byte(commentHeaderID), rendered...))

	return f.base.Save()
}
