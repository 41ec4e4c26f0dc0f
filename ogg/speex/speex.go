// Package speex implements the Ogg Speex file coordinator: two header
// packets (identification, comment) followed by audio packets.
package speex

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
	headerPacketCount    = 2
)

const defaultVendor = "jpalus/taglib"

// File coordinates tag and property access for an Ogg Speex stream.
type File struct {
	base    *ogg.File
	comment *xiphcomment.Comment
}

// Open reads the two Speex header packets from stream. Unlike Vorbis and
// Opus, the Speex comment packet carries no codec-specific magic prefix.
func Open(stream taglib.Stream) (*File, error) {
	base, err := ogg.Open(stream, headerPacketCount)
	if err != nil {
		return nil, err
	}

	idHeader := base.Packet(identificationPacket)
	if !bytes.HasPrefix(idHeader, []byte("Speex   ")) {
		return nil, fmt.Errorf("speex: missing identification header: %w", taglib.ErrMalformedHeader)
	}

	comment, err := xiphcomment.Parse(base.Packet(commentPacket), "")
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

// Save re-renders the comment packet and splices it back into the
// stream.
func (f *File) Save() error {
	if f.comment == nil {
		f.comment = xiphcomment.New(defaultVendor)
	}

	rendered, err := f.comment.Render()
	if err != nil {
		return fmt.Errorf("rendering comment header: %w", err)
	}

	f.base.SetPacket(commentPacket, rendered)

	return f.base.Save()
}
