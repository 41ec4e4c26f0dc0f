package mpeg

import (
	"fmt"

	"github.com/jpalus/taglib"
	"github.com/jpalus/taglib/ape"
	"github.com/jpalus/taglib/internal/tagio"
	"github.com/jpalus/taglib/internal/tagunion"
	"github.com/jpalus/taglib/internal/tagutils"
	"github.com/jpalus/taglib/id3v1"
)

// Slot indices, matching the ape package: APE tags take priority over
// ID3v1 when both are present on an MP3 file, which is legal though rare.
const (
	APEIndex   = 0
	ID3v1Index = 1
)

// File coordinates the tag blocks and audio-property estimation for an
// MPEG (MP3) container: a leading ID3v2 tag, audio frames, and an optional
// trailing APEv2 and/or ID3v1 tag (spec.md §4.1's coexistence invariant,
// shared with the APE family).
type File struct {
	stream taglib.Stream
	union  *tagunion.Union

	hasID3v2          bool
	id3v2Location     int64
	id3v2CompleteSize int64

	tailStart int64
	length    int64

	stripID3v2 bool

	properties Properties
}

// Open reads an MP3 container's tag blocks and estimates its audio
// properties.
func Open(stream taglib.Stream) (*File, error) {
	f := &File{stream: stream, union: tagunion.New(2)}

	if err := f.read(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *File) read() error {
	length, err := f.stream.Len()
	if err != nil {
		return fmt.Errorf("getting length: %w", err)
	}

	f.length = length
	f.union = tagunion.New(2)

	if info, ok, err := tagutils.FindID3v2(f.stream); err != nil {
		return err
	} else if ok {
		f.hasID3v2 = true
		f.id3v2Location = info.Location
		f.id3v2CompleteSize = info.CompleteSize()
	} else {
		f.hasID3v2 = false
		f.id3v2Location = 0
		f.id3v2CompleteSize = 0
	}

	id3v1Location, err := tagutils.FindID3v1(f.stream)
	if err != nil {
		return err
	}

	apeLocation, apeSize, err := tagutils.FindAPE(f.stream, id3v1Location)
	if err != nil {
		return err
	}

	f.tailStart = length

	if apeLocation >= 0 {
		f.tailStart = apeLocation

		body, err := tagio.ReadAt(f.stream, apeLocation, int(apeSize))
		if err != nil {
			return fmt.Errorf("reading APE tag: %w", err)
		}

		if len(body) >= ape.FooterSize {
			if header, ok := ape.ParseFooter(body[:ape.FooterSize]); ok && header.IsHeader() {
				body = body[ape.FooterSize:]
			}
		}

		tag, err := ape.Parse(body)
		if err != nil {
			return fmt.Errorf("parsing APE tag: %w", err)
		}

		f.union.Set(APEIndex, tag)
	}

	if id3v1Location >= 0 {
		if id3v1Location < f.tailStart {
			f.tailStart = id3v1Location
		}

		body, err := tagio.ReadAt(f.stream, id3v1Location, id3v1.Size)
		if err != nil {
			return fmt.Errorf("reading ID3v1 tag: %w", err)
		}

		tag, err := id3v1.Parse(body)
		if err != nil {
			return fmt.Errorf("parsing ID3v1 tag: %w", err)
		}

		f.union.Set(ID3v1Index, tag)
	}

	audioStart := int64(0)
	if f.hasID3v2 {
		audioStart = f.id3v2Location + f.id3v2CompleteSize
	}

	props, err := EstimateProperties(f.stream, audioStart, f.tailStart)
	if err != nil {
		return err
	}

	f.properties = props

	return nil
}

// APETag returns the file's APE tag, creating an empty one if create is
// true and none is present.
func (f *File) APETag(create bool) *ape.Tag {
	return tagunion.Access(f.union, APEIndex, create, ape.New)
}

// ID3v1Tag returns the file's ID3v1 tag, creating an empty one if create
// is true and none is present.
func (f *File) ID3v1Tag(create bool) *id3v1.Tag {
	return tagunion.Access(f.union, ID3v1Index, create, id3v1.New)
}

// Properties returns the merged property map across both tail tags.
func (f *File) Properties() taglib.PropertyMap {
	return f.union.Properties()
}

// SetProperties writes props to the primary (APE) tag, creating it if
// necessary, and forwards unrecognized keys to an existing ID3v1 tag.
func (f *File) SetProperties(props taglib.PropertyMap) {
	unprocessed := f.APETag(true).SetProperties(props)

	if len(unprocessed) > 0 {
		if v1, ok := f.union.Get(ID3v1Index).(*id3v1.Tag); ok {
			v1.SetProperties(unprocessed)
		}
	}
}

// AudioProperties returns the file's estimated length, bitrate, sample
// rate, channel count, and first-frame scalar fields (layer, version,
// protection, copyright/original flags).
func (f *File) AudioProperties() taglib.AudioProperties {
	return f.properties.AudioProperties
}

// XingHeader returns the Xing/Info/VBRI header used to estimate this
// file's audio properties, if one was found.
func (f *File) XingHeader() (VBRHeader, bool) {
	return f.properties.XingHeader, f.properties.HasXing
}

// Strip removes the named tag kinds in memory; call Save to persist.
func (f *File) Strip(kinds ...taglib.Kind) {
	for _, kind := range kinds {
		switch kind {
		case taglib.KindAPE:
			f.union.Set(APEIndex, nil)
		case taglib.KindID3v1:
			f.union.Set(ID3v1Index, nil)
		case taglib.KindID3v2:
			f.stripID3v2 = true
		case taglib.KindXiph:
			// not applicable to the MPEG family
		}
	}
}

// Save renders the current tag state back to the stream, splicing the
// tail tag region (and the ID3v2 block, when stripped) in place. The tail
// region is rewritten on every call, whether or not its tags changed.
func (f *File) Save() error {
	var tail []byte

	if tag, ok := f.union.Get(APEIndex).(*ape.Tag); ok && tag != nil && !tag.IsEmpty() {
		rendered, err := tag.Render()
		if err != nil {
			return fmt.Errorf("rendering APE tag: %w", err)
		}

		tail = append(tail, rendered...)
	}

	if tag, ok := f.union.Get(ID3v1Index).(*id3v1.Tag); ok && tag != nil && !tag.IsEmpty() {
		rendered, err := tag.Render()
		if err != nil {
			return fmt.Errorf("rendering ID3v1 tag: %w", err)
		}

		tail = append(tail, rendered...)
	}

	if err := tagutils.Replace(f.stream, f.tailStart, f.length-f.tailStart, tail); err != nil {
		return err
	}

	if f.stripID3v2 && f.hasID3v2 {
		if err := tagutils.Replace(f.stream, f.id3v2Location, f.id3v2CompleteSize, nil); err != nil {
			return err
		}
	}

	f.stripID3v2 = false

	return f.read()
}
