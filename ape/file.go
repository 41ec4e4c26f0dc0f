package ape

import (
	"fmt"

	"github.com/jpalus/taglib"
	"github.com/jpalus/taglib/internal/tagio"
	"github.com/jpalus/taglib/internal/tagunion"
	"github.com/jpalus/taglib/internal/tagutils"
	"github.com/jpalus/taglib/id3v1"
)

// Slot indices into the file's tag union. APE is primary: on a property
// conflict between the two tail tags, APE wins (spec.md §4.4 "lower
// index wins").
const (
	APEIndex   = 0
	ID3v1Index = 1
)

// File coordinates the three tag blocks that can appear in an APE (Monkey's
// Audio) container: a leading ID3v2 header, and a trailing APEv2 tag
// followed by a classic ID3v1 tag (spec.md §4.1's coexistence invariant).
// Audio-property estimation is intentionally absent: Monkey's Audio frame
// internals are out of scope, unlike the MPEG family's Xing/VBRI estimator.
type File struct {
	stream taglib.Stream
	union  *tagunion.Union

	hasID3v2          bool
	id3v2Location     int64
	id3v2CompleteSize int64

	tailStart int64 // offset where the APE/ID3v1 tail block begins
	length    int64

	stripID3v2 bool
}

// Open reads an APE container's tag blocks from stream without touching
// the audio stream itself.
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

		if len(body) >= FooterSize {
			if header, ok := ParseFooter(body[:FooterSize]); ok && header.IsHeader() {
				body = body[FooterSize:]
			}
		}

		tag, err := Parse(body)
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

	// Kept as found in the original APE coordinator: an absent APE tag is
	// force-created empty, but only when ID3v1 is also absent. The
	// rationale for the asymmetry isn't documented upstream; preserved
	// rather than guessed at.
	if apeLocation < 0 && id3v1Location < 0 {
		f.union.Set(APEIndex, New())
	}

	return nil
}

// APETag returns the file's APE tag. If create is true and no APE tag is
// present, an empty one is installed and returned.
func (f *File) APETag(create bool) *Tag {
	return tagunion.Access(f.union, APEIndex, create, New)
}

// ID3v1Tag returns the file's ID3v1 tag. If create is true and no ID3v1
// tag is present, an empty one is installed and returned.
func (f *File) ID3v1Tag(create bool) *id3v1.Tag {
	return tagunion.Access(f.union, ID3v1Index, create, id3v1.New)
}

// Properties returns the merged property map across both tail tags, APE
// taking priority on conflicting keys.
func (f *File) Properties() taglib.PropertyMap {
	return f.union.Properties()
}

// SetProperties writes props to the primary (APE) tag, creating it if
// necessary, and forwards any keys APE rejected to an existing ID3v1 tag.
func (f *File) SetProperties(props taglib.PropertyMap) {
	unprocessed := f.APETag(true).SetProperties(props)

	if len(unprocessed) > 0 {
		if v1, ok := f.union.Get(ID3v1Index).(*id3v1.Tag); ok {
			v1.SetProperties(unprocessed)
		}
	}
}

// AudioProperties returns the zero value: Monkey's Audio frame internals
// are not decoded by this package.
func (f *File) AudioProperties() taglib.AudioProperties {
	return taglib.AudioProperties{}
}

// Strip removes the named tag kinds from the file in memory; call Save to
// persist the change. KindID3v2 strips the raw header block (frame bodies
// are never parsed, so there is nothing else to remove); KindAPE and
// KindID3v1 clear their union slots.
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
			// not applicable to the APE family
		}
	}
}

// Save renders the current tag state back to the stream, splicing the
// tail tag region (and the ID3v2 block, when stripped) in place
// (spec.md §4.2 C3) rather than rewriting the whole file. The tail region
// is rewritten on every call, whether or not its tags changed.
func (f *File) Save() error {
	var tail []byte

	if ape, ok := f.union.Get(APEIndex).(*Tag); ok && ape != nil && !ape.IsEmpty() {
		rendered, err := ape.Render()
		if err != nil {
			return fmt.Errorf("rendering APE tag: %w", err)
		}

		tail = append(tail, rendered...)
	}

	if v1, ok := f.union.Get(ID3v1Index).(*id3v1.Tag); ok && v1 != nil && !v1.IsEmpty() {
		rendered, err := v1.Render()
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
