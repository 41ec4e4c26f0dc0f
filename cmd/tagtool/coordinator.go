package main

import (
	"fmt"

	"github.com/jpalus/taglib"
	"github.com/jpalus/taglib/ape"
	"github.com/jpalus/taglib/detect"
	"github.com/jpalus/taglib/mpeg"
	"github.com/jpalus/taglib/ogg/opus"
	"github.com/jpalus/taglib/ogg/speex"
	"github.com/jpalus/taglib/ogg/vorbis"
)

// coordinator is the uniform surface main needs over any of the five
// per-family File coordinators, so dump/set/strip don't need a type
// switch at every call site.
type coordinator interface {
	Properties() taglib.PropertyMap
	SetProperties(taglib.PropertyMap)
	Save() error
}

// audioReporter is implemented by coordinators that report audio
// properties: MPEG estimates them, APE implements it but always reports
// the zero value, and the Ogg families don't implement it.
type audioReporter interface {
	AudioProperties() taglib.AudioProperties
}

// stripper is implemented by coordinators whose tags can be removed by
// kind (the ID3v2/APE/ID3v1 tail-tag families; Ogg comments have no
// equivalent "strip down to nothing" operation distinct from setting
// an empty comment).
type stripper interface {
	Strip(kinds ...taglib.Kind)
}

func openCoordinator(stream taglib.Stream) (coordinator, detect.Family, error) {
	fam, err := detect.Identify(stream)
	if err != nil {
		return nil, detect.Unknown, err
	}

	switch fam {
	case detect.APE:
		f, err := ape.Open(stream)

		return f, fam, wrapOpenErr(fam, err)
	case detect.MPEG:
		f, err := mpeg.Open(stream)

		return f, fam, wrapOpenErr(fam, err)
	case detect.Vorbis:
		f, err := vorbis.Open(stream)

		return f, fam, wrapOpenErr(fam, err)
	case detect.Opus:
		f, err := opus.Open(stream)

		return f, fam, wrapOpenErr(fam, err)
	case detect.Speex:
		f, err := speex.Open(stream)

		return f, fam, wrapOpenErr(fam, err)
	default:
		return nil, fam, detect.ErrUnrecognized
	}
}

func wrapOpenErr(fam detect.Family, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("opening %s file: %w", fam, err)
}
