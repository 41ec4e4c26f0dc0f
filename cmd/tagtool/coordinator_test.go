package main

import (
	"testing"

	"github.com/jpalus/taglib/ape"
	"github.com/jpalus/taglib/detect"
	"github.com/jpalus/taglib/internal/tagtest"
	"github.com/jpalus/taglib/mpeg"
	"github.com/jpalus/taglib/ogg"
	"github.com/jpalus/taglib/ogg/opus"
	"github.com/jpalus/taglib/ogg/speex"
	"github.com/jpalus/taglib/ogg/vorbis"
	"github.com/jpalus/taglib/ogg/xiphcomment"
)

func buildAPEStream(t *testing.T) []byte {
	t.Helper()

	tag := ape.New()
	tag.Items["ARTIST"] = ape.Item{Type: ape.ItemText, Values: []string{"Band"}}

	rendered, err := tag.Render()
	if err != nil {
		t.Fatalf("rendering APE tag: %v", err)
	}

	audio := append([]byte("MAC "), make([]byte, 64)...)

	return append(audio, rendered...)
}

func buildMPEGStream(t *testing.T) []byte {
	t.Helper()

	// MPEG1 Layer III, 128kbps, 44100Hz, stereo, unprotected.
	frame := []byte{0xFF, 0xFB, 0x90, 0x00}

	h, ok := mpeg.ParseHeader(frame)
	if !ok {
		t.Fatal("test frame header did not parse")
	}

	full := make([]byte, h.FrameLength())
	copy(full, frame)

	var data []byte
	for range 4 {
		data = append(data, full...)
	}

	return data
}

func buildOggStream(t *testing.T, packets ...[]byte) []byte {
	t.Helper()

	var lacing, payload []byte
	for _, packet := range packets {
		lacing = append(lacing, ogg.BuildLacing(len(packet))...)
		payload = append(payload, packet...)
	}

	return ogg.PageHeader{SerialNumber: 1, SequenceNumber: 0, LacingValues: lacing}.Render(payload)
}

func TestOpenCoordinatorDispatchesAPE(t *testing.T) {
	t.Parallel()

	coord, fam, err := openCoordinator(tagtest.NewMem(buildAPEStream(t)))
	if err != nil {
		t.Fatalf("openCoordinator: %v", err)
	}

	if fam != detect.APE {
		t.Errorf("family: got %v, want APE", fam)
	}

	if _, ok := coord.(*ape.File); !ok {
		t.Errorf("expected *ape.File, got %T", coord)
	}

	if _, ok := coord.(stripper); !ok {
		t.Error("expected ape.File to implement stripper")
	}

	if _, ok := coord.(audioReporter); !ok {
		t.Error("expected ape.File to implement audioReporter")
	}
}

func TestOpenCoordinatorDispatchesMPEG(t *testing.T) {
	t.Parallel()

	coord, fam, err := openCoordinator(tagtest.NewMem(buildMPEGStream(t)))
	if err != nil {
		t.Fatalf("openCoordinator: %v", err)
	}

	if fam != detect.MPEG {
		t.Errorf("family: got %v, want MPEG", fam)
	}

	if _, ok := coord.(*mpeg.File); !ok {
		t.Errorf("expected *mpeg.File, got %T", coord)
	}

	if _, ok := coord.(audioReporter); !ok {
		t.Error("expected mpeg.File to implement audioReporter")
	}
}

func TestOpenCoordinatorDispatchesVorbis(t *testing.T) {
	t.Parallel()

	idHeader := append([]byte{0x01, 'v', 'o', 'r', 'b', 'i', 's'}, make([]byte, 16)...)

	c := xiphcomment.New("jpalus/taglib")

	rendered, err := c.Render()
	if err != nil {
		t.Fatalf("rendering comment: %v", err)
	}

	commentHeader := append([]byte("\x03vorbis"), rendered...)
	setupHeader := append([]byte{0x05, 'v', 'o', 'r', 'b', 'i', 's'}, []byte("setup-blob")...)
	data := buildOggStream(t, idHeader, commentHeader, setupHeader)

	coord, fam, err := openCoordinator(tagtest.NewMem(data))
	if err != nil {
		t.Fatalf("openCoordinator: %v", err)
	}

	if fam != detect.Vorbis {
		t.Errorf("family: got %v, want Vorbis", fam)
	}

	if _, ok := coord.(*vorbis.File); !ok {
		t.Errorf("expected *vorbis.File, got %T", coord)
	}

	if _, ok := coord.(stripper); ok {
		t.Error("did not expect vorbis.File to implement stripper")
	}

	if _, ok := coord.(audioReporter); ok {
		t.Error("did not expect vorbis.File to implement audioReporter")
	}
}

func TestOpenCoordinatorDispatchesOpus(t *testing.T) {
	t.Parallel()

	idHeader := append([]byte("OpusHead"), make([]byte, 11)...)

	c := xiphcomment.New("jpalus/taglib")

	rendered, err := c.Render()
	if err != nil {
		t.Fatalf("rendering comment: %v", err)
	}

	commentHeader := append([]byte("OpusTags"), rendered...)
	data := buildOggStream(t, idHeader, commentHeader)

	coord, fam, err := openCoordinator(tagtest.NewMem(data))
	if err != nil {
		t.Fatalf("openCoordinator: %v", err)
	}

	if fam != detect.Opus {
		t.Errorf("family: got %v, want Opus", fam)
	}

	if _, ok := coord.(*opus.File); !ok {
		t.Errorf("expected *opus.File, got %T", coord)
	}
}

func TestOpenCoordinatorDispatchesSpeex(t *testing.T) {
	t.Parallel()

	idHeader := append([]byte("Speex   "), make([]byte, 12)...)

	c := xiphcomment.New("jpalus/taglib")

	commentHeader, err := c.Render()
	if err != nil {
		t.Fatalf("rendering comment: %v", err)
	}

	data := buildOggStream(t, idHeader, commentHeader)

	coord, fam, err := openCoordinator(tagtest.NewMem(data))
	if err != nil {
		t.Fatalf("openCoordinator: %v", err)
	}

	if fam != detect.Speex {
		t.Errorf("family: got %v, want Speex", fam)
	}

	if _, ok := coord.(*speex.File); !ok {
		t.Errorf("expected *speex.File, got %T", coord)
	}
}

func TestOpenCoordinatorRejectsUnrecognizedInput(t *testing.T) {
	t.Parallel()

	_, _, err := openCoordinator(tagtest.NewMem([]byte("not a recognizable container at all")))
	if err == nil {
		t.Error("expected an error for unrecognized input")
	}
}
