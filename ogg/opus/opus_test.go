package opus_test

import (
	"testing"

	"github.com/jpalus/taglib"
	"github.com/jpalus/taglib/internal/tagtest"
	"github.com/jpalus/taglib/ogg"
	"github.com/jpalus/taglib/ogg/opus"
	"github.com/jpalus/taglib/ogg/xiphcomment"
)

func buildOpusStream(t *testing.T, fields map[string][]string) []byte {
	t.Helper()

	idHeader := append([]byte("OpusHead"), make([]byte, 11)...)

	c := xiphcomment.New("jpalus/taglib")
	for k, vs := range fields {
		c.Fields[k] = vs
	}

	rendered, err := c.Render()
	if err != nil {
		t.Fatalf("rendering comment: %v", err)
	}

	commentHeader := append([]byte("OpusTags"), rendered...)

	lacing := append(ogg.BuildLacing(len(idHeader)), ogg.BuildLacing(len(commentHeader))...)
	payload := append(append([]byte(nil), idHeader...), commentHeader...)

	return ogg.PageHeader{SerialNumber: 1, SequenceNumber: 0, LacingValues: lacing}.Render(payload)
}

func TestOpenReadsOpusHeaders(t *testing.T) {
	t.Parallel()

	data := buildOpusStream(t, map[string][]string{"ARTIST": {"Band"}})

	f, err := opus.Open(tagtest.NewMem(data))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if got := f.Properties().First("ARTIST"); got != "Band" {
		t.Errorf("ARTIST: got %q", got)
	}
}

func TestOpenRejectsMissingIdentificationHeader(t *testing.T) {
	t.Parallel()

	bogus := ogg.PageHeader{SerialNumber: 1, SequenceNumber: 0, LacingValues: append(ogg.BuildLacing(10), ogg.BuildLacing(10)...)}.Render(make([]byte, 20))

	if _, err := opus.Open(tagtest.NewMem(bogus)); err == nil {
		t.Error("expected an error for a stream without an OpusHead packet")
	}
}

func TestSetPropertiesAndSaveRoundTrip(t *testing.T) {
	t.Parallel()

	data := buildOpusStream(t, map[string][]string{"ARTIST": {"Old"}})
	stream := tagtest.NewMem(data)

	f, err := opus.Open(stream)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	f.SetProperties(taglib.PropertyMap{"ARTIST": {"New Band"}})

	if err := f.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := opus.Open(stream)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}

	if got := reopened.Properties().First("ARTIST"); got != "New Band" {
		t.Errorf("ARTIST: got %q", got)
	}
}
