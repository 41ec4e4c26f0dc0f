package id3v1_test

import (
	"errors"
	"testing"

	"github.com/jpalus/taglib"
	"github.com/jpalus/taglib/id3v1"
)

func TestParseRejectsBadSignatureOrLength(t *testing.T) {
	t.Parallel()

	if _, err := id3v1.Parse([]byte("too short")); !errors.Is(err, id3v1.ErrMalformed) {
		t.Errorf("short input: got %v, want ErrMalformed", err)
	}

	buf := make([]byte, id3v1.Size)
	copy(buf, "XXX")

	if _, err := id3v1.Parse(buf); !errors.Is(err, id3v1.ErrMalformed) {
		t.Errorf("bad signature: got %v, want ErrMalformed", err)
	}
}

func TestRenderParseRoundTripV10(t *testing.T) {
	t.Parallel()

	tag := &id3v1.Tag{
		Title:   "Song Title",
		Artist:  "The Artist",
		Album:   "An Album",
		Year:    "1999",
		Comment: "a comment up to thirty bytes",
		Genre:   "Rock",
	}

	rendered, err := tag.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(rendered) != id3v1.Size {
		t.Fatalf("rendered size: got %d, want %d", len(rendered), id3v1.Size)
	}

	got, err := id3v1.Parse(rendered)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if *got != *tag {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, tag)
	}
}

func TestRenderParseRoundTripV11Track(t *testing.T) {
	t.Parallel()

	tag := &id3v1.Tag{
		Title:   "Title",
		Artist:  "Artist",
		Album:   "Album",
		Year:    "2001",
		Comment: "short comment",
		Track:   7,
		Genre:   "Pop",
	}

	rendered, err := tag.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	got, err := id3v1.Parse(rendered)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got.Track != 7 {
		t.Errorf("Track: got %d, want 7", got.Track)
	}

	if got.Comment != tag.Comment {
		t.Errorf("Comment: got %q, want %q", got.Comment, tag.Comment)
	}
}

func TestTrackOutOfRangeFallsBackToV10Comment(t *testing.T) {
	t.Parallel()

	tag := &id3v1.Tag{Comment: "comment", Track: 9999}

	rendered, err := tag.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	got, err := id3v1.Parse(rendered)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got.Track != 0 {
		t.Errorf("expected out-of-range track to fall back to V1.0 layout, got Track=%d", got.Track)
	}

	if got.Comment != "comment" {
		t.Errorf("Comment: got %q", got.Comment)
	}
}

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	empty := id3v1.New()
	if !empty.IsEmpty() {
		t.Error("new tag should be empty")
	}

	empty.Title = "x"
	if empty.IsEmpty() {
		t.Error("tag with a title should not be empty")
	}
}

func TestPropertiesAndSetProperties(t *testing.T) {
	t.Parallel()

	tag := &id3v1.Tag{Title: "T", Artist: "A", Track: 3, Genre: "Jazz"}

	props := tag.Properties()
	if props.First("TITLE") != "T" || props.First("TRACKNUMBER") != "3" {
		t.Errorf("Properties: got %v", props)
	}

	other := id3v1.New()
	unprocessed := other.SetProperties(taglib.PropertyMap{
		"TITLE":          {"New Title"},
		"TRACKNUMBER":    {"5"},
		"MUSICBRAINZ_ID": {"not representable"},
	})

	if other.Title != "New Title" || other.Track != 5 {
		t.Errorf("SetProperties did not apply: %+v", other)
	}

	if _, ok := unprocessed["MUSICBRAINZ_ID"]; !ok {
		t.Error("expected unrepresentable key to be returned as unprocessed")
	}
}

func TestGenreRoundTripUnknownGenre(t *testing.T) {
	t.Parallel()

	tag := &id3v1.Tag{Genre: "Not A Real Genre"}

	rendered, err := tag.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	got, err := id3v1.Parse(rendered)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got.Genre != "" {
		t.Errorf("unknown genre should render as unset (255) and parse back empty, got %q", got.Genre)
	}
}
