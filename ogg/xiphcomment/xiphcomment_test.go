package xiphcomment_test

import (
	"testing"

	"github.com/jpalus/taglib"
	"github.com/jpalus/taglib/ogg/xiphcomment"
)

func TestParseRejectsMissingPrefix(t *testing.T) {
	t.Parallel()

	_, err := xiphcomment.Parse([]byte("nope"), "OpusTags")
	if err == nil {
		t.Fatal("expected an error for a missing prefix")
	}
}

func TestParseRejectsTruncatedInput(t *testing.T) {
	t.Parallel()

	if _, err := xiphcomment.Parse([]byte{1, 2}, ""); err == nil {
		t.Error("expected truncated vendor length to fail")
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	t.Parallel()

	c := xiphcomment.New("test-encoder 1.0")
	c.Fields["ARTIST"] = []string{"Band"}
	c.Fields["TITLE"] = []string{"Song"}
	c.Fields["GENRE"] = []string{"Rock", "Alt"}

	data, err := c.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	got, err := xiphcomment.Parse(data, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got.Vendor != c.Vendor {
		t.Errorf("vendor: got %q, want %q", got.Vendor, c.Vendor)
	}

	if len(got.Fields["ARTIST"]) != 1 || got.Fields["ARTIST"][0] != "Band" {
		t.Errorf("ARTIST: got %v", got.Fields["ARTIST"])
	}

	if len(got.Fields["GENRE"]) != 2 {
		t.Errorf("GENRE: got %v", got.Fields["GENRE"])
	}
}

func TestParseWithCodecPrefix(t *testing.T) {
	t.Parallel()

	c := xiphcomment.New("libopus")
	c.Fields["ARTIST"] = []string{"Band"}

	data, err := c.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	prefixed := append([]byte("OpusTags"), data...)

	got, err := xiphcomment.Parse(prefixed, "OpusTags")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got.Vendor != "libopus" {
		t.Errorf("vendor: got %q", got.Vendor)
	}
}

func TestParseSkipsFieldsWithoutEquals(t *testing.T) {
	t.Parallel()

	// vendor="v", one field count, one field with no '=' separator.
	data := []byte{1, 0, 0, 0}
	data = append(data, 'v')
	data = append(data, 1, 0, 0, 0)
	data = append(data, 7, 0, 0, 0)
	data = append(data, "NOTAFIELD"[:7]...)

	got, err := xiphcomment.Parse(data, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !got.IsEmpty() {
		t.Error("expected an empty comment since the field had no '=' separator")
	}
}

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	c := xiphcomment.New("v")
	if !c.IsEmpty() {
		t.Error("new comment should be empty")
	}

	c.Fields["ARTIST"] = []string{"x"}
	if c.IsEmpty() {
		t.Error("expected non-empty after adding a field")
	}
}

func TestPropertiesRoundTrip(t *testing.T) {
	t.Parallel()

	c := xiphcomment.New("v")
	unprocessed := c.SetProperties(taglib.PropertyMap{"artist": {"Band"}, "Title": {"Song"}})

	if len(unprocessed) != 0 {
		t.Errorf("expected no unprocessed properties, got %v", unprocessed)
	}

	props := c.Properties()
	if props.First("ARTIST") != "Band" {
		t.Errorf("ARTIST: got %q", props.First("ARTIST"))
	}

	if props.First("TITLE") != "Song" {
		t.Errorf("TITLE: got %q", props.First("TITLE"))
	}
}
