// Package id3v1 implements the classic 128-byte trailing ID3v1 tag
// collaborator (spec.md §6 "ID3v1::Tag"), including the ID3v1.1 track
// number extension.
package id3v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jpalus/taglib"
)

// Size is the fixed on-disk size of an ID3v1 tag.
const Size = 128

const (
	titleOffset   = 3
	artistOffset  = 33
	albumOffset   = 63
	yearOffset    = 93
	commentOffset = 97
	genreOffset   = 127

	fieldLen30 = 30
	fieldLen4  = 4

	// ID3v1.1: within the 30-byte comment field, a zero byte at index 28
	// followed by a nonzero track number at index 29 repurposes the last
	// two bytes of the comment.
	v11ZeroIdx  = 28
	v11TrackIdx = 29
)

// ErrMalformed is returned when 128 bytes do not begin with "TAG".
var ErrMalformed = errors.New("id3v1: malformed tag")

// Tag holds the classic ID3v1 fields plus the ID3v1.1 track extension.
type Tag struct {
	Title, Artist, Album, Comment string
	Year                          string
	Track                         int // 0 = absent (ID3v1.0 layout)
	Genre                         string
}

// New returns an empty tag.
func New() *Tag { return &Tag{} }

// Parse decodes a 128-byte ID3v1 block.
func Parse(data []byte) (*Tag, error) {
	if len(data) != Size || string(data[0:3]) != "TAG" {
		return nil, fmt.Errorf("parsing tag: %w", ErrMalformed)
	}

	t := &Tag{
		Title:  fixedString(data[titleOffset : titleOffset+fieldLen30]),
		Artist: fixedString(data[artistOffset : artistOffset+fieldLen30]),
		Album:  fixedString(data[albumOffset : albumOffset+fieldLen30]),
		Year:   fixedString(data[yearOffset : yearOffset+fieldLen4]),
	}

	comment := data[commentOffset : commentOffset+fieldLen30]
	if comment[v11ZeroIdx] == 0 && comment[v11TrackIdx] != 0 {
		t.Comment = fixedString(comment[:v11ZeroIdx])
		t.Track = int(comment[v11TrackIdx])
	} else {
		t.Comment = fixedString(comment)
	}

	t.Genre = genreName(data[genreOffset])

	return t, nil
}

// IsEmpty reports whether every field is unset.
func (t *Tag) IsEmpty() bool {
	return t.Title == "" && t.Artist == "" && t.Album == "" && t.Comment == "" &&
		t.Year == "" && t.Track == 0 && t.Genre == ""
}

// Render serializes the tag to its 128-byte wire form, using the ID3v1.1
// layout when Track > 0.
func (t *Tag) Render() ([]byte, error) {
	buf := make([]byte, Size)
	copy(buf[0:3], "TAG")

	putFixed(buf[titleOffset:titleOffset+fieldLen30], t.Title)
	putFixed(buf[artistOffset:artistOffset+fieldLen30], t.Artist)
	putFixed(buf[albumOffset:albumOffset+fieldLen30], t.Album)
	putFixed(buf[yearOffset:yearOffset+fieldLen4], t.Year)

	comment := buf[commentOffset : commentOffset+fieldLen30]
	if t.Track > 0 && t.Track <= 255 {
		putFixed(comment[:v11ZeroIdx], t.Comment)
		comment[v11ZeroIdx] = 0
		comment[v11TrackIdx] = byte(t.Track)
	} else {
		putFixed(comment, t.Comment)
	}

	buf[genreOffset] = genreIndex(t.Genre)

	return buf, nil
}

// Properties returns the normalized property map for this tag.
func (t *Tag) Properties() taglib.PropertyMap {
	p := taglib.PropertyMap{}

	add := func(key, value string) {
		if value != "" {
			p[key] = []string{value}
		}
	}

	add("TITLE", t.Title)
	add("ARTIST", t.Artist)
	add("ALBUM", t.Album)
	add("DATE", t.Year)
	add("COMMENT", t.Comment)
	add("GENRE", t.Genre)

	if t.Track > 0 {
		p["TRACKNUMBER"] = []string{strconv.Itoa(t.Track)}
	}

	return p
}

// SetProperties replaces the tag's fields from a property map, returning
// keys ID3v1 has no field for.
func (t *Tag) SetProperties(props taglib.PropertyMap) taglib.PropertyMap {
	unprocessed := taglib.PropertyMap{}

	for key, values := range props {
		value := ""
		if len(values) > 0 {
			value = values[0]
		}

		switch key {
		case "TITLE":
			t.Title = value
		case "ARTIST":
			t.Artist = value
		case "ALBUM":
			t.Album = value
		case "DATE":
			t.Year = value
		case "COMMENT":
			t.Comment = value
		case "GENRE":
			t.Genre = value
		case "TRACKNUMBER":
			if n, err := strconv.Atoi(value); err == nil {
				t.Track = n
			}
		default:
			unprocessed[key] = values
		}
	}

	return unprocessed
}

func fixedString(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == 0 || b[end-1] == ' ') {
		end--
	}

	return string(b[:end])
}

func putFixed(dst []byte, s string) {
	copy(dst, s)
}
