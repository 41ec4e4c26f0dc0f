package ape

import "github.com/jpalus/taglib/internal/tagio"

// FooterSize is the fixed size of an APEv2 header or footer record
// (spec.md §6 "APE::Footer::size() -> u32 (constant 32)").
const FooterSize = 32

const (
	flagHeaderPresent = 1 << 31
	flagIsHeader       = 1 << 29
)

const preamble = "APETAGEX"

// Footer describes an APEv2 header or footer record (the two are
// identical except for the is-header bit in Flags).
type Footer struct {
	Version   uint32
	TagSize   uint32 // items + footer, excluding any header
	ItemCount uint32
	Flags     uint32
}

// HeaderPresent reports whether a 32-byte header precedes the items.
func (f Footer) HeaderPresent() bool { return f.Flags&flagHeaderPresent != 0 }

// IsHeader reports whether this record is the leading header rather than
// the trailing footer.
func (f Footer) IsHeader() bool { return f.Flags&flagIsHeader != 0 }

// CompleteTagSize is TagSize plus a 32-byte header when present
// (spec.md §4.1's "tag_size" already excludes the header on disk).
func (f Footer) CompleteTagSize() int64 {
	size := int64(f.TagSize)
	if f.HeaderPresent() {
		size += FooterSize
	}

	return size
}

// ParseFooter decodes a 32-byte header or footer record.
func ParseFooter(data []byte) (Footer, bool) {
	if len(data) != FooterSize || string(data[0:8]) != preamble {
		return Footer{}, false
	}

	return Footer{
		Version:   tagio.LE32(data[8:12]),
		TagSize:   tagio.LE32(data[12:16]),
		ItemCount: tagio.LE32(data[16:20]),
		Flags:     tagio.LE32(data[20:24]),
	}, true
}

// Render serializes the record to its 32-byte wire form.
func (f Footer) Render() []byte {
	buf := make([]byte, FooterSize)
	copy(buf[0:8], preamble)
	copy(buf[8:12], tagio.PutLE32(f.Version))
	copy(buf[12:16], tagio.PutLE32(f.TagSize))
	copy(buf[16:20], tagio.PutLE32(f.ItemCount))
	copy(buf[20:24], tagio.PutLE32(f.Flags))
	// bytes 24:32 reserved, left zero

	return buf
}
