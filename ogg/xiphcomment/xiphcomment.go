// Package xiphcomment implements the Xiph comment collaborator (spec.md
// §6 "Ogg::XiphComment"): the vendor string plus key=value field list
// carried as the comment header packet in Vorbis, Opus, and Speex
// streams.
package xiphcomment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jpalus/taglib"
	"github.com/jpalus/taglib/internal/tagio"
	"github.com/samber/lo"
)

// Comment is a Xiph comment block: a vendor string and an unordered
// multimap of uppercased field names to one or more values.
type Comment struct {
	Vendor string
	Fields map[string][]string
}

// New returns an empty comment with the given vendor string.
func New(vendor string) *Comment {
	return &Comment{Vendor: vendor, Fields: map[string][]string{}}
}

// Parse decodes a raw Xiph comment packet. headerPrefix, when non-empty,
// is a codec-specific magic the packet must begin with (e.g. "OpusTags"
// for Opus, "\x03vorbis" for Vorbis comment packets found standalone
// rather than wrapped by a Vorbis identification scheme); pass "" when
// the caller has already stripped any such prefix.
func Parse(data []byte, headerPrefix string) (*Comment, error) {
	if headerPrefix != "" {
		if !strings.HasPrefix(string(data), headerPrefix) {
			return nil, fmt.Errorf("xiphcomment: missing %q prefix: %w", headerPrefix, taglib.ErrMalformedHeader)
		}

		data = data[len(headerPrefix):]
	}

	if len(data) < 4 {
		return nil, fmt.Errorf("xiphcomment: truncated vendor length: %w", taglib.ErrTruncatedInput)
	}

	vendorLen := int(tagio.LE32(data[0:4]))
	data = data[4:]

	if len(data) < vendorLen+4 {
		return nil, fmt.Errorf("xiphcomment: truncated vendor string: %w", taglib.ErrTruncatedInput)
	}

	vendor := string(data[:vendorLen])
	data = data[vendorLen:]

	count := int(tagio.LE32(data[0:4]))
	data = data[4:]

	c := New(vendor)

	for range count {
		if len(data) < 4 {
			return nil, fmt.Errorf("xiphcomment: truncated field count: %w", taglib.ErrTruncatedInput)
		}

		fieldLen := int(tagio.LE32(data[0:4]))
		data = data[4:]

		if len(data) < fieldLen {
			return nil, fmt.Errorf("xiphcomment: truncated field: %w", taglib.ErrTruncatedInput)
		}

		field := string(data[:fieldLen])
		data = data[fieldLen:]

		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}

		key = strings.ToUpper(key)
		c.Fields[key] = append(c.Fields[key], value)
	}

	return c, nil
}

// IsEmpty reports whether the comment has no fields.
func (c *Comment) IsEmpty() bool { return len(c.Fields) == 0 }

// Render serializes the comment block without any codec-specific magic
// prefix; callers that need one (Opus's "OpusTags") prepend it
// themselves.
func (c *Comment) Render() ([]byte, error) {
	var out []byte

	out = append(out, tagio.PutLE32(uint32(len(c.Vendor)))...) //nolint:gosec // vendor strings are short
	out = append(out, c.Vendor...)

	keys := lo.Keys(c.Fields)
	sort.Strings(keys)

	count := 0

	var fields []byte

	for _, key := range keys {
		for _, value := range c.Fields[key] {
			field := key + "=" + value
			fields = append(fields, tagio.PutLE32(uint32(len(field)))...) //nolint:gosec // bounded by practical tag sizes
			fields = append(fields, field...)
			count++
		}
	}

	out = append(out, tagio.PutLE32(uint32(count))...) //nolint:gosec // bounded by practical tag sizes
	out = append(out, fields...)

	return out, nil
}

// Properties returns the comment's fields as a property map (the keys
// are already normalized to upper case).
func (c *Comment) Properties() taglib.PropertyMap {
	p := make(taglib.PropertyMap, len(c.Fields))
	for k, v := range c.Fields {
		p[k] = append([]string(nil), v...)
	}

	return p
}

// SetProperties replaces all fields from props. Xiph comments place no
// restriction on field names, so every key is processed and nothing is
// returned as unprocessed.
func (c *Comment) SetProperties(props taglib.PropertyMap) taglib.PropertyMap {
	c.Fields = make(map[string][]string, len(props))
	for k, v := range props {
		c.Fields[strings.ToUpper(k)] = append([]string(nil), v...)
	}

	return taglib.PropertyMap{}
}
