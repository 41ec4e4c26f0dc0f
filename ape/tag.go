// Package ape implements the APEv2 tag collaborator and the APE family's
// multi-tag file coordinator (spec.md §4.3, the canonical C4 example).
package ape

import (
	"bytes"
	"sort"
	"strings"

	"github.com/jpalus/taglib"
	"github.com/jpalus/taglib/internal/tagio"
	"github.com/samber/lo"
)

// ItemType is the APEv2 item value-type tag (bits 1-2 of an item's flags).
type ItemType uint8

const (
	// ItemText holds one or more UTF-8 strings, NUL-separated.
	ItemText ItemType = iota
	// ItemBinary holds opaque binary data (e.g. cover art).
	ItemBinary
	// ItemExternal holds a URI referencing external data.
	ItemExternal
)

const (
	itemVersion        = 2000
	itemFlagReadOnly   = 1
	itemFlagTypeShift  = 1
	itemFlagTypeMask   = 0x3 << itemFlagTypeShift
)

// Item is a single APEv2 key/value entry.
type Item struct {
	Type     ItemType
	ReadOnly bool
	Values   []string // meaningful for ItemText and ItemExternal
	Binary   []byte   // meaningful for ItemBinary
}

func (it Item) flags() uint32 {
	flags := uint32(it.Type) << itemFlagTypeShift
	if it.ReadOnly {
		flags |= itemFlagReadOnly
	}

	return flags
}

func (it Item) valueBytes() []byte {
	if it.Type == ItemBinary {
		return it.Binary
	}

	return []byte(strings.Join(it.Values, "\x00"))
}

// Tag is an APEv2 tag: a set of key/value items keyed by item name
// (spec.md §6 "APE::Tag"). The map keeps no order; Render writes the items
// sorted by key and rebuilds the header and footer from them.
type Tag struct {
	Items map[string]Item
}

// New returns an empty APE tag.
func New() *Tag { return &Tag{Items: map[string]Item{}} }

// Parse decodes the item block of an APEv2 tag. data must start right
// after an optional header and contain exactly footer.ItemCount items
// followed by the 32-byte footer (or just the items, if the caller has
// already stripped the footer -- Parse tolerates a trailing footer and
// ignores it).
func Parse(data []byte) (*Tag, error) {
	t := New()

	pos := 0
	for pos+8 <= len(data) && !bytes.HasPrefix(data[pos:], []byte(preamble)) {
		valueLen := tagio.LE32(data[pos : pos+4])
		flags := tagio.LE32(data[pos+4 : pos+8])
		pos += 8

		keyEnd := bytes.IndexByte(data[pos:], 0)
		if keyEnd < 0 {
			break
		}

		key := string(data[pos : pos+keyEnd])
		pos += keyEnd + 1

		if pos+int(valueLen) > len(data) {
			break
		}

		value := data[pos : pos+int(valueLen)]
		pos += int(valueLen)

		itemType := ItemType((flags & itemFlagTypeMask) >> itemFlagTypeShift)
		item := Item{
			Type:     itemType,
			ReadOnly: flags&itemFlagReadOnly != 0,
		}

		if itemType == ItemBinary {
			item.Binary = append([]byte(nil), value...)
		} else {
			item.Values = strings.Split(string(value), "\x00")
		}

		t.Items[key] = item
	}

	return t, nil
}

// IsEmpty reports whether the tag has no items.
func (t *Tag) IsEmpty() bool { return len(t.Items) == 0 }

// Render serializes the tag to a full APEv2 block: a 32-byte header,
// every item, and a 32-byte footer, both header and footer bits set.
func (t *Tag) Render() ([]byte, error) {
	keys := lo.Keys(t.Items)
	sort.Strings(keys)

	var items bytes.Buffer

	for _, key := range keys {
		item := t.Items[key]
		value := item.valueBytes()

		items.Write(tagio.PutLE32(uint32(len(value))))
		items.Write(tagio.PutLE32(item.flags()))
		items.WriteString(key)
		items.WriteByte(0)
		items.Write(value)
	}

	tagSize := uint32(items.Len() + FooterSize) //nolint:gosec // item block bounded by file size

	header := Footer{
		Version:   itemVersion,
		TagSize:   tagSize,
		ItemCount: uint32(len(keys)), //nolint:gosec // item count bounded by file size
		Flags:     flagHeaderPresent | flagIsHeader,
	}
	footer := header
	footer.Flags = flagHeaderPresent

	var out bytes.Buffer
	out.Write(header.Render())
	out.Write(items.Bytes())
	out.Write(footer.Render())

	return out.Bytes(), nil
}

// Properties returns the tag's items as a normalized property map.
func (t *Tag) Properties() taglib.PropertyMap {
	p := taglib.PropertyMap{}

	for key, item := range t.Items {
		if item.Type != ItemBinary {
			p[strings.ToUpper(key)] = append([]string(nil), item.Values...)
		}
	}

	return p
}

// SetProperties replaces the tag's text items from a property map. APE
// has no restriction on key names, so every key is processed.
func (t *Tag) SetProperties(props taglib.PropertyMap) taglib.PropertyMap {
	for key := range t.Items {
		if t.Items[key].Type != ItemBinary {
			delete(t.Items, key)
		}
	}

	for key, values := range props {
		t.Items[key] = Item{Type: ItemText, Values: values}
	}

	return taglib.PropertyMap{}
}

// RemoveUnsupported deletes items whose keys are present in keys
// (spec.md §4.4 "remove_unsupported").
func (t *Tag) RemoveUnsupported(keys []string) {
	for _, key := range keys {
		delete(t.Items, key)
		delete(t.Items, strings.ToUpper(key))
	}
}
