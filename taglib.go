// Package taglib reads, edits, and writes embedded metadata and basic audio
// properties in compressed audio container files. It locates heterogeneous
// tag blocks (ID3v2, ID3v1, APE) at arbitrary file offsets, reconciles their
// coexistence, computes stream boundaries that exclude tag regions, and
// performs in-place byte-accurate surgery on save.
package taglib

// Kind identifies a tag format that may be present in a container.
type Kind uint8

const (
	// KindAPE identifies an APEv2 tag.
	KindAPE Kind = iota
	// KindID3v1 identifies a classic 128-byte trailing ID3v1 tag.
	KindID3v1
	// KindID3v2 identifies a variable-length leading ID3v2 tag.
	KindID3v2
	// KindXiph identifies an Ogg Vorbis comment block.
	KindXiph
)

// Tag is the minimal surface every concrete tag collaborator (id3v1.Tag,
// ape.Tag, ogg/xiphcomment.Comment) implements. It is the interface C4
// coordinators program against; spec.md §6 calls these "external
// collaborators".
type Tag interface {
	// IsEmpty reports whether the tag carries no properties worth persisting.
	IsEmpty() bool
	// Render serializes the tag to its on-disk byte representation.
	Render() ([]byte, error)
	// Properties returns the tag's fields as a normalized property map.
	Properties() PropertyMap
	// SetProperties replaces the tag's fields from a property map, returning
	// the subset of keys the tag could not represent.
	SetProperties(PropertyMap) PropertyMap
}

// AudioProperties holds the audio properties shared by every container
// family, the common subset callers can read without knowing the concrete
// codec.
type AudioProperties struct {
	LengthMS    int
	BitrateKbps int
	SampleRate  int
	Channels    int

	// The remaining fields come straight off the first frame header of
	// container families that expose one (currently only mpeg); they are
	// left at their zero value for families, like ape, that don't
	// estimate audio properties at all.
	Layer             int
	Version           int
	ProtectionEnabled bool
	IsCopyrighted     bool
	IsOriginal        bool
}
