package taglib

import "github.com/samber/lo"

// PropertyMap maps an uppercase normalized key (e.g. "ARTIST", "TITLE") to
// its list of string values, the normalized tag representation every
// collaborator speaks (spec.md GLOSSARY).
type PropertyMap map[string][]string

// Merge combines maps in priority order: the first map's keys win on
// conflict, matching the tag union's "lower-indexed slot wins" rule
// (spec.md §4.4). Later maps only contribute keys absent from earlier ones.
func Merge(maps ...PropertyMap) PropertyMap {
	out := PropertyMap{}

	for _, m := range maps {
		for _, key := range lo.Keys(m) {
			if _, exists := out[key]; !exists {
				out[key] = m[key]
			}
		}
	}

	return out
}

// First returns the first value for key, or "" if absent.
func (p PropertyMap) First(key string) string {
	if values, ok := p[key]; ok && len(values) > 0 {
		return values[0]
	}

	return ""
}
