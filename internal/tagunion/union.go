// Package tagunion implements the fixed-slot tag union (spec.md C8): a
// compile-time-indexed table of up to N tag objects per file, created with
// the file and destroyed with it, with priority-ordered property merging.
package tagunion

import "github.com/jpalus/taglib"

// Union is a fixed-length indexed slot table. Each slot is either empty
// (nil) or owns exactly one Tag; there is no aliasing between slots.
type Union struct {
	slots []taglib.Tag
}

// New creates a union with n slots, all initially empty.
func New(n int) *Union {
	return &Union{slots: make([]taglib.Tag, n)}
}

// Get returns the tag at index, or nil if the slot is empty.
func (u *Union) Get(index int) taglib.Tag {
	return u.slots[index]
}

// Set installs tag at index, or clears the slot when tag is nil.
func (u *Union) Set(index int, tag taglib.Tag) {
	u.slots[index] = tag
}

// Access returns the tag at index, type-asserted to T. If the slot is
// empty and create is true, factory is called to construct a
// default-empty tag which is installed and returned. If create is false
// and the slot is empty, the zero value of T is returned.
func Access[T taglib.Tag](u *Union, index int, create bool, factory func() T) T {
	if existing := u.slots[index]; existing != nil {
		if typed, ok := existing.(T); ok {
			return typed
		}
	}

	if !create {
		var zero T

		return zero
	}

	tag := factory()
	u.slots[index] = tag

	return tag
}

// Properties merges every non-empty slot's property map; on key conflict
// the lower-indexed slot wins (the "primary tag" rule of spec.md §4.4).
func (u *Union) Properties() taglib.PropertyMap {
	maps := make([]taglib.PropertyMap, 0, len(u.slots))

	for _, slot := range u.slots {
		if slot != nil {
			maps = append(maps, slot.Properties())
		}
	}

	return taglib.Merge(maps...)
}

// KeyRemover is implemented by tags that can drop properties whose keys
// are not recognized outside this file's format (e.g. when converting
// between tag systems).
type KeyRemover interface {
	RemoveUnsupported(keys []string)
}

// RemoveUnsupported forwards to every non-empty slot that implements
// KeyRemover.
func (u *Union) RemoveUnsupported(keys []string) {
	for _, slot := range u.slots {
		if remover, ok := slot.(KeyRemover); ok {
			remover.RemoveUnsupported(keys)
		}
	}
}
