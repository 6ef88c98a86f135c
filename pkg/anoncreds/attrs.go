package anoncreds

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// AttributeSetBuilder accumulates the attribute names of a credential schema.
//
// A builder is move-only: a successful AddAttr or Finalize consumes the
// receiver and every later call on it fails with ErrBuilderConsumed. Keep only
// the most recently returned builder:
//
//	b, err := anoncreds.NewAttributeSetBuilder()
//	b, err = b.AddAttr("name")
//	set, err := b.Finalize()
//
// A builder is not safe for concurrent use.
type AttributeSetBuilder struct {
	names    map[AttributeName]struct{}
	consumed bool
}

// NewAttributeSetBuilder returns an empty builder.
func NewAttributeSetBuilder() (*AttributeSetBuilder, error) {
	return &AttributeSetBuilder{names: make(map[AttributeName]struct{})}, nil
}

func (b *AttributeSetBuilder) live() error {
	if b == nil {
		return fmt.Errorf("%w: nil attribute set builder", ErrInvalidArgument)
	}
	if b.consumed {
		return ErrBuilderConsumed
	}
	return nil
}

// consume tombstones b after its state has moved into a successor.
func (b *AttributeSetBuilder) consume() {
	b.names = nil
	b.consumed = true
}

// Len returns the number of names accumulated so far.
func (b *AttributeSetBuilder) Len() int {
	if b.live() != nil {
		return 0
	}
	return len(b.names)
}

// Contains reports whether name has already been added.
func (b *AttributeSetBuilder) Contains(name AttributeName) bool {
	if b.live() != nil {
		return false
	}
	_, ok := b.names[name]
	return ok
}

// AddAttr returns a builder holding the accumulated names plus name and
// consumes b. Empty names fail with ErrInvalidArgument and names already
// present fail with ErrDuplicateAttribute; a failed call leaves b untouched
// and still usable.
func (b *AttributeSetBuilder) AddAttr(name AttributeName) (*AttributeSetBuilder, error) {
	if err := b.live(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if _, ok := b.names[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateAttribute, name)
	}

	next := &AttributeSetBuilder{names: b.names}
	next.names[name] = struct{}{}
	b.consume()
	return next, nil
}

// Finalize consumes b and returns the immutable attribute set in canonical
// order.
func (b *AttributeSetBuilder) Finalize() (*AttributeSet, error) {
	if err := b.live(); err != nil {
		return nil, err
	}
	names := slices.Sorted(maps.Keys(b.names))
	if names == nil {
		names = []AttributeName{}
	}
	b.consume()
	return &AttributeSet{names: names}, nil
}

// AttributeSet is the finalized, immutable set of attribute names a credential
// contains. Names are unique and enumerated in ascending byte-wise
// lexicographic order, so two sets built from the same names in any order
// enumerate, serialize and digest identically.
//
// Concurrent reads are safe. Release must not race with readers.
type AttributeSet struct {
	names    []AttributeName
	released bool
}

// Len returns the number of attributes.
func (s *AttributeSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Contains reports whether name is a member of the set.
func (s *AttributeSet) Contains(name AttributeName) bool {
	if s == nil {
		return false
	}
	_, ok := slices.BinarySearch(s.names, name)
	return ok
}

// Names returns a copy of the attribute names in canonical order.
func (s *AttributeSet) Names() []AttributeName {
	if s == nil || s.released {
		return nil
	}
	return slices.Clone(s.names)
}

// All iterates the attribute names in canonical order.
func (s *AttributeSet) All() iter.Seq[AttributeName] {
	return func(yield func(AttributeName) bool) {
		if s == nil {
			return
		}
		for _, name := range s.names {
			if !yield(name) {
				return
			}
		}
	}
}

// Digest returns SHA-256 over the canonical names, each prefixed with its
// big-endian uint32 length. It is the order-stable input for commitments over
// the set.
func (s *AttributeSet) Digest() ([sha256.Size]byte, error) {
	if s == nil || s.released {
		return [sha256.Size]byte{}, ErrReleased
	}
	h := sha256.New()
	var n [4]byte
	for _, name := range s.names {
		binary.BigEndian.PutUint32(n[:], uint32(len(name)))
		h.Write(n[:])
		h.Write([]byte(name))
	}
	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))
	return out, nil
}

// String returns a summary such as "AttributeSet with 2 attributes: [age name]".
func (s *AttributeSet) String() string {
	if s == nil || s.released {
		return "AttributeSet (released)"
	}
	return fmt.Sprintf("AttributeSet with %d attributes: [%s]", len(s.names), strings.Join(s.names, " "))
}

// MarshalJSON encodes the set as a JSON array in canonical order. A set
// holding a name that is not valid UTF-8 cannot be encoded and yields
// ErrInvalidArgument.
func (s *AttributeSet) MarshalJSON() ([]byte, error) {
	if s == nil || s.released {
		return nil, ErrReleased
	}
	for _, name := range s.names {
		if err := encodableName(name); err != nil {
			return nil, err
		}
	}
	return json.Marshal(s.names)
}

// Released reports whether Release has been called.
func (s *AttributeSet) Released() bool {
	return s == nil || s.released
}

// Release ends the lifetime of the set. It is terminal: a second call
// returns ErrReleased and readers observe an empty set.
func (s *AttributeSet) Release() error {
	if s == nil || s.released {
		return ErrReleased
	}
	s.names = nil
	s.released = true
	return nil
}

// ParseAttributeSetJSON decodes a JSON array of names and builds the set
// through AttributeSetBuilder, so every builder rule applies.
func ParseAttributeSetJSON(data []byte) (*AttributeSet, error) {
	var names []AttributeName
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("decode attribute set: %w", err)
	}
	return BuildAttributeSet(names...)
}

// BuildAttributeSet runs the builder pipeline over names.
func BuildAttributeSet(names ...AttributeName) (*AttributeSet, error) {
	b, err := NewAttributeSetBuilder()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if b, err = b.AddAttr(name); err != nil {
			return nil, err
		}
	}
	return b.Finalize()
}
