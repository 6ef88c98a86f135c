package anoncreds

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"math/big"
	"runtime"
	"slices"
)

// AttributeValueMapBuilder accumulates the encoded values of a credential's
// attributes. It follows the same move-only discipline as
// AttributeSetBuilder: a successful AddAttrValue or Finalize consumes the
// receiver.
type AttributeValueMapBuilder struct {
	values   map[AttributeName][]byte
	order    []AttributeName
	consumed bool
}

// NewAttributeValueMapBuilder returns an empty builder.
func NewAttributeValueMapBuilder() (*AttributeValueMapBuilder, error) {
	return &AttributeValueMapBuilder{values: make(map[AttributeName][]byte)}, nil
}

func (b *AttributeValueMapBuilder) live() error {
	if b == nil {
		return fmt.Errorf("%w: nil attribute value map builder", ErrInvalidArgument)
	}
	if b.consumed {
		return ErrBuilderConsumed
	}
	return nil
}

func (b *AttributeValueMapBuilder) consume() {
	b.values = nil
	b.order = nil
	b.consumed = true
}

// Len returns the number of values accumulated so far.
func (b *AttributeValueMapBuilder) Len() int {
	if b.live() != nil {
		return 0
	}
	return len(b.order)
}

// Get returns the value accumulated for name.
func (b *AttributeValueMapBuilder) Get(name AttributeName) (DecimalValue, bool) {
	if b.live() != nil {
		return "", false
	}
	v, ok := b.values[name]
	if !ok {
		return "", false
	}
	return DecimalValue(v), true
}

// AddAttrValue returns a builder holding the accumulated pairs plus
// (name, decimal) and consumes b. Inputs are checked in order: the name must be
// non-empty (ErrInvalidArgument), decimal must be well formed
// (ErrInvalidNumericFormat) and name must be new (ErrDuplicateAttribute). A
// failed call leaves b untouched and still usable.
func (b *AttributeValueMapBuilder) AddAttrValue(name AttributeName, decimal string) (*AttributeValueMapBuilder, error) {
	if err := b.live(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	dec, err := ParseDecimal(decimal)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", name, err)
	}
	if _, ok := b.values[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateAttribute, name)
	}

	next := &AttributeValueMapBuilder{values: b.values, order: append(b.order, name)}
	next.values[name] = []byte(dec)
	b.consume()
	return next, nil
}

// Finalize consumes b and returns the immutable value map. Iteration order is
// the insertion order.
func (b *AttributeValueMapBuilder) Finalize() (*AttributeValueMap, error) {
	if err := b.live(); err != nil {
		return nil, err
	}
	m := &AttributeValueMap{values: b.values, order: slices.Clip(b.order)}
	if m.order == nil {
		m.order = []AttributeName{}
	}
	b.consume()
	runtime.SetFinalizer(m, (*AttributeValueMap).zeroize)
	return m, nil
}

// AttributeValueMap is the finalized, immutable mapping from attribute names to
// their encoded decimal values. Lookup is the primary access pattern; iteration
// follows insertion order so logs and tests are reproducible.
//
// Concurrent reads are safe. Release zeroizes the stored digits and must not
// race with readers.
type AttributeValueMap struct {
	values   map[AttributeName][]byte
	order    []AttributeName
	released bool
}

// Len returns the number of attributes.
func (m *AttributeValueMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Get returns the value bound to name.
func (m *AttributeValueMap) Get(name AttributeName) (DecimalValue, bool) {
	if m == nil || m.released {
		return "", false
	}
	v, ok := m.values[name]
	if !ok {
		return "", false
	}
	return DecimalValue(v), true
}

// BigInt returns a copy of the value bound to name as a big.Int.
func (m *AttributeValueMap) BigInt(name AttributeName) (*big.Int, bool) {
	v, ok := m.Get(name)
	if !ok {
		return nil, false
	}
	return v.BigInt(), true
}

// Names returns a copy of the attribute names in insertion order.
func (m *AttributeValueMap) Names() []AttributeName {
	if m == nil || m.released {
		return nil
	}
	return slices.Clone(m.order)
}

// All iterates the pairs in insertion order.
func (m *AttributeValueMap) All() iter.Seq2[AttributeName, DecimalValue] {
	return func(yield func(AttributeName, DecimalValue) bool) {
		if m == nil || m.released {
			return
		}
		for _, name := range m.order {
			if !yield(name, DecimalValue(m.values[name])) {
				return
			}
		}
	}
}

// CheckCovers verifies that m binds a value to every attribute of set and to
// nothing else. Signing logic calls it before consuming the pair.
func (m *AttributeValueMap) CheckCovers(set *AttributeSet) error {
	if m == nil || m.released || set == nil || set.released {
		return ErrReleased
	}
	for name := range set.All() {
		if _, ok := m.values[name]; !ok {
			return fmt.Errorf("%w: missing value for %q", ErrAttributeMismatch, name)
		}
	}
	if len(m.values) != set.Len() {
		for _, name := range m.order {
			if !set.Contains(name) {
				return fmt.Errorf("%w: unexpected attribute %q", ErrAttributeMismatch, name)
			}
		}
	}
	return nil
}

// MarshalJSON encodes the map as a JSON object of name to decimal string, in
// insertion order. Like AttributeSet.MarshalJSON it refuses names that are
// not valid UTF-8.
func (m *AttributeValueMap) MarshalJSON() ([]byte, error) {
	if m == nil || m.released {
		return nil, ErrReleased
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.order {
		if err := encodableName(name); err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteByte('"')
		buf.Write(m.values[name])
		buf.WriteByte('"')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Released reports whether Release has been called.
func (m *AttributeValueMap) Released() bool {
	return m == nil || m.released
}

// Release zeroizes the stored values and ends the lifetime of the map. It is
// terminal: a second call returns ErrReleased.
func (m *AttributeValueMap) Release() error {
	if m == nil || m.released {
		return ErrReleased
	}
	m.zeroize()
	runtime.SetFinalizer(m, nil)
	return nil
}

func (m *AttributeValueMap) zeroize() {
	for _, v := range m.values {
		for i := range v {
			v[i] = 0
		}
		runtime.KeepAlive(v)
	}
	m.values = nil
	m.order = nil
	m.released = true
}

// ParseAttributeValueMapJSON decodes a JSON object of name to decimal and
// builds the map through AttributeValueMapBuilder, keeping document order.
// Values may be JSON strings or integer literals; anything that is not a
// plain digit string is rejected with ErrInvalidNumericFormat.
func ParseAttributeValueMapJSON(data []byte) (*AttributeValueMap, error) {
	b, err := NewAttributeValueMapBuilder()
	if err != nil {
		return nil, err
	}
	err = WalkAttributeValuesJSON(data, func(name AttributeName, decimal string) error {
		next, err := b.AddAttrValue(name, decimal)
		if err != nil {
			return err
		}
		b = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b.Finalize()
}

// WalkAttributeValuesJSON decodes a JSON object of name to decimal and calls
// add for each member in document order, stopping at the first error. Integer
// literals are passed on in their textual form. Decimal syntax is left to
// add; only values that are neither strings nor numbers are rejected here.
func WalkAttributeValuesJSON(data []byte, add func(name AttributeName, decimal string) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode attribute values: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode attribute values: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode attribute values: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decode attribute values: expected key, got %v", tok)
		}
		tok, err = dec.Token()
		if err != nil {
			return fmt.Errorf("decode attribute values: %w", err)
		}
		var raw string
		switch v := tok.(type) {
		case string:
			raw = v
		case json.Number:
			raw = v.String()
		default:
			return fmt.Errorf("attribute %q: %w: value must be a string or integer", name, ErrInvalidNumericFormat)
		}
		if err := add(name, raw); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode attribute values: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("decode attribute values: trailing data after object")
	}
	return nil
}
