package anoncreds

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct{ name, value string }

func buildValues(t *testing.T, pairs ...pair) *AttributeValueMap {
	t.Helper()
	b, err := NewAttributeValueMapBuilder()
	require.NoError(t, err)
	for _, p := range pairs {
		b, err = b.AddAttrValue(p.name, p.value)
		require.NoError(t, err)
	}
	m, err := b.Finalize()
	require.NoError(t, err)
	t.Cleanup(func() {
		if !m.Released() {
			_ = m.Release()
		}
	})
	return m
}

func TestAttributeValueMapLookup(t *testing.T) {
	m := buildValues(t, pair{"sex", "1"}, pair{"age", "25"})

	assert.Equal(t, 2, m.Len())
	v, ok := m.Get("sex")
	require.True(t, ok)
	assert.Equal(t, DecimalValue("1"), v)
	v, ok = m.Get("age")
	require.True(t, ok)
	assert.Equal(t, DecimalValue("25"), v)

	_, ok = m.Get("name")
	assert.False(t, ok)
}

func TestAttributeValueMapInsertionOrder(t *testing.T) {
	m := buildValues(t, pair{"sex", "1"}, pair{"name", "1139481716457488690172217916278103335"}, pair{"age", "25"})
	assert.Equal(t, []string{"sex", "name", "age"}, m.Names())

	var names []string
	var values []DecimalValue
	for name, v := range m.All() {
		names = append(names, name)
		values = append(values, v)
	}
	assert.Equal(t, []string{"sex", "name", "age"}, names)
	assert.Equal(t, []DecimalValue{"1", "1139481716457488690172217916278103335", "25"}, values)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"sex":"1","name":"1139481716457488690172217916278103335","age":"25"}`, string(data))
}

func TestAttributeValueMapBuilderErrors(t *testing.T) {
	tests := []struct {
		name    string
		attr    string
		decimal string
		want    error
	}{
		{"letters in decimal", "age", "12a3", ErrInvalidNumericFormat},
		{"empty decimal", "age", "", ErrInvalidNumericFormat},
		{"negative", "age", "-1", ErrInvalidNumericFormat},
		{"plus sign", "age", "+1", ErrInvalidNumericFormat},
		{"leading space", "age", " 1", ErrInvalidNumericFormat},
		{"trailing newline", "age", "1\n", ErrInvalidNumericFormat},
		{"fraction", "age", "1.5", ErrInvalidNumericFormat},
		{"empty name", "", "1", ErrInvalidArgument},
		{"empty name wins over bad decimal", "", "x", ErrInvalidArgument},
		{"duplicate", "sex", "2", ErrDuplicateAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewAttributeValueMapBuilder()
			require.NoError(t, err)
			b, err = b.AddAttrValue("sex", "1")
			require.NoError(t, err)

			next, err := b.AddAttrValue(tt.attr, tt.decimal)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, next)
			assert.True(t, IsInputError(err))

			// The failed call left b as it was.
			assert.Equal(t, 1, b.Len())
			v, ok := b.Get("sex")
			require.True(t, ok)
			assert.Equal(t, DecimalValue("1"), v)
		})
	}
}

func TestAttributeValueMapBuilderAcceptsZero(t *testing.T) {
	m := buildValues(t, pair{"age", "0"}, pair{"padded", "007"})
	v, ok := m.Get("age")
	require.True(t, ok)
	assert.Equal(t, DecimalValue("0"), v)

	n, ok := m.BigInt("padded")
	require.True(t, ok)
	assert.Equal(t, int64(7), n.Int64())
}

func TestAttributeValueMapBuilderIsMoveOnly(t *testing.T) {
	b0, err := NewAttributeValueMapBuilder()
	require.NoError(t, err)
	b1, err := b0.AddAttrValue("age", "25")
	require.NoError(t, err)

	_, err = b0.AddAttrValue("sex", "1")
	require.ErrorIs(t, err, ErrBuilderConsumed)
	_, err = b0.Finalize()
	require.ErrorIs(t, err, ErrBuilderConsumed)

	m, err := b1.Finalize()
	require.NoError(t, err)
	defer m.Release()

	_, err = b1.AddAttrValue("sex", "1")
	require.ErrorIs(t, err, ErrBuilderConsumed)
	assert.Equal(t, 1, m.Len())
}

func TestAttributeValueMapEmpty(t *testing.T) {
	m := buildValues(t)
	assert.Equal(t, 0, m.Len())
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestAttributeValueMapBigIntIsCopy(t *testing.T) {
	m := buildValues(t, pair{"age", "25"})
	n, ok := m.BigInt("age")
	require.True(t, ok)
	n.Add(n, big.NewInt(1))

	again, _ := m.BigInt("age")
	assert.Equal(t, int64(25), again.Int64())
}

func TestAttributeValueMapReleaseZeroizes(t *testing.T) {
	b, err := NewAttributeValueMapBuilder()
	require.NoError(t, err)
	b, err = b.AddAttrValue("age", "25")
	require.NoError(t, err)
	m, err := b.Finalize()
	require.NoError(t, err)

	stored := m.values["age"]
	require.NoError(t, m.Release())
	assert.Equal(t, []byte{0, 0}, stored)

	assert.True(t, m.Released())
	_, ok := m.Get("age")
	assert.False(t, ok)
	assert.Nil(t, m.Names())
	require.ErrorIs(t, m.Release(), ErrReleased)
	_, err = m.MarshalJSON()
	require.ErrorIs(t, err, ErrReleased)
}

func TestAttributeValueMapCheckCovers(t *testing.T) {
	set := buildSet(t, "sex", "name", "age")

	full := buildValues(t, pair{"age", "25"}, pair{"sex", "1"}, pair{"name", "42"})
	require.NoError(t, full.CheckCovers(set))

	missing := buildValues(t, pair{"age", "25"}, pair{"sex", "1"})
	require.ErrorIs(t, missing.CheckCovers(set), ErrAttributeMismatch)

	extra := buildValues(t, pair{"age", "25"}, pair{"sex", "1"}, pair{"name", "42"}, pair{"height", "180"})
	err := extra.CheckCovers(set)
	require.ErrorIs(t, err, ErrAttributeMismatch)
	assert.Contains(t, err.Error(), "height")

	swapped := buildValues(t, pair{"age", "25"}, pair{"sex", "1"}, pair{"Name", "42"})
	require.ErrorIs(t, swapped.CheckCovers(set), ErrAttributeMismatch)
}

func TestParseAttributeValueMapJSON(t *testing.T) {
	m, err := ParseAttributeValueMapJSON([]byte(`{"sex":"1","age":25,"name":"1139481716457488690172217916278103335"}`))
	require.NoError(t, err)
	defer m.Release()

	assert.Equal(t, []string{"sex", "age", "name"}, m.Names())
	v, _ := m.Get("age")
	assert.Equal(t, DecimalValue("25"), v)

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"duplicate key", `{"age":"1","age":"2"}`, ErrDuplicateAttribute},
		{"negative number", `{"age":-1}`, ErrInvalidNumericFormat},
		{"float", `{"age":1.5}`, ErrInvalidNumericFormat},
		{"bool", `{"age":true}`, ErrInvalidNumericFormat},
		{"letters", `{"age":"12a3"}`, ErrInvalidNumericFormat},
		{"empty key", `{"":"1"}`, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAttributeValueMapJSON([]byte(tt.in))
			require.ErrorIs(t, err, tt.want)
		})
	}

	for _, bad := range []string{`["age"]`, `{"age":"1"} {}`, `{"age":`} {
		_, err := ParseAttributeValueMapJSON([]byte(bad))
		require.Error(t, err, bad)
	}
}

func TestAttributeValueMapMarshalJSONRejectsInvalidUTF8(t *testing.T) {
	m := buildValues(t, pair{"\xff", "1"}, pair{"\xfe", "2"})
	_, err := m.MarshalJSON()
	require.ErrorIs(t, err, ErrInvalidArgument)

	ok := buildValues(t, pair{"größe", "180"})
	out, err := ok.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"größe":"180"}`, string(out))
}

func TestWalkAttributeValuesJSON(t *testing.T) {
	var got []pair
	err := WalkAttributeValuesJSON([]byte(`{"sex":"1","age":25,"name":"x"}`), func(name, decimal string) error {
		if name == "name" {
			return ErrDuplicateAttribute
		}
		got = append(got, pair{name, decimal})
		return nil
	})
	require.ErrorIs(t, err, ErrDuplicateAttribute)
	assert.Equal(t, []pair{{"sex", "1"}, {"age", "25"}}, got)

	err = WalkAttributeValuesJSON([]byte(`{"age":null}`), func(string, string) error {
		t.Fatal("add must not be called")
		return nil
	})
	require.ErrorIs(t, err, ErrInvalidNumericFormat)
}
