package anoncreds

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSet(t *testing.T, names ...string) *AttributeSet {
	t.Helper()
	set, err := BuildAttributeSet(names...)
	require.NoError(t, err)
	t.Cleanup(func() {
		if !set.Released() {
			_ = set.Release()
		}
	})
	return set
}

func TestAttributeSetCanonicalOrder(t *testing.T) {
	set := buildSet(t, "sex", "name", "age")
	assert.Equal(t, []string{"age", "name", "sex"}, set.Names())
	assert.Equal(t, 3, set.Len())
}

func TestAttributeSetOrderIndependentOfInsertion(t *testing.T) {
	names := []string{"sex", "name", "age", "height", "Zip", "zip", "a", "ab", "b", "é"}
	want := slices.Clone(names)
	slices.Sort(want)

	reference := buildSet(t, names...)
	refDigest, err := reference.Digest()
	require.NoError(t, err)

	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		shuffled := slices.Clone(names)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		set := buildSet(t, shuffled...)
		require.Equal(t, want, set.Names(), "insertion order %v", shuffled)

		digest, err := set.Digest()
		require.NoError(t, err)
		require.Equal(t, refDigest, digest)
	}
}

func TestAttributeSetEmpty(t *testing.T) {
	b, err := NewAttributeSetBuilder()
	require.NoError(t, err)

	set, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Names())

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
	require.NoError(t, set.Release())
}

func TestAttributeSetBuilderDuplicateLeavesStateUnchanged(t *testing.T) {
	b, err := NewAttributeSetBuilder()
	require.NoError(t, err)
	b, err = b.AddAttr("sex")
	require.NoError(t, err)
	b, err = b.AddAttr("age")
	require.NoError(t, err)

	next, err := b.AddAttr("sex")
	require.ErrorIs(t, err, ErrDuplicateAttribute)
	assert.Nil(t, next)

	// The builder from before the failing call is still live and unchanged.
	assert.Equal(t, 2, b.Len())
	assert.True(t, b.Contains("sex"))
	assert.True(t, b.Contains("age"))

	set, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "sex"}, set.Names())
}

func TestAttributeSetBuilderNamesAreCaseSensitive(t *testing.T) {
	set := buildSet(t, "Age", "age", " age")
	assert.Equal(t, []string{" age", "Age", "age"}, set.Names())
	assert.True(t, set.Contains("Age"))
	assert.False(t, set.Contains("AGE"))
}

func TestAttributeSetBuilderRejectsEmptyName(t *testing.T) {
	b, err := NewAttributeSetBuilder()
	require.NoError(t, err)

	_, err = b.AddAttr("")
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.True(t, IsInputError(err))
	assert.Equal(t, 0, b.Len())
}

func TestAttributeSetBuilderIsMoveOnly(t *testing.T) {
	b0, err := NewAttributeSetBuilder()
	require.NoError(t, err)

	b1, err := b0.AddAttr("name")
	require.NoError(t, err)

	_, err = b0.AddAttr("age")
	require.ErrorIs(t, err, ErrBuilderConsumed)
	_, err = b0.Finalize()
	require.ErrorIs(t, err, ErrBuilderConsumed)
	assert.Equal(t, 0, b0.Len())

	set, err := b1.Finalize()
	require.NoError(t, err)
	defer set.Release()

	_, err = b1.AddAttr("age")
	require.ErrorIs(t, err, ErrBuilderConsumed)
	_, err = b1.Finalize()
	require.ErrorIs(t, err, ErrBuilderConsumed)
	assert.Equal(t, []string{"name"}, set.Names())
}

func TestAttributeSetBuilderNil(t *testing.T) {
	var b *AttributeSetBuilder
	_, err := b.AddAttr("name")
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = b.Finalize()
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAttributeSetReleaseIsTerminal(t *testing.T) {
	set, err := BuildAttributeSet("name", "age")
	require.NoError(t, err)

	require.NoError(t, set.Release())
	assert.True(t, set.Released())
	assert.Equal(t, 0, set.Len())
	assert.Nil(t, set.Names())
	assert.False(t, set.Contains("name"))

	require.ErrorIs(t, set.Release(), ErrReleased)
	_, err = set.Digest()
	require.ErrorIs(t, err, ErrReleased)
	_, err = set.MarshalJSON()
	require.ErrorIs(t, err, ErrReleased)
}

func TestAttributeSetNamesIsDefensiveCopy(t *testing.T) {
	set := buildSet(t, "b", "a")
	names := set.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, set.Names())
}

func TestAttributeSetAll(t *testing.T) {
	set := buildSet(t, "c", "a", "b")

	var got []string
	for name := range set.All() {
		got = append(got, name)
		if name == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestAttributeSetString(t *testing.T) {
	set := buildSet(t, "sex", "age")
	assert.Equal(t, "AttributeSet with 2 attributes: [age sex]", set.String())
}

func TestAttributeSetDigestDistinguishesBoundaries(t *testing.T) {
	// Length prefixes keep {"ab","c"} and {"a","bc"} apart.
	d1, err := buildSet(t, "ab", "c").Digest()
	require.NoError(t, err)
	d2, err := buildSet(t, "a", "bc").Digest()
	require.NoError(t, err)
	assert.NotEqual(t, d1, d2)
}

func TestParseAttributeSetJSON(t *testing.T) {
	set, err := ParseAttributeSetJSON([]byte(`["sex","name","age"]`))
	require.NoError(t, err)
	defer set.Release()

	out, err := json.Marshal(set)
	require.NoError(t, err)
	assert.Equal(t, `["age","name","sex"]`, string(out))

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"duplicate", `["age","age"]`, ErrDuplicateAttribute},
		{"empty name", `["age",""]`, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAttributeSetJSON([]byte(tt.in))
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err = ParseAttributeSetJSON([]byte(`{"age":1}`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDuplicateAttribute))
}

func TestAttributeSetMarshalJSONRejectsInvalidUTF8(t *testing.T) {
	// Both names would encode as "�".
	set := buildSet(t, "\xff", "\xfe")
	assert.Equal(t, 2, set.Len())

	_, err := set.MarshalJSON()
	require.ErrorIs(t, err, ErrInvalidArgument)

	valid := buildSet(t, "größe", "age")
	out, err := valid.MarshalJSON()
	require.NoError(t, err)
	back, err := ParseAttributeSetJSON(out)
	require.NoError(t, err)
	defer back.Release()
	assert.Equal(t, valid.Names(), back.Names())
}
