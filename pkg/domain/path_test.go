package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPropPath(t *testing.T) {
	path, err := NewPropPath("a", float64(0), "b", 2)
	require.NoError(t, err)

	assert.Equal(t, PropPath{Key("a"), Index(0), Key("b"), Index(2)}, path)
	assert.Equal(t, "a[0].b[2]", path.String())
}

func TestNewPropPath_Invalid(t *testing.T) {
	_, err := NewPropPath("a", 1.5)
	assert.Error(t, err)

	_, err = NewPropPath(true)
	assert.Error(t, err)
}

func TestSegment_Conversions(t *testing.T) {
	assert.Equal(t, "3", Index(3).Key())

	i, ok := Key("7").Index()
	assert.True(t, ok)
	assert.Equal(t, 7, i)

	_, ok = Key("items").Index()
	assert.False(t, ok)
}

func TestPropPathOf(t *testing.T) {
	prop := ComponentProp{PropPath: PropPath{Key("title")}}
	path, ok, err := PropPathOf(prop)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "title", path.String())

	raw := Unknown{Type: "custom-prop", Attrs: map[string]any{KeyPropPath: []any{"items", float64(1)}}}
	path, ok, err = PropPathOf(raw)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "items[1]", path.String())

	_, ok, err = PropPathOf(Unknown{Type: "custom", Attrs: map[string]any{}})
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = PropPathOf(Paragraph{})
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = PropPathOf(Text{Text: "x"})
	assert.False(t, ok)
}

func TestPropPathOf_MalformedUnknownPath(t *testing.T) {
	for name, attr := range map[string]any{
		"non segment element": []any{"a", true},
		"fractional index":    []any{"a", 1.5},
		"scalar":              1.5,
	} {
		t.Run(name, func(t *testing.T) {
			n := Unknown{Type: "custom-prop", Attrs: map[string]any{KeyPropPath: attr}}
			_, ok, err := PropPathOf(n)
			assert.True(t, ok)
			assert.Error(t, err)
		})
	}
}

func TestParsePropPath(t *testing.T) {
	tests := []struct {
		in   string
		want PropPath
	}{
		{"content", PropPath{Key("content")}},
		{"items[0].body", PropPath{Key("items"), Index(0), Key("body")}},
		{"grid[1][2]", PropPath{Key("grid"), Index(1), Index(2)}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePropPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestParsePropPath_Invalid(t *testing.T) {
	for _, in := range []string{"", ".a", "a.", "a..b", "a.[0]", "a[", "a[x]", "a[-1]"} {
		_, err := ParsePropPath(in)
		assert.Error(t, err, in)
	}
}
