package accessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldpath/store"
)

func document() map[string]any {
	return map[string]any{
		"x": map[string]any{
			"y": []any{10, 20},
		},
		"rows": []any{
			map[string]any{"cells": 1},
			map[string]any{"cells": 2},
		},
		"grid": []any{
			[]any{"a", "b"},
			[]any{"c", "d"},
		},
		"name": "doc",
	}
}

func TestMapping_Get(t *testing.T) {
	t.Parallel()

	doc := document()

	tests := []struct {
		path     string
		expected any
	}{
		{"x.y[0]", 10},
		{"x.y[1]", 20},
		{"rows[1].cells", 2},
		{"grid[1][0]", "c"},
		{"name", "doc"},
		{"x.y", []any{10, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := Mapping{}.Get(doc, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	got, err := Mapping{}.Get(doc, "")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestMapping_GetErrors(t *testing.T) {
	t.Parallel()

	doc := document()

	tests := []struct {
		path string
		err  error
	}{
		{"x.y[5]", ErrIndexOutOfRange},
		{"x.z", ErrKeyNotFound},
		{"missing", ErrKeyNotFound},
		{"name[0]", ErrNotIndexable},
		{"x.y[0].z", ErrNotMapping},
		{"x.y[a]", ErrInvalidPathSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			_, err := Mapping{}.Get(doc, tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestMapping_Set(t *testing.T) {
	t.Parallel()

	t.Run("nested key", func(t *testing.T) {
		t.Parallel()

		doc := document()
		require.NoError(t, Mapping{}.Set(doc, "x.y", "replaced"))
		assert.Equal(t, "replaced", doc["x"].(map[string]any)["y"])
	})

	t.Run("new key", func(t *testing.T) {
		t.Parallel()

		doc := document()
		require.NoError(t, Mapping{}.Set(doc, "x.added", true))

		got, err := Mapping{}.Get(doc, "x.added")
		require.NoError(t, err)
		assert.Equal(t, true, got)
	})

	t.Run("indexed leaf", func(t *testing.T) {
		t.Parallel()

		doc := document()
		require.NoError(t, Mapping{}.Set(doc, "x.y[1]", 99))
		assert.Equal(t, []any{10, 99}, doc["x"].(map[string]any)["y"])

		require.NoError(t, Mapping{}.Set(doc, "grid[0][1]", "B"))

		got, err := Mapping{}.Get(doc, "grid[0][1]")
		require.NoError(t, err)
		assert.Equal(t, "B", got)
	})

	t.Run("bracketed first segment", func(t *testing.T) {
		t.Parallel()

		doc := document()
		require.NoError(t, Mapping{}.Set(doc, "rows[1].cells", 9))

		got, err := Mapping{}.Get(doc, "rows[1].cells")
		require.NoError(t, err)
		assert.Equal(t, 9, got)

		got, err = Mapping{}.Get(doc, "rows[0].cells")
		require.NoError(t, err)
		assert.Equal(t, 1, got)
	})

	t.Run("typed map", func(t *testing.T) {
		t.Parallel()

		counts := map[string]int{"a": 1}
		require.NoError(t, Mapping{}.Set(counts, "a", int64(5)))
		assert.Equal(t, 5, counts["a"])

		err := Mapping{}.Set(counts, "a", "five")
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("pointer to map", func(t *testing.T) {
		t.Parallel()

		doc := document()
		require.NoError(t, Mapping{}.Set(&doc, "name", "renamed"))
		assert.Equal(t, "renamed", doc["name"])
	})
}

// Intermediate bracketed segments take their key and indices from the whole
// path rather than from the segment itself.
func TestMapping_SetFullPathIndices(t *testing.T) {
	t.Parallel()

	t.Run("bracket after first segment", func(t *testing.T) {
		t.Parallel()

		doc := map[string]any{
			"x": map[string]any{
				"y": []any{map[string]any{"z": 1}},
			},
		}

		got, err := Mapping{}.Get(doc, "x.y[0].z")
		require.NoError(t, err)
		assert.Equal(t, 1, got)

		// the key looked up is "x.y", the path text before the first '['
		err = Mapping{}.Set(doc, "x.y[0].z", 2)
		require.ErrorIs(t, err, ErrKeyNotFound)
		assert.Contains(t, err.Error(), `"x.y"`)
	})

	t.Run("indices of later segments apply early", func(t *testing.T) {
		t.Parallel()

		doc := map[string]any{
			"a": []any{
				map[string]any{
					"a": []any{"unused", map[string]any{"b": []any{0, 0}}},
				},
			},
		}

		// walk: a -> [0] -> a -> [1], then b[1] on the result
		require.NoError(t, Mapping{}.Set(doc, "a[0].b[1]", 7))

		inner := doc["a"].([]any)[0].(map[string]any)["a"].([]any)[1].(map[string]any)
		assert.Equal(t, []any{0, 7}, inner["b"])

		_, err := Mapping{}.Get(doc, "a[0].b[1]")
		assert.ErrorIs(t, err, ErrKeyNotFound, "get resolves segment by segment")
	})
}

func TestMapping_SetErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path  string
		value any
		err   error
	}{
		{"", 1, ErrNotSettable},
		{"missing.key", 1, ErrKeyNotFound},
		{"x.y[2]", 1, ErrIndexOutOfRange},
		{"name.sub", 1, ErrNotMapping},
		{"x.y[z]", 1, ErrInvalidPathSyntax},
		{"rows[5].cells", 1, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			doc := document()
			err := Mapping{}.Set(doc, tt.path, tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, document(), doc)
		})
	}

	var nilMap map[string]any
	assert.ErrorIs(t, Mapping{}.Set(nilMap, "a", 1), ErrNotSettable)
}

func TestMapping_SetNumericRange(t *testing.T) {
	t.Parallel()

	levels := map[string]int8{"low": 1}

	require.ErrorIs(t, Mapping{}.Set(levels, "low", 300), ErrTypeMismatch)
	require.ErrorIs(t, Mapping{}.Set(levels, "high", -200), ErrTypeMismatch)
	assert.Equal(t, map[string]int8{"low": 1}, levels)

	require.NoError(t, Mapping{}.Set(levels, "high", 127))
	assert.Equal(t, map[string]int8{"low": 1, "high": 127}, levels)

	sizes := map[string][]uint16{"s": {1, 2}}
	require.ErrorIs(t, Mapping{}.Set(sizes, "s[1]", 70000), ErrTypeMismatch)
	assert.Equal(t, []uint16{1, 2}, sizes["s"])
}

func TestFor(t *testing.T) {
	t.Parallel()

	assert.IsType(t, Mapping{}, For(map[string]any{}))
	assert.IsType(t, Mapping{}, For(&map[string]int{}))
	assert.IsType(t, &Attr{}, For(store.SampleOrder()))
	assert.IsType(t, &Attr{}, For(42))
	assert.IsType(t, &Attr{}, For(map[int]string{}))
}
