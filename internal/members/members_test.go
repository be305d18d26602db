package members

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X int
	Y int
}

type tagged struct {
	ID      int    `bind:"id"`
	Label   string `bind:"label,omitempty"`
	Secret  string `bind:"-"`
	Private string `bind:"_private"`
	hidden  int
}

type Base struct {
	ID   int
	Kind string
}

type withEmbedded struct {
	Base
	Name string
	Kind string // shadows Base.Kind
}

type withNilEmbedded struct {
	*Base
	Name string
}

type onlyUnexported struct {
	a int
}

type listed struct {
	values map[string]any
	order  []string
}

func (l *listed) ListFields() []Field {
	out := make([]Field, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, Field{Name: name, Value: l.values[name]})
	}

	return out
}

func (l *listed) SetField(name string, value any) error {
	if _, ok := l.values[name]; !ok {
		return ErrReadOnly
	}

	l.values[name] = value

	return nil
}

func names(ms []Member) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}

	return out
}

func TestClassify(t *testing.T) {
	t.Parallel()

	var nilPoint *point

	tests := []struct {
		name     string
		value    any
		expected Kind
	}{
		{"int", 1, KindLeaf},
		{"string", "x", KindLeaf},
		{"nil", nil, KindLeaf},
		{"nil pointer", nilPoint, KindLeaf},
		{"struct", point{}, KindMembers},
		{"pointer to struct", &point{}, KindMembers},
		{"time", time.Now(), KindLeaf},
		{"empty struct", struct{}{}, KindLeaf},
		{"only unexported", onlyUnexported{}, KindLeaf},
		{"slice", []int{1}, KindSequence},
		{"array", [2]int{}, KindSequence},
		{"string map", map[string]any{}, KindMapping},
		{"int map", map[int]any{}, KindLeaf},
		{"lister", &listed{}, KindMembers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Classify(reflect.ValueOf(tt.value)))
		})
	}
}

func TestIsComposite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"scalar", 3, false},
		{"struct", point{}, true},
		{"empty list", []any{}, false},
		{"scalars", []int{1, 2, 3}, false},
		{"structs", []point{{}, {}}, true},
		{"pointers", []*point{{}}, true},
		{"nested structs", [][]point{{{}}}, true},
		{"scalar then struct", []any{1, point{}}, true},
		{"nil then struct", []any{nil, &point{}}, true},
		// the first nested list decides for the whole value
		{"scalar list then struct", []any{[]any{1}, point{}}, false},
		{"empty list then struct", []any{[]any{}, point{}}, false},
		{"map elements", []map[string]any{{"a": 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsComposite(reflect.ValueOf(tt.value)))
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()

	t.Run("tags", func(t *testing.T) {
		t.Parallel()

		ms := List(reflect.ValueOf(tagged{ID: 1, Label: "l"}), opts)
		assert.Equal(t, []string{"id", "label", "_private"}, names(ms))
		assert.Equal(t, 1, ms[0].Value.Interface())
	})

	t.Run("no tag", func(t *testing.T) {
		t.Parallel()

		ms := List(reflect.ValueOf(tagged{}), Options{})
		assert.Equal(t, []string{"ID", "Label", "Secret", "Private"}, names(ms))
	})

	t.Run("embedded", func(t *testing.T) {
		t.Parallel()

		v := withEmbedded{Base: Base{ID: 7, Kind: "inner"}, Name: "n", Kind: "outer"}
		ms := List(reflect.ValueOf(v), opts)
		assert.Equal(t, []string{"ID", "Name", "Kind"}, names(ms))
		assert.Equal(t, "outer", ms[2].Value.Interface())
	})

	t.Run("tag collision", func(t *testing.T) {
		t.Parallel()

		v := renamed{Titled: Titled{Title: "inner"}, Name: "outer", Code: 3}
		ms := List(reflect.ValueOf(v), opts)
		assert.Equal(t, []string{"name", "code"}, names(ms))
		assert.Equal(t, "outer", ms[0].Value.Interface(), "the shallower field wins")

		got, ok := Lookup(reflect.ValueOf(v), "name", opts)
		require.True(t, ok)
		assert.Equal(t, "outer", got.Interface())
	})

	t.Run("nil embedded pointer", func(t *testing.T) {
		t.Parallel()

		ms := List(reflect.ValueOf(withNilEmbedded{Name: "n"}), opts)
		assert.Equal(t, []string{"Name"}, names(ms))
	})

	t.Run("lister", func(t *testing.T) {
		t.Parallel()

		l := &listed{values: map[string]any{"b": 2, "a": 1}, order: []string{"b", "a"}}
		assert.Equal(t, []string{"b", "a"}, names(List(reflect.ValueOf(l), opts)))
	})

	t.Run("leaf", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, List(reflect.ValueOf(42), opts))
	})
}

func TestLookup(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	p := &tagged{ID: 5, Private: "p"}

	v, ok := Lookup(reflect.ValueOf(p), "id", opts)
	require.True(t, ok)
	assert.Equal(t, 5, v.Interface())
	assert.True(t, v.CanSet(), "fields reached through a pointer are settable")

	v, ok = Lookup(reflect.ValueOf(p), "_private", opts)
	require.True(t, ok)
	assert.Equal(t, "p", v.Interface())

	_, ok = Lookup(reflect.ValueOf(p), "ID", opts)
	assert.False(t, ok, "tagged fields are addressed by tag name")

	_, ok = Lookup(reflect.ValueOf(p), "Secret", opts)
	assert.False(t, ok)

	_, ok = Lookup(reflect.ValueOf(p), "hidden", opts)
	assert.False(t, ok)

	_, ok = Lookup(reflect.ValueOf(3), "x", opts)
	assert.False(t, ok)

	l := &listed{values: map[string]any{"a": 1}, order: []string{"a"}}
	v, ok = Lookup(reflect.ValueOf(l), "a", opts)
	require.True(t, ok)
	assert.Equal(t, 1, v.Interface())

	s, ok := Setter(reflect.ValueOf(l))
	require.True(t, ok)
	require.NoError(t, s.SetField("a", 3))
	assert.Equal(t, 3, l.values["a"])

	s, ok = Setter(reflect.ValueOf(fixedList{}))
	require.True(t, ok)
	assert.ErrorIs(t, s.SetField("a", 1), ErrReadOnly)

	_, ok = Setter(reflect.ValueOf(&onlyUnexported{}))
	assert.False(t, ok)
}

type Titled struct {
	Title string `bind:"name"`
}

type renamed struct {
	Titled
	Name string `bind:"name"`
	Code int    `bind:"code"`
}

type fixedList struct{}

func (fixedList) ListFields() []Field {
	return []Field{{Name: "a", Value: 1}}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "KindMembers", KindMembers.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
