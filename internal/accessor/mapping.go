package accessor

import (
	"fmt"
	"reflect"
	"strings"

	"fieldpath/internal/members"
	"fieldpath/internal/pathexpr"
)

// Mapping resolves paths against nested string-keyed maps and sequences, such
// as documents decoded from YAML or JSON into map[string]any.
type Mapping struct{}

var _ PathAccessor = Mapping{}

// Get returns the value at path below root.
func (Mapping) Get(root any, path string) (any, error) {
	p, err := pathexpr.Parse(path)
	if err != nil {
		return nil, wrap("get", path, err)
	}

	v := reflect.ValueOf(root)

	for _, seg := range p.Segments {
		v, err = lookupKey(v, seg.Name)
		if err != nil {
			return nil, wrap("get", path, atSegment(seg.String(), err))
		}

		for _, idx := range seg.Indices {
			v, err = index(v, idx)
			if err != nil {
				return nil, wrap("get", path, atSegment(seg.String(), err))
			}
		}
	}

	return valueOf(v), nil
}

// Set assigns value at path below root.
//
// Intermediate segments that carry bracket indices are not resolved on their
// own: the key is the text of the whole path before its first '[', and every
// bracket index of the whole path is applied in turn, each time looking that
// key up again on the current value. For "rows[1].cells" this is the expected
// rows -> [1] walk; with several bracketed segments, or a bracket that is not
// in the first segment, the walk differs from Get. Existing callers depend on
// this walk.
//
// The last segment is resolved like Get: its key is looked up, all indices
// but the last are applied, and value is stored at the final index. Without
// indices, value is stored under the key, adding it when missing.
func (Mapping) Set(root any, path string, value any) error {
	p, err := pathexpr.Parse(path)
	if err != nil {
		return wrap("set", path, err)
	}

	if p.IsRoot() {
		return wrap("set", path, fmt.Errorf("%w: cannot replace a mapping root", ErrNotSettable))
	}

	fullKey, _, _ := strings.Cut(path, "[")
	fullIndices := pathexpr.Indices(path)

	cur := reflect.ValueOf(root)
	parents, leaf := p.Segments[:len(p.Segments)-1], p.Segments[len(p.Segments)-1]

	for _, seg := range parents {
		if !seg.HasIndices() {
			cur, err = lookupKey(cur, seg.Name)
			if err != nil {
				return wrap("set", path, atSegment(seg.String(), err))
			}

			continue
		}

		for _, idx := range fullIndices {
			next, err := lookupKey(cur, fullKey)
			if err != nil {
				return wrap("set", path, atSegment(seg.String(), err))
			}

			cur, err = index(next, idx)
			if err != nil {
				return wrap("set", path, atSegment(seg.String(), err))
			}
		}
	}

	return wrap("set", path, atSegment(leaf.String(), setLeaf(cur, leaf, value)))
}

func setLeaf(cur reflect.Value, leaf pathexpr.Segment, value any) error {
	if !leaf.HasIndices() {
		return setKey(cur, leaf.Name, value)
	}

	cur, err := lookupKey(cur, leaf.Name)
	if err != nil {
		return err
	}

	last := len(leaf.Indices) - 1
	for _, idx := range leaf.Indices[:last] {
		cur, err = index(cur, idx)
		if err != nil {
			return err
		}
	}

	return setIndex(cur, leaf.Indices[last], value)
}

func mappingOf(v reflect.Value) (reflect.Value, error) {
	m := members.Indirect(v)
	if members.Classify(m) != members.KindMapping {
		return reflect.Value{}, fmt.Errorf("%w: got %s", ErrNotMapping, describe(v))
	}

	return m, nil
}

func lookupKey(v reflect.Value, key string) (reflect.Value, error) {
	m, err := mappingOf(v)
	if err != nil {
		return reflect.Value{}, err
	}

	ev := m.MapIndex(reflect.ValueOf(key).Convert(m.Type().Key()))
	if !ev.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}

	return ev, nil
}

func setKey(v reflect.Value, key string, value any) error {
	m, err := mappingOf(v)
	if err != nil {
		return err
	}

	if m.IsNil() {
		return fmt.Errorf("%w: mapping is nil", ErrNotSettable)
	}

	nv, err := convert(value, m.Type().Elem())
	if err != nil {
		return err
	}

	m.SetMapIndex(reflect.ValueOf(key).Convert(m.Type().Key()), nv)

	return nil
}
