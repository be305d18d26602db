package accessor

import (
	"fmt"
	"reflect"

	"fieldpath/internal/members"
	"fieldpath/internal/pathexpr"
	"fieldpath/internal/suggest"
)

// Attr resolves paths against attribute-bearing values: each segment names a
// member, each bracket group indexes a sequence.
//
// Set needs addressable targets, so roots are normally passed as pointers.
type Attr struct {
	opts members.Options
}

var _ PathAccessor = (*Attr)(nil)

// NewAttr creates an attribute accessor using the given member options.
func NewAttr(opts members.Options) *Attr {
	return &Attr{opts: opts}
}

// Get returns the value at path below root.
func (a *Attr) Get(root any, path string) (any, error) {
	p, err := pathexpr.Parse(path)
	if err != nil {
		return nil, wrap("get", path, err)
	}

	v, err := a.resolve(reflect.ValueOf(root), p.Segments)
	if err != nil {
		return nil, wrap("get", path, err)
	}

	return valueOf(v), nil
}

// Set assigns value at path below root. The parent of the last segment is
// resolved first, so a failing lookup leaves root untouched. When the last
// segment carries indices its member is fetched, all indices but the last
// are applied, and value is stored in the sequence at the final index.
func (a *Attr) Set(root any, path string, value any) error {
	p, err := pathexpr.Parse(path)
	if err != nil {
		return wrap("set", path, err)
	}

	rv := reflect.ValueOf(root)

	parentPath, leaf, ok := p.Parent()
	if !ok {
		return wrap("set", path, a.replaceRoot(rv, value))
	}

	parent, err := a.resolve(rv, parentPath.Segments)
	if err != nil {
		return wrap("set", path, err)
	}

	return wrap("set", path, a.setSegment(parent, leaf, value))
}

func (a *Attr) resolve(v reflect.Value, segments []pathexpr.Segment) (reflect.Value, error) {
	for _, seg := range segments {
		next, err := a.member(v, seg.Name)
		if err != nil {
			return reflect.Value{}, atSegment(seg.String(), err)
		}

		v = next

		for _, idx := range seg.Indices {
			v, err = index(v, idx)
			if err != nil {
				return reflect.Value{}, atSegment(seg.String(), err)
			}
		}
	}

	return v, nil
}

func (a *Attr) member(v reflect.Value, name string) (reflect.Value, error) {
	next, ok := members.Lookup(v, name, a.opts)
	if !ok {
		if hint, found := a.closest(v, name); found {
			return reflect.Value{}, fmt.Errorf("%w: %s has no member %q (did you mean %q?)",
				ErrAttributeNotFound, describe(v), name, hint)
		}

		return reflect.Value{}, fmt.Errorf("%w: %s has no member %q", ErrAttributeNotFound, describe(v), name)
	}

	return next, nil
}

func (a *Attr) closest(v reflect.Value, name string) (string, bool) {
	var names []string

	for _, m := range members.List(v, a.opts) {
		if !a.opts.IsPrivate(m.Name) {
			names = append(names, m.Name)
		}
	}

	return suggest.Closest(name, names)
}

func (a *Attr) setSegment(parent reflect.Value, leaf pathexpr.Segment, value any) error {
	if !leaf.HasIndices() {
		return atSegment(leaf.String(), a.setMember(parent, leaf.Name, value))
	}

	cur, err := a.member(parent, leaf.Name)
	if err != nil {
		return atSegment(leaf.String(), err)
	}

	last := len(leaf.Indices) - 1
	for _, idx := range leaf.Indices[:last] {
		cur, err = index(cur, idx)
		if err != nil {
			return atSegment(leaf.String(), err)
		}
	}

	if err := setIndex(cur, leaf.Indices[last], value); err != nil {
		return atSegment(leaf.String(), err)
	}

	return nil
}

func (a *Attr) setMember(parent reflect.Value, name string, value any) error {
	if setter, ok := members.Setter(parent); ok {
		return setter.SetField(name, value)
	}

	slot, err := a.member(parent, name)
	if err != nil {
		return err
	}

	return assign(slot, value)
}

func (a *Attr) replaceRoot(rv reflect.Value, value any) error {
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: root must be a non-nil pointer to be replaced", ErrNotSettable)
	}

	return assign(rv.Elem(), value)
}
