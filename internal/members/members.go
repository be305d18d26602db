package members

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// DefaultTag is the struct tag consulted for member names.
const DefaultTag = "bind"

// DefaultPrivatePrefix marks members that are private by convention.
const DefaultPrivatePrefix = "_"

// ErrReadOnly is returned when writing to a FieldLister that does not
// implement FieldSetter, or by a FieldSetter refusing a member.
var ErrReadOnly = errors.New("member is read-only")

// Field is a named public member and its current value, as reported by a
// FieldLister.
type Field struct {
	Name  string
	Value any
}

// FieldLister is implemented by types that enumerate their own public members.
// The returned order is the member order seen by path enumeration.
type FieldLister interface {
	ListFields() []Field
}

// FieldGetter lets a FieldLister resolve a single member by name.
type FieldGetter interface {
	GetField(name string) (any, bool)
}

// FieldSetter lets a FieldLister accept writes to a member.
type FieldSetter interface {
	SetField(name string, value any) error
}

// Member is a named member and its reflected value. For struct fields reached
// through a pointer the value is addressable.
type Member struct {
	Name  string
	Value reflect.Value
}

// Options control how member names are derived.
type Options struct {
	// Tag is the struct tag holding an alternative member name; "-" hides the field.
	Tag string
	// PrivatePrefix marks names that are private by convention.
	PrivatePrefix string
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Tag: DefaultTag, PrivatePrefix: DefaultPrivatePrefix}
}

// IsPrivate reports whether name is private by convention.
func (o Options) IsPrivate(name string) bool {
	return o.PrivatePrefix != "" && strings.HasPrefix(name, o.PrivatePrefix)
}

// List returns the public members of v in declaration order, or nil when v is
// not member-bearing. Names that are private by convention are included;
// callers filter them with Options.IsPrivate.
func List(v reflect.Value, opts Options) []Member {
	if l, ok := lister(v); ok {
		fields := l.ListFields()
		out := make([]Member, 0, len(fields))

		for _, f := range fields {
			out = append(out, Member{Name: f.Name, Value: reflect.ValueOf(f.Value)})
		}

		return out
	}

	v = Indirect(v)
	if Classify(v) != KindMembers {
		return nil
	}

	var out []Member

	for _, f := range structFields(v.Type(), opts.Tag) {
		fv, err := v.FieldByIndexErr(f.index)
		if err != nil || !fv.CanInterface() {
			// promoted through a nil embedded pointer
			continue
		}

		out = append(out, Member{Name: f.name, Value: fv})
	}

	return out
}

// Lookup resolves the member called name on v.
func Lookup(v reflect.Value, name string, opts Options) (reflect.Value, bool) {
	if l, ok := lister(v); ok {
		if g, ok := l.(FieldGetter); ok {
			val, found := g.GetField(name)
			if !found {
				return reflect.Value{}, false
			}

			return reflect.ValueOf(val), true
		}

		for _, f := range l.ListFields() {
			if f.Name == name {
				return reflect.ValueOf(f.Value), true
			}
		}

		return reflect.Value{}, false
	}

	v = Indirect(v)
	if Classify(v) != KindMembers {
		return reflect.Value{}, false
	}

	for _, f := range structFields(v.Type(), opts.Tag) {
		if f.name != name {
			continue
		}

		fv, err := v.FieldByIndexErr(f.index)
		if err != nil || !fv.CanInterface() {
			return reflect.Value{}, false
		}

		return fv, true
	}

	return reflect.Value{}, false
}

// Setter returns the FieldSetter behind v. ok is false when v is not a
// FieldLister; a FieldLister without SetField gets a setter that always fails
// with ErrReadOnly.
func Setter(v reflect.Value) (FieldSetter, bool) {
	l, ok := lister(v)
	if !ok {
		return nil, false
	}

	if s, ok := l.(FieldSetter); ok {
		return s, true
	}

	return readOnly{}, true
}

type readOnly struct{}

func (readOnly) SetField(name string, _ any) error {
	return fmt.Errorf("%w: %q", ErrReadOnly, name)
}

type structField struct {
	name  string
	index []int
}

// structFields lists the member fields of struct type t in declaration order.
// When several visible fields share a member name the shallowest one wins,
// and among equally deep ones the first declared.
func structFields(t reflect.Type, tag string) []structField {
	var out []structField

	at := make(map[string]int)

	for _, sf := range reflect.VisibleFields(t) {
		name, ok := fieldName(sf, tag)
		if !ok {
			continue
		}

		if i, seen := at[name]; seen {
			if len(sf.Index) < len(out[i].index) {
				out[i].index = sf.Index
			}

			continue
		}

		at[name] = len(out)
		out = append(out, structField{name: name, index: sf.Index})
	}

	return out
}

// fieldName derives the member name of a struct field. ok is false for
// fields that are not members: unexported fields, fields hidden with "-" and
// embedded structs (their fields are promoted instead).
func fieldName(sf reflect.StructField, tag string) (string, bool) {
	if sf.Anonymous && isStructLike(sf.Type) {
		return "", false
	}

	if !sf.IsExported() {
		return "", false
	}

	if tag == "" {
		return sf.Name, true
	}

	name := sf.Tag.Get(tag)
	if idx := strings.IndexByte(name, ','); idx >= 0 {
		name = name[:idx]
	}

	switch name {
	case "-":
		return "", false
	case "":
		return sf.Name, true
	default:
		return name, true
	}
}

func isStructLike(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct
}

func hasPublicFields(t reflect.Type) bool {
	for _, sf := range reflect.VisibleFields(t) {
		if sf.IsExported() && !(sf.Anonymous && isStructLike(sf.Type)) {
			return true
		}
	}

	return false
}

// lister finds a FieldLister anywhere along the pointer/interface chain of v.
func lister(v reflect.Value) (FieldLister, bool) {
	for v.IsValid() {
		if v.CanInterface() {
			if l, ok := v.Interface().(FieldLister); ok {
				if v.Kind() == reflect.Pointer && v.IsNil() {
					return nil, false
				}

				return l, true
			}
		}

		if v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface {
			break
		}

		if v.IsNil() {
			break
		}

		v = v.Elem()
	}

	return nil, false
}
