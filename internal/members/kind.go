package members

import (
	"reflect"

	"fieldpath/primitive"
)

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind is the container shape of a value, as seen by path traversal.
type Kind int

const (
	KindLeaf     Kind = iota // anything without addressable structure
	KindMembers              // exposes public named members
	KindSequence             // slice or array
	KindMapping              // map with string keys
)

// Indirect follows pointers and interfaces. It returns the zero Value when a
// nil pointer or nil interface is reached.
func Indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}

		v = v.Elem()
	}

	return v
}

// Classify returns the container kind of v.
func Classify(v reflect.Value) Kind {
	if _, ok := lister(v); ok {
		return KindMembers
	}

	v = Indirect(v)
	if !v.IsValid() {
		return KindLeaf
	}

	switch v.Kind() {
	case reflect.Struct:
		if primitive.FromReflectType(v.Type()) == 0 && hasPublicFields(v.Type()) {
			return KindMembers
		}
	case reflect.Slice, reflect.Array:
		return KindSequence
	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String {
			return KindMapping
		}
	}

	return KindLeaf
}

// IsMemberBearing reports whether v exposes public named members.
func IsMemberBearing(v reflect.Value) bool {
	return Classify(v) == KindMembers
}

// IsComposite reports whether v has nested addressable structure: it is
// member-bearing, or it is a sequence holding at least one member-bearing
// element.
//
// Sequences are scanned in order and the scan stops at the first element that
// is itself a sequence: that nested sequence decides the answer for the whole
// value. Elements that are neither sequences nor member-bearing are skipped.
// A list such as [[1], {a}] is therefore not composite.
func IsComposite(v reflect.Value) bool {
	switch Classify(v) {
	case KindMembers:
		return true
	case KindSequence:
		return sequenceHasMembers(Indirect(v))
	default:
		return false
	}
}

func sequenceHasMembers(seq reflect.Value) bool {
	for i := range seq.Len() {
		elem := seq.Index(i)

		switch Classify(elem) {
		case KindSequence:
			return sequenceHasMembers(Indirect(elem))
		case KindMembers:
			return true
		}
	}

	return false
}
