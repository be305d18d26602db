package accessor

import (
	"fmt"
	"math"
	"reflect"

	"fieldpath/internal/members"
	"fieldpath/primitive"
	"fieldpath/utils"
)

// PathAccessor reads and writes values addressed by a path below a root.
type PathAccessor interface {
	// Get returns the value at path. The empty path returns root.
	Get(root any, path string) (any, error)
	// Set replaces the value at path in place.
	Set(root any, path string, value any) error
}

// For returns the accessor matching the container kind of root: Mapping for
// string-keyed maps, Attr for everything else.
func For(root any) PathAccessor {
	return ForOptions(root, members.DefaultOptions())
}

// ForOptions is For with explicit member options for the attribute accessor.
func ForOptions(root any, opts members.Options) PathAccessor {
	if members.Classify(reflect.ValueOf(root)) == members.KindMapping {
		return Mapping{}
	}

	return NewAttr(opts)
}

// index returns element idx of the sequence behind v.
func index(v reflect.Value, idx int) (reflect.Value, error) {
	seq := members.Indirect(v)
	if !seq.IsValid() || (seq.Kind() != reflect.Slice && seq.Kind() != reflect.Array) {
		return reflect.Value{}, fmt.Errorf("%w: cannot index %s with [%d]", ErrNotIndexable, describe(v), idx)
	}

	if !utils.IsInRange(0, idx, seq.Len()-1) {
		return reflect.Value{}, fmt.Errorf("%w: [%d] with length %d", ErrIndexOutOfRange, idx, seq.Len())
	}

	return seq.Index(idx), nil
}

// setIndex assigns value to element idx of the sequence behind v.
func setIndex(v reflect.Value, idx int, value any) error {
	slot, err := index(v, idx)
	if err != nil {
		return err
	}

	return assign(slot, value)
}

func assign(slot reflect.Value, value any) error {
	if !slot.CanSet() {
		return fmt.Errorf("%w: %s is not addressable", ErrNotSettable, slot.Type())
	}

	nv, err := convert(value, slot.Type())
	if err != nil {
		return err
	}

	slot.Set(nv)

	return nil
}

// convert adapts value to t. Assignable values pass through; scalars of the
// same family (integers, floats, strings, booleans) and integers into floats
// are converted. Anything else is a type mismatch.
func convert(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: cannot assign nil to %s", ErrTypeMismatch, t)
		}
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		return v, nil
	}

	if sameFamily(v.Type(), t) {
		if !fits(v, t) {
			return reflect.Value{}, fmt.Errorf("%w: %v overflows %s", ErrTypeMismatch, value, t)
		}

		return v.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: cannot assign %s to %s", ErrTypeMismatch, v.Type(), t)
}

type family int

const (
	familyNone family = iota
	familyInteger
	familyFloat
	familyString
	familyBool
)

func familyOf(t reflect.Type) family {
	switch k := primitive.FromReflectType(t); {
	case k == 0, k == primitive.KindTime:
		return familyNone
	case k.IsInteger():
		return familyInteger
	case k.IsFloat():
		return familyFloat
	case k == primitive.KindString:
		return familyString
	case k == primitive.KindBool:
		return familyBool
	}

	// named scalars and durations fall back to their underlying kind
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return familyInteger
	case reflect.Float32, reflect.Float64:
		return familyFloat
	case reflect.String:
		return familyString
	case reflect.Bool:
		return familyBool
	default:
		return familyNone
	}
}

func sameFamily(from, to reflect.Type) bool {
	ff, tf := familyOf(from), familyOf(to)
	if ff == familyNone || tf == familyNone {
		return false
	}

	return ff == tf || (ff == familyInteger && tf == familyFloat)
}

// fits reports whether the numeric value v is representable in t without
// wrapping or overflow. Integers into floats always fit.
func fits(v reflect.Value, t reflect.Type) bool {
	slot := reflect.Zero(t)

	switch {
	case isSigned(t.Kind()):
		if isUnsigned(v.Kind()) {
			return v.Uint() <= math.MaxInt64 && !slot.OverflowInt(int64(v.Uint()))
		}

		return !slot.OverflowInt(v.Int())
	case isUnsigned(t.Kind()):
		if isSigned(v.Kind()) {
			return v.Int() >= 0 && !slot.OverflowUint(uint64(v.Int()))
		}

		return !slot.OverflowUint(v.Uint())
	case isFloat(t.Kind()) && isFloat(v.Kind()):
		return !slot.OverflowFloat(v.Float())
	default:
		return true
	}
}

func isSigned(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUnsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uint64
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func describe(v reflect.Value) string {
	v = members.Indirect(v)
	if !v.IsValid() {
		return "nil"
	}

	return v.Type().String()
}

func valueOf(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}

	return v.Interface()
}
