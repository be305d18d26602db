package binding

import (
	"fmt"
	"reflect"

	"github.com/davecgh/go-spew/spew"

	"fieldpath/internal/diagnostic"
)

// CodeTypeMismatch identifies type-mismatch warnings.
const CodeTypeMismatch = "type-mismatch"

var valueFormat = spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                2,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// CheckModelType emits a warning to sink when oldValue is not nil (neither
// untyped nor a nil pointer, map, slice, interface, chan or func) and its
// dynamic type differs from newValue's. depth selects the reported call site:
// 0 is the caller of CheckModelType, 1 its caller, and so on. It never fails
// and never prevents the update it accompanies.
func CheckModelType(oldValue, newValue any, depth int, sink diagnostic.Sink) {
	if isNil(oldValue) || sink == nil {
		return
	}

	oldType, newType := reflect.TypeOf(oldValue), reflect.TypeOf(newValue)
	if oldType == newType {
		return
	}

	sink.Emit(diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticWarning,
		Code:     CodeTypeMismatch,
		Message: fmt.Sprintf("update expected a value of type '%v', received '%v' (%s); this is likely a bug",
			oldType, newType, valueFormat.Sprintf("%v", newValue)),
		Location: diagnostic.Caller(depth + 1),
	})
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
