package property

import "reflect"

// EqualFunc reports whether two property values are equal.
type EqualFunc func(a, b any) bool

// Identical is the default property equality. Comparable values are compared
// with ==; slices, maps and funcs are equal only when they share the same
// backing storage, so storing a fresh slice always counts as a change.
func Identical(a, b any) (eq bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		// Comparable structs may still hold uncomparable interface values.
		defer func() {
			if recover() != nil {
				eq = reflect.DeepEqual(a, b)
			}
		}()
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Slice:
		return va.Len() == vb.Len() && va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	}
	return reflect.DeepEqual(a, b)
}

// DeepEqual compares values structurally. Use it with Builder.Equal for
// properties holding slices or maps that are replaced by equal copies.
func DeepEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
