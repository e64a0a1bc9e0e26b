package class

import (
	"fmt"
	"reflect"
)

// Value returns the value of the property name as a T. Numeric values are
// converted between numeric types; nil yields the zero T.
func Value[T any](o *Object, name string) (T, error) {
	var zero T
	v, err := o.Get(name)
	if err != nil || v == nil {
		return zero, err
	}
	if t, ok := v.(T); ok {
		return t, nil
	}
	typ := reflect.TypeFor[T]()
	rv := reflect.ValueOf(v)
	if numeric(rv.Kind()) && numeric(typ.Kind()) {
		return rv.Convert(typ).Interface().(T), nil
	}
	return zero, fmt.Errorf("qx: property %s.%s holds %T, not %s", o.class.name, name, v, typ)
}

func numeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}
