package property

import (
	"fmt"
	"reflect"
	"slices"
)

// Checker validates non-nil property values.
type Checker interface {
	Check(v any) error
}

// CheckFunc type is an adapter which allows the use of ordinary functions
// as checkers.
type CheckFunc func(any) error

// Check returns f(v).
func (f CheckFunc) Check(v any) error {
	return f(v)
}

// KindCheck accepts values of a fixed set of reflect kinds. The built-in
// checks are KindChecks, which lets code generators map them to Go types.
type KindCheck struct {
	name  string
	kinds []reflect.Kind
	typ   reflect.Type
}

// Name returns the check name, e.g. "Boolean".
func (c *KindCheck) Name() string { return c.name }

// GoType returns the canonical Go type for values accepted by the check.
func (c *KindCheck) GoType() reflect.Type { return c.typ }

// Check implements Checker.
func (c *KindCheck) Check(v any) error {
	if slices.Contains(c.kinds, reflect.ValueOf(v).Kind()) {
		return nil
	}
	return fmt.Errorf("expected %s, got %T", c.name, v)
}

var intKinds = []reflect.Kind{
	reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
	reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
}

// Built-in checks.
var (
	Boolean = &KindCheck{name: "Boolean", kinds: []reflect.Kind{reflect.Bool}, typ: reflect.TypeFor[bool]()}
	String  = &KindCheck{name: "String", kinds: []reflect.Kind{reflect.String}, typ: reflect.TypeFor[string]()}
	Integer = &KindCheck{name: "Integer", kinds: intKinds, typ: reflect.TypeFor[int]()}
	Number  = &KindCheck{
		name:  "Number",
		kinds: append(slices.Clone(intKinds), reflect.Float32, reflect.Float64),
		typ:   reflect.TypeFor[float64](),
	}
	Map = &KindCheck{name: "Map", kinds: []reflect.Kind{reflect.Map}, typ: reflect.TypeFor[map[string]any]()}
)

// PositiveInteger accepts integers greater than or equal to zero.
var PositiveInteger Checker = All(Integer, CheckFunc(func(v any) error {
	if toFloat(v) < 0 {
		return fmt.Errorf("expected positive integer, got %v", v)
	}
	return nil
}))

// Lookup returns the built-in check with the given name.
func Lookup(name string) (Checker, bool) {
	switch name {
	case "Boolean":
		return Boolean, true
	case "String":
		return String, true
	case "Integer":
		return Integer, true
	case "Number":
		return Number, true
	case "Map":
		return Map, true
	case "PositiveInteger":
		return PositiveInteger, true
	}
	return nil, false
}

// OneOf accepts only the given values, compared with Identical.
func OneOf(values ...any) Checker {
	return CheckFunc(func(v any) error {
		for _, allowed := range values {
			if Identical(allowed, v) {
				return nil
			}
		}
		return fmt.Errorf("value %v is not one of %v", v, values)
	})
}

// Range accepts numbers within [lo, hi].
func Range(lo, hi float64) Checker {
	return All(Number, CheckFunc(func(v any) error {
		if f := toFloat(v); f < lo || f > hi {
			return fmt.Errorf("value %v out of range [%v, %v]", v, lo, hi)
		}
		return nil
	}))
}

// All accepts values accepted by every given check, in order.
func All(checks ...Checker) Checker {
	return allCheck(checks)
}

type allCheck []Checker

func (a allCheck) Check(v any) error {
	for _, c := range a {
		if err := c.Check(v); err != nil {
			return err
		}
	}
	return nil
}

// Unwrap returns the first check, so generators can infer the Go type of
// combined checks like Range and PositiveInteger.
func (a allCheck) Unwrap() Checker {
	if len(a) == 0 {
		return nil
	}
	return a[0]
}

// GoTypeOf returns the Go type a checker constrains values to, or nil
// when the checker does not constrain the type.
func GoTypeOf(c Checker) reflect.Type {
	for c != nil {
		if kc, ok := c.(*KindCheck); ok {
			return kc.typ
		}
		u, ok := c.(interface{ Unwrap() Checker })
		if !ok {
			return nil
		}
		c = u.Unwrap()
	}
	return nil
}

// toFloat converts a value already accepted by Integer or Number.
func toFloat(v any) float64 {
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return float64(rv.Int())
	case rv.CanUint():
		return float64(rv.Uint())
	case rv.CanFloat():
		return rv.Float()
	}
	return 0
}
