package property

import (
	"errors"
	"fmt"
	"reflect"
)

// Descriptor holds the declaration of a single property.
type Descriptor struct {
	Name        string    // property name.
	Init        any       // value reported while the instance holds none.
	HasInit     bool      // Init was declared explicitly.
	Nullable    bool      // nil is an accepted value.
	NullableSet bool      // Nullable was declared explicitly (refinements only).
	Refine      bool      // declaration refines an inherited property.
	Apply       string    // member invoked on change.
	Event       string    // event fired on change.
	Check       Checker   // validator for non-nil values.
	Equal       EqualFunc // change detection; Identical when nil.
	Comment     string    // free-form documentation.
	Err         error     // builder error, reported at class definition.
}

// Builder is the fluent builder returned by New and Refine.
type Builder struct {
	desc *Descriptor
}

// New returns a builder for a new property declaration.
func New(name string) *Builder {
	b := &Builder{desc: &Descriptor{Name: name}}
	if name == "" {
		b.desc.Err = errors.New("property name cannot be empty")
	}
	return b
}

// Refine returns a builder for a refinement of an inherited property.
func Refine(name string) *Builder {
	b := New(name)
	b.desc.Refine = true
	return b
}

// Init sets the value reported while the instance holds no value.
func (b *Builder) Init(v any) *Builder {
	b.desc.Init = v
	b.desc.HasInit = true
	return b
}

// Nullable allows nil values.
func (b *Builder) Nullable() *Builder {
	b.desc.Nullable = true
	b.desc.NullableSet = true
	return b
}

// NotNullable rejects nil values. This is the default for new properties;
// on a refinement it narrows an inherited nullable property.
func (b *Builder) NotNullable() *Builder {
	b.desc.Nullable = false
	b.desc.NullableSet = true
	return b
}

// Apply names the member invoked with (value, old) whenever the value changes.
func (b *Builder) Apply(member string) *Builder {
	b.desc.Apply = member
	return b
}

// Event names the event fired with (value, old) whenever the value changes.
func (b *Builder) Event(name string) *Builder {
	b.desc.Event = name
	return b
}

// Check sets the validator for non-nil values.
func (b *Builder) Check(c Checker) *Builder {
	if c == nil {
		b.desc.Err = fmt.Errorf("property %q: nil checker", b.desc.Name)
		return b
	}
	b.desc.Check = c
	return b
}

// CheckFunc sets an ordinary function as validator.
func (b *Builder) CheckFunc(fn func(any) error) *Builder {
	if fn == nil {
		return b.Check(nil)
	}
	return b.Check(CheckFunc(fn))
}

// Equal sets the comparison used to detect changes.
func (b *Builder) Equal(fn EqualFunc) *Builder {
	b.desc.Equal = fn
	return b
}

// Comment sets the property comment.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the property builder by returning its descriptor.
// Builder errors are reported on the Err field.
func (b *Builder) Descriptor() *Descriptor {
	d := b.desc
	if d.Err == nil && d.HasInit && !d.Refine {
		if err := d.Validate(d.Init); err != nil {
			d.Err = fmt.Errorf("property %q: init value: %w", d.Name, err)
		}
	}
	return d
}

// Validate reports whether v is acceptable for the property.
func (d *Descriptor) Validate(v any) error {
	if IsNull(v) {
		if d.Nullable {
			return nil
		}
		return ErrNotNullable
	}
	if d.Check != nil {
		return d.Check.Check(v)
	}
	return nil
}

// Equals compares two values with the property equality.
func (d *Descriptor) Equals(a, b any) bool {
	if d.Equal != nil {
		return d.Equal(a, b)
	}
	return Identical(a, b)
}

// Clone returns a shallow copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	c := *d
	return &c
}

// ErrNotNullable is the validation failure for nil on a non-nullable property.
var ErrNotNullable = errors.New("property is not nullable")

// IsNull reports whether v is nil or a nil pointer, map, slice, func, chan
// or interface.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Descriptor returns d itself, so a Descriptor can be used wherever a
// builder is expected.
func (d *Descriptor) Descriptor() *Descriptor {
	return d
}
