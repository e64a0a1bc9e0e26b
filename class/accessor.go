package class

import (
	"fmt"

	"github.com/evandropoa/qooxdoo"
)

// Accessor is the set of property operations bound to one instance.
type Accessor struct {
	obj  *Object
	name string
}

// Property returns the accessor for the property name.
func (o *Object) Property(name string) (*Accessor, error) {
	if _, _, err := o.lookup(name); err != nil {
		return nil, err
	}
	return &Accessor{obj: o, name: name}, nil
}

// Name returns the property name.
func (a *Accessor) Name() string { return a.name }

// Get returns the current value.
func (a *Accessor) Get() (any, error) { return a.obj.Get(a.name) }

// Set stores a new value.
func (a *Accessor) Set(v any) error { return a.obj.Set(a.name, v) }

// Reset restores the init value.
func (a *Accessor) Reset() error { return a.obj.Reset(a.name) }

// Init seeds the value during construction.
func (a *Accessor) Init(v any) error { return a.obj.Init(a.name, v) }

// Get returns the value of the property name: the stored value, or the
// declared init value while none is stored.
func (o *Object) Get(name string) (any, error) {
	_, p, err := o.lookup(name)
	if err != nil {
		return nil, err
	}
	return o.current(p), nil
}

// IsSet reports whether the instance stores its own value for name.
func (o *Object) IsSet(name string) bool {
	_, ok := o.values[name]
	return ok
}

// Set validates and stores value. When the value differs from the current
// one, the apply hook is invoked with (value, old) and then the change
// event is fired with (value, old). Setting an equal value does nothing.
//
// If the apply hook fails the value stays stored, no event is fired and
// the failure is returned as an ApplyError.
func (o *Object) Set(name string, value any) error {
	v, p, err := o.lookup(name)
	if err != nil {
		return err
	}
	if err := p.Validate(value); err != nil {
		return qooxdoo.NewPropertyValidationError(o.class.name, name, value, err)
	}
	old := o.current(p)
	if p.Equals(old, value) {
		return nil
	}
	o.values[name] = value
	return o.changed(v, p, value, old)
}

// Reset drops the stored value so the property reports its init value
// again. Apply hook and event run as for Set when the value changes. A
// property without an init value that does not accept nil cannot be
// reset: Reset fails as Set(nil) would and keeps the stored value.
func (o *Object) Reset(name string) error {
	v, p, err := o.lookup(name)
	if err != nil {
		return err
	}
	if err := p.Validate(p.Init); err != nil {
		return qooxdoo.NewPropertyValidationError(o.class.name, name, p.Init, err)
	}
	old := o.current(p)
	delete(o.values, name)
	if p.Equals(old, p.Init) {
		return nil
	}
	return o.changed(v, p, p.Init, old)
}

// Init seeds the property without invoking the apply hook or firing the
// change event. It is only allowed while the instance is being constructed.
func (o *Object) Init(name string, value any) error {
	_, p, err := o.lookup(name)
	if err != nil {
		return err
	}
	if !o.constructing {
		return fmt.Errorf("%w: %s.%s", qooxdoo.ErrNotConstructing, o.class.name, name)
	}
	if err := p.Validate(value); err != nil {
		return qooxdoo.NewPropertyValidationError(o.class.name, name, value, err)
	}
	o.values[name] = value
	return nil
}

func (o *Object) lookup(name string) (*View, *ResolvedProperty, error) {
	v, err := o.View()
	if err != nil {
		return nil, nil, err
	}
	p, ok := v.properties[name]
	if !ok {
		return nil, nil, qooxdoo.NewPropertyNotFoundError(o.class.name, name)
	}
	return v, p, nil
}

func (o *Object) current(p *ResolvedProperty) any {
	if val, ok := o.values[p.Name]; ok {
		return val
	}
	return p.Init
}

// changed runs the apply hook, then fires the change event.
func (o *Object) changed(v *View, p *ResolvedProperty, value, old any) error {
	if p.Apply != "" {
		if _, err := o.invoke(v.members[p.Apply], []any{value, old}); err != nil {
			return qooxdoo.NewApplyError(o.class.name, p.Name, p.Apply, err)
		}
	}
	if p.Event != "" {
		o.Fire(p.Event, value, old)
	}
	return nil
}
