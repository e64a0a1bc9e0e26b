package class

import (
	"fmt"
	"slices"

	"github.com/evandropoa/qooxdoo"
)

// Object is an instance of a registered class. It holds its own property
// values; the declarations stay on the class.
type Object struct {
	id           string
	reg          *Registry
	class        *Definition
	values       map[string]any
	constructing bool
	disposed     bool

	listeners  []listenerEntry
	nextListen ListenerID

	states stateSet
	// forwardParent receives this object's forwarded states.
	forwardParent   *Object
	forwardChildren []*Object

	owner     *Object
	controlID string
	controls  map[string]*Object
	order     []string
}

// New creates an instance of the class name. Constructors run from the
// root class down to name, each receiving args. Init is only allowed
// while they run.
func (r *Registry) New(name string, args ...any) (*Object, error) {
	d, err := r.Class(name)
	if err != nil {
		return nil, err
	}
	if _, err := r.FlattenClass(d); err != nil {
		return nil, err
	}
	o := &Object{
		id:     r.newID(),
		reg:    r,
		class:  d,
		values: make(map[string]any),
		states: newStateSet(),
	}
	o.constructing = true
	for _, c := range d.chain() {
		if c.construct == nil {
			continue
		}
		if err := safeConstruct(c, o, args); err != nil {
			return nil, fmt.Errorf("qx: constructing %s: %w", name, err)
		}
	}
	o.constructing = false
	return o, nil
}

// ID returns the unique instance identifier.
func (o *Object) ID() string { return o.id }

// Class returns the instance's class definition.
func (o *Object) Class() *Definition { return o.class }

// Registry returns the registry the instance was created by.
func (o *Object) Registry() *Registry { return o.reg }

// InstanceOf reports whether the instance's class is name or extends it.
func (o *Object) InstanceOf(name string) bool {
	for c := o.class; c != nil; c = c.superclass {
		if c.name == name {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (o *Object) String() string {
	return o.class.name + "[" + o.id + "]"
}

// View returns the current flattened view of the instance's class.
func (o *Object) View() (*View, error) {
	return o.reg.FlattenClass(o.class)
}

// Call invokes the member name with args. When the class has no such
// member, the generated property accessors are tried (e.g. "setEnabled").
func (o *Object) Call(name string, args ...any) (any, error) {
	v, err := o.View()
	if err != nil {
		return nil, err
	}
	if m, ok := v.members[name]; ok {
		return o.invoke(m, args)
	}
	if acc, ok := v.accessors[name]; ok {
		return acc(o, args)
	}
	return nil, qooxdoo.NewMemberNotFoundError(o.class.name, name)
}

// IsDisposed reports whether Dispose was called.
func (o *Object) IsDisposed() bool { return o.disposed }

// Dispose detaches the instance: its child controls are disposed, its
// forwarded states are withdrawn from its container and its listeners are
// dropped. Property values stay readable.
func (o *Object) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	ids := slices.Clone(o.order)
	slices.Reverse(ids)
	for _, id := range ids {
		o.controls[id].Dispose()
	}
	if p := o.forwardParent; p != nil {
		p.RemoveForwardingChild(o)
	}
	for _, c := range o.forwardChildren {
		c.forwardParent = nil
	}
	o.forwardChildren = nil
	if o.owner != nil {
		o.owner.releaseControl(o.controlID)
		o.owner = nil
	}
	o.listeners = nil
}
