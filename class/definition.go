package class

import (
	"maps"
	"slices"

	"github.com/evandropoa/qooxdoo/schema/property"
)

type (
	// Property is implemented by property builders and descriptors.
	Property interface {
		Descriptor() *property.Descriptor
	}

	// Member is the body of a class member. The Call carries the receiver,
	// the arguments and access to the overridden implementation.
	Member func(c *Call) (any, error)

	// Constructor initializes a new instance. Constructors of a class
	// hierarchy run from the root class down, all with the same arguments.
	Constructor func(self *Object, args ...any) error

	// Spec is the declaration of a class passed to Registry.Define.
	Spec struct {
		// Extend names the superclass. Empty for root classes.
		Extend string
		// Include names the mixins merged into the class, in order.
		Include []string
		// Properties declared or refined by the class.
		Properties []Property
		// Members of the class, by name.
		Members map[string]Member
		// Construct is invoked after every superclass constructor.
		Construct Constructor
		// ForwardStates lists the states mirrored from forwarding children.
		// A false entry stops forwarding a state the superclass forwards.
		ForwardStates map[string]bool
	}

	// MixinSpec is the declaration of a mixin passed to Registry.DefineMixin.
	// Mixins have no superclass and cannot include other mixins.
	MixinSpec struct {
		Properties []Property
		Members    map[string]Member
	}
)

// Definition is a registered class. The registry owns every Definition;
// the superclass and mixin references are non-owning. Redefining a class
// updates its Definition in place.
type Definition struct {
	name          string
	superclass    *Definition
	mixins        []*Mixin
	properties    []*property.Descriptor
	members       map[string]Member
	construct     Constructor
	forwardStates map[string]bool
	version       int
}

// Name returns the class name.
func (d *Definition) Name() string { return d.name }

// Superclass returns the superclass definition, or nil for root classes.
func (d *Definition) Superclass() *Definition { return d.superclass }

// Mixins returns the included mixins in declaration order.
func (d *Definition) Mixins() []*Mixin { return slices.Clone(d.mixins) }

// Properties returns the properties declared by the class itself.
func (d *Definition) Properties() []*property.Descriptor { return slices.Clone(d.properties) }

// Members returns the sorted names of the members declared by the class itself.
func (d *Definition) Members() []string { return slices.Sorted(maps.Keys(d.members)) }

// ForwardStates returns a copy of the class's own forwarding declaration.
func (d *Definition) ForwardStates() map[string]bool { return maps.Clone(d.forwardStates) }

// Version returns how many times the class has been redefined.
func (d *Definition) Version() int { return d.version }

// extends reports whether anc is d or one of its ancestors.
func (d *Definition) extends(anc *Definition) bool {
	for c := d; c != nil; c = c.superclass {
		if c == anc {
			return true
		}
	}
	return false
}

// includes reports whether d or one of its ancestors includes m.
func (d *Definition) includes(m *Mixin) bool {
	for c := d; c != nil; c = c.superclass {
		if slices.Contains(c.mixins, m) {
			return true
		}
	}
	return false
}

// chain returns the class hierarchy from the root class down to d.
func (d *Definition) chain() []*Definition {
	var defs []*Definition
	for c := d; c != nil; c = c.superclass {
		defs = append(defs, c)
	}
	slices.Reverse(defs)
	return defs
}

// Mixin is a registered mixin: a block of properties and members merged
// into every class that includes it.
type Mixin struct {
	name       string
	properties []*property.Descriptor
	members    map[string]Member
	version    int
}

// Name returns the mixin name.
func (m *Mixin) Name() string { return m.name }

// Properties returns the properties declared by the mixin.
func (m *Mixin) Properties() []*property.Descriptor { return slices.Clone(m.properties) }

// Members returns the sorted member names of the mixin.
func (m *Mixin) Members() []string { return slices.Sorted(maps.Keys(m.members)) }

// Version returns how many times the mixin has been redefined.
func (m *Mixin) Version() int { return m.version }
