package mixin

import (
	"github.com/evandropoa/qooxdoo"
	"github.com/evandropoa/qooxdoo/class"
	"github.com/evandropoa/qooxdoo/schema/property"
)

// Mixin is implemented by reusable property and member blocks.
type Mixin interface {
	// Name is the name the mixin is registered under.
	Name() string
	Properties() []class.Property
	Members() map[string]class.Member
}

// Schema is the default implementation for the Mixin interface.
// It should be embedded in all custom mixin definitions.
type Schema struct{}

// Properties returns the properties of the mixin.
// Override this method to add properties.
func (Schema) Properties() []class.Property { return nil }

// Members returns the members of the mixin.
// Override this method to add members.
func (Schema) Members() map[string]class.Member { return nil }

// Spec converts m into the declaration accepted by Registry.DefineMixin.
func Spec(m Mixin) class.MixinSpec {
	return class.MixinSpec{Properties: m.Properties(), Members: m.Members()}
}

// Register defines every mixin on reg. All mixins are attempted; the
// failures are returned together.
func Register(reg *class.Registry, ms ...Mixin) error {
	var errs []error
	for _, m := range ms {
		if _, err := reg.DefineMixin(m.Name(), Spec(m)); err != nil {
			errs = append(errs, err)
		}
	}
	return qooxdoo.NewAggregateError(errs...)
}

// Named registers m under a different name.
//
//	mixin.Register(reg, mixin.Named(mixin.Enabled{}, "qx.ui.core.MEnabled"))
func Named(m Mixin, name string) Mixin {
	return renamed{Mixin: m, name: name}
}

type renamed struct {
	Mixin
	name string
}

func (r renamed) Name() string { return r.name }

// =============================================================================
// Built-in Mixins
// =============================================================================

// Enabled adds the "enabled" property. Disabled instances carry the
// "disabled" state.
//
// Example:
//
//	reg.Define("Button", class.Spec{Include: []string{"MEnabled"}})
type Enabled struct {
	Schema
}

// Name returns "MEnabled".
func (Enabled) Name() string { return "MEnabled" }

// Properties returns the enabled property.
func (Enabled) Properties() []class.Property {
	return []class.Property{
		property.New("enabled").
			Init(true).
			Check(property.Boolean).
			Apply("_applyEnabled").
			Event("changeEnabled").
			Comment("Whether the widget reacts to user input"),
	}
}

// Members returns the apply hook of the enabled property.
func (Enabled) Members() map[string]class.Member {
	return map[string]class.Member{
		"_applyEnabled": func(c *class.Call) (any, error) {
			if enabled, _ := c.Arg(0).(bool); enabled {
				c.Self.RemoveState("disabled")
			} else {
				c.Self.AddState("disabled")
			}
			return nil, nil
		},
	}
}

// Focusable adds the "focusable" property and the focus and blur members.
// A focused instance carries the "focused" state, which composites list in
// their ForwardStates to look focused when one of their parts is.
type Focusable struct {
	Schema
}

// Name returns "MFocusable".
func (Focusable) Name() string { return "MFocusable" }

// Properties returns the focusable property.
func (Focusable) Properties() []class.Property {
	return []class.Property{
		property.New("focusable").
			Init(false).
			Check(property.Boolean).
			Event("changeFocusable").
			Comment("Whether the widget can receive keyboard focus"),
	}
}

// Members returns focus, blur and isFocused.
func (Focusable) Members() map[string]class.Member {
	return map[string]class.Member{
		"focus": func(c *class.Call) (any, error) {
			ok, err := c.Self.Get("focusable")
			if err != nil || ok != true {
				return false, err
			}
			c.Self.AddState("focused")
			return true, nil
		},
		"blur": func(c *class.Call) (any, error) {
			c.Self.RemoveState("focused")
			return nil, nil
		},
		"isFocused": func(c *class.Call) (any, error) {
			return c.Self.HasState("focused"), nil
		},
	}
}

// Appearance adds the "appearance" property, the theme key used to style
// an instance. Subclasses refine its init value.
type Appearance struct {
	Schema
}

// Name returns "MAppearance".
func (Appearance) Name() string { return "MAppearance" }

// Properties returns the appearance property.
func (Appearance) Properties() []class.Property {
	return []class.Property{
		property.New("appearance").
			Init("widget").
			Check(property.String).
			Event("changeAppearance").
			Comment("Theme key of the widget"),
	}
}

// Builtin returns all built-in mixins.
func Builtin() []Mixin {
	return []Mixin{Enabled{}, Focusable{}, Appearance{}}
}

// schema mixin must implement `Mixin` interface.
var (
	_ Mixin = (*Enabled)(nil)
	_ Mixin = (*Focusable)(nil)
	_ Mixin = (*Appearance)(nil)
)
