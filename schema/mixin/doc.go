// Package mixin provides the base mixin implementation and the built-in
// widget capability mixins.
//
// A mixin is a reusable set of properties and members that can be merged
// into several class definitions.
//
// Creating Custom Mixins:
//
// To create a custom mixin, embed Schema and override the methods you need:
//
//	type Sizable struct {
//	    mixin.Schema
//	}
//
//	func (Sizable) Name() string { return "MSizable" }
//
//	func (Sizable) Properties() []class.Property {
//	    return []class.Property{
//	        property.New("width").Nullable().Check(property.Integer),
//	        property.New("height").Nullable().Check(property.Integer),
//	    }
//	}
//
// Using Mixins:
//
//	if err := mixin.Register(reg, mixin.Enabled{}, mixin.Focusable{}, Sizable{}); err != nil {
//	    return err
//	}
//	reg.Define("Widget", class.Spec{
//	    Include: []string{mixin.Enabled{}.Name(), "MSizable"},
//	})
//
// Built-in Mixins:
//
//   - Enabled: the "enabled" property, mirrored as the "disabled" state
//   - Focusable: the "focusable" property and focus/blur members driving the "focused" state
//   - Appearance: the "appearance" property naming the theme key of a widget
package mixin
