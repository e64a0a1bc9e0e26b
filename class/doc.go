// Package class implements the class runtime: a registry of class and mixin
// definitions, the resolver that flattens them into cached views, instances
// with generated property accessors, property change events, named states
// with child-to-container forwarding, and child-control composition.
//
// # Defining Classes
//
// Classes are declared once on a Registry and resolved lazily:
//
//	reg := class.NewRegistry()
//
//	reg.Define("Widget", class.Spec{
//	    Properties: []class.Property{
//	        property.New("enabled").Init(true).Check(property.Boolean).Event("changeEnabled"),
//	    },
//	})
//
//	reg.Define("Button", class.Spec{
//	    Extend:  "Widget",
//	    Include: []string{"MFocusable"},
//	    Properties: []class.Property{
//	        property.Refine("enabled").Init(false),
//	    },
//	    Members: map[string]class.Member{
//	        "press": func(c *class.Call) (any, error) { ... },
//	    },
//	})
//
// # Flattening
//
// Registry.Flatten merges the superclass view, the included mixins (in
// declaration order) and the class's own declarations into a View. Views
// are cached per class and stay the same pointer until the class, one of
// its ancestors or one of their mixins is redefined.
//
// # Instances
//
// Registry.New runs every constructor from the root class down, then
// returns the Object. Properties are reached through Get, Set, Reset and
// Init, or through the generated accessor names:
//
//	btn, _ := reg.New("Button")
//	btn.Call("setEnabled", true)  // apply hook, then "changeEnabled" event
//	v, _ := btn.Call("getEnabled")
//
// # States
//
// AddState, RemoveState and HasState manage named boolean states. A class
// listing a state in Spec.ForwardStates mirrors that state from its
// forwarding children (its child controls, or objects registered with
// AddForwardingChild). Forwarded states are reference counted: the
// container keeps the state while any forwarding child still holds it.
// Redefining the container's class re-evaluates the mirrored states on
// their next access.
//
// The runtime is single-threaded. A Registry and its Objects must not be
// used from more than one goroutine at a time.
package class
