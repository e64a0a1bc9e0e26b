// Package property provides fluent builders for declaring class properties.
//
// A property is a named, validated slot on every instance of a class. The
// declaration lives on the class; the current value lives on the instance.
//
//	property.New("enabled").
//	    Init(true).               // value returned while unset
//	    Check(property.Boolean).  // validator for non-null values
//	    Apply("_applyEnabled").   // member invoked with (value, old) on change
//	    Event("changeEnabled")    // event fired with (value, old) after apply
//
// Properties are not nullable unless Nullable is called:
//
//	property.New("label").Check(property.String).Nullable()
//
// # Refinement
//
// A subclass cannot redeclare an inherited property. It may refine it, which
// overrides the init value and may narrow nullability:
//
//	property.Refine("focusable").Init(true)
//	property.Refine("label").NotNullable()
//
// A refinement that names a property no ancestor declares is rejected when
// the class is flattened.
//
// # Checks
//
// Built-in checks cover the common value kinds (Boolean, String, Integer,
// Number, PositiveInteger) and can be combined with OneOf, Range and All.
// Any function can be used through CheckFunc.
//
// # Equality
//
// A set is a no-op when the new value equals the current one. The default
// comparison is Identical: == for comparable values and reference identity
// for slices, maps and funcs. Use Equal to supply a custom comparison.
package property
