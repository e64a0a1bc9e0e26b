// Package gen generates typed Go wrappers for registered classes.
//
// Each class is flattened first, so the wrapper reflects every property
// and member the class has after merging its superclass and mixins:
//
//	Registry (class definitions)
//	        ↓
//	   View (flattened class)
//	        ↓
//	   jen.File (wrapper type, constructor, accessors, members)
//	        ↓
//	   imports.Process (formatted Go source)
//
// A class named "qx.ui.form.ComboBox" yields the type ComboBox in
// combo_box.go, embedding *class.Object:
//
//	cb, err := widgets.NewComboBox(reg)
//	h, err := cb.MaxListHeight()   // typed from the property check
//	err = cb.SetEnabled(false)
//	_, err = cb.Focus()            // public member
//
// Properties whose check maps to a Go type get typed getters and setters;
// nullable and unchecked properties use any. Members whose names start
// with an underscore are not wrapped.
package gen
