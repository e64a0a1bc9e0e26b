// Package classdef loads class and mixin declarations from YAML manifests
// and registers them on a class.Registry.
//
// A manifest declares mixins and classes. Behavior stays in Go: members,
// constructors and custom checks are referred to by key and resolved
// against a Catalog.
//
//	mixins:
//	  - name: MFocusable
//	    properties:
//	      - {name: focusable, init: false, check: Boolean}
//	    members:
//	      focus: MFocusable.focus
//	classes:
//	  - name: ComboBox
//	    extend: AbstractSelectBox
//	    include: [MFocusable]
//	    properties:
//	      - {name: appearance, refine: true, init: combobox}
//	    members:
//	      _createChildControlImpl: comboBox.createChildControl
//	    forwardStates: {focused: true}
//
// Loading is parallel and never touches a registry; Apply and the reload
// callback of a Watcher run on the caller's goroutine:
//
//	files, err := classdef.LoadDir(ctx, "classes")
//	if err != nil {
//	    return err
//	}
//	err = classdef.Apply(reg, files, classdef.WithCatalog(cat))
package classdef
