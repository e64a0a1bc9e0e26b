package class_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evandropoa/qooxdoo"
	"github.com/evandropoa/qooxdoo/class"
	"github.com/evandropoa/qooxdoo/schema/property"
)

func enabledBase(t *testing.T) *class.Registry {
	t.Helper()
	reg := class.NewRegistry()
	_, err := reg.Define("Base", class.Spec{
		Properties: []class.Property{
			property.New("enabled").Init(true).Check(property.Boolean).Event("changeEnabled"),
		},
	})
	require.NoError(t, err)
	return reg
}

func TestFlattenCached(t *testing.T) {
	reg := enabledBase(t)
	v1, err := reg.Flatten("Base")
	require.NoError(t, err)
	v2, err := reg.Flatten("Base")
	require.NoError(t, err)
	assert.Same(t, v1, v2)
	assert.Equal(t, "Base", v1.Class().Name())
}

func TestRefine(t *testing.T) {
	reg := enabledBase(t)
	_, err := reg.Define("Derived", class.Spec{
		Extend:     "Base",
		Properties: []class.Property{property.Refine("enabled").Init(false)},
	})
	require.NoError(t, err)

	view, err := reg.Flatten("Derived")
	require.NoError(t, err)
	p, ok := view.Property("enabled")
	require.True(t, ok)
	assert.Equal(t, false, p.Init)
	assert.Equal(t, "changeEnabled", p.Event, "refinement keeps the inherited event")
	assert.Equal(t, property.Checker(property.Boolean), p.Check)
	assert.Equal(t, "Base", p.Origin.Name)
	assert.Equal(t, []string{"Derived"}, p.RefinedBy)

	base, err := reg.Flatten("Base")
	require.NoError(t, err)
	bp, _ := base.Property("enabled")
	assert.Equal(t, true, bp.Init, "refinement does not leak into the superclass")
}

func TestRefineErrors(t *testing.T) {
	tests := []struct {
		name string
		prop class.Property
	}{
		{name: "unknown", prop: property.Refine("visible").Init(true)},
		{name: "check", prop: property.Refine("enabled").Check(property.String)},
		{name: "apply", prop: property.Refine("enabled").Apply("_applyEnabled")},
		{name: "event", prop: property.Refine("enabled").Event("enabledChanged")},
		{name: "equal", prop: property.Refine("enabled").Equal(property.DeepEqual)},
		{name: "widen_nullable", prop: property.Refine("enabled").Nullable()},
		{name: "bad_init", prop: property.Refine("enabled").Init("yes")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := enabledBase(t)
			_, err := reg.Define("Derived", class.Spec{
				Extend:     "Base",
				Properties: []class.Property{tt.prop},
			})
			require.Error(t, err)
			assert.True(t, qooxdoo.IsInvalidRefinement(err), "unexpected error: %v", err)
			assert.Equal(t, []string{"Base"}, reg.Classes())
		})
	}
}

func TestRefineNarrowsNullable(t *testing.T) {
	reg := class.NewRegistry()
	_, err := reg.Define("Base", class.Spec{
		Properties: []class.Property{property.New("label").Nullable().Check(property.String)},
	})
	require.NoError(t, err)
	_, err = reg.Define("Derived", class.Spec{
		Extend:     "Base",
		Properties: []class.Property{property.Refine("label").NotNullable().Init("")},
	})
	require.NoError(t, err)
	view, err := reg.Flatten("Derived")
	require.NoError(t, err)
	p, _ := view.Property("label")
	assert.False(t, p.Nullable)
	assert.Equal(t, "", p.Init)
}

func TestDuplicateProperty(t *testing.T) {
	t.Run("superclass", func(t *testing.T) {
		reg := enabledBase(t)
		_, err := reg.Define("Derived", class.Spec{
			Extend:     "Base",
			Properties: []class.Property{property.New("enabled").Init(false)},
		})
		require.Error(t, err)
		assert.True(t, qooxdoo.IsDuplicateProperty(err))
		assert.ErrorContains(t, err, `property "enabled" redeclared by "Derived" (already declared by "Base")`)
	})

	t.Run("mixin_over_superclass", func(t *testing.T) {
		reg := enabledBase(t)
		_, err := reg.DefineMixin("MEnabled", class.MixinSpec{
			Properties: []class.Property{property.New("enabled").Init(false)},
		})
		require.NoError(t, err)
		_, err = reg.Define("Derived", class.Spec{Extend: "Base", Include: []string{"MEnabled"}})
		assert.True(t, qooxdoo.IsDuplicateProperty(err))
	})

	t.Run("own_over_mixin", func(t *testing.T) {
		reg := class.NewRegistry()
		_, err := reg.DefineMixin("MEnabled", class.MixinSpec{
			Properties: []class.Property{property.New("enabled").Init(false)},
		})
		require.NoError(t, err)
		_, err = reg.Define("C", class.Spec{
			Include:    []string{"MEnabled"},
			Properties: []class.Property{property.New("enabled")},
		})
		assert.True(t, qooxdoo.IsDuplicateProperty(err))
		_, err = reg.Class("C")
		assert.True(t, qooxdoo.IsClassNotFound(err))
	})

	t.Run("later_mixin_wins", func(t *testing.T) {
		reg := class.NewRegistry()
		_, err := reg.DefineMixin("MA", class.MixinSpec{
			Properties: []class.Property{property.New("size").Init(1)},
		})
		require.NoError(t, err)
		_, err = reg.DefineMixin("MB", class.MixinSpec{
			Properties: []class.Property{property.New("size").Init(2)},
		})
		require.NoError(t, err)
		_, err = reg.Define("C", class.Spec{Include: []string{"MA", "MB"}})
		require.NoError(t, err)
		view, err := reg.Flatten("C")
		require.NoError(t, err)
		p, _ := view.Property("size")
		assert.Equal(t, 2, p.Init)
		assert.Equal(t, class.Origin{Name: "MB", MixedIn: true, Includer: "C"}, p.Origin)
		assert.Len(t, view.Properties(), 1)
	})
}

func TestMixinRefinedBySubclass(t *testing.T) {
	reg := class.NewRegistry()
	_, err := reg.DefineMixin("MFocus", class.MixinSpec{
		Properties: []class.Property{property.New("focusable").Init(false).Check(property.Boolean)},
	})
	require.NoError(t, err)
	_, err = reg.Define("Widget", class.Spec{Include: []string{"MFocus"}})
	require.NoError(t, err)
	_, err = reg.Define("TextField", class.Spec{
		Extend:     "Widget",
		Properties: []class.Property{property.Refine("focusable").Init(true)},
	})
	require.NoError(t, err)

	view, err := reg.Flatten("TextField")
	require.NoError(t, err)
	p, _ := view.Property("focusable")
	assert.Equal(t, true, p.Init)
	assert.True(t, p.Origin.MixedIn)
	assert.Equal(t, "MFocus", p.Origin.Name)
}

func TestMemberPrecedence(t *testing.T) {
	reg := class.NewRegistry()
	_, err := reg.Define("Base", class.Spec{Members: map[string]class.Member{
		"render": noop,
		"layout": noop,
	}})
	require.NoError(t, err)
	_, err = reg.DefineMixin("MRender", class.MixinSpec{Members: map[string]class.Member{
		"render": noop,
		"paint":  noop,
	}})
	require.NoError(t, err)
	_, err = reg.Define("Derived", class.Spec{
		Extend:  "Base",
		Include: []string{"MRender"},
		Members: map[string]class.Member{"paint": noop},
	})
	require.NoError(t, err)

	view, err := reg.Flatten("Derived")
	require.NoError(t, err)
	assert.Equal(t, []string{"layout", "paint", "render"}, view.Members())
	for name, want := range map[string]string{"layout": "Base", "render": "MRender", "paint": "Derived"} {
		origin, ok := view.MemberOrigin(name)
		require.True(t, ok)
		assert.Equal(t, want, origin.Name, name)
	}
	_, ok := view.MemberOrigin("missing")
	assert.False(t, ok)
}

func TestApplyHookMustExist(t *testing.T) {
	reg := class.NewRegistry()
	_, err := reg.Define("C", class.Spec{
		Properties: []class.Property{property.New("width").Init(0).Apply("_applyWidth")},
	})
	assert.True(t, qooxdoo.IsDefinitionError(err))
	assert.ErrorContains(t, err, `apply hook of property "width" is not a member`)
}

func TestAccessorNames(t *testing.T) {
	reg := class.NewRegistry()
	_, err := reg.Define("C", class.Spec{
		Properties: []class.Property{
			property.New("enabled").Init(true).Check(property.Boolean),
			property.New("label").Init("").Check(property.String),
		},
	})
	require.NoError(t, err)
	view, err := reg.Flatten("C")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"getEnabled", "getLabel",
		"initEnabled", "initLabel",
		"isEnabled",
		"resetEnabled", "resetLabel",
		"setEnabled", "setLabel",
		"toggleEnabled",
	}, view.Accessors())
}

func TestForwardStatesInheritance(t *testing.T) {
	reg := class.NewRegistry()
	_, err := reg.Define("Composite", class.Spec{
		ForwardStates: map[string]bool{"focused": true, "hovered": true},
	})
	require.NoError(t, err)
	_, err = reg.Define("ComboBox", class.Spec{
		Extend:        "Composite",
		ForwardStates: map[string]bool{"hovered": false, "pressed": true},
	})
	require.NoError(t, err)

	view, err := reg.Flatten("ComboBox")
	require.NoError(t, err)
	assert.Equal(t, []string{"focused", "pressed"}, view.ForwardStates())
	assert.True(t, view.Forwards("focused"))
	assert.False(t, view.Forwards("hovered"))
}

func TestFlattenSuperclassError(t *testing.T) {
	reg := class.NewRegistry()
	_, err := reg.Define("Base", class.Spec{
		Properties: []class.Property{property.New("width").Apply("_applyWidth")},
		Members:    map[string]class.Member{"_applyWidth": noop},
	})
	require.NoError(t, err)
	_, err = reg.Define("Derived", class.Spec{Extend: "Base"})
	require.NoError(t, err)
	_, err = reg.Define("Leaf", class.Spec{Extend: "Derived"})
	require.NoError(t, err)

	_, err = reg.Define("Base", class.Spec{
		Properties: []class.Property{property.New("width").Apply("_missing")},
	})
	require.Error(t, err)
	assert.True(t, qooxdoo.IsDefinitionError(err))
	assert.ErrorContains(t, err, `invalid definition of Base member _missing`)

	view, err := reg.Flatten("Leaf")
	require.NoError(t, err)
	assert.True(t, view.HasMember("_applyWidth"), "rejected redefinition leaves descendants intact")
}

func TestFlattenContainsSuperclass(t *testing.T) {
	reg := enabledBase(t)
	_, err := reg.DefineMixin("MLabel", class.MixinSpec{
		Properties: []class.Property{property.New("label").Init("")},
		Members:    map[string]class.Member{"describe": noop},
	})
	require.NoError(t, err)
	_, err = reg.Define("Control", class.Spec{
		Extend:     "Base",
		Include:    []string{"MLabel"},
		Properties: []class.Property{property.New("width").Init(0)},
		Members:    map[string]class.Member{"render": noop},
	})
	require.NoError(t, err)
	_, err = reg.Define("Button", class.Spec{
		Extend:     "Control",
		Properties: []class.Property{property.Refine("enabled").Init(false), property.New("icon").Nullable()},
		Members:    map[string]class.Member{"render": noop, "press": noop},
	})
	require.NoError(t, err)

	for _, pair := range [][2]string{{"Control", "Base"}, {"Button", "Control"}, {"Button", "Base"}} {
		t.Run(pair[0]+"_"+pair[1], func(t *testing.T) {
			sub, err := reg.Flatten(pair[0])
			require.NoError(t, err)
			super, err := reg.Flatten(pair[1])
			require.NoError(t, err)
			for _, p := range super.Properties() {
				_, ok := sub.Property(p.Name)
				assert.True(t, ok, "property %s", p.Name)
			}
			for _, m := range super.Members() {
				assert.True(t, sub.HasMember(m), "member %s", m)
			}
			assert.Subset(t, sub.Accessors(), super.Accessors())
		})
	}
}
