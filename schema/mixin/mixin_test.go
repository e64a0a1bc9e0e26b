package mixin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evandropoa/qooxdoo"
	"github.com/evandropoa/qooxdoo/class"
	"github.com/evandropoa/qooxdoo/schema/mixin"
	"github.com/evandropoa/qooxdoo/schema/property"
)

// TestSchemaBaseMixin tests the base Schema mixin.
func TestSchemaBaseMixin(t *testing.T) {
	m := mixin.Schema{}

	t.Run("returns_nil_properties", func(t *testing.T) {
		assert.Nil(t, m.Properties())
	})

	t.Run("returns_nil_members", func(t *testing.T) {
		assert.Nil(t, m.Members())
	})
}

type sizable struct {
	mixin.Schema
}

func (sizable) Name() string { return "MSizable" }

func (sizable) Properties() []class.Property {
	return []class.Property{
		property.New("width").Nullable().Check(property.Integer),
	}
}

// TestCustomMixin tests a mixin embedding Schema.
func TestCustomMixin(t *testing.T) {
	spec := mixin.Spec(sizable{})
	require.Len(t, spec.Properties, 1)
	assert.Equal(t, "width", spec.Properties[0].Descriptor().Name)
	assert.Nil(t, spec.Members)
}

func TestRegister(t *testing.T) {
	reg := class.NewRegistry()
	require.NoError(t, mixin.Register(reg, append(mixin.Builtin(), sizable{})...))
	assert.Equal(t, []string{"MAppearance", "MEnabled", "MFocusable", "MSizable"}, reg.Mixins())

	t.Run("named", func(t *testing.T) {
		require.NoError(t, mixin.Register(reg, mixin.Named(mixin.Enabled{}, "qx.ui.core.MEnabled")))
		m, err := reg.Mixin("qx.ui.core.MEnabled")
		require.NoError(t, err)
		assert.Equal(t, []string{"_applyEnabled"}, m.Members())
	})

	t.Run("errors", func(t *testing.T) {
		err := mixin.Register(reg, mixin.Named(sizable{}, ""), mixin.Named(mixin.Enabled{}, ""))
		require.Error(t, err)
		assert.True(t, qooxdoo.IsDefinitionError(err))
		var agg *qooxdoo.AggregateError
		require.ErrorAs(t, err, &agg)
		assert.Len(t, agg.Errors, 2)
	})
}

func TestEnabled(t *testing.T) {
	reg := class.NewRegistry()
	require.NoError(t, mixin.Register(reg, mixin.Enabled{}))
	_, err := reg.Define("Button", class.Spec{Include: []string{"MEnabled"}})
	require.NoError(t, err)
	btn, err := reg.New("Button")
	require.NoError(t, err)

	require.NoError(t, btn.Set("enabled", false))
	assert.True(t, btn.HasState("disabled"))
	_, err = btn.Call("toggleEnabled")
	require.NoError(t, err)
	assert.False(t, btn.HasState("disabled"))
}

func TestFocusable(t *testing.T) {
	reg := class.NewRegistry()
	require.NoError(t, mixin.Register(reg, mixin.Focusable{}))
	_, err := reg.Define("Widget", class.Spec{Include: []string{"MFocusable"}})
	require.NoError(t, err)
	w, err := reg.New("Widget")
	require.NoError(t, err)

	ok, err := w.Call("focus")
	require.NoError(t, err)
	assert.Equal(t, false, ok, "not focusable by default")
	assert.False(t, w.HasState("focused"))

	require.NoError(t, w.Set("focusable", true))
	ok, err = w.Call("focus")
	require.NoError(t, err)
	assert.Equal(t, true, ok)
	focused, _ := w.Call("isFocused")
	assert.Equal(t, true, focused)

	_, err = w.Call("blur")
	require.NoError(t, err)
	assert.False(t, w.HasState("focused"))
}

// comboBox registers a small widget hierarchy shaped like a combo box: a
// composite made of a text field and a button that looks focused whenever
// its text field is.
func comboBox(t *testing.T) *class.Registry {
	t.Helper()
	reg := class.NewRegistry()
	require.NoError(t, mixin.Register(reg, mixin.Builtin()...))
	define := func(name string, spec class.Spec) {
		_, err := reg.Define(name, spec)
		require.NoError(t, err)
	}
	define("Widget", class.Spec{Include: []string{"MEnabled", "MFocusable", "MAppearance"}})
	define("TextField", class.Spec{
		Extend: "Widget",
		Properties: []class.Property{
			property.Refine("focusable").Init(true),
			property.Refine("appearance").Init("textfield"),
		},
	})
	define("Button", class.Spec{
		Extend:     "Widget",
		Properties: []class.Property{property.Refine("appearance").Init("button")},
	})
	define("AbstractSelectBox", class.Spec{
		Extend: "Widget",
		Members: map[string]class.Member{
			"_createChildControlImpl": func(c *class.Call) (any, error) {
				if c.Arg(0) == "list" {
					return c.Self.Registry().New("Widget")
				}
				return nil, nil
			},
		},
	})
	define("ComboBox", class.Spec{
		Extend: "AbstractSelectBox",
		Properties: []class.Property{
			property.Refine("focusable").Init(true),
			property.Refine("appearance").Init("combobox"),
		},
		ForwardStates: map[string]bool{"focused": true},
		Construct: func(self *class.Object, _ ...any) error {
			for _, id := range []string{"textfield", "button"} {
				if _, err := self.CreateChildControl(id); err != nil {
					return err
				}
			}
			return nil
		},
		Members: map[string]class.Member{
			"_createChildControlImpl": func(c *class.Call) (any, error) {
				var name string
				switch c.Arg(0) {
				case "textfield":
					name = "TextField"
				case "button":
					name = "Button"
				default:
					return c.Super(c.Args...)
				}
				control, err := c.Self.Registry().New(name)
				if err != nil {
					return nil, err
				}
				return control, control.Set("focusable", false)
			},
			"tabFocus": func(c *class.Call) (any, error) {
				tf, err := c.Self.GetChildControl("textfield")
				if err != nil {
					return nil, err
				}
				tf.AddState("focused")
				return nil, nil
			},
		},
	})
	return reg
}

func TestComboBox(t *testing.T) {
	reg := comboBox(t)
	cb, err := reg.New("ComboBox")
	require.NoError(t, err)

	assert.Equal(t, []string{"textfield", "button"}, cb.ChildControls())
	appearance, _ := cb.Get("appearance")
	assert.Equal(t, "combobox", appearance)
	focusable, _ := cb.Get("focusable")
	assert.Equal(t, true, focusable)

	tf, err := cb.GetChildControl("textfield")
	require.NoError(t, err)
	focusable, _ = tf.Get("focusable")
	assert.Equal(t, false, focusable)
	appearance, _ = tf.Get("appearance")
	assert.Equal(t, "textfield", appearance)

	t.Run("focus_forwarding", func(t *testing.T) {
		_, err := cb.Call("tabFocus")
		require.NoError(t, err)
		assert.True(t, cb.HasState("focused"))

		btn, err := cb.GetChildControl("button")
		require.NoError(t, err)
		btn.AddState("focused")
		assert.False(t, cb.HasState("pressed"))

		tf.RemoveState("focused")
		assert.True(t, cb.HasState("focused"), "button still focused")
		btn.RemoveState("focused")
		assert.False(t, cb.HasState("focused"))
	})

	t.Run("inherited_factory", func(t *testing.T) {
		list, err := cb.CreateChildControl("list")
		require.NoError(t, err)
		assert.Equal(t, "Widget", list.Class().Name())
		_, err = cb.CreateChildControl("popup")
		assert.True(t, qooxdoo.IsChildControlNotFound(err))
	})

	t.Run("disable", func(t *testing.T) {
		require.NoError(t, cb.Set("enabled", false))
		assert.True(t, cb.HasState("disabled"))
		assert.False(t, tf.HasState("disabled"), "states flow from child to container only")
	})
}
