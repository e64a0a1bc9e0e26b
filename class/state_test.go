package class_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evandropoa/qooxdoo"
	"github.com/evandropoa/qooxdoo/class"
)

func stateRegistry(t *testing.T) *class.Registry {
	t.Helper()
	reg := class.NewRegistry()
	_, err := reg.Define("Widget", class.Spec{})
	require.NoError(t, err)
	_, err = reg.Define("Container", class.Spec{
		Extend:        "Widget",
		ForwardStates: map[string]bool{"focused": true, "pressed": true},
	})
	require.NoError(t, err)
	return reg
}

func newObject(t *testing.T, reg *class.Registry, name string) *class.Object {
	t.Helper()
	o, err := reg.New(name)
	require.NoError(t, err)
	return o
}

func TestStates(t *testing.T) {
	reg := stateRegistry(t)
	o := newObject(t, reg, "Widget")
	var changes []class.StateChange
	o.AddListener(class.EventChangeState, func(e *class.Event) {
		changes = append(changes, e.Value.(class.StateChange))
	}, nil)

	assert.False(t, o.HasState("hovered"))
	o.AddState("hovered")
	o.AddState("hovered")
	o.AddState("disabled")
	assert.True(t, o.HasState("hovered"))
	assert.Equal(t, []string{"disabled", "hovered"}, o.States())

	o.RemoveState("hovered")
	o.RemoveState("hovered")
	o.RemoveState("never")
	assert.False(t, o.HasState("hovered"))
	assert.Equal(t, []class.StateChange{
		{Name: "hovered", Active: true},
		{Name: "disabled", Active: true},
		{Name: "hovered", Active: false},
	}, changes)
}

func TestForwardingRefCount(t *testing.T) {
	reg := stateRegistry(t)
	c := newObject(t, reg, "Container")
	x := newObject(t, reg, "Widget")
	y := newObject(t, reg, "Widget")
	require.NoError(t, c.AddForwardingChild(x))
	require.NoError(t, c.AddForwardingChild(y))

	x.AddState("focused")
	assert.True(t, c.HasState("focused"))
	y.AddState("focused")
	x.RemoveState("focused")
	assert.True(t, c.HasState("focused"), "y still holds the state")
	y.RemoveState("focused")
	assert.False(t, c.HasState("focused"))
}

func TestForwardingOnlyDeclaredStates(t *testing.T) {
	reg := stateRegistry(t)
	c := newObject(t, reg, "Container")
	x := newObject(t, reg, "Widget")
	require.NoError(t, c.AddForwardingChild(x))

	x.AddState("hovered")
	assert.False(t, c.HasState("hovered"))
	x.RemoveState("hovered")
	assert.False(t, c.HasState("hovered"))
}

func TestForwardingWithExplicitState(t *testing.T) {
	reg := stateRegistry(t)
	c := newObject(t, reg, "Container")
	x := newObject(t, reg, "Widget")
	require.NoError(t, c.AddForwardingChild(x))
	events := 0
	c.AddListener(class.EventChangeState, func(*class.Event) { events++ }, nil)

	c.AddState("pressed")
	x.AddState("pressed")
	c.RemoveState("pressed")
	assert.True(t, c.HasState("pressed"))
	x.RemoveState("pressed")
	assert.False(t, c.HasState("pressed"))
	assert.Equal(t, 2, events, "only effective transitions are reported")
}

func TestForwardingMirrorsExistingStates(t *testing.T) {
	reg := stateRegistry(t)
	c := newObject(t, reg, "Container")
	x := newObject(t, reg, "Widget")
	x.AddState("focused")

	require.NoError(t, c.AddForwardingChild(x))
	assert.True(t, c.HasState("focused"))
	require.NoError(t, c.AddForwardingChild(x), "adding twice is a no-op")

	assert.True(t, c.RemoveForwardingChild(x))
	assert.False(t, c.HasState("focused"))
	assert.Nil(t, x.ForwardingParent())
	assert.False(t, c.RemoveForwardingChild(x))
	assert.True(t, x.HasState("focused"))
}

func TestForwardingChain(t *testing.T) {
	reg := stateRegistry(t)
	outer := newObject(t, reg, "Container")
	inner := newObject(t, reg, "Container")
	leaf := newObject(t, reg, "Widget")
	require.NoError(t, outer.AddForwardingChild(inner))
	require.NoError(t, inner.AddForwardingChild(leaf))

	leaf.AddState("focused")
	assert.True(t, inner.HasState("focused"))
	assert.True(t, outer.HasState("focused"))
	leaf.RemoveState("focused")
	assert.False(t, outer.HasState("focused"))

	err := leaf.AddForwardingChild(outer)
	assert.True(t, qooxdoo.IsDefinitionError(err))
	err = outer.AddForwardingChild(outer)
	assert.True(t, qooxdoo.IsDefinitionError(err))
}

func TestForwardingReparent(t *testing.T) {
	reg := stateRegistry(t)
	a := newObject(t, reg, "Container")
	b := newObject(t, reg, "Container")
	x := newObject(t, reg, "Widget")
	x.AddState("focused")
	require.NoError(t, a.AddForwardingChild(x))
	require.NoError(t, b.AddForwardingChild(x))

	assert.False(t, a.HasState("focused"))
	assert.True(t, b.HasState("focused"))
	assert.Empty(t, a.ForwardingChildren())
	assert.Equal(t, []*class.Object{x}, b.ForwardingChildren())
	assert.Same(t, b, x.ForwardingParent())
}

func TestDisposeReleasesForwarding(t *testing.T) {
	reg := stateRegistry(t)
	c := newObject(t, reg, "Container")
	x := newObject(t, reg, "Widget")
	require.NoError(t, c.AddForwardingChild(x))
	x.AddState("focused")

	x.Dispose()
	assert.True(t, x.IsDisposed())
	assert.False(t, c.HasState("focused"))
	assert.Empty(t, c.ForwardingChildren())
}

func TestForwardingFollowsRedefinition(t *testing.T) {
	reg := stateRegistry(t)
	c := newObject(t, reg, "Container")
	x := newObject(t, reg, "Widget")
	require.NoError(t, c.AddForwardingChild(x))
	x.AddState("hovered")
	x.AddState("pressed")
	require.False(t, c.HasState("hovered"))
	require.True(t, c.HasState("pressed"))

	var changes []class.StateChange
	c.AddListener(class.EventChangeState, func(e *class.Event) {
		changes = append(changes, e.Value.(class.StateChange))
	}, nil)
	_, err := reg.Define("Container", class.Spec{
		Extend:        "Widget",
		ForwardStates: map[string]bool{"focused": true, "hovered": true},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"hovered"}, c.States())
	assert.Equal(t, []class.StateChange{
		{Name: "pressed", Active: false},
		{Name: "hovered", Active: true},
	}, changes)

	t.Run("later_changes", func(t *testing.T) {
		x.RemoveState("hovered")
		assert.False(t, c.HasState("hovered"))
		x.AddState("focused")
		assert.True(t, c.HasState("focused"))
		x.RemoveState("pressed")
		assert.Equal(t, []string{"focused"}, c.States())
	})
}
