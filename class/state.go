package class

import (
	"maps"
	"slices"

	"github.com/evandropoa/qooxdoo"
)

// stateSet holds the explicit states of an instance and the states mirrored
// from its forwarding children. A state is active while it is set
// explicitly or at least one child contributes it. view is the class view
// the mirrored states were last reconciled with.
type stateSet struct {
	own       map[string]struct{}
	forwarded map[string]int
	contrib   map[*Object]map[string]struct{}
	view      *View
}

func newStateSet() stateSet {
	return stateSet{
		own:       make(map[string]struct{}),
		forwarded: make(map[string]int),
		contrib:   make(map[*Object]map[string]struct{}),
	}
}

func (s *stateSet) active(name string) bool {
	_, ok := s.own[name]
	return ok || s.forwarded[name] > 0
}

// AddState turns the state name on.
func (o *Object) AddState(name string) {
	o.syncForwarded()
	before := o.states.active(name)
	o.states.own[name] = struct{}{}
	if !before {
		o.stateChanged(name, true)
	}
}

// RemoveState turns the explicit state name off. The state stays active
// while a forwarding child still holds it.
func (o *Object) RemoveState(name string) {
	o.syncForwarded()
	if _, ok := o.states.own[name]; !ok {
		return
	}
	delete(o.states.own, name)
	if !o.states.active(name) {
		o.stateChanged(name, false)
	}
}

// HasState reports whether the state name is active.
func (o *Object) HasState(name string) bool {
	o.syncForwarded()
	return o.states.active(name)
}

// States returns the sorted names of all active states.
func (o *Object) States() []string {
	o.syncForwarded()
	names := make(map[string]struct{}, len(o.states.own)+len(o.states.forwarded))
	maps.Copy(names, o.states.own)
	for name, n := range o.states.forwarded {
		if n > 0 {
			names[name] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(names))
}

// AddForwardingChild designates child as a source of forwarded states. The
// states the child already holds are mirrored at once. A child has at most
// one container: adding it elsewhere detaches it from the previous one.
//
// When the class of o is redefined to forward more or fewer states, the
// mirrored states follow on the next state access of o.
func (o *Object) AddForwardingChild(child *Object) error {
	if child == nil {
		return qooxdoo.NewDefinitionError(o.class.name, "", "nil forwarding child", nil)
	}
	for p := o; p != nil; p = p.forwardParent {
		if p == child {
			return qooxdoo.NewDefinitionError(o.class.name, "",
				"forwarding "+child.String()+" into "+o.String()+" creates a cycle", nil)
		}
	}
	if child.forwardParent == o {
		return nil
	}
	if prev := child.forwardParent; prev != nil {
		prev.RemoveForwardingChild(child)
	}
	child.forwardParent = o
	o.forwardChildren = append(o.forwardChildren, child)
	for _, name := range child.States() {
		o.forwardedChange(child, name, true)
	}
	return nil
}

// RemoveForwardingChild withdraws every state child contributes. It reports
// whether child was a forwarding child of o.
func (o *Object) RemoveForwardingChild(child *Object) bool {
	i := slices.Index(o.forwardChildren, child)
	if i < 0 {
		return false
	}
	o.forwardChildren = slices.Delete(o.forwardChildren, i, i+1)
	child.forwardParent = nil
	for _, name := range slices.Sorted(maps.Keys(o.states.contrib[child])) {
		o.forwardedChange(child, name, false)
	}
	delete(o.states.contrib, child)
	return true
}

// ForwardingChildren returns the designated children, in insertion order.
func (o *Object) ForwardingChildren() []*Object {
	return slices.Clone(o.forwardChildren)
}

// ForwardingParent returns the container o forwards its states to.
func (o *Object) ForwardingParent() *Object { return o.forwardParent }

// stateChanged notifies listeners of an effective transition and mirrors
// it onto the container.
func (o *Object) stateChanged(name string, active bool) {
	o.Fire(EventChangeState, StateChange{Name: name, Active: active}, StateChange{Name: name, Active: !active})
	if p := o.forwardParent; p != nil {
		p.forwardedChange(o, name, active)
	}
}

// forwardedChange records that child started or stopped holding name.
// Each child counts at most once per state.
func (o *Object) forwardedChange(child *Object, name string, active bool) {
	o.syncForwarded()
	held := o.states.contrib[child]
	_, has := held[name]
	switch {
	case active && !has:
		if !o.forwards(name) {
			return
		}
		if held == nil {
			held = make(map[string]struct{})
			o.states.contrib[child] = held
		}
		held[name] = struct{}{}
		before := o.states.active(name)
		o.states.forwarded[name]++
		if !before {
			o.stateChanged(name, true)
		}
	case !active && has:
		delete(held, name)
		o.states.forwarded[name]--
		if o.states.forwarded[name] <= 0 {
			delete(o.states.forwarded, name)
		}
		if !o.states.active(name) {
			o.stateChanged(name, false)
		}
	}
}

func (o *Object) forwards(name string) bool {
	v, err := o.View()
	if err != nil {
		o.reg.log.Warn("state not forwarded", "class", o.class.name, "state", name, "error", err)
		return false
	}
	return v.Forwards(name)
}

// syncForwarded reconciles the mirrored states with the current view of
// the class: states the children hold and the view now forwards are
// mirrored, states it no longer forwards are withdrawn.
func (o *Object) syncForwarded() {
	if len(o.forwardChildren) == 0 && len(o.states.contrib) == 0 {
		return
	}
	v, err := o.View()
	if err != nil || v == o.states.view {
		return
	}
	o.states.view = v
	for _, child := range slices.Clone(o.forwardChildren) {
		for _, name := range slices.Sorted(maps.Keys(o.states.contrib[child])) {
			if !v.Forwards(name) {
				o.forwardedChange(child, name, false)
			}
		}
		for _, name := range child.States() {
			if v.Forwards(name) {
				o.forwardedChange(child, name, true)
			}
		}
	}
}
