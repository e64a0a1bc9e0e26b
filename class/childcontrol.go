package class

import (
	"fmt"
	"slices"

	"github.com/evandropoa/qooxdoo"
)

// CreateChildControl creates the sub-instance id by invoking the class's
// child control factory member with id. A factory that does not know the
// id should delegate to c.Super. The created control is registered under
// id and becomes a forwarding child of o.
func (o *Object) CreateChildControl(id string) (*Object, error) {
	if _, ok := o.controls[id]; ok {
		return nil, qooxdoo.NewDuplicateChildControlError(o.class.name, id)
	}
	v, err := o.View()
	if err != nil {
		return nil, err
	}
	factory, ok := v.members[o.reg.factory]
	if !ok {
		return nil, qooxdoo.NewChildControlNotFoundError(o.class.name, id,
			fmt.Sprintf("class has no %s member", o.reg.factory))
	}
	res, err := o.invoke(factory, []any{id})
	if err != nil {
		return nil, fmt.Errorf("qx: creating child control %q of %s: %w", id, o.class.name, err)
	}
	child, ok := res.(*Object)
	switch {
	case res == nil || (ok && child == nil):
		return nil, qooxdoo.NewChildControlNotFoundError(o.class.name, id, "factory created nothing")
	case !ok:
		return nil, qooxdoo.NewChildControlNotFoundError(o.class.name, id,
			fmt.Sprintf("factory returned %T", res))
	case child == o:
		return nil, qooxdoo.NewDefinitionError(o.class.name, id, "child control cannot be its owner", nil)
	case child.owner != nil:
		return nil, qooxdoo.NewDefinitionError(o.class.name, id,
			fmt.Sprintf("%s is already child control %q of %s", child, child.controlID, child.owner), nil)
	}
	if err := o.AddForwardingChild(child); err != nil {
		return nil, err
	}
	if o.controls == nil {
		o.controls = make(map[string]*Object)
	}
	o.controls[id] = child
	o.order = append(o.order, id)
	child.owner = o
	child.controlID = id
	return child, nil
}

// GetChildControl returns the child control id.
func (o *Object) GetChildControl(id string) (*Object, error) {
	c, ok := o.controls[id]
	if !ok {
		return nil, qooxdoo.NewChildControlNotFoundError(o.class.name, id, "never created")
	}
	return c, nil
}

// HasChildControl reports whether the child control id was created.
func (o *Object) HasChildControl(id string) bool {
	_, ok := o.controls[id]
	return ok
}

// ChildControls returns the ids of the created controls in creation order.
func (o *Object) ChildControls() []string { return slices.Clone(o.order) }

// Owner returns the instance o is a child control of, if any.
func (o *Object) Owner() *Object { return o.owner }

// ControlID returns the id o was created under by its owner.
func (o *Object) ControlID() string { return o.controlID }

func (o *Object) releaseControl(id string) {
	delete(o.controls, id)
	if i := slices.Index(o.order, id); i >= 0 {
		o.order = slices.Delete(o.order, i, i+1)
	}
}
