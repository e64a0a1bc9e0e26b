package class

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-openapi/inflect"

	"github.com/evandropoa/qooxdoo"
	"github.com/evandropoa/qooxdoo/schema/property"
)

type (
	// View is the flattened form of a class: every property, member and
	// forwarded state the class has after merging its superclass, its mixins
	// and its own declarations.
	View struct {
		class      *Definition
		generation uint64
		properties map[string]*ResolvedProperty
		order      []string
		members    map[string]*boundMember
		accessors  map[string]accessor
		forward    map[string]bool
	}

	// ResolvedProperty is a property as seen by a flattened class.
	ResolvedProperty struct {
		*property.Descriptor
		// Origin holds where the property was declared.
		Origin Origin
		// RefinedBy lists the classes that refined the property, root first.
		RefinedBy []string
	}

	// Origin describes where a property or member was declared.
	Origin struct {
		// Name of the declaring class or mixin.
		Name string
		// MixedIn indicates the declaration came from a mixin.
		MixedIn bool
		// Includer is the class that included the mixin.
		Includer string
	}

	// boundMember is a member resolved for a class. super holds the
	// implementation it overrides, captured at flatten time.
	boundMember struct {
		name   string
		fn     Member
		origin Origin
		super  *boundMember
	}

	accessor func(o *Object, args []any) (any, error)
)

// Class returns the class the view was built for.
func (v *View) Class() *Definition { return v.class }

// Generation returns the registry generation the view was built at.
func (v *View) Generation() uint64 { return v.generation }

// Property returns the resolved property name.
func (v *View) Property(name string) (*ResolvedProperty, bool) {
	p, ok := v.properties[name]
	return p, ok
}

// Properties returns all properties, inherited ones first.
func (v *View) Properties() []*ResolvedProperty {
	props := make([]*ResolvedProperty, 0, len(v.order))
	for _, name := range v.order {
		props = append(props, v.properties[name])
	}
	return props
}

// HasMember reports whether the class has the member name.
func (v *View) HasMember(name string) bool {
	_, ok := v.members[name]
	return ok
}

// Members returns the sorted names of all members.
func (v *View) Members() []string { return slices.Sorted(maps.Keys(v.members)) }

// MemberOrigin returns where the effective implementation of a member
// was declared.
func (v *View) MemberOrigin(name string) (Origin, bool) {
	m, ok := v.members[name]
	if !ok {
		return Origin{}, false
	}
	return m.origin, true
}

// Accessors returns the sorted names of the generated property accessors.
func (v *View) Accessors() []string { return slices.Sorted(maps.Keys(v.accessors)) }

// Forwards reports whether the class mirrors the state name from its
// forwarding children.
func (v *View) Forwards(name string) bool { return v.forward[name] }

// ForwardStates returns the sorted names of all forwarded states.
func (v *View) ForwardStates() []string { return slices.Sorted(maps.Keys(v.forward)) }

// Flatten resolves the class name into its cached view.
func (r *Registry) Flatten(name string) (*View, error) {
	d, err := r.Class(name)
	if err != nil {
		return nil, err
	}
	return r.FlattenClass(d)
}

// FlattenClass resolves d into its cached view. Repeated calls return the
// same View until d or its ancestry is redefined.
func (r *Registry) FlattenClass(d *Definition) (*View, error) {
	if v, ok := r.views[d]; ok {
		return v, nil
	}
	v, err := r.resolve(d)
	if err != nil {
		return nil, err
	}
	r.views[d] = v
	r.log.Debug("class flattened", "class", d.name, "generation", v.generation,
		"properties", len(v.order), "members", len(v.members))
	return v, nil
}

func (r *Registry) resolve(d *Definition) (*View, error) {
	v := &View{
		class:      d,
		generation: r.generation,
		properties: make(map[string]*ResolvedProperty),
		members:    make(map[string]*boundMember),
		accessors:  make(map[string]accessor),
		forward:    make(map[string]bool),
	}
	if d.superclass != nil {
		base, err := r.FlattenClass(d.superclass)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", d.name, err)
		}
		v.inherit(base)
	}
	for _, m := range d.mixins {
		origin := Origin{Name: m.name, MixedIn: true, Includer: d.name}
		if err := r.mergeProperties(v, m.properties, origin); err != nil {
			return nil, err
		}
		v.mergeMembers(m.members, origin)
	}
	own := Origin{Name: d.name}
	if err := r.mergeProperties(v, d.properties, own); err != nil {
		return nil, err
	}
	v.mergeMembers(d.members, own)
	for state, on := range d.forwardStates {
		if on {
			v.forward[state] = true
		} else {
			delete(v.forward, state)
		}
	}
	for _, name := range v.order {
		p := v.properties[name]
		if p.Apply != "" && !v.HasMember(p.Apply) {
			return nil, qooxdoo.NewDefinitionError(d.name, p.Apply,
				fmt.Sprintf("apply hook of property %q is not a member", name), nil)
		}
		v.synthesize(p)
	}
	return v, nil
}

// inherit copies the base view. Resolved properties are shared until a
// refinement replaces them.
func (v *View) inherit(base *View) {
	maps.Copy(v.properties, base.properties)
	v.order = slices.Clone(base.order)
	maps.Copy(v.members, base.members)
	maps.Copy(v.forward, base.forward)
}

func (r *Registry) mergeProperties(v *View, props []*property.Descriptor, origin Origin) error {
	class := v.class.name
	for _, pd := range props {
		existing, found := v.properties[pd.Name]
		if pd.Refine {
			if !found {
				return qooxdoo.NewInvalidRefinementError(class, pd.Name, "no inherited declaration to refine")
			}
			refined, err := refine(existing, pd, origin)
			if err != nil {
				return qooxdoo.NewInvalidRefinementError(class, pd.Name, err.Error())
			}
			v.properties[pd.Name] = refined
			continue
		}
		if found {
			// Later mixins of the same class win over earlier ones.
			if !(origin.MixedIn && existing.Origin.MixedIn && existing.Origin.Includer == class) {
				return qooxdoo.NewDuplicatePropertyError(class, pd.Name, existing.Origin.Name)
			}
			r.log.Warn("mixin property overridden by later mixin", "class", class,
				"property", pd.Name, "mixin", origin.Name, "overridden", existing.Origin.Name)
		} else {
			v.order = append(v.order, pd.Name)
		}
		v.properties[pd.Name] = &ResolvedProperty{Descriptor: pd, Origin: origin}
	}
	return nil
}

// refine applies a refinement on top of an inherited property. Only init
// and a narrowing of nullability may change.
func refine(base *ResolvedProperty, pd *property.Descriptor, origin Origin) (*ResolvedProperty, error) {
	switch {
	case pd.Check != nil:
		return nil, fmt.Errorf("refinement cannot redeclare the check")
	case pd.Apply != "":
		return nil, fmt.Errorf("refinement cannot redeclare the apply hook")
	case pd.Event != "":
		return nil, fmt.Errorf("refinement cannot redeclare the event")
	case pd.Equal != nil:
		return nil, fmt.Errorf("refinement cannot redeclare the equality")
	case pd.NullableSet && pd.Nullable && !base.Nullable:
		return nil, fmt.Errorf("refinement cannot make a non-nullable property nullable")
	}
	desc := base.Descriptor.Clone()
	if pd.NullableSet {
		desc.Nullable = pd.Nullable
	}
	if pd.HasInit {
		desc.Init = pd.Init
		desc.HasInit = true
	}
	if desc.HasInit {
		if err := desc.Validate(desc.Init); err != nil {
			return nil, fmt.Errorf("init value: %w", err)
		}
	}
	return &ResolvedProperty{
		Descriptor: desc,
		Origin:     base.Origin,
		RefinedBy:  append(slices.Clone(base.RefinedBy), origin.Name),
	}, nil
}

func (v *View) mergeMembers(mems map[string]Member, origin Origin) {
	for name, fn := range mems {
		v.members[name] = &boundMember{
			name:   name,
			fn:     fn,
			origin: origin,
			super:  v.members[name],
		}
	}
}

// synthesize generates the named accessors of p: get, set, reset and init,
// plus is and toggle for boolean properties.
func (v *View) synthesize(p *ResolvedProperty) {
	name := p.Name
	suffix := inflect.Capitalize(name)
	v.accessors["get"+suffix] = func(o *Object, _ []any) (any, error) {
		return o.Get(name)
	}
	v.accessors["set"+suffix] = func(o *Object, args []any) (any, error) {
		return nil, o.Set(name, arg(args, 0))
	}
	v.accessors["reset"+suffix] = func(o *Object, _ []any) (any, error) {
		return nil, o.Reset(name)
	}
	v.accessors["init"+suffix] = func(o *Object, args []any) (any, error) {
		return nil, o.Init(name, arg(args, 0))
	}
	if p.Check == property.Checker(property.Boolean) {
		v.accessors["is"+suffix] = v.accessors["get"+suffix]
		v.accessors["toggle"+suffix] = func(o *Object, _ []any) (any, error) {
			cur, err := o.Get(name)
			if err != nil {
				return nil, err
			}
			b, _ := cur.(bool)
			return nil, o.Set(name, !b)
		}
	}
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}
