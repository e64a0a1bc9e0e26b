package class

import (
	"cmp"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/evandropoa/qooxdoo"
	"github.com/evandropoa/qooxdoo/schema/property"
)

// Registry maps class and mixin names to their definitions and caches the
// flattened view of every resolved class.
type Registry struct {
	classes    map[string]*Definition
	mixins     map[string]*Mixin
	views      map[*Definition]*View
	generation uint64
	log        *slog.Logger
	newID      func() string
	factory    string
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		classes: make(map[string]*Definition),
		mixins:  make(map[string]*Mixin),
		views:   make(map[*Definition]*View),
		log:     slog.Default(),
		newID:   uuid.NewString,
		factory: DefaultChildControlFactory,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Generation returns the registry mutation counter. It is bumped by every
// successful Define and DefineMixin.
func (r *Registry) Generation() uint64 {
	return r.generation
}

// Define registers the class name. The class is flattened before Define
// returns, so structural errors such as invalid refinements or duplicate
// properties are reported here. Defining an existing name replaces its
// declaration and re-resolves the class and all of its descendants; if any
// of them no longer resolves the redefinition is rejected. On error nothing
// is changed.
func (r *Registry) Define(name string, spec Spec) (*Definition, error) {
	if name == "" {
		return nil, qooxdoo.NewDefinitionError("", "", "class name cannot be empty", nil)
	}
	existing := r.classes[name]
	next := &Definition{name: name}
	if spec.Extend != "" {
		sup, ok := r.classes[spec.Extend]
		if !ok {
			return nil, qooxdoo.NewUnknownSuperclassError(name, spec.Extend)
		}
		if existing != nil && sup.extends(existing) {
			return nil, qooxdoo.NewDefinitionError(name, "", fmt.Sprintf("inheritance cycle through %q", spec.Extend), nil)
		}
		next.superclass = sup
	}
	seen := make(map[string]struct{}, len(spec.Include))
	for _, mn := range spec.Include {
		m, ok := r.mixins[mn]
		if !ok {
			return nil, qooxdoo.NewUnknownMixinError(name, mn)
		}
		if _, dup := seen[mn]; dup {
			return nil, qooxdoo.NewDefinitionError(name, mn, "mixin included twice", nil)
		}
		seen[mn] = struct{}{}
		next.mixins = append(next.mixins, m)
	}
	props, err := descriptors(name, spec.Properties)
	if err != nil {
		return nil, err
	}
	next.properties = props
	if next.members, err = members(name, spec.Members); err != nil {
		return nil, err
	}
	next.construct = spec.Construct
	next.forwardStates = maps.Clone(spec.ForwardStates)

	if existing == nil {
		if _, err := r.commit(
			func() { r.classes[name] = next },
			func() { delete(r.classes, name) },
			func(d *Definition) bool { return d == next },
		); err != nil {
			return nil, err
		}
		r.log.Debug("class defined", "class", name, "extend", spec.Extend, "include", spec.Include)
		return next, nil
	}
	next.version = existing.version + 1
	prev := *existing
	n, err := r.commit(
		func() { *existing = *next },
		func() { *existing = prev },
		func(d *Definition) bool { return d.extends(existing) },
	)
	if err != nil {
		return nil, err
	}
	r.log.Debug("class redefined", "class", name, "version", existing.version, "invalidated", n)
	return existing, nil
}

// DefineMixin registers the mixin name. Redefining a mixin re-resolves
// every class including it and their descendants, and is rejected when
// one of them no longer resolves.
func (r *Registry) DefineMixin(name string, spec MixinSpec) (*Mixin, error) {
	if name == "" {
		return nil, qooxdoo.NewDefinitionError("", "", "mixin name cannot be empty", nil)
	}
	props, err := descriptors(name, spec.Properties)
	if err != nil {
		return nil, err
	}
	mems, err := members(name, spec.Members)
	if err != nil {
		return nil, err
	}
	next := &Mixin{name: name, properties: props, members: mems}

	existing, ok := r.mixins[name]
	if !ok {
		r.generation++
		r.mixins[name] = next
		r.log.Debug("mixin defined", "mixin", name)
		return next, nil
	}
	next.version = existing.version + 1
	prev := *existing
	n, err := r.commit(
		func() { *existing = *next },
		func() { *existing = prev },
		func(d *Definition) bool { return d.includes(existing) },
	)
	if err != nil {
		return nil, err
	}
	r.log.Debug("mixin redefined", "mixin", name, "version", existing.version, "invalidated", n)
	return existing, nil
}

// Batch runs fn, which is expected to define classes and mixins on r. If
// fn fails, every class and mixin defined or redefined during the call is
// restored to its previous declaration and the error is returned.
func (r *Registry) Batch(fn func() error) error {
	var (
		classes = maps.Clone(r.classes)
		mixins  = maps.Clone(r.mixins)
		views   = maps.Clone(r.views)
		gen     = r.generation
		defs    = make(map[*Definition]Definition, len(r.classes))
		mdefs   = make(map[*Mixin]Mixin, len(r.mixins))
	)
	for _, d := range r.classes {
		defs[d] = *d
	}
	for _, m := range r.mixins {
		mdefs[m] = *m
	}
	if err := fn(); err != nil {
		for d, prev := range defs {
			*d = prev
		}
		for m, prev := range mdefs {
			*m = prev
		}
		r.classes, r.mixins, r.views, r.generation = classes, mixins, views, gen
		r.log.Debug("definitions rolled back", "error", err)
		return err
	}
	return nil
}

// Class returns the definition registered under name.
func (r *Registry) Class(name string) (*Definition, error) {
	d, ok := r.classes[name]
	if !ok {
		return nil, qooxdoo.NewClassNotFoundError(name)
	}
	return d, nil
}

// Mixin returns the mixin registered under name.
func (r *Registry) Mixin(name string) (*Mixin, error) {
	m, ok := r.mixins[name]
	if !ok {
		return nil, fmt.Errorf("%w: mixin %q", qooxdoo.ErrUnknownMixin, name)
	}
	return m, nil
}

// Classes returns the sorted names of all registered classes.
func (r *Registry) Classes() []string {
	return slices.Sorted(maps.Keys(r.classes))
}

// Mixins returns the sorted names of all registered mixins.
func (r *Registry) Mixins() []string {
	return slices.Sorted(maps.Keys(r.mixins))
}

// IsSubclassOf reports whether the class name is ancestor or extends it,
// directly or transitively.
func (r *Registry) IsSubclassOf(name, ancestor string) (bool, error) {
	d, err := r.Class(name)
	if err != nil {
		return false, err
	}
	anc, err := r.Class(ancestor)
	if err != nil {
		return false, err
	}
	return d.extends(anc), nil
}

// Includes reports whether the class name or one of its ancestors includes
// the mixin.
func (r *Registry) Includes(name, mixin string) (bool, error) {
	d, err := r.Class(name)
	if err != nil {
		return false, err
	}
	m, err := r.Mixin(mixin)
	if err != nil {
		return false, err
	}
	return d.includes(m), nil
}

// commit applies a declaration change and resolves every class matching
// affected against it, superclasses first. If any of them fails to
// resolve, undo restores the previous declaration, the view cache and the
// generation, and the error is returned. It reports how many cached views
// the change invalidated.
func (r *Registry) commit(apply, undo func(), affected func(*Definition) bool) (int, error) {
	views := maps.Clone(r.views)
	gen := r.generation
	r.generation++
	apply()
	n := r.invalidate(affected)

	var defs []*Definition
	for _, d := range r.classes {
		if affected(d) {
			defs = append(defs, d)
		}
	}
	slices.SortFunc(defs, func(a, b *Definition) int {
		if c := cmp.Compare(len(a.chain()), len(b.chain())); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
	for _, d := range defs {
		if _, err := r.FlattenClass(d); err != nil {
			undo()
			r.views = views
			r.generation = gen
			return 0, err
		}
	}
	return n, nil
}

// invalidate drops every cached view whose class matches affected and
// returns how many were dropped.
func (r *Registry) invalidate(affected func(*Definition) bool) int {
	n := 0
	for d := range r.views {
		if affected(d) {
			delete(r.views, d)
			n++
		}
	}
	return n
}

func descriptors(owner string, props []Property) ([]*property.Descriptor, error) {
	descs := make([]*property.Descriptor, 0, len(props))
	seen := make(map[string]struct{}, len(props))
	for _, p := range props {
		if p == nil {
			return nil, qooxdoo.NewDefinitionError(owner, "", "nil property", nil)
		}
		pd := p.Descriptor()
		if pd.Err != nil {
			return nil, qooxdoo.NewDefinitionError(owner, pd.Name, "invalid property", pd.Err)
		}
		if _, dup := seen[pd.Name]; dup {
			return nil, qooxdoo.NewDuplicatePropertyError(owner, pd.Name, owner)
		}
		seen[pd.Name] = struct{}{}
		descs = append(descs, pd.Clone())
	}
	return descs, nil
}

func members(owner string, mems map[string]Member) (map[string]Member, error) {
	out := make(map[string]Member, len(mems))
	for name, fn := range mems {
		switch {
		case name == "":
			return nil, qooxdoo.NewDefinitionError(owner, "", "member name cannot be empty", nil)
		case fn == nil:
			return nil, qooxdoo.NewDefinitionError(owner, name, "member has no body", nil)
		}
		out[name] = fn
	}
	return out, nil
}
