package classdef

import (
	"fmt"
	"strings"

	"github.com/evandropoa/qooxdoo"
	"github.com/evandropoa/qooxdoo/class"
	"github.com/evandropoa/qooxdoo/schema/property"
)

// instanceOfPrefix introduces a check accepting instances of a class.
const instanceOfPrefix = "instanceof:"

// Apply registers the mixins and classes declared by files on reg. Every
// declaration is bound against the catalog before anything is registered;
// binding failures are reported together and leave reg untouched. Mixins
// are then defined first, and classes superclass first, as one batch: if
// any definition fails, reg is restored to its state before the call.
// Applying the same manifests again redefines their classes.
func Apply(reg *class.Registry, files []*File, opts ...Option) error {
	cfg := newConfig(opts)
	mixins, classes, err := collect(files)
	if err != nil {
		return err
	}
	classes, err = sortClasses(classes)
	if err != nil {
		return err
	}
	var (
		errs       []error
		mixinSpecs = make([]class.MixinSpec, len(mixins))
		classSpecs = make([]class.Spec, len(classes))
	)
	for i, m := range mixins {
		mixinSpecs[i], err = cfg.mixinSpec(m)
		errs = append(errs, err)
	}
	for i, c := range classes {
		classSpecs[i], err = cfg.classSpec(c)
		errs = append(errs, err)
	}
	if err := qooxdoo.NewAggregateError(errs...); err != nil {
		return err
	}
	return reg.Batch(func() error {
		for i, m := range mixins {
			if _, err := reg.DefineMixin(m.Name, mixinSpecs[i]); err != nil {
				return fmt.Errorf("classdef: %s: %w", m.Pos, err)
			}
		}
		for i, c := range classes {
			if _, err := reg.Define(c.Name, classSpecs[i]); err != nil {
				return fmt.Errorf("classdef: %s: %w", c.Pos, err)
			}
		}
		return nil
	})
}

// collect gathers the declarations of all files and rejects names declared
// more than once.
func collect(files []*File) ([]*MixinDecl, []*ClassDecl, error) {
	var (
		mixins  []*MixinDecl
		classes []*ClassDecl
		seen    = make(map[string]string)
	)
	declare := func(name, pos string) error {
		if name == "" {
			return qooxdoo.NewDefinitionError("", "", pos+": missing name", nil)
		}
		if prev, ok := seen[name]; ok {
			return qooxdoo.NewDefinitionError(name, "", fmt.Sprintf("%s: already declared at %s", pos, prev), nil)
		}
		seen[name] = pos
		return nil
	}
	for _, f := range files {
		for _, m := range f.Mixins {
			if err := declare(m.Name, m.Pos); err != nil {
				return nil, nil, err
			}
			mixins = append(mixins, m)
		}
		for _, c := range f.Classes {
			if err := declare(c.Name, c.Pos); err != nil {
				return nil, nil, err
			}
			classes = append(classes, c)
		}
	}
	return mixins, classes, nil
}

// sortClasses orders classes so that every superclass declared in the set
// precedes its subclasses. Superclasses outside the set are expected to be
// registered already.
func sortClasses(classes []*ClassDecl) ([]*ClassDecl, error) {
	byName := make(map[string]*ClassDecl, len(classes))
	for _, c := range classes {
		byName[c.Name] = c
	}
	const (
		visiting = iota + 1
		done
	)
	var (
		state  = make(map[string]int, len(classes))
		sorted = make([]*ClassDecl, 0, len(classes))
		visit  func(c *ClassDecl) error
	)
	visit = func(c *ClassDecl) error {
		switch state[c.Name] {
		case done:
			return nil
		case visiting:
			return qooxdoo.NewDefinitionError(c.Name, "", c.Pos+": inheritance cycle", nil)
		}
		state[c.Name] = visiting
		if sup, ok := byName[c.Extend]; ok {
			if err := visit(sup); err != nil {
				return err
			}
		}
		state[c.Name] = done
		sorted = append(sorted, c)
		return nil
	}
	for _, c := range classes {
		if err := visit(c); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}

func (cfg *config) classSpec(c *ClassDecl) (class.Spec, error) {
	spec := class.Spec{
		Extend:        c.Extend,
		Include:       c.Include,
		ForwardStates: c.ForwardStates,
	}
	var err error
	if spec.Properties, err = cfg.properties(c.Name, c.Pos, c.Properties); err != nil {
		return spec, err
	}
	if spec.Members, err = cfg.members(c.Name, c.Pos, c.Members); err != nil {
		return spec, err
	}
	if c.Construct != "" {
		fn, ok := cfg.catalog.ctors[c.Construct]
		switch {
		case ok:
			spec.Construct = fn
		case !cfg.stubs:
			return spec, qooxdoo.NewDefinitionError(c.Name, "construct",
				fmt.Sprintf("%s: constructor %q is not in the catalog", c.Pos, c.Construct), nil)
		}
	}
	return spec, nil
}

func (cfg *config) mixinSpec(m *MixinDecl) (class.MixinSpec, error) {
	var (
		spec class.MixinSpec
		err  error
	)
	if spec.Properties, err = cfg.properties(m.Name, m.Pos, m.Properties); err != nil {
		return spec, err
	}
	spec.Members, err = cfg.members(m.Name, m.Pos, m.Members)
	return spec, err
}

func (cfg *config) members(owner, pos string, decls map[string]string) (map[string]class.Member, error) {
	if len(decls) == 0 {
		return nil, nil
	}
	mems := make(map[string]class.Member, len(decls))
	for name, key := range decls {
		if key == "" {
			key = name
		}
		fn, ok := cfg.catalog.members[key]
		switch {
		case ok:
			mems[name] = fn
		case cfg.stubs:
			mems[name] = stub
		default:
			return nil, qooxdoo.NewDefinitionError(owner, name,
				fmt.Sprintf("%s: member %q is not in the catalog", pos, key), nil)
		}
	}
	return mems, nil
}

func stub(*class.Call) (any, error) { return nil, nil }

func (cfg *config) properties(owner, pos string, decls []*PropertyDecl) ([]class.Property, error) {
	props := make([]class.Property, 0, len(decls))
	for _, pd := range decls {
		p, err := cfg.property(pd)
		if err != nil {
			return nil, qooxdoo.NewDefinitionError(owner, pd.Name, pos, err)
		}
		props = append(props, p)
	}
	return props, nil
}

func (cfg *config) property(pd *PropertyDecl) (class.Property, error) {
	b := property.New(pd.Name)
	if pd.Refine {
		b = property.Refine(pd.Name)
	}
	if pd.HasInit {
		b.Init(pd.Init)
	}
	if pd.Nullable != nil {
		if *pd.Nullable {
			b.Nullable()
		} else {
			b.NotNullable()
		}
	}
	if pd.Check != "" {
		chk, err := cfg.check(pd.Check)
		if err != nil {
			return nil, err
		}
		b.Check(chk)
	}
	switch pd.Equal {
	case "", "identical":
	case "deep":
		b.Equal(property.DeepEqual)
	default:
		return nil, fmt.Errorf("unknown equality %q", pd.Equal)
	}
	return b.Apply(pd.Apply).Event(pd.Event).Comment(pd.Comment), nil
}

func (cfg *config) check(name string) (property.Checker, error) {
	if chk, ok := property.Lookup(name); ok {
		return chk, nil
	}
	if cls, ok := strings.CutPrefix(name, instanceOfPrefix); ok {
		return class.InstanceOf(cls), nil
	}
	if chk, ok := cfg.catalog.checks[name]; ok {
		return chk, nil
	}
	return nil, fmt.Errorf("unknown check %q", name)
}
