package classdef

import (
	"maps"
	"slices"

	"github.com/evandropoa/qooxdoo/class"
	"github.com/evandropoa/qooxdoo/schema/mixin"
	"github.com/evandropoa/qooxdoo/schema/property"
)

// Catalog binds the keys used by manifests to Go members, constructors
// and checks.
type Catalog struct {
	members map[string]class.Member
	ctors   map[string]class.Constructor
	checks  map[string]property.Checker
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		members: make(map[string]class.Member),
		ctors:   make(map[string]class.Constructor),
		checks:  make(map[string]property.Checker),
	}
}

// Member registers fn under key.
func (c *Catalog) Member(key string, fn class.Member) *Catalog {
	c.members[key] = fn
	return c
}

// Constructor registers fn under key.
func (c *Catalog) Constructor(key string, fn class.Constructor) *Catalog {
	c.ctors[key] = fn
	return c
}

// Check registers a custom check under key.
func (c *Catalog) Check(key string, chk property.Checker) *Catalog {
	c.checks[key] = chk
	return c
}

// Mixin registers the members of m under "<mixin name>.<member>", so a
// manifest can reuse the Go implementation of a built-in mixin.
func (c *Catalog) Mixin(m mixin.Mixin) *Catalog {
	for name, fn := range m.Members() {
		c.members[m.Name()+"."+name] = fn
	}
	return c
}

// Keys returns the sorted member and constructor keys.
func (c *Catalog) Keys() []string {
	keys := slices.Collect(maps.Keys(c.members))
	keys = slices.AppendSeq(keys, maps.Keys(c.ctors))
	slices.Sort(keys)
	return slices.Compact(keys)
}
