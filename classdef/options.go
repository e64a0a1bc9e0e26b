package classdef

import (
	"log/slog"
	"runtime"
)

type config struct {
	catalog     *Catalog
	stubs       bool
	concurrency int
	log         *slog.Logger
}

func newConfig(opts []Option) *config {
	c := &config{
		catalog:     NewCatalog(),
		concurrency: runtime.GOMAXPROCS(0),
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures loading and applying manifests.
type Option func(*config)

// WithCatalog sets the catalog that member, constructor and check keys
// are resolved against.
func WithCatalog(cat *Catalog) Option {
	return func(c *config) {
		if cat != nil {
			c.catalog = cat
		}
	}
}

// WithStubMembers binds members missing from the catalog to a no-op body
// instead of failing. Code generation uses it to resolve classes whose
// behavior is not linked in.
func WithStubMembers() Option {
	return func(c *config) {
		c.stubs = true
	}
}

// WithConcurrency limits how many files are parsed in parallel.
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the logger used by Watcher.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}
