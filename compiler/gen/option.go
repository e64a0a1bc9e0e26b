package gen

import (
	"go/token"
	"runtime"
)

// DefaultRuntimeImport is the import path of the class runtime the
// generated wrappers build on.
const DefaultRuntimeImport = "github.com/evandropoa/qooxdoo/class"

// DefaultHeader is written at the top of every generated file.
const DefaultHeader = "Code generated by qxgen. DO NOT EDIT."

// Config holds the generator configuration.
type Config struct {
	// Package is the name of the generated package.
	Package string
	// Header is the comment written above the package clause.
	Header string
	// RuntimeImport is the import path of the class package.
	RuntimeImport string
	// Workers limits how many files are rendered in parallel.
	Workers int
}

// Option configures code generation.
type Option func(*Config) error

// NewConfig returns the default configuration with opts applied.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Header:        DefaultHeader,
		RuntimeImport: DefaultRuntimeImport,
		Workers:       runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.Package == "" {
		return nil, NewConfigError("package", nil, "a name is required")
	}
	return c, nil
}

// WithPackage sets the name of the generated package.
func WithPackage(name string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(name) {
			return NewConfigError("package", name, "not a Go identifier")
		}
		c.Package = name
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithRuntimeImport sets the import path of the class runtime package,
// for projects vendoring it under a different path.
func WithRuntimeImport(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("runtime import", nil, "path cannot be empty")
		}
		c.RuntimeImport = path
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("workers", n, "must be positive")
		}
		c.Workers = n
		return nil
	}
}
