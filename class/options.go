package class

import "log/slog"

// DefaultChildControlFactory is the member invoked by CreateChildControl
// unless the registry is configured otherwise.
const DefaultChildControlFactory = "_createChildControlImpl"

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for definition and resolution events.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithIDFunc sets the generator for Object IDs. Defaults to random UUIDs.
func WithIDFunc(fn func() string) Option {
	return func(r *Registry) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// WithChildControlFactory sets the member name invoked by CreateChildControl.
func WithChildControlFactory(member string) Option {
	return func(r *Registry) {
		if member != "" {
			r.factory = member
		}
	}
}
