package class

import "fmt"

// Call is passed to every member invocation.
type Call struct {
	// Self is the receiving instance.
	Self *Object
	// Args holds the call arguments.
	Args   []any
	member *boundMember
}

// Name returns the invoked member name.
func (c *Call) Name() string { return c.member.name }

// Arg returns the i-th argument, or nil if absent.
func (c *Call) Arg(i int) any { return arg(c.Args, i) }

// HasSuper reports whether the member overrides an inherited implementation.
func (c *Call) HasSuper() bool { return c.member.super != nil }

// Super invokes the implementation this member overrides, with the given
// arguments. It returns (nil, nil) when there is none.
func (c *Call) Super(args ...any) (any, error) {
	if c.member.super == nil {
		return nil, nil
	}
	return c.Self.invoke(c.member.super, args)
}

// invoke runs m on o, converting panics into errors.
func (o *Object) invoke(m *boundMember, args []any) (res any, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%s.%s panics: %v", m.origin.Name, m.name, v)
			res = nil
		}
	}()
	return m.fn(&Call{Self: o, Args: args, member: m})
}

// safeConstruct wraps a constructor with recover.
func safeConstruct(d *Definition, o *Object, args []any) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%s constructor panics: %v", d.name, v)
		}
	}()
	return d.construct(o, args...)
}
