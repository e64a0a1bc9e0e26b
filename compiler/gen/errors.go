package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("qxgen: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("qxgen: code generation failed")
)

// optionFlags maps generator options to the qxgen flags setting them.
var optionFlags = map[string]string{
	"package": "-pkg",
	"workers": "-workers",
}

// ConfigError reports an invalid generator option. Flag names the qxgen
// command-line flag that sets the option, if there is one.
type ConfigError struct {
	Option  string
	Flag    string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("qxgen: invalid ")
	b.WriteString(e.Option)
	switch v := e.Value.(type) {
	case nil:
	case string:
		fmt.Fprintf(&b, " %q", v)
	default:
		fmt.Fprintf(&b, " %v", v)
	}
	if e.Flag != "" {
		fmt.Fprintf(&b, " (flag %s)", e.Flag)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError for option.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Flag:    optionFlags[option],
		Value:   value,
		Message: message,
	}
}

// IsConfigError reports whether err is a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// GenerationError reports a wrapper that could not be generated. Decl
// names the property or member whose declaration failed, Op the step
// that failed for the whole file (flatten, render, format or write).
type GenerationError struct {
	Class string
	Decl  string
	File  string
	Op    string
	Cause error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("qxgen: generating ")
	if e.Class != "" {
		b.WriteString(e.Class)
	} else {
		b.WriteString("wrappers")
	}
	if e.Decl != "" {
		b.WriteString(" ")
		b.WriteString(e.Decl)
	}
	if e.File != "" {
		b.WriteString(" into ")
		b.WriteString(e.File)
	}
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a GenerationError for a failed step of the
// wrapper file of class.
func NewGenerationError(class, file, op string, cause error) *GenerationError {
	return &GenerationError{
		Class: class,
		File:  file,
		Op:    op,
		Cause: cause,
	}
}

// newDeclError reports a property or member of class that has no valid
// wrapper, e.g. kind "property" and name "9lives".
func newDeclError(class, kind, name string, cause error) *GenerationError {
	return &GenerationError{
		Class: class,
		Decl:  fmt.Sprintf("%s %q", kind, name),
		Cause: cause,
	}
}

// IsGenerationError reports whether err is a GenerationError.
func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}
