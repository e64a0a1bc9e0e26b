// Package qooxdoo holds the error taxonomy shared by the class runtime
// packages. The runtime itself lives in the class package; declarative
// manifests live in classdef and static accessor generation in compiler/gen.
package qooxdoo

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors. Every typed error below reports true for
// errors.Is against its sentinel.
var (
	// ErrClassNotFound is returned when a class name is not registered.
	ErrClassNotFound = errors.New("qx: class not found")

	// ErrUnknownSuperclass is returned when a class extends an unregistered class.
	ErrUnknownSuperclass = errors.New("qx: unknown superclass")

	// ErrUnknownMixin is returned when a class includes an unregistered mixin.
	ErrUnknownMixin = errors.New("qx: unknown mixin")

	// ErrDuplicateProperty is returned when a non-refine property collides
	// with an inherited one.
	ErrDuplicateProperty = errors.New("qx: duplicate property")

	// ErrInvalidRefinement is returned when a refinement has nothing to refine
	// or tries to change more than init and nullability.
	ErrInvalidRefinement = errors.New("qx: invalid refinement")

	// ErrPropertyValidation is returned when a value fails nullable or check.
	ErrPropertyValidation = errors.New("qx: property validation failed")

	// ErrPropertyNotFound is returned when accessing an undeclared property.
	ErrPropertyNotFound = errors.New("qx: property not found")

	// ErrDuplicateChildControl is returned when a child control id is created twice.
	ErrDuplicateChildControl = errors.New("qx: duplicate child control")

	// ErrChildControlNotFound is returned when a child control id is unknown.
	ErrChildControlNotFound = errors.New("qx: child control not found")

	// ErrMemberNotFound is returned when calling an undeclared member.
	ErrMemberNotFound = errors.New("qx: member not found")

	// ErrInvalidDefinition is returned for malformed class or mixin declarations.
	ErrInvalidDefinition = errors.New("qx: invalid definition")

	// ErrApplyFailed is returned when a property apply hook fails.
	ErrApplyFailed = errors.New("qx: apply hook failed")

	// ErrNotConstructing is returned when Init is called outside construction.
	ErrNotConstructing = errors.New("qx: property init outside construction")
)

// ClassNotFoundError reports a lookup of an unregistered class.
type ClassNotFoundError struct {
	Name string
}

// Error returns the error string.
func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("qx: class %q not found", e.Name)
}

// Is reports whether the target error matches ErrClassNotFound.
func (e *ClassNotFoundError) Is(err error) bool {
	return err == ErrClassNotFound
}

// NewClassNotFoundError returns a new ClassNotFoundError.
func NewClassNotFoundError(name string) *ClassNotFoundError {
	return &ClassNotFoundError{Name: name}
}

// IsClassNotFound returns true if the error is a ClassNotFoundError.
func IsClassNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *ClassNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrClassNotFound)
}

// UnknownSuperclassError reports an extend clause naming an unregistered class.
type UnknownSuperclassError struct {
	Class      string
	Superclass string
}

// Error returns the error string.
func (e *UnknownSuperclassError) Error() string {
	return fmt.Sprintf("qx: class %q extends unknown class %q", e.Class, e.Superclass)
}

// Is reports whether the target error matches ErrUnknownSuperclass.
func (e *UnknownSuperclassError) Is(err error) bool {
	return err == ErrUnknownSuperclass
}

// NewUnknownSuperclassError returns a new UnknownSuperclassError.
func NewUnknownSuperclassError(class, superclass string) *UnknownSuperclassError {
	return &UnknownSuperclassError{Class: class, Superclass: superclass}
}

// IsUnknownSuperclass returns true if the error is an UnknownSuperclassError.
func IsUnknownSuperclass(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownSuperclassError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownSuperclass)
}

// UnknownMixinError reports an include clause naming an unregistered mixin.
type UnknownMixinError struct {
	Class string
	Mixin string
}

// Error returns the error string.
func (e *UnknownMixinError) Error() string {
	return fmt.Sprintf("qx: class %q includes unknown mixin %q", e.Class, e.Mixin)
}

// Is reports whether the target error matches ErrUnknownMixin.
func (e *UnknownMixinError) Is(err error) bool {
	return err == ErrUnknownMixin
}

// NewUnknownMixinError returns a new UnknownMixinError.
func NewUnknownMixinError(class, mixin string) *UnknownMixinError {
	return &UnknownMixinError{Class: class, Mixin: mixin}
}

// IsUnknownMixin returns true if the error is an UnknownMixinError.
func IsUnknownMixin(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownMixinError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownMixin)
}

// DuplicatePropertyError reports a property declared again without refine.
type DuplicatePropertyError struct {
	Class    string // class being flattened
	Property string
	Origin   string // class or mixin that declared it first
}

// Error returns the error string.
func (e *DuplicatePropertyError) Error() string {
	return fmt.Sprintf("qx: property %q redeclared by %q (already declared by %q); use refine to override it",
		e.Property, e.Class, e.Origin)
}

// Is reports whether the target error matches ErrDuplicateProperty.
func (e *DuplicatePropertyError) Is(err error) bool {
	return err == ErrDuplicateProperty
}

// NewDuplicatePropertyError returns a new DuplicatePropertyError.
func NewDuplicatePropertyError(class, property, origin string) *DuplicatePropertyError {
	return &DuplicatePropertyError{Class: class, Property: property, Origin: origin}
}

// IsDuplicateProperty returns true if the error is a DuplicatePropertyError.
func IsDuplicateProperty(err error) bool {
	if err == nil {
		return false
	}
	var e *DuplicatePropertyError
	return errors.As(err, &e) || errors.Is(err, ErrDuplicateProperty)
}

// InvalidRefinementError reports a refine entry that is not allowed.
type InvalidRefinementError struct {
	Class    string
	Property string
	Reason   string
}

// Error returns the error string.
func (e *InvalidRefinementError) Error() string {
	return fmt.Sprintf("qx: invalid refinement of property %q in %q: %s", e.Property, e.Class, e.Reason)
}

// Is reports whether the target error matches ErrInvalidRefinement.
func (e *InvalidRefinementError) Is(err error) bool {
	return err == ErrInvalidRefinement
}

// NewInvalidRefinementError returns a new InvalidRefinementError.
func NewInvalidRefinementError(class, property, reason string) *InvalidRefinementError {
	return &InvalidRefinementError{Class: class, Property: property, Reason: reason}
}

// IsInvalidRefinement returns true if the error is an InvalidRefinementError.
func IsInvalidRefinement(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidRefinementError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidRefinement)
}

// PropertyValidationError reports a value rejected by a property.
type PropertyValidationError struct {
	Class    string
	Property string
	Value    any
	Err      error // Underlying check failure
}

// Error returns the error string.
func (e *PropertyValidationError) Error() string {
	return fmt.Sprintf("qx: invalid value %v for property %q of %q: %v", e.Value, e.Property, e.Class, e.Err)
}

// Unwrap returns the underlying error.
func (e *PropertyValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ErrPropertyValidation.
func (e *PropertyValidationError) Is(err error) bool {
	return err == ErrPropertyValidation
}

// NewPropertyValidationError returns a new PropertyValidationError.
func NewPropertyValidationError(class, property string, value any, err error) *PropertyValidationError {
	return &PropertyValidationError{Class: class, Property: property, Value: value, Err: err}
}

// IsPropertyValidation returns true if the error is a PropertyValidationError.
func IsPropertyValidation(err error) bool {
	if err == nil {
		return false
	}
	var e *PropertyValidationError
	return errors.As(err, &e) || errors.Is(err, ErrPropertyValidation)
}

// PropertyNotFoundError reports access to a property the class does not have.
type PropertyNotFoundError struct {
	Class    string
	Property string
}

// Error returns the error string.
func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("qx: class %q has no property %q", e.Class, e.Property)
}

// Is reports whether the target error matches ErrPropertyNotFound.
func (e *PropertyNotFoundError) Is(err error) bool {
	return err == ErrPropertyNotFound
}

// NewPropertyNotFoundError returns a new PropertyNotFoundError.
func NewPropertyNotFoundError(class, property string) *PropertyNotFoundError {
	return &PropertyNotFoundError{Class: class, Property: property}
}

// IsPropertyNotFound returns true if the error is a PropertyNotFoundError.
func IsPropertyNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *PropertyNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrPropertyNotFound)
}

// DuplicateChildControlError reports a second creation of the same child control.
type DuplicateChildControlError struct {
	Class string
	ID    string
}

// Error returns the error string.
func (e *DuplicateChildControlError) Error() string {
	return fmt.Sprintf("qx: child control %q of %q already created", e.ID, e.Class)
}

// Is reports whether the target error matches ErrDuplicateChildControl.
func (e *DuplicateChildControlError) Is(err error) bool {
	return err == ErrDuplicateChildControl
}

// NewDuplicateChildControlError returns a new DuplicateChildControlError.
func NewDuplicateChildControlError(class, id string) *DuplicateChildControlError {
	return &DuplicateChildControlError{Class: class, ID: id}
}

// IsDuplicateChildControl returns true if the error is a DuplicateChildControlError.
func IsDuplicateChildControl(err error) bool {
	if err == nil {
		return false
	}
	var e *DuplicateChildControlError
	return errors.As(err, &e) || errors.Is(err, ErrDuplicateChildControl)
}

// ChildControlNotFoundError reports a child control that does not exist, or
// that the class factory could not produce.
type ChildControlNotFoundError struct {
	Class  string
	ID     string
	Reason string // Optional
}

// Error returns the error string.
func (e *ChildControlNotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("qx: child control %q of %q not found: %s", e.ID, e.Class, e.Reason)
	}
	return fmt.Sprintf("qx: child control %q of %q not found", e.ID, e.Class)
}

// Is reports whether the target error matches ErrChildControlNotFound.
func (e *ChildControlNotFoundError) Is(err error) bool {
	return err == ErrChildControlNotFound
}

// NewChildControlNotFoundError returns a new ChildControlNotFoundError.
func NewChildControlNotFoundError(class, id, reason string) *ChildControlNotFoundError {
	return &ChildControlNotFoundError{Class: class, ID: id, Reason: reason}
}

// IsChildControlNotFound returns true if the error is a ChildControlNotFoundError.
func IsChildControlNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *ChildControlNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrChildControlNotFound)
}

// MemberNotFoundError reports a call to a member the class does not have.
type MemberNotFoundError struct {
	Class  string
	Member string
}

// Error returns the error string.
func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("qx: class %q has no member %q", e.Class, e.Member)
}

// Is reports whether the target error matches ErrMemberNotFound.
func (e *MemberNotFoundError) Is(err error) bool {
	return err == ErrMemberNotFound
}

// NewMemberNotFoundError returns a new MemberNotFoundError.
func NewMemberNotFoundError(class, member string) *MemberNotFoundError {
	return &MemberNotFoundError{Class: class, Member: member}
}

// IsMemberNotFound returns true if the error is a MemberNotFoundError.
func IsMemberNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *MemberNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrMemberNotFound)
}

// DefinitionError represents a malformed class or mixin declaration.
type DefinitionError struct {
	Name    string // Class or mixin name
	Member  string // Property or member name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	var b strings.Builder
	b.WriteString("qx: invalid definition")
	if e.Name != "" {
		b.WriteString(" of ")
		b.WriteString(e.Name)
	}
	if e.Member != "" {
		b.WriteString(" member ")
		b.WriteString(e.Member)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *DefinitionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrInvalidDefinition.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

// NewDefinitionError creates a new DefinitionError.
func NewDefinitionError(name, member, message string, cause error) *DefinitionError {
	return &DefinitionError{
		Name:    name,
		Member:  member,
		Message: message,
		Cause:   cause,
	}
}

// IsDefinitionError reports whether the error is a DefinitionError.
func IsDefinitionError(err error) bool {
	if err == nil {
		return false
	}
	var e *DefinitionError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidDefinition)
}

// ApplyError wraps a failure returned (or panicked) by a property apply hook.
type ApplyError struct {
	Class    string
	Property string
	Hook     string
	Err      error
}

// Error returns the error string.
func (e *ApplyError) Error() string {
	return fmt.Sprintf("qx: apply %q of property %q on %q: %v", e.Hook, e.Property, e.Class, e.Err)
}

// Unwrap returns the underlying error.
func (e *ApplyError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ErrApplyFailed.
func (e *ApplyError) Is(err error) bool {
	return err == ErrApplyFailed
}

// NewApplyError returns a new ApplyError.
func NewApplyError(class, property, hook string, err error) *ApplyError {
	return &ApplyError{Class: class, Property: property, Hook: hook, Err: err}
}

// AggregateError represents multiple errors collected during an operation,
// such as loading several manifests at once.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "qx: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("qx: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
