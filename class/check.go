package class

import (
	"fmt"

	"github.com/evandropoa/qooxdoo/schema/property"
)

// InstanceOf returns a check accepting instances of the class name or of
// its subclasses.
func InstanceOf(name string) property.Checker {
	return property.CheckFunc(func(v any) error {
		o, ok := v.(*Object)
		if !ok {
			return fmt.Errorf("expected instance of %s, got %T", name, v)
		}
		if !o.InstanceOf(name) {
			return fmt.Errorf("expected instance of %s, got %s", name, o.class.name)
		}
		return nil
	})
}
