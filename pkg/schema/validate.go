package schema

import (
	"maps"
	"slices"
)

// Schema maps the top-level prop names of a component block to their types.
// Example: {"intent": Optional(Enum("info", "warning")), "content": Optional(Any())}
type Schema map[string]Type

// Validate checks props against the schema and returns every failure at once,
// in prop name order. Props the schema does not name are accepted.
func Validate(schema Schema, props map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	var errs []error
	for _, name := range slices.Sorted(maps.Keys(schema)) {
		propType := schema[name]
		value, exists := props[name]
		if !exists {
			if !IsOptional(propType) {
				errs = append(errs, &ValidationError{Key: name, Reason: "required"})
			}
			continue
		}
		if err := propType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: name, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
