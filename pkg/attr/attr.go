// Package attr provides standard attribute types for modelsafe models.
// Each type implements schema.Validator and fails with a typed
// *schema.PropertyError so reports stay machine-readable.
package attr

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sorakthunly/modelsafe/pkg/schema"
)

// String accepts string values, optionally bounded in length.
type String struct {
	// MaxLength caps the string length in runes; zero means unbounded.
	MaxLength int
}

// Validate implements schema.Validator.
func (a String) Validate(key string, value any) error {
	s, ok := value.(string)
	if !ok {
		return typeError(key, "a string", value)
	}
	if a.MaxLength > 0 && len([]rune(s)) > a.MaxLength {
		return schema.NewPropertyError(schema.KindLength,
			fmt.Sprintf("%s must be at most %d characters", key, a.MaxLength))
	}
	return nil
}

// Int accepts integer values. JSON numbers arrive as float64, so integral
// floats are accepted too.
type Int struct{}

// Validate implements schema.Validator.
func (Int) Validate(key string, value any) error {
	switch v := value.(type) {
	case int, int32, int64:
		return nil
	case float64:
		if v == float64(int64(v)) {
			return nil
		}
	}
	return typeError(key, "an integer", value)
}

// Float accepts numeric values.
type Float struct{}

// Validate implements schema.Validator.
func (Float) Validate(key string, value any) error {
	switch value.(type) {
	case float32, float64, int, int32, int64:
		return nil
	}
	return typeError(key, "a number", value)
}

// Bool accepts boolean values.
type Bool struct{}

// Validate implements schema.Validator.
func (Bool) Validate(key string, value any) error {
	if _, ok := value.(bool); !ok {
		return typeError(key, "a boolean", value)
	}
	return nil
}

// Date accepts time.Time values. It is the marker type that drives textual
// date coercion during deserialization.
type Date struct{}

// Validate implements schema.Validator.
func (Date) Validate(key string, value any) error {
	if _, ok := value.(time.Time); !ok {
		return typeError(key, "a date", value)
	}
	return nil
}

// DateType implements schema.DateTyped.
func (Date) DateType() {}

// UUID accepts RFC 4122 UUID strings.
type UUID struct{}

// Validate implements schema.Validator.
func (UUID) Validate(key string, value any) error {
	s, ok := value.(string)
	if !ok {
		return typeError(key, "a UUID string", value)
	}
	if _, err := uuid.Parse(s); err != nil {
		return schema.NewPropertyError(schema.KindType,
			fmt.Sprintf("%s must be a valid UUID", key))
	}
	return nil
}

// Enum accepts one of a fixed set of string values.
type Enum struct {
	Values []string
}

// Validate implements schema.Validator.
func (a Enum) Validate(key string, value any) error {
	s, ok := value.(string)
	if !ok {
		return typeError(key, "a string", value)
	}
	for _, v := range a.Values {
		if s == v {
			return nil
		}
	}
	return schema.NewPropertyError(schema.KindEnum,
		fmt.Sprintf("%s must be one of %v", key, a.Values))
}

// Object accepts structured key/value values.
type Object struct{}

// Validate implements schema.Validator.
func (Object) Validate(key string, value any) error {
	if _, ok := value.(map[string]any); !ok {
		return typeError(key, "an object", value)
	}
	return nil
}

// typeError builds the standard type-mismatch property error.
func typeError(key, want string, got any) *schema.PropertyError {
	if got == nil {
		return schema.NewPropertyError(schema.KindType,
			fmt.Sprintf("%s must be %s", key, want))
	}
	return schema.NewPropertyError(schema.KindType,
		fmt.Sprintf("%s must be %s, got %T", key, want, got))
}
