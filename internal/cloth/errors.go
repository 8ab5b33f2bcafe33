package cloth

import (
	"errors"
	"fmt"
)

// Domain errors for cloth construction.
var (
	// ErrInvalidConfig indicates a lattice or parameter value outside its valid range.
	ErrInvalidConfig = errors.New("cloth: invalid configuration")

	// ErrPinOutOfRange indicates a pin index that names no particle.
	ErrPinOutOfRange = errors.New("cloth: pin index out of range")

	// ErrUnknownShape indicates a generator name with no registered shape.
	ErrUnknownShape = errors.New("cloth: unknown generator shape")

	// ErrUnknownSelector indicates a pin selector name that is not recognised.
	ErrUnknownSelector = errors.New("cloth: unknown pin selector")
)

// ConfigError wraps a configuration error with the offending field.
type ConfigError struct {
	Field   string
	Value   any
	Reason  string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%v: %s", e.Wrapped, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

func invalid(field string, value any, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason, Wrapped: ErrInvalidConfig}
}
