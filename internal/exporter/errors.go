package exporter

import (
	"errors"
	"fmt"
)

// Exporter errors
var (
	// ErrInvalidArgument is matched by every ArgumentError
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidConfig is matched by every ConfigError
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ArgumentError reports a missing or invalid argument passed to a writer.
// It is returned before any line reaches the sink.
type ArgumentError struct {
	Param string
}

// Error implements the error interface
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument is nil: `%s`", e.Param)
}

// Is reports whether target is ErrInvalidArgument
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ConfigError reports a writer that was assembled with bad settings
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidConfig
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewNilCustomersError returns the error raised for a nil customers slice
func NewNilCustomersError() *ArgumentError {
	return &ArgumentError{Param: "customers"}
}
