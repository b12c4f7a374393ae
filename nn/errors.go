package nn

import (
	"errors"
	"fmt"
)

// Sentinel errors for the layer error taxonomy. Wrapped errors carry
// layer-specific detail; match with errors.Is.
var (
	// ErrConfig marks an invalid or missing construction parameter.
	// Construction aborts immediately; no default is substituted.
	ErrConfig = errors.New("invalid layer configuration")

	// ErrShape marks an apply-time tensor rank or shape mismatch
	// against the layer's declared contract.
	ErrShape = errors.New("tensor shape mismatch")

	// ErrDomain marks a tensor presented in the wrong representation
	// domain (spatial vs frequency).
	ErrDomain = errors.New("tensor domain mismatch")
)

// ConfigError reports an invalid construction parameter.
type ConfigError struct {
	Layer  string // layer type name (e.g., "Dense")
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Layer, e.Reason)
}

// Unwrap makes the error match ErrConfig.
func (e *ConfigError) Unwrap() error { return ErrConfig }

func configErrorf(layer, format string, args ...any) error {
	return &ConfigError{Layer: layer, Reason: fmt.Sprintf(format, args...)}
}

// ShapeError reports an apply-time tensor shape mismatch in
// human-readable expected-vs-received form.
type ShapeError struct {
	Layer    string
	Expected string
	Got      string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: expected input of shape %s but received %s", e.Layer, e.Expected, e.Got)
}

// Unwrap makes the error match ErrShape.
func (e *ShapeError) Unwrap() error { return ErrShape }

// DomainError reports a tensor presented in the wrong domain.
type DomainError struct {
	Layer    string
	Expected string
	Got      string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: expected %s-domain input but received %s-domain", e.Layer, e.Expected, e.Got)
}

// Unwrap makes the error match ErrDomain.
func (e *DomainError) Unwrap() error { return ErrDomain }
