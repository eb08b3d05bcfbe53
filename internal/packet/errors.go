package packet

import (
	"errors"
	"fmt"
)

// Error categories for engine operations.
var (
	// ErrDomain indicates an input outside the mathematical domain of an
	// operation: a negative radicand, a division by zero or a degenerate
	// all-zero signal.
	ErrDomain = errors.New("packet: value outside mathematical domain")

	// ErrConfiguration indicates an unrecognized dispersion law or a
	// component count outside the supported set.
	ErrConfiguration = errors.New("packet: invalid configuration")
)

// DomainError wraps ErrDomain with the component that triggered it.
// Index is -1 when the violation is not tied to a single component.
type DomainError struct {
	Law    Law
	Index  int
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("packet: domain error: %s", e.Reason)
	}
	return fmt.Sprintf("packet: domain error (law=%s, component=%d, value=%g): %s", e.Law, e.Index, e.Value, e.Reason)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// ConfigurationError wraps ErrConfiguration with the offending option.
type ConfigurationError struct {
	Option string
	Value  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("packet: unsupported %s %q", e.Option, e.Value)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func domainErr(reason string) error {
	return &DomainError{Index: -1, Reason: reason}
}
