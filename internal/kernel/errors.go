package kernel

import (
	"errors"
	"fmt"
)

// Error taxonomy, grounded on eventloop/errors.go's typed, Unwrap-chaining
// style. ConfigError, ProtocolViolation and UnknownInterrupt describe the
// fatal conditions (spec.md §7). Configuration validation returns
// *ConfigError; component handlers report a protocol violation or an
// unknown cause through Auxiliary.Error, which wraps a plain tag-and-message
// error as ErrFatal and returns it instead of terminating the process. The
// components do not construct ProtocolViolation or UnknownInterrupt values.
// CapacityEvent is deliberately NOT part of this taxonomy as an error — it
// is a counted, non-fatal condition (see internal/fabriccore.Queue).
type (
	// ConfigError reports a malformed or missing configuration value,
	// detected before the simulation starts.
	ConfigError struct {
		Component string
		Field     string
		Message   string
		Cause     error
	}

	// ProtocolViolation reports an interrupt or message that violates the
	// fixed request→queue→fabric→target→initiator flow (e.g. a
	// MESSAGE_FOR_TARGET delivered to an initiator socket).
	ProtocolViolation struct {
		Component string
		Detail    string
		Got       any
	}

	// UnknownInterrupt reports an interrupt whose Cause has no matching
	// case in a component's handler switch.
	UnknownInterrupt struct {
		Component string
		Cause     Cause
	}
)

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config: %s.%s: %s", e.Component, e.Field, e.Message)
	}
	return fmt.Sprintf("config: %s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Cause }

func (e *ProtocolViolation) Error() string {
	return fmt.Sprintf("protocol violation in %s: %s (got %v)", e.Component, e.Detail, e.Got)
}

func (e *UnknownInterrupt) Error() string {
	return fmt.Sprintf("%s: unknown interrupt cause %T", e.Component, e.Cause)
}

// ErrFatal wraps any of the above into the sentinel that terminates a
// simulation run. errors.Is(err, ErrFatal) identifies a fatal abort;
// errors.As recovers the concrete cause.
var ErrFatal = errors.New("simulation aborted")

// Fatal wraps cause so that errors.Is(result, ErrFatal) is true while
// errors.As still recovers the concrete *ConfigError / *ProtocolViolation /
// *UnknownInterrupt.
func Fatal(cause error) error {
	return &fatalError{cause: cause}
}

type fatalError struct{ cause error }

func (e *fatalError) Error() string { return fmt.Sprintf("%s: %s", ErrFatal, e.cause) }
func (e *fatalError) Unwrap() []error { return []error{ErrFatal, e.cause} }
