package array

import "errors"

// Error kinds reported by this package. Callers classify failures with
// errors.Is; the wrapped message carries the offending argument.
var (
	// ErrInvalidArgument marks malformed inputs: negative dimensions,
	// zero Arange step, mismatched op output shapes.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPrecondition marks caller contract breaches: host data too
	// small for the declared layout, arrays on the wrong device.
	ErrPrecondition = errors.New("precondition violated")

	// ErrNotRegistered marks a missing (op, device kind) registration.
	// Resolution failure is fatal to the call; there is no fallback.
	ErrNotRegistered = errors.New("not registered")
)
