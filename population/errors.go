package population

import "errors"

var (
	// ErrInvalidInput is returned when an age is outside [0, MaxAge] or a day
	// count is negative.
	ErrInvalidInput = errors.New("population: invalid input")

	// ErrOverflow is returned when a count no longer fits in a uint64. Use
	// CountAfterBig for such inputs.
	ErrOverflow = errors.New("population: count overflows uint64")

	// ErrPopulationLimit is returned by the enumerating counter when the
	// population grows beyond its limit.
	ErrPopulationLimit = errors.New("population: enumeration limit exceeded")

	// ErrUnknownMethod is returned by CounterByName.
	ErrUnknownMethod = errors.New("population: unknown counting method")
)
