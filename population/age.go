// Package population counts lanternfish after a number of simulated days.
//
// Every organism carries an age, the number of days until it reproduces next.
// An organism at age 0 resets to ResetAge and spawns a newborn at NewbornAge.
// The counters here never track organisms individually, except for the
// enumerating counter, which exists as a reference for small inputs.
package population

import "fmt"

const (
	// MaxAge is the largest valid age.
	MaxAge = 8

	// ResetAge is the age an organism returns to after reproducing.
	ResetAge = 6

	// NewbornAge is the age of a freshly spawned organism.
	NewbornAge = 8

	// Cycle is the number of days between two reproductions of an adult.
	Cycle = ResetAge + 1

	// FirstSpawnOffset is the virtual-age distance between a parent and its
	// first child.
	FirstSpawnOffset = NewbornAge + 1

	// NumAgeClasses is the number of distinct ages.
	NumAgeClasses = MaxAge + 1
)

// ValidateAge returns an error wrapping ErrInvalidInput if age is outside
// [0, MaxAge].
func ValidateAge(age int) error {
	if age < 0 || age > MaxAge {
		return fmt.Errorf("%w: age %d is outside [0, %d]",
			ErrInvalidInput, age, MaxAge)
	}

	return nil
}

// ValidateDays returns an error wrapping ErrInvalidInput if days is negative.
func ValidateDays(days int) error {
	if days < 0 {
		return fmt.Errorf("%w: negative day count %d", ErrInvalidInput, days)
	}

	return nil
}

func validate(ages []int, days int) error {
	if err := ValidateDays(days); err != nil {
		return err
	}

	for i, age := range ages {
		if err := ValidateAge(age); err != nil {
			return fmt.Errorf("position %d: %w", i, err)
		}
	}

	return nil
}
