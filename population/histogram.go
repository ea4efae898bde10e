package population

import (
	"fmt"
	"math/bits"
	"strings"
)

// Histogram holds the number of organisms in each age class.
type Histogram [NumAgeClasses]uint64

// NewHistogram groups the given ages into a Histogram.
func NewHistogram(ages []int) (Histogram, error) {
	var h Histogram

	for i, age := range ages {
		if err := ValidateAge(age); err != nil {
			return h, fmt.Errorf("position %d: %w", i, err)
		}

		h[age]++
	}

	return h, nil
}

// Step returns the histogram one day later. Every class moves down by one,
// class 0 moves to ResetAge and the same number of newborns appear at
// NewbornAge.
func (h Histogram) Step() (Histogram, error) {
	var next Histogram

	spawning := h[0]
	copy(next[:MaxAge], h[1:])
	next[NewbornAge] = spawning

	sum, carry := bits.Add64(next[ResetAge], spawning, 0)
	if carry != 0 {
		return h, fmt.Errorf("%w: age class %d", ErrOverflow, ResetAge)
	}

	next[ResetAge] = sum

	return next, nil
}

// Total returns the number of organisms in all classes.
func (h Histogram) Total() (uint64, error) {
	var total, carry uint64

	for _, n := range h {
		total, carry = bits.Add64(total, n, 0)
		if carry != 0 {
			return 0, fmt.Errorf("%w: histogram total", ErrOverflow)
		}
	}

	return total, nil
}

// Buckets returns the class counts as a slice indexed by age.
func (h Histogram) Buckets() []uint64 {
	out := make([]uint64, NumAgeClasses)
	copy(out, h[:])

	return out
}

func (h Histogram) String() string {
	var b strings.Builder

	b.WriteString("[")
	for age, n := range h {
		if age > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%d: %d", age, n)
	}
	b.WriteString("]")

	return b.String()
}
