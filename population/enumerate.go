package population

import "fmt"

// DefaultEnumerationLimit is the population size at which EnumeratingCounter
// gives up when no Limit is set.
const DefaultEnumerationLimit = 1 << 24

// Enumerate simulates every organism individually for days days and returns
// the final population size. Newborns are appended after the organisms that
// existed at the start of the day.
//
// visit, when non-nil, observes the timers after each day, starting with day
// 0. The slice is reused between calls and must not be retained.
//
// ErrPopulationLimit is returned if the population would grow beyond limit. A
// limit of 0 or less means DefaultEnumerationLimit.
func Enumerate(
	ages []int,
	days int,
	limit int,
	visit func(day int, timers []int),
) (int, error) {
	if err := validate(ages, days); err != nil {
		return 0, err
	}

	if limit <= 0 {
		limit = DefaultEnumerationLimit
	}

	if len(ages) > limit {
		return 0, fmt.Errorf("%w: %d organisms on day 0", ErrPopulationLimit,
			len(ages))
	}

	timers := make([]int, len(ages))
	copy(timers, ages)

	if visit != nil {
		visit(0, timers)
	}

	for day := 1; day <= days; day++ {
		existing := len(timers)
		for i := 0; i < existing; i++ {
			if timers[i] > 0 {
				timers[i]--
				continue
			}

			if len(timers) >= limit {
				return 0, fmt.Errorf("%w: more than %d organisms on day %d",
					ErrPopulationLimit, limit, day)
			}

			timers[i] = ResetAge
			timers = append(timers, NewbornAge)
		}

		if visit != nil {
			visit(day, timers)
		}
	}

	return len(timers), nil
}

// EnumeratingCounter counts by simulating every organism. It is exponential
// in the number of days and meant as a reference for short runs.
type EnumeratingCounter struct {
	// Limit bounds the population size. Zero means DefaultEnumerationLimit.
	Limit int
}

// CountAfter implements Counter.
func (c EnumeratingCounter) CountAfter(
	initialAges []int,
	totalDays int,
) (uint64, error) {
	n, err := Enumerate(initialAges, totalDays, c.Limit, nil)
	if err != nil {
		return 0, err
	}

	return uint64(n), nil
}
