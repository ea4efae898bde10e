package population

import (
	"fmt"
	"sort"
)

// A Counter computes the population size after a number of days.
type Counter interface {
	CountAfter(initialAges []int, totalDays int) (uint64, error)
}

// CountAfter returns the number of organisms alive after totalDays days,
// starting from one organism per entry of initialAges.
//
// It runs in O(totalDays) time with a constant-size histogram. The result is
// exact; ErrOverflow is returned when it does not fit in a uint64.
func CountAfter(initialAges []int, totalDays int) (uint64, error) {
	if err := validate(initialAges, totalDays); err != nil {
		return 0, err
	}

	h, err := NewHistogram(initialAges)
	if err != nil {
		return 0, err
	}

	for day := 1; day <= totalDays; day++ {
		h, err = h.Step()
		if err != nil {
			return 0, fmt.Errorf("day %d: %w", day, err)
		}
	}

	return h.Total()
}

// HistogramCounter is the Counter form of CountAfter.
type HistogramCounter struct{}

// CountAfter implements Counter.
func (HistogramCounter) CountAfter(
	initialAges []int,
	totalDays int,
) (uint64, error) {
	return CountAfter(initialAges, totalDays)
}

var counters = map[string]func() Counter{
	"histogram": func() Counter { return HistogramCounter{} },
	"memo":      func() Counter { return MemoCounter{} },
	"enumerate": func() Counter { return EnumeratingCounter{} },
}

// CounterByName returns the counter registered under name. Known names are
// listed by CounterNames.
func CounterByName(name string) (Counter, error) {
	newCounter, ok := counters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}

	return newCounter(), nil
}

// CounterNames returns the names accepted by CounterByName, sorted.
func CounterNames() []string {
	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
