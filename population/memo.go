package population

import (
	"fmt"
	"math/bits"
)

// MemoCounter counts by expanding every organism into the children it
// spawns. A child is described by its virtual age: the age it would have had
// on day 0 if it had existed then. The count for a virtual age does not depend
// on who spawned it, so it is cached.
//
// The cache belongs to a single CountAfter call and is dropped when the call
// returns.
type MemoCounter struct{}

// MemoStats describes how much work one MemoCounter run did.
type MemoStats struct {
	Hits    int
	Misses  int
	Entries int
}

// CountAfter implements Counter.
func (c MemoCounter) CountAfter(
	initialAges []int,
	totalDays int,
) (uint64, error) {
	n, _, err := c.CountWithStats(initialAges, totalDays)
	return n, err
}

// CountWithStats is CountAfter that also reports cache statistics.
func (MemoCounter) CountWithStats(
	initialAges []int,
	totalDays int,
) (uint64, MemoStats, error) {
	if err := validate(initialAges, totalDays); err != nil {
		return 0, MemoStats{}, err
	}

	m := &memo{
		days:  totalDays,
		cache: make(map[int]uint64),
	}

	var total, carry uint64
	for _, age := range initialAges {
		n, err := m.size(age)
		if err != nil {
			return 0, m.stats(), err
		}

		total, carry = bits.Add64(total, n, 0)
		if carry != 0 {
			return 0, m.stats(), fmt.Errorf("%w: population total", ErrOverflow)
		}
	}

	return total, m.stats(), nil
}

type memo struct {
	days   int
	cache  map[int]uint64
	hits   int
	misses int
}

func (m *memo) stats() MemoStats {
	return MemoStats{
		Hits:    m.hits,
		Misses:  m.misses,
		Entries: len(m.cache),
	}
}

// size returns the organism with virtual age t plus all of its descendants
// alive at the end of the run. It spawns on days t+1, t+1+Cycle, ... up to
// m.days; a child spawned on day d has virtual age d+NewbornAge.
func (m *memo) size(t int) (uint64, error) {
	if n, ok := m.cache[t]; ok {
		m.hits++
		return n, nil
	}

	m.misses++

	var carry uint64
	n := uint64(1)

	for spawnDay := t + 1; spawnDay <= m.days; spawnDay += Cycle {
		child, err := m.size(spawnDay + NewbornAge)
		if err != nil {
			return 0, err
		}

		n, carry = bits.Add64(n, child, 0)
		if carry != 0 {
			return 0, fmt.Errorf("%w: virtual age %d", ErrOverflow, t)
		}
	}

	m.cache[t] = n

	return n, nil
}
