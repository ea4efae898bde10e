package population

import "math/big"

// CountAfterBig is CountAfter with arbitrary-precision buckets. It never
// overflows.
func CountAfterBig(initialAges []int, totalDays int) (*big.Int, error) {
	if err := validate(initialAges, totalDays); err != nil {
		return nil, err
	}

	var buckets [NumAgeClasses]*big.Int
	for i := range buckets {
		buckets[i] = new(big.Int)
	}

	for _, age := range initialAges {
		buckets[age].Add(buckets[age], big.NewInt(1))
	}

	for day := 0; day < totalDays; day++ {
		spawning := buckets[0]
		copy(buckets[:MaxAge], buckets[1:])
		buckets[NewbornAge] = new(big.Int).Set(spawning)
		buckets[ResetAge].Add(buckets[ResetAge], spawning)
	}

	total := new(big.Int)
	for _, n := range buckets {
		total.Add(total, n)
	}

	return total, nil
}
