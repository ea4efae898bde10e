package population_test

import (
	"math/big"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/lanternfish/population"
)

var exampleAges = []int{3, 4, 3, 1, 2}

func randomAges(r *rand.Rand, n int) []int {
	ages := make([]int, n)
	for i := range ages {
		ages[i] = r.Intn(population.MaxAge + 1)
	}

	return ages
}

var _ = Describe("CountAfter", func() {
	DescribeTable("example school",
		func(days int, expected uint64) {
			n, err := population.CountAfter(exampleAges, days)

			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(expected))
		},
		Entry("after 18 days", 18, uint64(26)),
		Entry("after 80 days", 80, uint64(5934)),
		Entry("after 256 days", 256, uint64(26984457539)),
	)

	It("should return the input size when no day passes", func() {
		r := rand.New(rand.NewSource(1))
		for i := 0; i < 20; i++ {
			ages := randomAges(r, r.Intn(50))

			n, err := population.CountAfter(ages, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(uint64(len(ages))))
		}
	})

	It("should count nothing for an empty school", func() {
		for _, days := range []int{0, 1, 80, 256} {
			n, err := population.CountAfter(nil, days)

			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		}
	})

	It("should spawn on the first day from age 0", func() {
		n, err := population.CountAfter([]int{0}, 1)

		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(uint64(2)))
	})

	It("should never shrink", func() {
		r := rand.New(rand.NewSource(2))
		ages := randomAges(r, 30)

		prev := uint64(0)
		for days := 0; days <= 300; days++ {
			n, err := population.CountAfter(ages, days)

			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeNumerically(">=", prev))
			prev = n
		}
	})

	It("should agree with enumeration for short runs", func() {
		r := rand.New(rand.NewSource(3))
		for i := 0; i < 30; i++ {
			ages := randomAges(r, 1+r.Intn(20))
			for days := 0; days <= 18; days++ {
				expected, err := population.Enumerate(ages, days, 0, nil)
				Expect(err).NotTo(HaveOccurred())

				n, err := population.CountAfter(ages, days)
				Expect(err).NotTo(HaveOccurred())
				Expect(n).To(Equal(uint64(expected)))
			}
		}
	})

	It("should reject negative ages", func() {
		_, err := population.CountAfter([]int{-1}, 10)

		Expect(err).To(MatchError(population.ErrInvalidInput))
	})

	It("should reject ages above the maximum", func() {
		_, err := population.CountAfter([]int{3, 9}, 10)

		Expect(err).To(MatchError(population.ErrInvalidInput))
	})

	It("should reject a negative day count", func() {
		_, err := population.CountAfter(exampleAges, -1)

		Expect(err).To(MatchError(population.ErrInvalidInput))
	})

	It("should report overflow", func() {
		_, err := population.CountAfter([]int{0}, 1000)

		Expect(err).To(MatchError(population.ErrOverflow))
	})
})

var _ = Describe("CountAfterBig", func() {
	It("should match CountAfter where it fits", func() {
		r := rand.New(rand.NewSource(4))
		ages := randomAges(r, 300)

		for _, days := range []int{0, 1, 18, 80, 256} {
			n, err := population.CountAfter(ages, days)
			Expect(err).NotTo(HaveOccurred())

			b, err := population.CountAfterBig(ages, days)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.IsUint64()).To(BeTrue())
			Expect(b.Uint64()).To(Equal(n))
		}
	})

	It("should keep counting past uint64", func() {
		b, err := population.CountAfterBig([]int{0}, 1000)

		Expect(err).NotTo(HaveOccurred())
		Expect(b.Cmp(new(big.Int).SetUint64(^uint64(0)))).To(Equal(1))
	})

	It("should reject invalid input", func() {
		_, err := population.CountAfterBig([]int{-1}, 3)

		Expect(err).To(MatchError(population.ErrInvalidInput))
	})
})

var _ = Describe("Histogram", func() {
	It("should group ages", func() {
		h, err := population.NewHistogram(exampleAges)

		Expect(err).NotTo(HaveOccurred())
		Expect(h.Buckets()).To(Equal([]uint64{0, 1, 1, 2, 1, 0, 0, 0, 0}))
		Expect(h.String()).To(Equal(
			"[0: 0, 1: 1, 2: 1, 3: 2, 4: 1, 5: 0, 6: 0, 7: 0, 8: 0]"))
	})

	It("should move age 0 to the reset and newborn classes", func() {
		h := population.Histogram{5, 0, 0, 0, 0, 0, 0, 2, 1}

		next, err := h.Step()

		Expect(err).NotTo(HaveOccurred())
		Expect(next).To(Equal(population.Histogram{0, 0, 0, 0, 0, 0, 7, 1, 5}))
	})

	It("should report overflow in a step", func() {
		h := population.Histogram{1, 0, 0, 0, 0, 0, 0, ^uint64(0), 0}

		_, err := h.Step()

		Expect(err).To(MatchError(population.ErrOverflow))
	})

	It("should report overflow in the total", func() {
		h := population.Histogram{^uint64(0), 1}

		_, err := h.Total()

		Expect(err).To(MatchError(population.ErrOverflow))
	})
})

var _ = Describe("CounterByName", func() {
	It("should resolve every registered counter", func() {
		Expect(population.CounterNames()).To(
			Equal([]string{"enumerate", "histogram", "memo"}))

		for _, name := range population.CounterNames() {
			c, err := population.CounterByName(name)
			Expect(err).NotTo(HaveOccurred())

			n, err := c.CountAfter(exampleAges, 18)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(uint64(26)))
		}
	})

	It("should reject unknown names", func() {
		_, err := population.CounterByName("abacus")

		Expect(err).To(MatchError(population.ErrUnknownMethod))
	})
})
