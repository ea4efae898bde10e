package school

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/lanternfish/population"
	"github.com/sarchlab/lanternfish/sim"
)

var _ = Describe("School", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	build := func(ages []int, days int) *School {
		s, err := MakeBuilder().
			WithEngine(engine).
			WithAges(ages).
			WithDays(days).
			Build("School")
		Expect(err).NotTo(HaveOccurred())

		return s
	}

	It("should schedule the first day on start", func() {
		s := build([]int{3, 4}, 2)

		engine.EXPECT().Schedule(gomock.Any()).Do(func(e sim.Event) {
			Expect(e).To(BeAssignableToTypeOf(&DayEvent{}))
			Expect(e.Time()).To(Equal(sim.VTimeInDay(1)))
			Expect(e.Handler()).To(BeIdenticalTo(s))
		})

		s.StartSimulation()
	})

	It("should not schedule anything for zero days", func() {
		s := build([]int{3, 4}, 0)

		s.StartSimulation()

		n, err := s.Total()
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(uint64(2)))
	})

	It("should age the school and schedule the next day", func() {
		s := build([]int{0, 1}, 3)
		evt := &DayEvent{EventBase: sim.NewEventBase("1", 1, s)}

		engine.EXPECT().Schedule(gomock.Any()).Do(func(e sim.Event) {
			Expect(e.Time()).To(Equal(sim.VTimeInDay(2)))
		})

		Expect(s.Handle(evt)).To(Succeed())
		Expect(s.Day()).To(Equal(1))
		Expect(s.Census()).To(Equal(population.Histogram{1, 0, 0, 0, 0, 0, 1, 0, 1}))
	})

	It("should stop scheduling on the last day", func() {
		s := build([]int{5}, 1)
		evt := &DayEvent{EventBase: sim.NewEventBase("1", 1, s)}

		Expect(s.Handle(evt)).To(Succeed())
		Expect(s.Day()).To(Equal(1))
		Expect(s.Census()).To(Equal(population.Histogram{0, 0, 0, 0, 1}))
	})

	It("should report overflow as a handler error", func() {
		s := build([]int{0}, 1)
		s.census = population.Histogram{1, 0, 0, 0, 0, 0, 0, ^uint64(0)}
		evt := &DayEvent{EventBase: sim.NewEventBase("1", 1, s)}

		Expect(s.Handle(evt)).To(MatchError(population.ErrOverflow))
	})

	It("should reject unknown events", func() {
		s := build([]int{0}, 1)

		err := s.Handle(sim.NewEventBase("1", 1, s))

		Expect(err).To(HaveOccurred())
	})

	It("should describe its state", func() {
		s := build([]int{3, 4, 3, 1, 2}, 18)

		state, err := s.State()

		Expect(err).NotTo(HaveOccurred())
		Expect(state.Name).To(Equal("School"))
		Expect(state.TotalDays).To(Equal(18))
		Expect(state.Total).To(Equal(uint64(5)))
		Expect(state.Census).To(Equal([]uint64{0, 1, 1, 2, 1, 0, 0, 0, 0}))
	})

	It("should reject invalid ages", func() {
		_, err := MakeBuilder().
			WithEngine(engine).
			WithAges([]int{-1}).
			WithDays(3).
			Build("School")

		Expect(err).To(MatchError(population.ErrInvalidInput))
	})

	It("should reject negative days", func() {
		_, err := MakeBuilder().
			WithEngine(engine).
			WithDays(-3).
			Build("School")

		Expect(err).To(MatchError(population.ErrInvalidInput))
	})
})

var _ = Describe("School on a serial engine", func() {
	DescribeTable("should match the histogram counter",
		func(days int) {
			engine := sim.NewSerialEngine()
			s, err := MakeBuilder().
				WithEngine(engine).
				WithAges([]int{3, 4, 3, 1, 2}).
				WithDays(days).
				Build("School")
			Expect(err).NotTo(HaveOccurred())

			s.StartSimulation()
			Expect(engine.Run()).To(Succeed())

			expected, err := population.CountAfter([]int{3, 4, 3, 1, 2}, days)
			Expect(err).NotTo(HaveOccurred())

			n, err := s.Total()
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(expected))
			Expect(s.Day()).To(Equal(days))
		},
		Entry("0 days", 0),
		Entry("18 days", 18),
		Entry("80 days", 80),
		Entry("256 days", 256),
	)
})
