package monitoring

import (
	"bytes"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/lanternfish/school"
	"github.com/sarchlab/lanternfish/sim"
)

type dumpedSchool struct {
	Name   string
	Day    int
	Census []uint64
}

var _ = Describe("DumpState", func() {
	It("should write JSON", func() {
		buf := bytes.NewBuffer(nil)
		s := &dumpedSchool{
			Name:   "school",
			Day:    3,
			Census: []uint64{0, 1, 2},
		}

		err := DumpState(buf, s, 2)

		Expect(err).NotTo(HaveOccurred())
		Expect(json.Valid(buf.Bytes())).To(BeTrue())
		Expect(buf.String()).To(ContainSubstring("school"))
	})

	It("should dump the state of a simulated school", func() {
		engine := sim.NewSerialEngine()
		s, err := school.MakeBuilder().
			WithEngine(engine).
			WithAges([]int{3, 4, 3, 1, 2}).
			WithDays(18).
			Build("School")
		Expect(err).NotTo(HaveOccurred())

		s.StartSimulation()
		Expect(engine.Run()).To(Succeed())

		state, err := s.State()
		Expect(err).NotTo(HaveOccurred())

		buf := bytes.NewBuffer(nil)
		Expect(func() {
			err = DumpState(buf, &state, 2)
		}).NotTo(Panic())

		Expect(err).NotTo(HaveOccurred())
		Expect(json.Valid(buf.Bytes())).To(BeTrue())
		Expect(buf.String()).To(ContainSubstring("School"))
	})
})
