package checklist_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/workforce-ops/internal/checklist"
)

func responses(completed ...bool) []checklist.Response {
	out := make([]checklist.Response, len(completed))
	for i, c := range completed {
		out[i] = checklist.Response{ItemID: string(rune('1' + i)), Completed: c}
	}
	return out
}

var _ = Describe("CompletionRate", func() {
	DescribeTable("computes the completed share",
		func(in []checklist.Response, expected float64) {
			rate, err := checklist.CompletionRate(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(rate).To(BeNumerically("~", expected, 1e-9))
		},
		Entry("all completed", responses(true, true, true, true), 100.0),
		Entry("none completed", responses(false, false), 0.0),
		Entry("three of four", responses(true, true, true, false), 75.0),
		Entry("one of three", responses(true, false, false), 100.0/3),
		Entry("single completed", responses(true), 100.0),
	)

	It("rejects an empty submission instead of producing NaN", func() {
		_, err := checklist.CompletionRate(nil)
		Expect(errors.Is(err, checklist.ErrNoResponses)).To(BeTrue())
	})

	It("stays within bounds and hits 100 only when everything is done", func() {
		for n := 1; n <= 6; n++ {
			for mask := 0; mask < 1<<n; mask++ {
				in := make([]bool, n)
				all := true
				for i := range in {
					in[i] = mask&(1<<i) != 0
					all = all && in[i]
				}
				rate, err := checklist.CompletionRate(responses(in...))
				Expect(err).NotTo(HaveOccurred())
				Expect(rate).To(BeNumerically(">=", 0))
				Expect(rate).To(BeNumerically("<=", 100))
				Expect(rate == 100).To(Equal(all))
			}
		}
	})
})
