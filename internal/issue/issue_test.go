package issue_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/workforce-ops/internal/issue"
)

var t0 = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func mk(id string, p issue.Priority, s issue.Status, minutes int) issue.Issue {
	return issue.Issue{ID: id, Priority: p, Status: s, CreatedAt: t0.Add(time.Duration(minutes) * time.Minute)}
}

func ids(issues []issue.Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.ID
	}
	return out
}

var _ = Describe("FilterAndSort", func() {
	issues := []issue.Issue{
		mk("a", issue.PriorityLow, issue.StatusOpen, 0),
		mk("b", issue.PriorityHigh, issue.StatusResolved, 10),
		mk("c", issue.PriorityMedium, issue.StatusOpen, 20),
		mk("d", issue.PriorityHigh, issue.StatusOpen, 30),
		mk("e", issue.PriorityLow, issue.StatusInProgress, 5),
	}

	It("orders by priority high, medium, low", func() {
		in := []issue.Issue{
			mk("low", issue.PriorityLow, issue.StatusOpen, 0),
			mk("high", issue.PriorityHigh, issue.StatusOpen, 1),
			mk("medium", issue.PriorityMedium, issue.StatusOpen, 2),
		}
		Expect(ids(issue.FilterAndSort(in, issue.FilterAll, issue.SortPriority))).To(Equal([]string{"high", "medium", "low"}))
	})

	It("keeps input order for equal priorities", func() {
		Expect(ids(issue.FilterAndSort(issues, issue.FilterAll, issue.SortPriority))).
			To(Equal([]string{"b", "d", "c", "a", "e"}))
	})

	It("sorts newest first", func() {
		Expect(ids(issue.FilterAndSort(issues, issue.FilterAll, issue.SortNewest))).
			To(Equal([]string{"d", "c", "b", "e", "a"}))
	})

	It("sorts oldest first", func() {
		Expect(ids(issue.FilterAndSort(issues, issue.FilterAll, issue.SortOldest))).
			To(Equal([]string{"a", "e", "b", "c", "d"}))
	})

	It("keeps equal timestamps in input order", func() {
		in := []issue.Issue{mk("x", issue.PriorityLow, issue.StatusOpen, 0), mk("y", issue.PriorityLow, issue.StatusOpen, 0)}
		Expect(ids(issue.FilterAndSort(in, issue.FilterAll, issue.SortNewest))).To(Equal([]string{"x", "y"}))
		Expect(ids(issue.FilterAndSort(in, issue.FilterAll, issue.SortOldest))).To(Equal([]string{"x", "y"}))
	})

	It("filters by exact status", func() {
		Expect(ids(issue.FilterAndSort(issues, issue.Filter(issue.StatusOpen), issue.SortOldest))).
			To(Equal([]string{"a", "c", "d"}))
		Expect(ids(issue.FilterAndSort(issues, issue.Filter(issue.StatusInProgress), issue.SortOldest))).
			To(Equal([]string{"e"}))
		Expect(issue.FilterAndSort(issues, issue.Filter(issue.StatusClosed), issue.SortOldest)).To(BeEmpty())
	})

	It("does not modify its input", func() {
		before := ids(issues)
		issue.FilterAndSort(issues, issue.FilterAll, issue.SortNewest)
		Expect(ids(issues)).To(Equal(before))
	})

	It("counts by status", func() {
		Expect(issue.CountByStatus(issues, issue.StatusOpen)).To(Equal(3))
	})
})

var _ = Describe("parsing", func() {
	DescribeTable("ParseFilter",
		func(in string, expected issue.Filter, ok bool) {
			f, err := issue.ParseFilter(in)
			if !ok {
				Expect(err).To(HaveOccurred())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(f).To(Equal(expected))
		},
		Entry("empty", "", issue.FilterAll, true),
		Entry("all", "all", issue.FilterAll, true),
		Entry("in-progress", "in-progress", issue.Filter("in-progress"), true),
		Entry("unknown", "pending", issue.Filter(""), false),
	)

	DescribeTable("ParseSort",
		func(in string, expected issue.Sort, ok bool) {
			s, err := issue.ParseSort(in)
			if !ok {
				Expect(err).To(HaveOccurred())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(Equal(expected))
		},
		Entry("empty defaults to newest", "", issue.SortNewest, true),
		Entry("priority", "priority", issue.SortPriority, true),
		Entry("unknown", "alphabetical", issue.Sort(""), false),
	)
})
