package issue_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/core/events"
	"github.com/frahmantamala/workforce-ops/internal/issue"
)

type memoryRepo struct {
	issues []issue.Issue
	err    error
}

func (m *memoryRepo) Create(ctx context.Context, is *issue.Issue) error {
	if m.err != nil {
		return m.err
	}
	m.issues = append(m.issues, *is)
	return nil
}

func (m *memoryRepo) ListByUser(ctx context.Context, userID string) ([]issue.Issue, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []issue.Issue
	for _, is := range m.issues {
		if is.UserID == userID {
			out = append(out, is)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.published = append(p.published, e)
	return nil
}

var _ = Describe("Service", func() {
	var (
		repo      *memoryRepo
		publisher *recordingPublisher
		service   *issue.Service
		clock     time.Time
		ctx       context.Context
	)

	BeforeEach(func() {
		repo = &memoryRepo{}
		publisher = &recordingPublisher{}
		clock = t0
		service = issue.NewService(repo, publisher, func() time.Time { return clock }, nil)
		ctx = context.Background()
	})

	It("applies defaults to new issues", func() {
		is, err := service.Create(ctx, "u1", issue.CreateIssueRequest{Title: "Broken ladder"})
		Expect(err).NotTo(HaveOccurred())
		Expect(is.ID).NotTo(BeEmpty())
		Expect(is.Priority).To(Equal(issue.PriorityMedium))
		Expect(is.Category).To(Equal("general"))
		Expect(is.Status).To(Equal(issue.StatusOpen))
		Expect(is.CreatedAt).To(Equal(t0))
		Expect(is.UpdatedAt).To(Equal(t0))
	})

	It("publishes issue.created", func() {
		is, err := service.Create(ctx, "u1", issue.CreateIssueRequest{Title: "Leak", Priority: "high", Category: "safety"})
		Expect(err).NotTo(HaveOccurred())
		Expect(publisher.published).To(HaveLen(1))

		created := publisher.published[0].(*events.IssueCreatedEvent)
		Expect(created.IssueID).To(Equal(is.ID))
		Expect(created.Priority).To(Equal("high"))
	})

	It("rejects blank titles and unknown priorities", func() {
		_, err := service.Create(ctx, "u1", issue.CreateIssueRequest{Title: "  ", Priority: "urgent"})
		appErr, ok := apperrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(400))

		details := appErr.Details.(apperrors.ValidationErrors)
		Expect(details.Errors).To(HaveLen(2))
		Expect(repo.issues).To(BeEmpty())
	})

	It("lists only the caller's issues with filter and sort", func() {
		for i, p := range []string{"low", "high", "medium"} {
			clock = t0.Add(time.Duration(i) * time.Minute)
			_, err := service.Create(ctx, "u1", issue.CreateIssueRequest{Title: "t" + p, Priority: p})
			Expect(err).NotTo(HaveOccurred())
		}
		_, err := service.Create(ctx, "u2", issue.CreateIssueRequest{Title: "other", Priority: "high"})
		Expect(err).NotTo(HaveOccurred())

		issues, err := service.ListForUser(ctx, "u1", "open", "priority")
		Expect(err).NotTo(HaveOccurred())
		Expect(ids(issues)).To(HaveLen(3))
		Expect(issues[0].Priority).To(Equal(issue.PriorityHigh))
		Expect(issues[1].Priority).To(Equal(issue.PriorityMedium))
		Expect(issues[2].Priority).To(Equal(issue.PriorityLow))

		stored, err := service.ListForUser(ctx, "u1", "", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(stored[0].Title).To(Equal("tlow"))
	})

	It("rejects unknown sort orders", func() {
		_, err := service.ListForUser(ctx, "u1", "", "random")
		appErr, ok := apperrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
	})

	It("wraps store failures", func() {
		repo.err = errors.New("boom")
		_, err := service.ListForUser(ctx, "u1", "", "")
		appErr, ok := apperrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(apperrors.ErrorTypeUpstream))
	})
})
