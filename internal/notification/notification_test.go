package notification_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/workforce-ops/internal/core/events"
	"github.com/frahmantamala/workforce-ops/internal/core/role"
	"github.com/frahmantamala/workforce-ops/internal/notification"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 7, 15, hour, minute, 0, 0, time.UTC)
}

var _ = Describe("Due", func() {
	DescribeTable("raises notices by minute of the hour",
		func(minute int, expectedIDs []string) {
			due := notification.Due(at(14, minute), role.Supervisor)
			ids := []string{}
			for _, n := range due {
				ids = append(ids, n.ID)
			}
			Expect(ids).To(Equal(expectedIDs))
		},
		Entry("top of the hour", 0, []string{"hourly_14_2024-07-15"}),
		Entry("minute 5", 5, []string{"hourly_14_2024-07-15"}),
		Entry("minute 6", 6, []string{}),
		Entry("half past", 30, []string{"reminder_14_2024-07-15"}),
		Entry("minute 31", 31, []string{}),
	)

	It("names the role and hour in the hourly notice", func() {
		n := notification.Due(at(9, 2), role.Supervisor)[0]
		Expect(n.Type).To(Equal(notification.TypeHourlyChecklist))
		Expect(n.Priority).To(Equal(notification.PriorityHigh))
		Expect(n.Message).To(Equal("Time to complete your supervisor checklist for hour 9:00"))
	})

	It("raises a medium priority reminder", func() {
		n := notification.Due(at(9, 30), role.Employee)[0]
		Expect(n.Type).To(Equal(notification.TypeReminder))
		Expect(n.Priority).To(Equal(notification.PriorityMedium))
		Expect(n.Message).To(Equal("Don't forget to complete your checklist for hour 9:00"))
	})
})

var _ = Describe("Log", func() {
	var log *notification.Log

	BeforeEach(func() {
		log = notification.NewLog(24*time.Hour, 3)
	})

	note := func(id string, ts time.Time) notification.Notification {
		return notification.Notification{ID: id, Timestamp: ts}
	}

	It("deduplicates by id", func() {
		Expect(log.Add(note("a", at(1, 0)))).To(BeTrue())
		Expect(log.Add(note("a", at(1, 1)))).To(BeFalse())
		Expect(log.Len()).To(Equal(1))
	})

	It("drops the oldest entries beyond the cap", func() {
		for i := 0; i < 5; i++ {
			log.Add(note(fmt.Sprint(i), at(i, 0)))
		}
		Expect(log.Len()).To(Equal(3))
		Expect(log.Active()[0].ID).To(Equal("2"))
	})

	It("evicts entries older than the retention", func() {
		log.Add(note("old", at(1, 0)))
		log.Add(note("new", at(10, 0)))

		removed := log.Evict(at(1, 0).Add(25 * time.Hour))
		Expect(removed).To(Equal(1))
		Expect(log.Active()).To(HaveLen(1))
		Expect(log.Active()[0].ID).To(Equal("new"))
	})

	It("dismisses one or all entries", func() {
		log.Add(note("a", at(1, 0)))
		log.Add(note("b", at(2, 0)))

		Expect(log.Dismiss("a")).To(Succeed())
		Expect(log.Active()).To(HaveLen(1))
		Expect(errors.Is(log.Dismiss("zzz"), notification.ErrNotFound)).To(BeTrue())

		Expect(log.DismissAll()).To(Equal(1))
		Expect(log.Active()).To(BeEmpty())
	})

	It("lists recent entries newest first including dismissed ones", func() {
		log.Add(note("a", at(1, 0)))
		log.Add(note("b", at(3, 0)))
		log.Add(note("c", at(2, 0)))
		Expect(log.Dismiss("b")).To(Succeed())

		recent := log.Recent(at(4, 0))
		Expect(recent).To(HaveLen(3))
		Expect(recent[0].ID).To(Equal("b"))
		Expect(recent[1].ID).To(Equal("c"))
		Expect(recent[2].ID).To(Equal("a"))
	})

	It("excludes entries older than a day from recent", func() {
		log.Add(note("a", at(1, 0)))
		Expect(log.Recent(at(1, 0).Add(24*time.Hour + time.Minute))).To(BeEmpty())
	})
})

var _ = Describe("Hub", func() {
	var (
		hub   *notification.Hub
		clock time.Time
	)

	BeforeEach(func() {
		clock = at(8, 1)
		hub = notification.NewHub(nil, notification.WithClock(func() time.Time { return clock }))
	})

	It("raises the due notice when a session is first touched", func() {
		log := hub.Touch("u1", role.Employee)
		Expect(log.Active()).To(HaveLen(1))
		Expect(log.Active()[0].ID).To(Equal("hourly_8_2024-07-15"))
	})

	It("does not raise a notice twice within the window", func() {
		hub.Touch("u1", role.Employee)
		hub.Tick(at(8, 3))
		hub.Tick(at(8, 5))
		Expect(hub.Touch("u1", role.Employee).Len()).To(Equal(1))
	})

	It("raises notices for every session on tick", func() {
		clock = at(7, 45)
		a := hub.Touch("u1", role.Employee)
		b := hub.Touch("u2", role.Admin)
		Expect(a.Len()).To(BeZero())

		hub.Tick(at(7, 30).Add(time.Hour))
		Expect(a.Active()[0].Type).To(Equal(notification.TypeReminder))
		Expect(b.Active()[0].Type).To(Equal(notification.TypeReminder))
	})

	It("decides due notices on the configured wall clock", func() {
		plus := time.FixedZone("UTC+2", 2*60*60)
		hub = notification.NewHub(nil,
			notification.WithClock(func() time.Time { return clock }),
			notification.WithLocation(plus))

		log := hub.Touch("u1", role.Employee)
		Expect(log.Active()[0].ID).To(Equal("hourly_10_2024-07-15"))
	})

	It("ticks safely while sessions change role", func() {
		hub.Touch("u1", role.Employee)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer GinkgoRecover()
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				hub.Tick(at(8, 2))
			}
		}()
		go func() {
			defer GinkgoRecover()
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				if i%2 == 0 {
					hub.Touch("u1", role.Admin)
				} else {
					hub.Touch("u1", role.Supervisor)
				}
			}
		}()
		wg.Wait()

		hub.Tick(at(9, 0))
		log := hub.Touch("u1", role.Admin)
		Expect(log.Active()).To(ContainElement(HaveField("ID", "hourly_9_2024-07-15")))
		Expect(hub.Sessions()).To(Equal(1))
	})

	It("drops idle sessions", func() {
		hub.Touch("u1", role.Employee)
		hub.Tick(clock.Add(25 * time.Hour))
		Expect(hub.Sessions()).To(BeZero())
	})

	It("dismisses through the user's session", func() {
		hub.Touch("u1", role.Employee)
		Expect(hub.Dismiss("u1", "hourly_8_2024-07-15")).To(Succeed())
		Expect(errors.Is(hub.Dismiss("u2", "hourly_8_2024-07-15"), notification.ErrNotFound)).To(BeTrue())
		Expect(hub.DismissAll("u2")).To(BeZero())
	})

	It("adds a completed notice on checklist submission", func() {
		bus := events.NewEventBus(nil)
		hub.Register(bus)
		log := hub.Touch("u1", role.Employee)

		e := events.NewChecklistSubmittedEvent("s1", "u1", "c1", 75, "2024-07-15", 8)
		Expect(bus.PublishSync(context.Background(), e)).To(Succeed())

		var completed []notification.Notification
		for _, n := range log.Active() {
			if n.Type == notification.TypeCompleted {
				completed = append(completed, n)
			}
		}
		Expect(completed).To(HaveLen(1))
		Expect(completed[0].Message).To(ContainSubstring("75%"))
	})

	It("ignores submissions from users without a session", func() {
		e := events.NewChecklistSubmittedEvent("s1", "ghost", "c1", 75, "2024-07-15", 8)
		Expect(hub.HandleChecklistSubmitted(context.Background(), e)).To(Succeed())
		Expect(hub.Sessions()).To(BeZero())
	})
})

var _ = Describe("Poller", func() {
	It("ticks the hub", func() {
		clock := at(7, 40)
		hub := notification.NewHub(nil, notification.WithClock(func() time.Time { return clock }))
		log := hub.Touch("u1", role.Employee)
		Expect(log.Len()).To(BeZero())

		poller := notification.NewPoller(hub, time.Minute, nil)
		clock = at(8, 0)
		poller.RunOnce()
		Expect(log.Len()).To(Equal(1))
	})

	It("starts and stops the schedule", func() {
		hub := notification.NewHub(nil)
		poller := notification.NewPoller(hub, time.Hour, nil)
		Expect(poller.Start()).To(Succeed())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		poller.Stop(ctx)
	})
})
