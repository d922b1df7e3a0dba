package notification

import (
	"sort"
	"sync"
	"time"
)

// Log is a bounded notification history. Entries older than the retention are
// evicted and at most maxEntries are kept, dropping the oldest first.
type Log struct {
	mu         sync.Mutex
	entries    []Notification
	retention  time.Duration
	maxEntries int
}

func NewLog(retention time.Duration, maxEntries int) *Log {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	if maxEntries <= 0 {
		maxEntries = 200
	}
	return &Log{retention: retention, maxEntries: maxEntries}
}

// Add stores n unless an entry with the same ID is already held. It reports
// whether n was added.
func (l *Log) Add(n Notification) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.entries {
		if e.ID == n.ID {
			return false
		}
	}
	l.entries = append(l.entries, n)
	if over := len(l.entries) - l.maxEntries; over > 0 {
		l.entries = append([]Notification(nil), l.entries[over:]...)
	}
	return true
}

// Evict drops entries older than the retention as seen from now and returns
// how many were removed.
func (l *Log) Evict(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.entries[:0]
	for _, e := range l.entries {
		if now.Sub(e.Timestamp) <= l.retention {
			kept = append(kept, e)
		}
	}
	removed := len(l.entries) - len(kept)
	l.entries = kept
	return removed
}

func (l *Log) Dismiss(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].Dismissed = true
			return nil
		}
	}
	return ErrNotFound
}

// DismissAll marks every entry dismissed and returns how many changed.
func (l *Log) DismissAll() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for i := range l.entries {
		if !l.entries[i].Dismissed {
			l.entries[i].Dismissed = true
			n++
		}
	}
	return n
}

// Active returns the entries that have not been dismissed, oldest first.
func (l *Log) Active() []Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []Notification{}
	for _, e := range l.entries {
		if !e.Dismissed {
			out = append(out, e)
		}
	}
	return out
}

// Recent returns entries from the last retention period, newest first,
// dismissed ones included.
func (l *Log) Recent(now time.Time) []Notification {
	l.mu.Lock()
	out := []Notification{}
	for _, e := range l.entries {
		if now.Sub(e.Timestamp) <= l.retention {
			out = append(out, e)
		}
	}
	l.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
