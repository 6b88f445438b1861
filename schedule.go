package faceloop

import "time"

// Subscription identifies a scheduled callback. The zero value is never
// issued.
type Subscription uint64

// Scheduler repeats a callback every interval until cancelled.
type Scheduler interface {
	Schedule(fn func(), interval time.Duration) Subscription
	Cancel(sub Subscription)
}

type scheduleEntry struct {
	id        Subscription
	fn        func()
	interval  time.Duration
	elapsed   time.Duration
	cancelled bool
}

// FrameScheduler is a Scheduler driven by the host frame loop: each call to
// Advance adds the frame time and fires the callbacks whose interval elapsed.
// A callback fires at most once per Advance; surplus time beyond one interval
// is dropped, so missed ticks are never queued. Not safe for concurrent use.
type FrameScheduler struct {
	entries []scheduleEntry
	lastID  Subscription
}

// Schedule registers fn to run every interval. A non-positive interval fires
// on every Advance.
func (s *FrameScheduler) Schedule(fn func(), interval time.Duration) Subscription {
	s.lastID++
	s.entries = append(s.entries, scheduleEntry{id: s.lastID, fn: fn, interval: interval})
	return s.lastID
}

// Cancel removes sub. Cancelling from inside a callback takes effect
// immediately: the cancelled callback does not fire again, even later in the
// same Advance.
func (s *FrameScheduler) Cancel(sub Subscription) {
	for i := range s.entries {
		if s.entries[i].id == sub {
			s.entries[i].cancelled = true
			s.entries[i].fn = nil
		}
	}
}

// Len returns the number of live subscriptions.
func (s *FrameScheduler) Len() int {
	n := 0
	for i := range s.entries {
		if !s.entries[i].cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt and fires due callbacks in
// subscription order. Callbacks scheduled during Advance start counting on
// the next call.
func (s *FrameScheduler) Advance(dt time.Duration) {
	n := len(s.entries)
	for i := 0; i < n; i++ {
		if s.entries[i].cancelled {
			continue
		}
		s.entries[i].elapsed += dt
		interval := s.entries[i].interval
		if interval > 0 && s.entries[i].elapsed < interval {
			continue
		}
		if interval > 0 {
			s.entries[i].elapsed %= interval
		} else {
			s.entries[i].elapsed = 0
		}
		s.entries[i].fn()
	}
	s.compact()
}

func (s *FrameScheduler) compact() {
	live := s.entries[:0]
	for _, e := range s.entries {
		if !e.cancelled {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(s.entries); i++ {
		s.entries[i] = scheduleEntry{}
	}
	s.entries = live
}
