// Package clock provides the timer primitives the interaction controller is
// driven by. Callbacks always run on the goroutine that advances the clock.
package clock

import "time"

// CancelFunc stops a repeating callback. Calling it more than once is a no-op.
type CancelFunc func()

// Scheduler abstracts the host's delayed and repeating callbacks.
type Scheduler interface {
	After(d time.Duration, fn func())
	Every(d time.Duration, fn func()) CancelFunc
}

type entry struct {
	id       uint64
	seq      uint64
	deadline time.Duration
	interval time.Duration
	fn       func()
}

// Manual is a simulated clock. Nothing fires until Advance is called.
type Manual struct {
	now     time.Duration
	entries []*entry
	nextID  uint64
	nextSeq uint64
}

func NewManual() *Manual {
	return &Manual{}
}

// Now returns the simulated time elapsed since the clock was created.
func (m *Manual) Now() time.Duration { return m.now }

// Pending returns the number of armed callbacks.
func (m *Manual) Pending() int { return len(m.entries) }

func (m *Manual) After(d time.Duration, fn func()) {
	m.add(d, 0, fn)
}

// Every arms fn to fire every d. A non-positive d is clamped to one
// nanosecond so Advance always makes progress.
func (m *Manual) Every(d time.Duration, fn func()) CancelFunc {
	if d <= 0 {
		d = time.Nanosecond
	}
	id := m.add(d, d, fn)
	return func() { m.remove(id) }
}

func (m *Manual) add(delay, interval time.Duration, fn func()) uint64 {
	if delay < 0 {
		delay = 0
	}
	m.nextID++
	m.nextSeq++
	m.entries = append(m.entries, &entry{
		id:       m.nextID,
		seq:      m.nextSeq,
		deadline: m.now + delay,
		interval: interval,
		fn:       fn,
	})
	return m.nextID
}

func (m *Manual) remove(id uint64) {
	for i, e := range m.entries {
		if e.id == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return
		}
	}
}

// next returns the earliest entry due at or before limit. Ties go to the
// entry armed first.
func (m *Manual) next(limit time.Duration) *entry {
	var best *entry
	for _, e := range m.entries {
		if e.deadline > limit {
			continue
		}
		if best == nil || e.deadline < best.deadline || (e.deadline == best.deadline && e.seq < best.seq) {
			best = e
		}
	}
	return best
}

// Advance moves the clock forward by d, firing every callback that comes due
// in deadline order. Callbacks may arm or cancel other callbacks.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := m.now + d
	for {
		e := m.next(target)
		if e == nil {
			break
		}
		m.now = e.deadline
		if e.interval > 0 {
			m.nextSeq++
			e.seq = m.nextSeq
			e.deadline += e.interval
		} else {
			m.remove(e.id)
		}
		e.fn()
	}
	m.now = target
}
