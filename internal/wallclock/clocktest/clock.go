// Package clocktest provides a manually driven wallclock for tests. Time
// only moves when Advance is called, firing any timers that come due.
package clocktest

import (
	"sync"
	"time"

	"github.com/RodCaba/fp-orchestrator/internal/wallclock"
)

type (
	// Clock implements wallclock.WallClock with manually driven time.
	Clock struct {
		mu      sync.Mutex
		cond    *sync.Cond
		now     time.Time
		waiters []*waiter
	}

	waiter struct {
		deadline time.Time
		period   time.Duration // zero for one-shot timers
		ch       chan time.Time
		stopped  bool
	}
)

// New returns a Clock frozen at the given instant.
func New(start time.Time) *Clock {
	c := &Clock{now: start}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Install sets a new Clock as the wallclock singleton and restores the
// previous one when the test completes.
func Install(t interface{ Cleanup(func()) }, start time.Time) *Clock {
	c := New(start)
	prev := wallclock.Instance
	wallclock.Instance = c
	t.Cleanup(func() { wallclock.Instance = prev })
	return c
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) After(d time.Duration) <-chan time.Time {
	return c.newWaiter(d, 0).ch
}

func (c *Clock) NewTimer(d time.Duration) wallclock.Timer {
	return &timer{clock: c, w: c.newWaiter(d, 0)}
}

func (c *Clock) NewTicker(d time.Duration) wallclock.Ticker {
	return &ticker{clock: c, w: c.newWaiter(d, d)}
}

func (c *Clock) newWaiter(d, period time.Duration) *waiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := &waiter{
		deadline: c.now.Add(d),
		period:   period,
		ch:       make(chan time.Time, 1),
	}
	c.waiters = append(c.waiters, w)
	c.cond.Broadcast()
	return w
}

// Advance moves the clock forward, firing timers in deadline order as they
// come due. Tickers re-arm and may fire multiple times in one call.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.now.Add(d)
	for {
		var next *waiter
		for _, w := range c.waiters {
			if w.stopped || w.deadline.After(target) {
				continue
			}
			if next == nil || w.deadline.Before(next.deadline) {
				next = w
			}
		}
		if next == nil {
			break
		}

		c.now = next.deadline
		select {
		case next.ch <- c.now:
		default:
		}

		if next.period > 0 {
			next.deadline = next.deadline.Add(next.period)
		} else {
			next.stopped = true
		}
	}
	c.now = target
}

// BlockUntil waits until at least n timers are pending on the clock. Tests
// use it to make sure the code under test has armed its timer before the
// clock is advanced.
func (c *Clock) BlockUntil(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.pending() < n {
		c.cond.Wait()
	}
}

func (c *Clock) pending() int {
	count := 0
	for _, w := range c.waiters {
		if !w.stopped {
			count++
		}
	}
	return count
}

type timer struct {
	clock *Clock
	w     *waiter
}

func (t *timer) C() <-chan time.Time { return t.w.ch }

func (t *timer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.w.stopped
	t.w.stopped = true
	return active
}

func (t *timer) Reset(d time.Duration) bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.w.stopped
	t.w.stopped = false
	t.w.deadline = t.clock.now.Add(d)
	t.clock.cond.Broadcast()
	return active
}

type ticker struct {
	clock *Clock
	w     *waiter
}

func (t *ticker) C() <-chan time.Time { return t.w.ch }

func (t *ticker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.w.stopped = true
}
