// SPDX-License-Identifier: Unlicense OR MIT

// Package vclock implements a virtual clock whose timers fire only
// when the clock is advanced.
package vclock

import (
	"sort"
	"sync"
	"time"
)

// Clock is a virtual clock. The zero value starts at time zero.
type Clock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*timer
}

type timer struct {
	when time.Duration
	seq  uint64
	f    func()
}

// AfterFunc schedules f to run when the clock reaches Now()+d. The
// returned function cancels the timer and reports whether it was
// pending.
func (c *Clock) AfterFunc(d time.Duration, f func()) (stop func() bool) {
	if d < 0 {
		d = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &timer{when: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, t2 := range c.timers {
			if t2 == t {
				c.timers = append(c.timers[:i], c.timers[i+1:]...)
				return true
			}
		}
		return false
	}
}

// Now returns the virtual time.
func (c *Clock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of scheduled timers.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Advance moves the clock forward by d, running due timers in order
// of their deadline. Timers scheduled by a running timer fire in the
// same call if they fall due. Advance(0) runs timers scheduled
// with a zero delay.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	end := c.now + d
	c.mu.Unlock()
	c.AdvanceTo(end)
}

// AdvanceTo moves the clock forward to the absolute time t. It is a
// no-op for times in the past, except for firing due timers.
func (c *Clock) AdvanceTo(t time.Duration) {
	for {
		c.mu.Lock()
		next := c.next(t)
		if next == nil {
			if t > c.now {
				c.now = t
			}
			c.mu.Unlock()
			return
		}
		if next.when > c.now {
			c.now = next.when
		}
		c.mu.Unlock()
		next.f()
	}
}

// next removes and returns the earliest timer due at or before t.
func (c *Clock) next(t time.Duration) *timer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		a, b := c.timers[i], c.timers[j]
		if a.when != b.when {
			return a.when < b.when
		}
		return a.seq < b.seq
	})
	first := c.timers[0]
	if first.when > t {
		return nil
	}
	c.timers = c.timers[1:]
	return first
}
