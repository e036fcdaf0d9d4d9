// SPDX-License-Identifier: Unlicense OR MIT

package vclock

import (
	"reflect"
	"testing"
	"time"
)

func TestAdvanceOrder(t *testing.T) {
	var c Clock
	var fired []string
	c.AfterFunc(20*time.Millisecond, func() { fired = append(fired, "b") })
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	c.AfterFunc(20*time.Millisecond, func() { fired = append(fired, "c") })
	c.Advance(15 * time.Millisecond)
	if want := []string{"a"}; !reflect.DeepEqual(fired, want) {
		t.Fatalf("fired %v; want %v", fired, want)
	}
	c.Advance(5 * time.Millisecond)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(fired, want) {
		t.Fatalf("fired %v; want %v", fired, want)
	}
	if got := c.Now(); got != 20*time.Millisecond {
		t.Errorf("Now() = %v; want 20ms", got)
	}
}

func TestStop(t *testing.T) {
	var c Clock
	fired := false
	stop := c.AfterFunc(time.Second, func() { fired = true })
	if !stop() {
		t.Error("stop of a pending timer reported false")
	}
	if stop() {
		t.Error("second stop reported true")
	}
	c.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestNestedTimers(t *testing.T) {
	var c Clock
	var at []time.Duration
	c.AfterFunc(0, func() {
		at = append(at, c.Now())
		c.AfterFunc(5*time.Millisecond, func() {
			at = append(at, c.Now())
		})
	})
	if c.Pending() != 1 {
		t.Fatalf("Pending() = %d; want 1", c.Pending())
	}
	c.Advance(0)
	c.Advance(10 * time.Millisecond)
	if want := []time.Duration{0, 5 * time.Millisecond}; !reflect.DeepEqual(at, want) {
		t.Errorf("fired at %v; want %v", at, want)
	}
	if c.Now() != 10*time.Millisecond {
		t.Errorf("Now() = %v; want 10ms", c.Now())
	}
}
