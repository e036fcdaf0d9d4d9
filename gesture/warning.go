// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"time"
)

// debounce holds at most one pending timer. Starting it again
// replaces the pending timer, so bursts of events coalesce into a
// single callback.
type debounce struct {
	stopTimer func() bool
	// gen identifies the pending timer. Timers that fire after
	// being replaced see a newer generation and do nothing.
	gen uint64
}

// start replaces the pending timer with one that runs f after delay.
// f runs with the gate locked, and only while the gate is enabled and
// its viewport attached.
func (d *debounce) start(g *Gate, delay time.Duration, f func()) {
	d.stop()
	d.gen++
	gen := d.gen
	d.stopTimer = g.opts.Clock.AfterFunc(delay, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if d.gen != gen || d.stopTimer == nil {
			return
		}
		d.stopTimer = nil
		if !g.enabled || !g.vp.Attached() {
			return
		}
		f()
	})
}

func (d *debounce) stop() {
	if d.stopTimer != nil {
		d.stopTimer()
		d.stopTimer = nil
	}
}

// enableWarning shows the warning for k.
func (g *Gate) enableWarning(k Kind) {
	g.fading[k].stop()
	g.vp.AddClass(k.class())
	g.vp.AddClass(ClassWarning)
	g.warning[k] = true
}

// disableWarning hides the warning at once but keeps the marker
// for k until the fade out is over.
func (g *Gate) disableWarning(k Kind) {
	g.fading[k].start(g, g.opts.Duration, func() {
		g.vp.RemoveClass(k.class())
	})
	g.vp.RemoveClass(ClassWarning)
	g.warning[k] = false
}

func (g *Gate) enableTouchWarning() {
	g.enableWarning(KindTouch)
	g.disableInteractions()
}

// disableTouchWarning clears the touch warning after delay. The
// interactions stay as they are; a mouse entering the viewport or a
// multi-finger touch enables them.
func (g *Gate) disableTouchWarning(delay time.Duration) {
	g.touching.start(g, delay, func() {
		g.disableWarning(KindTouch)
	})
}

func (g *Gate) enableScrollWarning() {
	g.enableWarning(KindScroll)
	g.host.SetScrollZoomEnabled(false)
}

func (g *Gate) disableScrollWarning(delay time.Duration) {
	g.scrolling.start(g, delay, func() {
		g.disableWarning(KindScroll)
		g.host.SetScrollZoomEnabled(true)
	})
}

// Warning reports whether the warning for k is showing.
func (g *Gate) Warning(k Kind) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.warning[k]
}
