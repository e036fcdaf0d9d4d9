// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"context"

	"gioui.org/x/gesturegate/locale"
)

// resolveText applies the configured texts, or starts looking them up
// in the background. Input is gated in the meantime; only the texts
// are missing.
func (g *Gate) resolveText() {
	ready := make(chan struct{})
	g.ready = ready
	if g.opts.Text.Complete() {
		g.applyText(g.opts.Text)
		close(ready)
		return
	}
	tag := g.opts.Locale
	if tag == "" {
		tag = g.opts.Platform.Language()
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	go func() {
		defer close(ready)
		content := g.opts.Resolver.Resolve(ctx, tag)
		g.mu.Lock()
		defer g.mu.Unlock()
		if ctx.Err() != nil || !g.vp.Attached() {
			return
		}
		g.applyText(content)
	}()
}

func (g *Gate) applyText(c locale.Content) {
	g.vp.SetAttribute(AttrTouchContent, c.Touch)
	g.vp.SetAttribute(AttrScrollContent, c.Scroll)
	g.text = c
	g.log.Debug("gesture texts applied", "touch", c.Touch, "scroll", c.Scroll)
}

// Ready returns a channel that is closed when the texts of the latest
// Enable are known, or their lookup was abandoned by Disable.
func (g *Gate) Ready() <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ready
}

// Text returns the warning texts in use. It is empty until the texts
// are known.
func (g *Gate) Text() locale.Content {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.text
}
