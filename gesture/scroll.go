// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"gioui.org/x/gesturegate/io/event"
	"gioui.org/x/gesturegate/io/key"
	"gioui.org/x/gesturegate/io/pointer"
)

// scroll classifies wheel events. The wheel zooms the map only with
// ctrl or command held, or shift on rotated maps; otherwise it
// scrolls the page and raises the scroll warning.
func (g *Gate) scroll(e pointer.Event) bool {
	if g.zoomModifiers(e.Modifiers) {
		g.disableScrollWarning(0)
		return true
	}
	g.enableScrollWarning()
	g.disableScrollWarning(g.opts.Duration)
	return false
}

func (g *Gate) zoomModifiers(m key.Modifiers) bool {
	if m.Any(key.ModCommand | key.ModCtrl) {
		return true
	}
	r, ok := g.host.(RotatableHost)
	return ok && m.Contain(key.ModShift) && r.Rotated()
}

// popupHandler forwards the wheel events of a popup's content.
type popupHandler struct {
	g *Gate
}

func (h popupHandler) Event(e event.Event) bool {
	pe, ok := e.(pointer.Event)
	if !ok || pe.Kind != pointer.Scroll {
		return false
	}
	return h.g.Event(pe)
}

func (g *Gate) popupOpen(p event.Source) {
	if p == nil {
		return
	}
	if _, ok := g.popups[p]; ok {
		return
	}
	g.popups[p] = p.Subscribe(popupHandler{g})
}

func (g *Gate) popupClose(p event.Source) {
	if unsub, ok := g.popups[p]; ok {
		unsub()
		delete(g.popups, p)
	}
}
