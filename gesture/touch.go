// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"gioui.org/x/gesturegate/io/pointer"
)

// ClassInteractive marks interactive overlays such as markers and
// vector layers.
const ClassInteractive = "leaflet-interactive"

// IgnoreClasses mark the parts of a map that handle touches
// themselves: the minimap, interactive overlays, popups and the zoom
// buttons.
var IgnoreClasses = []string{
	"leaflet-control-minimap",
	ClassInteractive,
	"leaflet-popup-content",
	"leaflet-popup-content-wrapper",
	"leaflet-popup-close-button",
	"leaflet-control-zoom-in",
	"leaflet-control-zoom-out",
}

func ignored(t pointer.Target) bool {
	if t == nil {
		return false
	}
	for _, c := range IgnoreClasses {
		if t.HasClass(c) {
			return true
		}
	}
	return false
}

// touch classifies touches and clicks. A single finger moving the
// map raises the touch warning; two or more fingers pass through to
// the map.
func (g *Gate) touch(e pointer.Event) bool {
	switch {
	case ignored(e.Target):
		// Dragging an overlay with one finger would pan the map
		// as well.
		if e.Target.HasClass(ClassInteractive) && e.Source == pointer.Touch &&
			e.Kind == pointer.Move && e.Touches == 1 {
			g.enableTouchWarning()
		} else {
			g.disableTouchWarning(0)
		}
	case !e.IsTouch():
		g.disableTouchWarning(0)
	case e.Touches == 1:
		g.enableTouchWarning()
	default:
		g.disableTouchWarning(0)
		g.enableInteractions()
		return true
	}
	return false
}
