// SPDX-License-Identifier: Unlicense OR MIT

//go:build js && wasm

package app

import (
	"syscall/js"
	"time"

	"gioui.org/x/gesturegate/f32"
	"gioui.org/x/gesturegate/gesture"
	"gioui.org/x/gesturegate/io/event"
	"gioui.org/x/gesturegate/io/key"
	"gioui.org/x/gesturegate/io/pointer"
	"gioui.org/x/gesturegate/locale"
)

// leafletMap controls the handlers of a Leaflet map.
type leafletMap struct {
	m js.Value
}

// viewport is the map container element.
type viewport struct {
	el js.Value
}

// target is the element an event was dispatched to.
type target struct {
	el        js.Value
	container js.Value
}

// mapSource delivers the container's input events and the map's
// lifecycle events.
type mapSource struct {
	m         js.Value
	container js.Value
}

// fullscreenSource delivers the map's fullscreen changes.
type fullscreenSource struct {
	m js.Value
}

// popupSource delivers the input events of a popup's content node.
type popupSource struct {
	node js.Value
}

// listeners tracks installed listeners and the functions backing
// them.
type listeners struct {
	cleanfuncs []func()
}

// nonPassive allows listeners to prevent the default action.
var nonPassive = js.ValueOf(map[string]interface{}{"passive": false})

var mapEvents = map[string]gesture.MapKind{
	"movestart":  gesture.MapMoveStart,
	"move":       gesture.MapMove,
	"moveend":    gesture.MapMoveEnd,
	"popupopen":  gesture.MapPopupOpen,
	"popupclose": gesture.MapPopupClose,
}

var fullscreenEvents = map[string]gesture.MapKind{
	"enterFullscreen": gesture.MapEnterFullscreen,
	"exitFullscreen":  gesture.MapExitFullscreen,
}

// Attach enables gesture handling on the Leaflet map m. A zero
// opts.Platform is filled in from the browser's navigator.
func Attach(m js.Value, opts gesture.Options) *gesture.Gate {
	if opts.Platform.Name == "" && opts.Platform.UserAgent == "" && len(opts.Platform.Languages) == 0 {
		opts.Platform = navigatorPlatform()
	}
	if opts.Fullscreen == nil {
		opts.Fullscreen = &fullscreenSource{m: m}
	}
	cont := m.Get("_container")
	g := gesture.New(
		&leafletMap{m: m},
		viewport{el: cont},
		&mapSource{m: m, container: cont},
		opts,
	)
	g.Enable()
	return g
}

func (l *leafletMap) SetDraggingEnabled(enable bool)   { l.toggle("dragging", enable) }
func (l *leafletMap) SetScrollZoomEnabled(enable bool) { l.toggle("scrollWheelZoom", enable) }

// SetTapEnabled toggles the tap handler, which only exists in
// some Leaflet builds.
func (l *leafletMap) SetTapEnabled(enable bool) { l.toggle("tap", enable) }

// Rotated reports whether the map carries the rotation extension.
func (l *leafletMap) Rotated() bool {
	return l.m.Get("_rotate").Truthy()
}

func (l *leafletMap) Version() string {
	lf := js.Global().Get("L")
	if !lf.Truthy() {
		return ""
	}
	return stringOf(lf.Get("version"))
}

func (l *leafletMap) toggle(handler string, enable bool) {
	h := l.m.Get(handler)
	if !h.Truthy() {
		return
	}
	if enable {
		h.Call("enable")
	} else {
		h.Call("disable")
	}
}

func (v viewport) AddClass(class string) {
	v.el.Get("classList").Call("add", class)
}

func (v viewport) RemoveClass(class string) {
	v.el.Get("classList").Call("remove", class)
}

func (v viewport) SetAttribute(name, value string) {
	v.el.Call("setAttribute", name, value)
}

func (v viewport) Attached() bool {
	return v.el.Truthy() && v.el.Get("isConnected").Truthy()
}

func (t target) HasClass(class string) bool {
	if t.el.Type() != js.TypeObject || t.el.Get("closest").Type() != js.TypeFunction {
		return false
	}
	m := t.el.Call("closest", "."+class)
	return m.Truthy() && t.container.Call("contains", m).Bool()
}

func (s *mapSource) Subscribe(h event.Handler) func() {
	l := new(listeners)
	cont := s.container
	for typ, kind := range map[string]pointer.Kind{
		"touchstart":  pointer.Press,
		"touchmove":   pointer.Move,
		"touchend":    pointer.Release,
		"touchcancel": pointer.Cancel,
	} {
		kind := kind
		l.addEventListener(cont, typ, func(this js.Value, args []js.Value) interface{} {
			deliver(h, args[0], touchEvent(kind, args[0], cont))
			return nil
		})
	}
	l.addEventListener(cont, "click", func(this js.Value, args []js.Value) interface{} {
		e := args[0]
		deliver(h, e, pointer.Event{
			Kind:      pointer.Click,
			Source:    pointer.Mouse,
			Target:    target{el: e.Get("target"), container: cont},
			Time:      timestamp(e),
			Position:  position(e, cont),
			Modifiers: modifiers(e),
		})
		return nil
	})
	l.addEventListener(cont, "wheel", func(this js.Value, args []js.Value) interface{} {
		deliver(h, args[0], wheelEvent(args[0], cont))
		return nil
	})
	l.addEventListener(cont, "mouseenter", func(this js.Value, args []js.Value) interface{} {
		h.Event(pointer.Event{Kind: pointer.Enter, Source: pointer.Mouse, Time: timestamp(args[0])})
		return nil
	})
	l.addEventListener(cont, "mouseleave", func(this js.Value, args []js.Value) interface{} {
		h.Event(pointer.Event{Kind: pointer.Leave, Source: pointer.Mouse, Time: timestamp(args[0])})
		return nil
	})

	var popups []*popupSource
	for typ, kind := range mapEvents {
		kind := kind
		l.on(s.m, typ, func(this js.Value, args []js.Value) interface{} {
			e := gesture.MapEvent{Kind: kind}
			switch kind {
			case gesture.MapPopupOpen, gesture.MapPopupClose:
				node := args[0].Get("popup").Get("_contentNode")
				if !node.Truthy() {
					return nil
				}
				var p *popupSource
				for i, p2 := range popups {
					if p2.node.Equal(node) {
						p = p2
						if kind == gesture.MapPopupClose {
							popups = append(popups[:i], popups[i+1:]...)
						}
						break
					}
				}
				if p == nil {
					if kind == gesture.MapPopupClose {
						return nil
					}
					p = &popupSource{node: node}
					popups = append(popups, p)
				}
				e.Popup = p
			}
			h.Event(e)
			return nil
		})
	}
	return l.cleanup
}

func (s *fullscreenSource) Subscribe(h event.Handler) func() {
	l := new(listeners)
	for typ, kind := range fullscreenEvents {
		kind := kind
		l.on(s.m, typ, func(this js.Value, args []js.Value) interface{} {
			h.Event(gesture.MapEvent{Kind: kind})
			return nil
		})
	}
	return l.cleanup
}

func (p *popupSource) Subscribe(h event.Handler) func() {
	l := new(listeners)
	l.addEventListener(p.node, "wheel", func(this js.Value, args []js.Value) interface{} {
		deliver(h, args[0], wheelEvent(args[0], p.node))
		return nil
	})
	return l.cleanup
}

// deliver passes pe to h and prevents the default action of the
// DOM event e if h asks for it.
func deliver(h event.Handler, e js.Value, pe pointer.Event) {
	if h.Event(pe) {
		e.Call("preventDefault")
	}
}

func touchEvent(kind pointer.Kind, e, cont js.Value) pointer.Event {
	pe := pointer.Event{
		Kind:      kind,
		Source:    pointer.Touch,
		Touches:   e.Get("touches").Length(),
		Target:    target{el: e.Get("target"), container: cont},
		Time:      timestamp(e),
		Modifiers: modifiers(e),
	}
	if changed := e.Get("changedTouches"); changed.Length() > 0 {
		pe.Position = position(changed.Index(0), cont)
	}
	return pe
}

func wheelEvent(e, cont js.Value) pointer.Event {
	dx, dy := numberOf(e.Get("deltaX")), numberOf(e.Get("deltaY"))
	switch int(numberOf(e.Get("deltaMode"))) {
	case 0x01: // DOM_DELTA_LINE
		dx *= 10
		dy *= 10
	case 0x02: // DOM_DELTA_PAGE
		dx *= 120
		dy *= 120
	}
	return pointer.Event{
		Kind:      pointer.Scroll,
		Source:    pointer.Mouse,
		Target:    target{el: e.Get("target"), container: cont},
		Time:      timestamp(e),
		Position:  position(e, cont),
		Scroll:    f32.Pt(float32(dx), float32(dy)),
		Modifiers: modifiers(e),
	}
}

func modifiers(e js.Value) key.Modifiers {
	var m key.Modifiers
	if e.Get("ctrlKey").Truthy() {
		m |= key.ModCtrl
	}
	if e.Get("metaKey").Truthy() {
		m |= key.ModCommand
	}
	if e.Get("shiftKey").Truthy() {
		m |= key.ModShift
	}
	if e.Get("altKey").Truthy() {
		m |= key.ModAlt
	}
	return m
}

// position returns the client position of p relative to the
// container.
func position(p, cont js.Value) f32.Point {
	if p.Get("clientX").Type() != js.TypeNumber {
		return f32.Point{}
	}
	rect := cont.Call("getBoundingClientRect")
	x := p.Get("clientX").Float() - rect.Get("left").Float()
	y := p.Get("clientY").Float() - rect.Get("top").Float()
	return f32.Pt(float32(x), float32(y))
}

func timestamp(e js.Value) time.Duration {
	return time.Duration(numberOf(e.Get("timeStamp")) * float64(time.Millisecond))
}

func (l *listeners) addEventListener(this js.Value, event string, f func(this js.Value, args []js.Value) interface{}) {
	jsf := l.funcOf(f)
	this.Call("addEventListener", event, jsf, nonPassive)
	l.cleanfuncs = append(l.cleanfuncs, func() {
		this.Call("removeEventListener", event, jsf, nonPassive)
	})
}

// on adds a Leaflet event listener.
func (l *listeners) on(this js.Value, event string, f func(this js.Value, args []js.Value) interface{}) {
	jsf := l.funcOf(f)
	this.Call("on", event, jsf)
	l.cleanfuncs = append(l.cleanfuncs, func() {
		this.Call("off", event, jsf)
	})
}

// funcOf is like js.FuncOf but adds the js.Func to a list of
// functions to be released up.
func (l *listeners) funcOf(f func(this js.Value, args []js.Value) interface{}) js.Func {
	jsf := js.FuncOf(f)
	l.cleanfuncs = append(l.cleanfuncs, jsf.Release)
	return jsf
}

func (l *listeners) cleanup() {
	// Cleanup in the opposite order of
	// construction.
	for i := len(l.cleanfuncs) - 1; i >= 0; i-- {
		l.cleanfuncs[i]()
	}
	l.cleanfuncs = nil
}

func navigatorPlatform() locale.Platform {
	return platformOf(js.Global().Get("navigator"))
}

// platformOf describes the browser behind a navigator object.
func platformOf(nav js.Value) locale.Platform {
	if !nav.Truthy() {
		return locale.Platform{}
	}
	p := locale.Platform{
		Name:      stringOf(nav.Get("platform")),
		UserAgent: stringOf(nav.Get("userAgent")),
	}
	if langs := nav.Get("languages"); langs.Truthy() {
		for i := 0; i < langs.Length(); i++ {
			p.Languages = append(p.Languages, stringOf(langs.Index(i)))
		}
	}
	if len(p.Languages) == 0 {
		if l := stringOf(nav.Get("language")); l != "" {
			p.Languages = append(p.Languages, l)
		}
	}
	return p
}

func stringOf(v js.Value) string {
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

// numberOf returns v as a number, or zero when it is not one.
func numberOf(v js.Value) float64 {
	if v.Type() != js.TypeNumber {
		return 0
	}
	return v.Float()
}
