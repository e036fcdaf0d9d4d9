// SPDX-License-Identifier: Unlicense OR MIT

// Package pointer implements the pointer, touch and wheel events
// observed on a map viewport.
package pointer

import (
	"strings"
	"time"

	"gioui.org/x/gesturegate/f32"
	"gioui.org/x/gesturegate/io/key"
)

// Event is a pointer event.
//
// Browser events map to events as follows:
//
//	touchstart  Kind Press,   Source Touch
//	touchmove   Kind Move,    Source Touch
//	touchend    Kind Release, Source Touch
//	touchcancel Kind Cancel,  Source Touch
//	click       Kind Click,   Source Mouse
//	wheel       Kind Scroll,  Source Mouse
//	mouseenter  Kind Enter,   Source Mouse
//	mouseleave  Kind Leave,   Source Mouse
type Event struct {
	Kind   Kind
	Source Source
	// Touches is the number of touch points active on the
	// surface, including the ones that triggered the event.
	// It is zero for mouse events.
	Touches int
	// Target is the element the event was dispatched to. It
	// may be nil when the source cannot tell.
	Target Target
	// Time is when the event was received. The
	// timestamp is relative to an undefined base.
	Time time.Duration
	// Position is the coordinates of the event relative to the
	// top left corner of the viewport.
	Position f32.Point
	// Scroll is the wheel delta, if any.
	Scroll f32.Point
	// Modifiers is the set of active modifiers when the
	// event was fired.
	Modifiers key.Modifiers
}

// Target is the element an event was dispatched to.
type Target interface {
	// HasClass reports whether the target lies within an
	// element carrying the class.
	HasClass(class string) bool
}

// Classes is a Target described by the classes of the target
// element and its ancestors up to the viewport.
type Classes []string

// Kind of an Event.
type Kind uint

// Source of an Event.
type Source uint8

const (
	// A Cancel event is generated when the current gesture is
	// interrupted by the system.
	Cancel Kind = 1 << iota
	// Press of a pointer.
	Press
	// Release of a pointer.
	Release
	// Move of a pointer.
	Move
	// Pointer enters the viewport.
	Enter
	// Pointer leaves the viewport.
	Leave
	// Scroll of a wheel.
	Scroll
	// Click of a mouse button, or a tap synthesized
	// into a click by the browser.
	Click
)

const (
	// Mouse generated event.
	Mouse Source = iota
	// Touch generated event.
	Touch
)

// HasClass implements Target.
func (c Classes) HasClass(class string) bool {
	for _, cls := range c {
		if cls == class {
			return true
		}
	}
	return false
}

// IsTouch reports whether e is a touchstart or touchmove, the two
// touch events that can pan a map.
func (e Event) IsTouch() bool {
	return e.Source == Touch && (e.Kind == Press || e.Kind == Move)
}

func (t Kind) String() string {
	if t == Cancel {
		return "Cancel"
	}
	var buf strings.Builder
	for tt := Kind(1); tt > 0; tt <<= 1 {
		if t&tt > 0 {
			if buf.Len() > 0 {
				buf.WriteByte('|')
			}
			buf.WriteString((t & tt).string())
		}
	}
	return buf.String()
}

func (t Kind) string() string {
	switch t {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Cancel:
		return "Cancel"
	case Move:
		return "Move"
	case Enter:
		return "Enter"
	case Leave:
		return "Leave"
	case Scroll:
		return "Scroll"
	case Click:
		return "Click"
	default:
		panic("unknown Type")
	}
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	default:
		panic("unknown source")
	}
}

func (Event) ImplementsEvent() {}
