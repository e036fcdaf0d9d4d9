// SPDX-License-Identifier: Unlicense OR MIT

// Package record implements in-memory hosts, viewports and event
// sources that record what a gesture gate does to them.
package record

import (
	"sort"
	"sync"

	"gioui.org/x/gesturegate/io/event"
)

// Host is a map host with dragging and wheel zoom capabilities only.
type Host struct {
	Dragging   bool
	ScrollZoom bool
}

// FullHost adds tap, rotation and version reporting to Host.
type FullHost struct {
	Host
	Tap    bool
	Rotate bool
	// Ver is reported by Version, such as "1.7.1".
	Ver string
}

// Viewport records classes and attributes. The zero value is an
// attached, empty viewport.
type Viewport struct {
	// Detached makes Attached report false.
	Detached bool
	// Mutations counts calls that changed the viewport.
	Mutations int

	classes map[string]bool
	attrs   map[string]string
}

// Source is an event source that fans events out to its
// subscribers. It is safe for concurrent use.
type Source struct {
	mu   sync.Mutex
	subs []*subscription
}

type subscription struct {
	h event.Handler
}

func (h *Host) SetDraggingEnabled(enable bool)   { h.Dragging = enable }
func (h *Host) SetScrollZoomEnabled(enable bool) { h.ScrollZoom = enable }

func (h *FullHost) SetTapEnabled(enable bool) { h.Tap = enable }
func (h *FullHost) Rotated() bool             { return h.Rotate }
func (h *FullHost) Version() string           { return h.Ver }

func (v *Viewport) AddClass(class string) {
	if v.classes == nil {
		v.classes = make(map[string]bool)
	}
	v.classes[class] = true
	v.Mutations++
}

func (v *Viewport) RemoveClass(class string) {
	delete(v.classes, class)
	v.Mutations++
}

func (v *Viewport) SetAttribute(name, value string) {
	if v.attrs == nil {
		v.attrs = make(map[string]string)
	}
	v.attrs[name] = value
	v.Mutations++
}

func (v *Viewport) Attached() bool {
	return !v.Detached
}

// HasClass reports whether the class is set.
func (v *Viewport) HasClass(class string) bool {
	return v.classes[class]
}

// Classes returns the set classes in sorted order.
func (v *Viewport) Classes() []string {
	classes := make([]string, 0, len(v.classes))
	for c := range v.classes {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	return classes
}

// Attribute returns the value of an attribute and whether it is set.
func (v *Viewport) Attribute(name string) (string, bool) {
	val, ok := v.attrs[name]
	return val, ok
}

// Subscribe adds h to the subscribers. The returned function removes
// it again and may be called more than once.
func (s *Source) Subscribe(h event.Handler) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub := &subscription{h: h}
	s.subs = append(s.subs, sub)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub2 := range s.subs {
			if sub2 == sub {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers e to every subscriber and reports whether any of them
// asked for the default action to be prevented. Subscribers may
// subscribe and unsubscribe during delivery.
func (s *Source) Emit(e event.Event) bool {
	s.mu.Lock()
	subs := append([]*subscription(nil), s.subs...)
	s.mu.Unlock()
	prevent := false
	for _, sub := range subs {
		if sub.h.Event(e) {
			prevent = true
		}
	}
	return prevent
}

// Len returns the number of subscribers.
func (s *Source) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
