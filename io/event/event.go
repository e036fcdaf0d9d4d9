// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains the types shared by viewport input events
// and host map lifecycle events.
package event

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}

// Handler receives events. Event reports whether the default action
// of the event, such as page scrolling, must be prevented.
type Handler interface {
	Event(e Event) bool
}

// Source delivers events to subscribed handlers.
type Source interface {
	// Subscribe starts delivering events to h until the returned
	// function is called. Sources must not hold locks while
	// delivering, since handlers may subscribe and unsubscribe
	// during delivery.
	Subscribe(h Handler) (unsubscribe func())
}
