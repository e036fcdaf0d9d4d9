// SPDX-License-Identifier: Unlicense OR MIT

// Package key implements the keyboard modifier state carried by
// pointer events.
package key

import (
	"strings"
)

// Modifiers is the set of modifier keys held during an event.
type Modifiers uint32

const (
	// ModCtrl is the ctrl modifier key.
	ModCtrl Modifiers = 1 << iota
	// ModCommand is the command modifier key
	// found on Apple keyboards. Browsers report it
	// as the meta key.
	ModCommand
	// ModShift is the shift modifier key.
	ModShift
	// ModAlt is the alt modifier key, or the option
	// key on Apple keyboards.
	ModAlt
	// ModSuper is the "logo" modifier key, often
	// represented by a Windows logo.
	ModSuper
)

// Contain reports whether m contains all modifiers
// in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

// Any reports whether m contains at least one of
// the modifiers in m2.
func (m Modifiers) Any(m2 Modifiers) bool {
	return m&m2 != 0
}

func (m Modifiers) String() string {
	var strs []string
	if m.Contain(ModCtrl) {
		strs = append(strs, "Ctrl")
	}
	if m.Contain(ModCommand) {
		strs = append(strs, "⌘")
	}
	if m.Contain(ModShift) {
		strs = append(strs, "Shift")
	}
	if m.Contain(ModAlt) {
		strs = append(strs, "Alt")
	}
	if m.Contain(ModSuper) {
		strs = append(strs, "Super")
	}
	return strings.Join(strs, "-")
}

// ParseModifier returns the modifier for a name as used by
// browsers and trace files: "ctrl", "meta" (or "cmd"), "shift",
// "alt" and "super". Names are case insensitive.
func ParseModifier(name string) (Modifiers, bool) {
	switch strings.ToLower(name) {
	case "ctrl", "control":
		return ModCtrl, true
	case "meta", "cmd", "command", "⌘":
		return ModCommand, true
	case "shift":
		return ModShift, true
	case "alt", "option":
		return ModAlt, true
	case "super":
		return ModSuper, true
	default:
		return 0, false
	}
}
