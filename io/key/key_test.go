// SPDX-License-Identifier: Unlicense OR MIT

package key

import (
	"testing"
)

func TestModifiersString(t *testing.T) {
	const allMods = ModAlt | ModShift | ModSuper | ModCtrl | ModCommand
	for _, tc := range []struct {
		m    Modifiers
		want string
	}{
		{0, ""},
		{ModCtrl, "Ctrl"},
		{ModCommand | ModShift, "⌘-Shift"},
		{allMods, "Ctrl-⌘-Shift-Alt-Super"},
	} {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("got %q; want %q", got, tc.want)
		}
	}
}

func TestModifiersContain(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Contain(ModCtrl) || !m.Contain(ModCtrl|ModShift) {
		t.Errorf("%v should contain ctrl and shift", m)
	}
	if m.Contain(ModCtrl | ModCommand) {
		t.Errorf("%v should not contain ctrl-command", m)
	}
	if !m.Any(ModCommand | ModShift) {
		t.Errorf("%v should contain any of command, shift", m)
	}
	if m.Any(ModAlt) {
		t.Errorf("%v should not contain alt", m)
	}
}

func TestParseModifier(t *testing.T) {
	for _, tc := range []struct {
		name string
		want Modifiers
		ok   bool
	}{
		{"ctrl", ModCtrl, true},
		{"Meta", ModCommand, true},
		{"cmd", ModCommand, true},
		{"SHIFT", ModShift, true},
		{"option", ModAlt, true},
		{"hyper", 0, false},
	} {
		got, ok := ParseModifier(tc.name)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseModifier(%q) = %v, %v; want %v, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}
