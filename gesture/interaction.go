// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"strconv"
	"strings"
)

// tapFixedMinor is the first host minor version without the Safari
// tap bug.
const tapFixedMinor = 8

func (g *Gate) disableInteractions() {
	g.host.SetDraggingEnabled(false)
	g.host.SetScrollZoomEnabled(false)
	if tap, ok := g.host.(TapHost); ok {
		tap.SetTapEnabled(false)
	}
}

func (g *Gate) enableInteractions() {
	g.host.SetDraggingEnabled(true)
	g.host.SetScrollZoomEnabled(true)
	if tap, ok := g.host.(TapHost); ok {
		tap.SetTapEnabled(!g.tapBroken)
	}
}

// tapBroken reports whether taps must stay disabled: hosts older than
// 1.8 misreport taps in Safari, but not in Chrome whose user agent
// mentions Safari as well.
func tapBroken(host Host, userAgent string) bool {
	v, ok := host.(VersionedHost)
	if !ok {
		return false
	}
	minor, ok := minorVersion(v.Version())
	if !ok || minor >= tapFixedMinor {
		return false
	}
	return strings.Contains(userAgent, "Safari") && !strings.Contains(userAgent, "Chrome")
}

// minorVersion parses the leading digits of the second component of
// a version such as "1.7.1" or "1.9.0-beta.2".
func minorVersion(v string) (int, bool) {
	_, rest, ok := strings.Cut(v, ".")
	if !ok {
		return 0, false
	}
	end := 0
	for end < len(rest) && '0' <= rest[end] && rest[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(rest[:end])
	return n, err == nil
}
