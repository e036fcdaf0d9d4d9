// SPDX-License-Identifier: Unlicense OR MIT

package f32

import "testing"

func TestPointString(t *testing.T) {
	for _, tc := range []struct {
		p    Point
		want string
	}{
		{Point{}, "(0,0)"},
		{Pt(1.5, -2), "(1.5,-2)"},
		{Pt(3, 4).Mul(10), "(30,40)"},
		{Pt(1, 1).Add(Pt(-1, -1)), "(0,0)"},
	} {
		if got := tc.p.String(); got != tc.want {
			t.Errorf("%#v: got %q; want %q", tc.p, got, tc.want)
		}
	}
}
