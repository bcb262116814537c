package raster

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/rasterpad/rasterpad/internal/geom"
)

var sortPoints = cmpopts.SortSlices(func(a, b geom.Point) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
})

func TestLineKnownPixels(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Point
		want []geom.Point
	}{
		{
			name: "single point",
			a:    geom.Pt(3, 3), b: geom.Pt(3, 3),
			want: []geom.Point{{X: 3, Y: 3}},
		},
		{
			name: "shallow",
			a:    geom.Pt(0, 0), b: geom.Pt(4, 2),
			want: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 2}},
		},
		{
			name: "steep",
			a:    geom.Pt(0, 0), b: geom.Pt(1, 3),
			want: []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 3}},
		},
		{
			name: "negative slope",
			a:    geom.Pt(0, 0), b: geom.Pt(4, -2),
			want: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: -1}, {X: 3, Y: -1}, {X: 4, Y: -2}},
		},
		{
			name: "horizontal right to left",
			a:    geom.Pt(3, 7), b: geom.Pt(0, 7),
			want: []geom.Point{{X: 0, Y: 7}, {X: 1, Y: 7}, {X: 2, Y: 7}, {X: 3, Y: 7}},
		},
		{
			name: "vertical",
			a:    geom.Pt(2, 0), b: geom.Pt(2, 3),
			want: []geom.Point{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := slices.Collect(Line(tc.a, tc.b))
			if diff := cmp.Diff(tc.want, got, sortPoints); diff != "" {
				t.Errorf("Line(%v, %v) mismatch (-want +got):\n%s", tc.a, tc.b, diff)
			}
		})
	}
}

func TestLineSymmetricAndComplete(t *testing.T) {
	ends := []geom.Point{
		{X: 0, Y: 0}, {X: 7, Y: 2}, {X: -5, Y: 9}, {X: 3, Y: -11},
		{X: -8, Y: -8}, {X: 12, Y: 12}, {X: 0, Y: 6}, {X: -9, Y: 0},
		{X: 1, Y: 20}, {X: 20, Y: -1},
	}
	for _, a := range ends {
		for _, b := range ends {
			fwd := slices.Collect(Line(a, b))
			rev := slices.Collect(Line(b, a))
			if diff := cmp.Diff(fwd, rev, sortPoints); diff != "" {
				t.Errorf("Line(%v,%v) and Line(%v,%v) differ:\n%s", a, b, b, a, diff)
			}

			dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)
			major := func(p geom.Point) int { return p.X }
			lo, hi := min(a.X, b.X), max(a.X, b.X)
			if dy > dx {
				major = func(p geom.Point) int { return p.Y }
				lo, hi = min(a.Y, b.Y), max(a.Y, b.Y)
			}
			if len(fwd) != max(dx, dy)+1 {
				t.Errorf("Line(%v,%v): %d pixels, want %d", a, b, len(fwd), max(dx, dy)+1)
			}
			seen := make(map[int]bool)
			for _, p := range fwd {
				m := major(p)
				if m < lo || m > hi || seen[m] {
					t.Errorf("Line(%v,%v): bad major coordinate %d in %v", a, b, m, p)
				}
				seen[m] = true
			}
			if !slices.Contains(fwd, a) || !slices.Contains(fwd, b) {
				t.Errorf("Line(%v,%v) misses an endpoint", a, b)
			}
			for i := 1; i < len(fwd); i++ {
				if abs(fwd[i].X-fwd[i-1].X) > 1 || abs(fwd[i].Y-fwd[i-1].Y) > 1 {
					t.Errorf("Line(%v,%v): gap between %v and %v", a, b, fwd[i-1], fwd[i])
				}
			}
		}
	}
}

func TestLineStopsEarly(t *testing.T) {
	n := 0
	for range Line(geom.Pt(0, 0), geom.Pt(100, 30)) {
		n++
		if n == 5 {
			break
		}
	}
	if n != 5 {
		t.Errorf("iterated %d times, want 5", n)
	}
}

func TestDrawLineWritesBlack(t *testing.T) {
	c := NewCanvas(16, 16)
	DrawLine(c, geom.Pt(1, 1), geom.Pt(10, 5))
	for p := range Line(geom.Pt(1, 1), geom.Pt(10, 5)) {
		if got := c.PixelAt(p.X, p.Y); !SameRGB(got, Black) {
			t.Errorf("pixel %v = %v, want black", p, got)
		}
	}
	if got := c.PixelAt(0, 15); !SameRGB(got, White) {
		t.Errorf("untouched pixel = %v, want white", got)
	}
}
