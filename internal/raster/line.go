package raster

import (
	"iter"

	"github.com/rasterpad/rasterpad/internal/geom"
)

// Line returns the pixels of the segment from a to b, both endpoints
// included, using integer arithmetic only.
//
// The core loop handles slopes in [0, 1] stepping left to right. Other
// segments are folded onto that case: y is negated when dx and dy have
// opposite signs, the axes are swapped when |dy| > |dx|, and the endpoints
// are swapped when the start lies to the right of the end. Each emitted
// pixel is unfolded in reverse order. Because of this, Line(a, b) and
// Line(b, a) yield the same set of pixels.
func Line(a, b geom.Point) iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		x1, y1, x2, y2 := a.X, a.Y, b.X, b.Y
		dx := x2 - x1
		dy := y2 - y1

		mirrored := false
		if dx*dy < 0 {
			y1, y2 = -y1, -y2
			dy = -dy
			mirrored = true
		}

		steep := false
		if abs(dx) < abs(dy) {
			x1, y1 = y1, x1
			x2, y2 = y2, x2
			dx, dy = dy, dx
			steep = true
		}

		if x1 > x2 {
			x1, x2 = x2, x1
			y1, y2 = y2, y1
			dx, dy = -dx, -dy
		}

		d := 2*dy - dx
		incE := 2 * dy
		incNE := 2 * (dy - dx)

		y := y1
		for x := x1; x <= x2; x++ {
			px, py := x, y
			if steep {
				px, py = py, px
			}
			if mirrored {
				py = -py
			}
			if d <= 0 {
				d += incE
			} else {
				d += incNE
				y++
			}
			if !yield(geom.Point{X: px, Y: py}) {
				return
			}
		}
	}
}

// DrawLine writes the pixels of the segment from a to b in black.
func DrawLine(w PixelWriter, a, b geom.Point) {
	for p := range Line(a, b) {
		w.SetPixel(p.X, p.Y, Black)
	}
}

// DrawPolyline draws the closed outline through pts, connecting the last
// point back to the first. A single point is drawn as a dot.
func DrawPolyline(w PixelWriter, pts []geom.Point) {
	n := len(pts)
	switch n {
	case 0:
		return
	case 1:
		DrawLine(w, pts[0], pts[0])
		return
	case 2:
		DrawLine(w, pts[0], pts[1])
		return
	}
	for i := range n {
		DrawLine(w, pts[i], pts[(i+1)%n])
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
