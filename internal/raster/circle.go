package raster

import "github.com/rasterpad/rasterpad/internal/geom"

// Circle returns the outline pixels of the circle with centre c and
// radius r, computed with the integer midpoint algorithm over one octant
// and mirrored eight ways.
//
// Every iteration contributes eight points, so points on the axes and on
// the diagonals appear more than once. A zero radius yields the centre
// only; a negative radius yields nothing.
func Circle(c geom.Point, r int) []geom.Point {
	if r < 0 {
		return nil
	}

	// roughly r/√2 iterations
	pts := make([]geom.Point, 0, 8*(r*3/4+1))

	x, y := 0, r
	d := 1 - r
	incE := 3
	incSE := -2*r + 5
	for x <= y {
		pts = append(pts,
			geom.Point{X: c.X + x, Y: c.Y + y},
			geom.Point{X: c.X + y, Y: c.Y + x},
			geom.Point{X: c.X - x, Y: c.Y + y},
			geom.Point{X: c.X - y, Y: c.Y + x},
			geom.Point{X: c.X - x, Y: c.Y - y},
			geom.Point{X: c.X - y, Y: c.Y - x},
			geom.Point{X: c.X + x, Y: c.Y - y},
			geom.Point{X: c.X + y, Y: c.Y - x},
		)
		if d < 0 {
			d += incE
			incE += 2
			incSE += 2
		} else {
			d += incSE
			incE += 2
			incSE += 4
			y--
		}
		x++
	}
	return pts
}

// DrawCircle computes the whole outline first and then writes it in black.
func DrawCircle(w PixelWriter, c geom.Point, r int) {
	for _, p := range Circle(c, r) {
		w.SetPixel(p.X, p.Y, Black)
	}
}
