package raster

import (
	"cmp"
	"math"
	"slices"

	"github.com/rasterpad/rasterpad/internal/geom"
)

// scanEdge is an edge-table entry for the scanline filler.
type scanEdge struct {
	yMax int     // scanline where the edge ends (exclusive)
	x    float64 // x-intercept at the current scanline
	dxdy float64 // (x2-x1)/(y2-y1), added to x once per scanline
}

// ScanlineFill computes the interior of the closed polygon through
// vertices (the last vertex connects back to the first) and calls emit
// for every pixel inside the width x height canvas. It never reads pixels
// back.
//
// Spans run from floor(x) of one crossing to floor(x) of the next,
// inclusive. An edge stops contributing on its top row (yMax is
// exclusive), so polygons that share an edge do not both claim it.
// Horizontal edges are skipped.
//
// Self-intersecting and zero-area polygons do not cause a failure but may
// be under- or over-filled.
func ScanlineFill(vertices []geom.Point, width, height int, emit func(geom.Point)) {
	n := len(vertices)
	if n < 2 || width <= 0 || height <= 0 {
		return
	}

	// Edge table: one bucket per scanline, indexed by the edge's lower y.
	table := make([][]scanEdge, height)
	yMin := height
	for i := range n {
		p, q := vertices[i], vertices[(i+1)%n]
		if p.Y == q.Y {
			continue
		}
		if p.Y > q.Y {
			p, q = q, p
		}
		e := scanEdge{
			yMax: q.Y,
			x:    float64(p.X),
			dxdy: float64(q.X-p.X) / float64(q.Y-p.Y),
		}

		start := p.Y
		if start < 0 {
			// Clip the part below the canvas.
			if e.yMax <= 0 {
				continue
			}
			e.x += e.dxdy * float64(-start)
			start = 0
		}
		if start >= height {
			continue
		}
		table[start] = append(table[start], e)
		yMin = min(yMin, start)
	}

	var active []scanEdge
	for y := yMin; y < height && (len(table[y]) > 0 || len(active) > 0); y++ {
		active = append(active, table[y]...)
		table[y] = nil

		slices.SortFunc(active, func(a, b scanEdge) int {
			return cmp.Compare(a.x, b.x)
		})

		for i := 0; i+1 < len(active); i += 2 {
			xStart := max(int(math.Floor(active[i].x)), 0)
			xEnd := min(int(math.Floor(active[i+1].x)), width-1)
			for x := xStart; x <= xEnd; x++ {
				emit(geom.Point{X: x, Y: y})
			}
		}

		active = slices.DeleteFunc(active, func(e scanEdge) bool {
			return e.yMax-1 == y
		})

		for i := range active {
			active[i].x += active[i].dxdy
		}
	}
}
