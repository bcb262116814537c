package raster

import (
	"image/color"

	"github.com/rasterpad/rasterpad/internal/geom"
)

// FloodFill repaints the 4-connected region of s that has the same color
// as seed, writing fill to every pixel of the region and calling emit
// once per painted pixel.
//
// The region color is read once, at the seed. Work proceeds in horizontal
// spans: each queued seed is widened left and right while the neighbours
// match, the span is painted, and matching unvisited pixels directly above
// and below the span are queued. A visited bitmap sized from s.Size() at
// call time keeps every pixel from being queued twice.
//
// Filling with the color already under the seed, or from a seed outside
// the surface, does nothing.
func FloodFill(s Surface, seed geom.Point, fill color.RGBA, emit func(geom.Point)) {
	width, height := s.Size()
	if seed.X < 0 || seed.X >= width || seed.Y < 0 || seed.Y >= height {
		return
	}

	target := s.PixelAt(seed.X, seed.Y)
	if SameRGB(target, fill) {
		return
	}
	matches := func(x, y int) bool {
		return SameRGB(s.PixelAt(x, y), target)
	}

	visited := make([]bool, width*height)
	queue := []geom.Point{seed}
	visited[seed.Y*width+seed.X] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cx, cy := cur.X, cur.Y

		// Already painted by a span that passed through this seed.
		if !matches(cx, cy) {
			continue
		}

		left, right := cx, cx
		for left > 0 && matches(left-1, cy) {
			left--
		}
		for right < width-1 && matches(right+1, cy) {
			right++
		}

		for x := left; x <= right; x++ {
			s.SetPixel(x, cy, fill)
			emit(geom.Point{X: x, Y: cy})

			if cy > 0 && !visited[(cy-1)*width+x] && matches(x, cy-1) {
				visited[(cy-1)*width+x] = true
				queue = append(queue, geom.Point{X: x, Y: cy - 1})
			}
			if cy < height-1 && !visited[(cy+1)*width+x] && matches(x, cy+1) {
				visited[(cy+1)*width+x] = true
				queue = append(queue, geom.Point{X: x, Y: cy + 1})
			}
		}
	}
}
