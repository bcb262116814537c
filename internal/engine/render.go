package engine

import (
	"github.com/rasterpad/rasterpad/internal/geom"
	"github.com/rasterpad/rasterpad/internal/raster"
	"github.com/rasterpad/rasterpad/internal/scene"
)

// Render redraws the whole canvas: a white background, the rubber-band
// line of a pending line gesture, then every shape outline in black
// followed by its fill pixels. Shapes are drawn from the most recent to
// the oldest, so older shapes paint over newer ones where they overlap.
func (s *Session) Render() {
	s.canvas.Clear(raster.White)

	if s.mode == scene.KindLine && len(s.clicks) == 1 {
		raster.DrawLine(s.canvas, s.clicks[0], s.mouse)
	}

	for sh := range s.scene.All() {
		drawOutline(s.canvas, sh)
		for _, px := range sh.Pixels {
			s.canvas.SetPixel(px.X, px.Y, sh.PixelColor(px))
		}
	}

	s.dirty = false
}

func drawOutline(w raster.PixelWriter, sh *scene.Shape) {
	switch g := sh.Geometry.(type) {
	case *scene.Circle:
		raster.DrawCircle(w, g.Center, g.Radius)
	case *scene.Line:
		raster.DrawLine(w, g.A, g.B)
	default:
		raster.DrawPolyline(w, sh.Vertices())
	}
}

// FillFront scanline-fills the front shape. Lines and circles have no
// polygon interior and are left alone. Filling an already filled shape
// replaces its fill.
func (s *Session) FillFront() bool {
	sh := s.scene.Front()
	if sh == nil || sh.Kind() == scene.KindLine || sh.Kind() == scene.KindCircle {
		return false
	}
	w, h := s.canvas.Size()
	Refill(sh, w, h)
	s.dirty = true
	return true
}

// FillAll flood-fills every unfilled shape except lines in blue. The
// current frame is rendered first and each fill paints into it, so a
// later shape sees the fills of the shapes before it. The seed is the
// vertex centroid, which for a circle is its centre.
func (s *Session) FillAll() bool {
	if s.scene.Len() == 0 {
		return false
	}
	s.Render()

	for sh := range s.scene.All() {
		if sh.Filled || sh.Kind() == scene.KindLine {
			continue
		}
		seed := geom.Centroid(sh.Vertices())
		raster.FloodFill(s.canvas, seed, raster.Blue, func(p geom.Point) {
			sh.AddColoredPixel(p, raster.Blue)
		})
		sh.Filled = true
		sh.FillColor = raster.Blue
	}

	s.dirty = true
	return true
}
