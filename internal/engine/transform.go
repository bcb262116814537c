package engine

import (
	"github.com/rasterpad/rasterpad/internal/geom"
	"github.com/rasterpad/rasterpad/internal/raster"
	"github.com/rasterpad/rasterpad/internal/scene"
)

// The transform functions below edit one shape in place. Circles are
// never transformed; every function returns false for them and leaves
// the shape untouched.

// Translate moves sh by (dx, dy). Fill pixels are moved along with the
// vertices, so no refill is needed.
func Translate(sh *scene.Shape, dx, dy int) bool {
	if !transformable(sh) {
		return false
	}
	m := geom.Translation(float64(dx), float64(dy))
	sh.TransformVertices(m)
	sh.TransformPixels(m)
	return true
}

// Scale scales sh by factor about its centroid.
func Scale(sh *scene.Shape, factor float64, width, height int) bool {
	return reshape(sh, geom.Scaling(factor), width, height)
}

// Rotate rotates sh by degrees (counter-clockwise) about its centroid.
func Rotate(sh *scene.Shape, degrees float64, width, height int) bool {
	return reshape(sh, geom.Rotation(degrees), width, height)
}

// Shear shears sh about its centroid.
func Shear(sh *scene.Shape, dx, dy float64, width, height int) bool {
	return reshape(sh, geom.Shear(dx, dy), width, height)
}

// Reflect mirrors sh about its centroid. vertical flips y, horizontal
// flips x. With refill false the fill pixels go through the same matrix
// as the vertices; with refill true a filled shape is scanline-refilled.
func Reflect(sh *scene.Shape, vertical, horizontal, refill bool, width, height int) bool {
	op := geom.Reflection(vertical, horizontal)
	if refill {
		return reshape(sh, op, width, height)
	}
	if !transformable(sh) {
		return false
	}
	m := geom.AboutPivot(geom.Centroid(sh.Vertices()), op)
	sh.TransformVertices(m)
	sh.TransformPixels(m)
	return true
}

// Refill replaces the fill of sh with a fresh scanline fill of its
// current outline, clipped to the width x height canvas.
func Refill(sh *scene.Shape, width, height int) {
	sh.ClearFill()
	sh.Filled = true
	raster.ScanlineFill(sh.Vertices(), width, height, sh.AddPixel)
}

// reshape applies op about the centroid to the vertices only. A filled
// shape's old pixels no longer match its outline and are recomputed.
func reshape(sh *scene.Shape, op geom.Matrix, width, height int) bool {
	if !transformable(sh) {
		return false
	}
	m := geom.AboutPivot(geom.Centroid(sh.Vertices()), op)
	sh.TransformVertices(m)
	if sh.Filled {
		Refill(sh, width, height)
	}
	return true
}

func transformable(sh *scene.Shape) bool {
	return sh != nil && sh.Kind() != scene.KindCircle
}
