// Package raster turns shapes into pixels: integer line and circle
// rasterizers, an edge-table scanline polygon filler, and a span flood
// fill that works on an already rendered frame.
package raster

import (
	"image"
	"image/color"
)

// Colors used by the editor. All colors are opaque 8-bit RGB.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Blue  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

// PixelWriter sets single pixels. Coordinates outside the target are the
// writer's concern; rasterizers do not clip.
type PixelWriter interface {
	SetPixel(x, y int, c color.RGBA)
}

// PixelReader reads single pixels back from a rendered frame.
// Out-of-bounds reads must return a fixed color.
type PixelReader interface {
	PixelAt(x, y int) color.RGBA
}

// Surface is a readable and writable frame with a current size.
type Surface interface {
	PixelWriter
	PixelReader
	Size() (width, height int)
}

// SameRGB reports whether a and b have the same red, green and blue
// components. Alpha is ignored.
func SameRGB(a, b color.RGBA) bool {
	return a.R == b.R && a.G == b.G && a.B == b.B
}

// Canvas is an RGB framebuffer with its origin in the bottom-left corner.
// Writes outside the canvas are dropped; reads outside return Black.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a white canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates the canvas and clears it to white.
// Negative dimensions are treated as zero.
func (c *Canvas) Resize(width, height int) {
	c.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	c.Clear(White)
}

// Size returns the current canvas dimensions.
func (c *Canvas) Size() (width, height int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the entire canvas with col.
func (c *Canvas) Clear(col color.RGBA) {
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = 255
	}
}

// SetPixel sets the pixel at (x, y), with y counted from the bottom row.
func (c *Canvas) SetPixel(x, y int, col color.RGBA) {
	w, h := c.Size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	c.img.SetRGBA(x, h-1-y, color.RGBA{R: col.R, G: col.G, B: col.B, A: 255})
}

// PixelAt returns the pixel at (x, y), or Black outside the canvas.
func (c *Canvas) PixelAt(x, y int) color.RGBA {
	w, h := c.Size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return Black
	}
	return c.img.RGBAAt(x, h-1-y)
}

// Image returns the backing image in the usual top-down orientation.
// The image aliases the canvas and is only valid until the next Resize.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}
