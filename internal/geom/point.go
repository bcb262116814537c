// Package geom provides integer points and 3x3 homogeneous transforms
// for placing shapes on the pixel grid.
package geom

import "fmt"

// Point is a pixel coordinate. The y axis points up: row 0 is the
// bottom of the canvas.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Centroid returns the arithmetic mean of pts with each coordinate
// truncated toward zero. It returns (0,0) for an empty slice.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sx, sy int
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := len(pts)
	return Point{X: sx / n, Y: sy / n}
}
