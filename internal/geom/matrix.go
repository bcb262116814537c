package geom

import "math"

// Matrix is a 3x3 homogeneous transformation matrix in row-major order.
// Points are treated as column vectors:
// | m00  m01  m02 |   | x |
// | m10  m11  m12 | · | y |
// |  0    0    1  |   | 1 |
//
// Where:
// - m00, m11 = scale
// - m01, m10 = shear/rotation
// - m02, m12 = translation
type Matrix [3][3]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Translation returns a matrix that offsets points by (dx, dy).
func Translation(dx, dy float64) Matrix {
	return Matrix{
		{1, 0, dx},
		{0, 1, dy},
		{0, 0, 1},
	}
}

// Scaling returns a uniform scale matrix about the origin.
func Scaling(factor float64) Matrix {
	return Matrix{
		{factor, 0, 0},
		{0, factor, 0},
		{0, 0, 1},
	}
}

// Rotation returns a counter-clockwise rotation matrix about the origin
// (angle in degrees, y axis pointing up).
func Rotation(degrees float64) Matrix {
	rad := degrees * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Matrix{
		{cos, -sin, 0},
		{sin, cos, 0},
		{0, 0, 1},
	}
}

// Shear returns a shear matrix: x' = x + dx*y, y' = dy*x + y.
func Shear(dx, dy float64) Matrix {
	return Matrix{
		{1, dx, 0},
		{dy, 1, 0},
		{0, 0, 1},
	}
}

// Reflection returns a mirror matrix about the origin. A vertical
// reflection negates y; a horizontal reflection negates x.
func Reflection(vertical, horizontal bool) Matrix {
	sx, sy := 1.0, 1.0
	if horizontal {
		sx = -1
	}
	if vertical {
		sy = -1
	}
	return Matrix{
		{sx, 0, 0},
		{0, sy, 0},
		{0, 0, 1},
	}
}

// Multiply returns the product m · other.
// Applied to a point, the result applies 'other' first, then 'm'.
func (m Matrix) Multiply(other Matrix) Matrix {
	var r Matrix
	for i := range 3 {
		for j := range 3 {
			for k := range 3 {
				r[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return r
}

// Compose multiplies the matrices left to right: Compose(A, B, C) = A·B·C.
// Compose() is the identity.
func Compose(ms ...Matrix) Matrix {
	r := Identity()
	for _, m := range ms {
		r = r.Multiply(m)
	}
	return r
}

// AboutPivot conjugates op with a translation so that it acts around c
// instead of the origin: Translation(c) · op · Translation(-c).
func AboutPivot(c Point, op Matrix) Matrix {
	cx, cy := float64(c.X), float64(c.Y)
	return Compose(Translation(cx, cy), op, Translation(-cx, -cy))
}

// Apply transforms p. Each coordinate of the result is truncated toward
// zero, so repeated application can drift by one pixel per step for
// non-integral matrices.
func (m Matrix) Apply(p Point) Point {
	x, y := float64(p.X), float64(p.Y)
	return Point{
		X: int(m[0][0]*x + m[0][1]*y + m[0][2]),
		Y: int(m[1][0]*x + m[1][1]*y + m[1][2]),
	}
}
