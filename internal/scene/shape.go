package scene

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/rasterpad/rasterpad/internal/geom"
	"github.com/rasterpad/rasterpad/internal/typeid"
)

// Kind identifies a shape variant and doubles as the editor's drawing mode.
type Kind int

const (
	KindLine Kind = iota + 1
	KindTriangle
	KindQuad
	KindPolygon
	KindCircle
)

var kindNames = map[Kind]string{
	KindLine:     "line",
	KindTriangle: "triangle",
	KindQuad:     "quad",
	KindPolygon:  "polygon",
	KindCircle:   "circle",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a mode name ("line", "quad", ...) to its Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

// MinPolygonVertices is the fewest clicks that make a Polygon.
const MinPolygonVertices = 4

// Geometry is the vertex data of one shape variant.
type Geometry interface {
	Kind() Kind

	// Vertices returns a copy of the defining points in outline order.
	Vertices() []geom.Point

	// points returns the vertex fields for in-place transformation.
	points() []*geom.Point
}

// Line is a segment between two clicks.
type Line struct {
	A, B geom.Point
}

func (*Line) Kind() Kind               { return KindLine }
func (l *Line) Vertices() []geom.Point { return []geom.Point{l.A, l.B} }
func (l *Line) points() []*geom.Point  { return []*geom.Point{&l.A, &l.B} }

// Triangle is placed with three clicks.
type Triangle struct {
	A, B, C geom.Point
}

func (*Triangle) Kind() Kind               { return KindTriangle }
func (t *Triangle) Vertices() []geom.Point { return []geom.Point{t.A, t.B, t.C} }
func (t *Triangle) points() []*geom.Point  { return []*geom.Point{&t.A, &t.B, &t.C} }

// Quad has four corners; it starts axis-aligned but may be sheared or
// rotated afterwards.
type Quad struct {
	A, B, C, D geom.Point
}

// QuadFromCorners builds the axis-aligned quad spanned by two opposite
// corners: (x1,y1), (x2,y1), (x2,y2), (x1,y2).
func QuadFromCorners(p, q geom.Point) *Quad {
	return &Quad{
		A: p,
		B: geom.Point{X: q.X, Y: p.Y},
		C: q,
		D: geom.Point{X: p.X, Y: q.Y},
	}
}

func (*Quad) Kind() Kind               { return KindQuad }
func (q *Quad) Vertices() []geom.Point { return []geom.Point{q.A, q.B, q.C, q.D} }
func (q *Quad) points() []*geom.Point  { return []*geom.Point{&q.A, &q.B, &q.C, &q.D} }

// Polygon is a closed loop of at least MinPolygonVertices points; the
// last vertex connects back to the first.
type Polygon struct {
	Points []geom.Point
}

func (*Polygon) Kind() Kind { return KindPolygon }

func (p *Polygon) Vertices() []geom.Point {
	return append([]geom.Point(nil), p.Points...)
}

func (p *Polygon) points() []*geom.Point {
	out := make([]*geom.Point, len(p.Points))
	for i := range p.Points {
		out[i] = &p.Points[i]
	}
	return out
}

// Circle is given by its centre and radius.
type Circle struct {
	Center geom.Point
	Radius int
}

func (*Circle) Kind() Kind               { return KindCircle }
func (c *Circle) Vertices() []geom.Point { return []geom.Point{c.Center} }
func (c *Circle) points() []*geom.Point  { return []*geom.Point{&c.Center} }

// Pixel is one materialized fill pixel. Own is set when the pixel was
// painted with its own Color (flood fill); otherwise the shape's
// FillColor applies.
type Pixel struct {
	geom.Point
	Color color.RGBA `json:"color"`
	Own   bool       `json:"own,omitempty"`
}

// Shape is a placed primitive together with its fill state.
type Shape struct {
	ID        string
	Geometry  Geometry
	Filled    bool
	FillColor color.RGBA
	Pixels    []Pixel
}

// NewShape wraps g in a new, unfilled shape with a black fill color.
func NewShape(g Geometry) *Shape {
	return &Shape{
		ID:        typeid.NewShapeID(),
		Geometry:  g,
		FillColor: color.RGBA{A: 255},
	}
}

// Kind returns the kind of the shape's geometry.
func (s *Shape) Kind() Kind {
	return s.Geometry.Kind()
}

// Vertices returns a copy of the shape's defining points.
func (s *Shape) Vertices() []geom.Point {
	return s.Geometry.Vertices()
}

// TransformVertices applies m to every vertex in place.
func (s *Shape) TransformVertices(m geom.Matrix) {
	for _, p := range s.Geometry.points() {
		*p = m.Apply(*p)
	}
}

// TransformPixels applies m to every filled pixel in place.
func (s *Shape) TransformPixels(m geom.Matrix) {
	for i := range s.Pixels {
		s.Pixels[i].Point = m.Apply(s.Pixels[i].Point)
	}
}

// ClearFill drops the materialized fill. The Filled flag is kept.
func (s *Shape) ClearFill() {
	s.Pixels = s.Pixels[:0]
}

// AddPixel records an interior pixel painted with the shape's fill color.
func (s *Shape) AddPixel(p geom.Point) {
	s.Pixels = append(s.Pixels, Pixel{Point: p})
}

// AddColoredPixel records an interior pixel that carries its own color.
func (s *Shape) AddColoredPixel(p geom.Point, c color.RGBA) {
	s.Pixels = append(s.Pixels, Pixel{Point: p, Color: c, Own: true})
}

// PixelColor returns the color px is drawn with.
func (s *Shape) PixelColor(px Pixel) color.RGBA {
	if px.Own {
		return px.Color
	}
	return s.FillColor
}
