package engine

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/rasterpad/rasterpad/internal/geom"
	"github.com/rasterpad/rasterpad/internal/scene"
)

// ShapeState is the client-facing summary of one placed shape.
type ShapeState struct {
	ID        string       `json:"id"`
	Kind      string       `json:"kind"`
	Vertices  []geom.Point `json:"vertices"`
	Radius    int          `json:"radius,omitempty"` // circles only
	Filled    bool         `json:"filled"`
	FillColor string       `json:"fillColor"` // "#rrggbb"
	Pixels    int          `json:"pixels"`    // number of materialized fill pixels
	Bounds    Rect         `json:"bounds"`
}

// Rect is an inclusive pixel bounding box.
type Rect struct {
	MinX int `json:"minX"`
	MinY int `json:"minY"`
	MaxX int `json:"maxX"`
	MaxY int `json:"maxY"`
}

// SceneState lists the shapes in drawing order, most recent first.
type SceneState struct {
	Mode    string       `json:"mode"`
	Pending int          `json:"pending"` // clicks of the shape being placed
	Shapes  []ShapeState `json:"shapes"`
}

// State snapshots the scene for clients.
func (s *Session) State() SceneState {
	st := SceneState{
		Mode:    s.mode.String(),
		Pending: len(s.clicks) + len(s.polygon),
		Shapes:  make([]ShapeState, 0, s.scene.Len()),
	}
	for sh := range s.scene.All() {
		st.Shapes = append(st.Shapes, shapeState(sh))
	}
	return st
}

// StateJSON returns State serialized to JSON.
func (s *Session) StateJSON() string {
	data, err := json.Marshal(s.State())
	if err != nil {
		return "{}"
	}
	return string(data)
}

func shapeState(sh *scene.Shape) ShapeState {
	st := ShapeState{
		ID:        sh.ID,
		Kind:      sh.Kind().String(),
		Vertices:  sh.Vertices(),
		Filled:    sh.Filled,
		FillColor: hexColor(sh.FillColor),
		Pixels:    len(sh.Pixels),
		Bounds:    boundsOf(sh.Vertices()),
	}
	if c, ok := sh.Geometry.(*scene.Circle); ok {
		st.Radius = c.Radius
		st.Bounds = Rect{
			MinX: c.Center.X - c.Radius,
			MinY: c.Center.Y - c.Radius,
			MaxX: c.Center.X + c.Radius,
			MaxY: c.Center.Y + c.Radius,
		}
	}
	return st
}

func boundsOf(pts []geom.Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X)
		r.MaxY = max(r.MaxY, p.Y)
	}
	return r
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
