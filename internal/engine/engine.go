package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rasterpad/rasterpad/internal/geom"
	"github.com/rasterpad/rasterpad/internal/raster"
	"github.com/rasterpad/rasterpad/internal/scene"
)

var (
	// ErrQuit is returned by input handlers when the user asked to leave
	// (ESC or the "exit" menu entry).
	ErrQuit = errors.New("quit requested")

	ErrUnknownMode = errors.New("unknown mode")
)

// Options tweaks editor behavior.
type Options struct {
	// ReflectRefill makes reflection clear and scanline-refill a filled
	// shape like scale, rotate and shear do. When false, reflection moves
	// the existing fill pixels through the reflection matrix.
	ReflectRefill bool
}

// Session is one interactive editor: a canvas, the scene drawn on it and
// the transient gesture state of the shape being placed. All input goes
// through a Session; it replaces process-wide editor state.
//
// A Session is not safe for concurrent use. Callers serialize access.
type Session struct {
	canvas *raster.Canvas
	scene  *scene.Scene
	opts   Options

	// Gesture state
	mode    scene.Kind
	clicks  []geom.Point // pending clicks for two- and three-click shapes
	polygon []geom.Point // accumulated polygon vertices, committed with Enter
	mouse   geom.Point

	// Dirty flag - canvas needs a redraw
	dirty bool
}

// NewSession creates a session with an empty scene on a white canvas of
// the given size. The initial mode is line.
func NewSession(width, height int, opts Options) *Session {
	return &Session{
		canvas: raster.NewCanvas(width, height),
		scene:  scene.New(),
		opts:   opts,
		mode:   scene.KindLine,
		dirty:  true,
	}
}

// --- Commands (input → session) ---

// SetMode switches the drawing mode and drops any half-placed shape.
func (s *Session) SetMode(k scene.Kind) {
	s.mode = k
	s.resetGesture()
	s.dirty = true
}

// SelectMenu handles a menu entry by name: a shape kind or "exit".
func (s *Session) SelectMenu(name string) error {
	if strings.EqualFold(strings.TrimSpace(name), "exit") {
		return ErrQuit
	}
	k, err := scene.ParseKind(name)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
	s.SetMode(k)
	return nil
}

// MouseDown handles a left-button press at window coordinates (x, y),
// where y counts down from the top of the window.
func (s *Session) MouseDown(x, y int) {
	p := s.toCanvas(x, y)

	switch s.mode {
	case scene.KindPolygon:
		s.polygon = append(s.polygon, p)
		s.dirty = true
		return
	case scene.KindTriangle:
		s.clicks = append(s.clicks, p)
		if len(s.clicks) < 3 {
			return
		}
		s.commit(&scene.Triangle{A: s.clicks[0], B: s.clicks[1], C: s.clicks[2]})
		return
	}

	if len(s.clicks) == 0 {
		s.clicks = append(s.clicks, p)
		s.dirty = true
		return
	}
	first := s.clicks[0]
	switch s.mode {
	case scene.KindLine:
		s.commit(&scene.Line{A: first, B: p})
	case scene.KindQuad:
		s.commit(scene.QuadFromCorners(first, p))
	case scene.KindCircle:
		d := p.Sub(first)
		r := int(math.Sqrt(float64(d.X*d.X + d.Y*d.Y)))
		s.commit(&scene.Circle{Center: first, Radius: r})
	}
}

// Motion records the pointer position in window coordinates.
func (s *Session) Motion(x, y int) {
	s.mouse = s.toCanvas(x, y)
	s.dirty = true
}

// CommitPolygon places the pending polygon if it has at least
// scene.MinPolygonVertices vertices. It reports whether a shape was added.
func (s *Session) CommitPolygon() bool {
	if s.mode != scene.KindPolygon || len(s.polygon) < scene.MinPolygonVertices {
		return false
	}
	s.commit(&scene.Polygon{Points: s.polygon})
	return true
}

// Resize changes the canvas size. Shapes keep their coordinates.
func (s *Session) Resize(width, height int) {
	s.canvas.Resize(width, height)
	s.dirty = true
}

func (s *Session) commit(g scene.Geometry) {
	s.scene.Add(scene.NewShape(g))
	s.resetGesture()
	s.dirty = true
}

func (s *Session) resetGesture() {
	s.clicks = nil
	s.polygon = nil
}

func (s *Session) toCanvas(x, y int) geom.Point {
	_, h := s.canvas.Size()
	return geom.Pt(x, h-y-1)
}

// --- Queries ---

// Mode returns the current drawing mode.
func (s *Session) Mode() scene.Kind {
	return s.mode
}

// Mouse returns the last pointer position in canvas coordinates.
func (s *Session) Mouse() geom.Point {
	return s.mouse
}

// Scene returns the session's shapes.
func (s *Session) Scene() *scene.Scene {
	return s.scene
}

// Canvas returns the framebuffer. Its contents reflect the last Render.
func (s *Session) Canvas() *raster.Canvas {
	return s.canvas
}

// Size returns the canvas dimensions.
func (s *Session) Size() (width, height int) {
	return s.canvas.Size()
}

// Dirty reports whether something changed since the last Render.
func (s *Session) Dirty() bool {
	return s.dirty
}
