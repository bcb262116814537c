// Package scene holds the shapes placed on the canvas.
package scene

import "iter"

// Scene is the ordered collection of placed shapes. Shapes are stored in
// creation order and never removed; the most recently added shape is the
// front shape, the implicit target of editing commands.
//
// A Scene is not safe for concurrent use.
type Scene struct {
	shapes []*Shape
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends s and makes it the front shape.
func (sc *Scene) Add(s *Shape) {
	sc.shapes = append(sc.shapes, s)
}

// Len returns the number of shapes.
func (sc *Scene) Len() int {
	return len(sc.shapes)
}

// Front returns the most recently added shape, or nil for an empty scene.
func (sc *Scene) Front() *Shape {
	if len(sc.shapes) == 0 {
		return nil
	}
	return sc.shapes[len(sc.shapes)-1]
}

// All iterates over the shapes from most recent to oldest.
func (sc *Scene) All() iter.Seq[*Shape] {
	return func(yield func(*Shape) bool) {
		for i := len(sc.shapes) - 1; i >= 0; i-- {
			if !yield(sc.shapes[i]) {
				return
			}
		}
	}
}
