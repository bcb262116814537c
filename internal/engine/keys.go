package engine

// Key names accepted by Session.Key besides single characters.
const (
	KeyEscape = "Escape"
	KeyEnter  = "Enter"
)

const (
	translateStep = 10
	scaleUp       = 1.1
	scaleDown     = 0.9
	rotateStep    = 10.0
	shearStep     = 0.1
)

// Key handles one key press. Escape returns ErrQuit; unknown keys are
// ignored. Transform keys act on the front shape:
//
//	w s a d   translate up, down, left, right by 10 pixels
//	e E       scale by 1.1 / 0.9
//	r R       rotate -10 / +10 degrees
//	c C       shear x by +0.1 / -0.1
//	y Y       shear y by +0.1 / -0.1
//	v h       reflect vertically / horizontally
//	p         scanline-fill the front shape
//	f         flood-fill every unfilled shape in blue
func (s *Session) Key(key string) error {
	switch key {
	case KeyEscape, "\x1b":
		return ErrQuit
	case KeyEnter, "\r", "\n":
		s.CommitPolygon()
		return nil
	case "p":
		s.FillFront()
		return nil
	case "f":
		s.FillAll()
		return nil
	}

	sh := s.scene.Front()
	if sh == nil {
		return nil
	}
	w, h := s.canvas.Size()

	var changed bool
	switch key {
	case "w":
		changed = Translate(sh, 0, translateStep)
	case "s":
		changed = Translate(sh, 0, -translateStep)
	case "a":
		changed = Translate(sh, -translateStep, 0)
	case "d":
		changed = Translate(sh, translateStep, 0)
	case "e":
		changed = Scale(sh, scaleUp, w, h)
	case "E":
		changed = Scale(sh, scaleDown, w, h)
	case "r":
		changed = Rotate(sh, -rotateStep, w, h)
	case "R":
		changed = Rotate(sh, rotateStep, w, h)
	case "c":
		changed = Shear(sh, shearStep, 0, w, h)
	case "C":
		changed = Shear(sh, -shearStep, 0, w, h)
	case "y":
		changed = Shear(sh, 0, shearStep, w, h)
	case "Y":
		changed = Shear(sh, 0, -shearStep, w, h)
	case "v":
		changed = Reflect(sh, true, false, s.opts.ReflectRefill, w, h)
	case "h":
		changed = Reflect(sh, false, true, s.opts.ReflectRefill, w, h)
	}
	if changed {
		s.dirty = true
	}
	return nil
}
