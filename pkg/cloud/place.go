package cloud

import "math"

// place runs up to maxAttempts spiral searches for t, each starting again
// from the anchor with a fresh direction.
func (r *Run) place(t *Tag) bool {
	for range r.cfg.maxAttempts {
		if r.search(t) {
			return true
		}
	}
	return false
}

// search walks one spiral outward from t's anchor and commits the first
// free position. The search ends when the spiral reports ok=false or when
// both offsets reach the canvas diagonal.
func (r *Run) search(t *Tag) bool {
	w, h := r.cfg.width, r.cfg.height
	startX, startY := t.X, t.Y
	maxDelta := math.Hypot(float64(w), float64(h))
	next := r.cfg.spiral(w, h)

	dt := 1
	if r.rng.Float64() >= 0.5 {
		dt = -1
	}

	for step := 0; ; step += dt {
		fx, fy, ok := next(step)
		if !ok {
			return false
		}
		dx, dy := int(fx), int(fy)
		if float64(min(abs(dx), abs(dy))) >= maxDelta {
			return false
		}

		x, y := startX+dx, startY+dy
		rect := t.rectAt(x, y)
		if rect.Min.X < 0 || rect.Min.Y < 0 || rect.Max.X > w || rect.Max.Y > h {
			continue
		}
		if r.bounds != nil && !r.bounds.overlaps(rect) {
			continue
		}
		if r.board.Collides(t.Sprite, x, y) {
			continue
		}

		r.board.Commit(t.Sprite, x, y)
		t.X, t.Y = x, y
		return true
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
