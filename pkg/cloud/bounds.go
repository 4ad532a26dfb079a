package cloud

import "image"

// Bounds is the smallest rectangle enclosing every word placed so far,
// in canvas coordinates. A nil *Bounds means nothing has been placed.
type Bounds struct {
	Min image.Point `json:"min"`
	Max image.Point `json:"max"`
}

func newBounds(r image.Rectangle) *Bounds {
	return &Bounds{Min: r.Min, Max: r.Max}
}

// Rect returns the bounds as an image.Rectangle.
func (b *Bounds) Rect() image.Rectangle {
	return image.Rectangle{Min: b.Min, Max: b.Max}
}

// Contains reports whether o lies inside b.
func (b *Bounds) Contains(o *Bounds) bool {
	if o == nil {
		return true
	}
	if b == nil {
		return false
	}
	return b.Min.X <= o.Min.X && b.Min.Y <= o.Min.Y && b.Max.X >= o.Max.X && b.Max.Y >= o.Max.Y
}

// expand grows b to include r.
func (b *Bounds) expand(r image.Rectangle) {
	b.Min.X = min(b.Min.X, r.Min.X)
	b.Min.Y = min(b.Min.Y, r.Min.Y)
	b.Max.X = max(b.Max.X, r.Max.X)
	b.Max.Y = max(b.Max.Y, r.Max.Y)
}

// overlaps reports whether r strictly intersects b. Touching edges do not count.
func (b *Bounds) overlaps(r image.Rectangle) bool {
	return r.Max.X > b.Min.X && r.Min.X < b.Max.X && r.Max.Y > b.Min.Y && r.Min.Y < b.Max.Y
}

func (b *Bounds) clone() *Bounds {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}
