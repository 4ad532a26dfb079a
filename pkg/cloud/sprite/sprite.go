// Package sprite defines the monochrome occupancy bitmaps that the placement
// engine packs, and the rasterization contract that produces them.
//
// A Sprite is a word's rendered glyph box reduced to one bit per pixel. Rows
// are packed into 32-bit cells, most significant bit first, so pixel i of a
// row lives in cell i>>5 at bit 31-(i&31). The box is centered on the word's
// anchor: X0..X1 and Y0..Y1 are offsets from that anchor.
//
// Rasterization itself is an external concern. Anything that implements
// [Rasterizer] and honours the packing rules above can feed the engine; see
// package raster for the default font-backed implementation.
package sprite

import (
	"context"
	"errors"
	"image"
)

// Sentinel errors returned by rasterizers for words that have no usable sprite.
// The layout engine skips such words instead of failing the run.
var (
	// ErrEmpty is returned for text that renders to nothing (zero advance or no set pixels).
	ErrEmpty = errors.New("sprite: empty text")

	// ErrOverflow is returned when a glyph box does not fit the rasterization surface.
	ErrOverflow = errors.New("sprite: rasterization surface exceeded")
)

// Glyph describes what to rasterize for a single word.
type Glyph struct {
	Text    string  `json:"text"`
	Font    string  `json:"font"`
	Style   string  `json:"style"`
	Weight  string  `json:"weight"`
	Size    int     `json:"size"`
	Rotate  float64 `json:"rotate"`
	Padding int     `json:"padding"`
}

// Rasterizer turns a glyph description into a packed sprite.
//
// Implementations return ErrEmpty or ErrOverflow (possibly wrapped) for
// words that cannot produce a sprite. Any other error is treated the same
// way by the engine, so a failing backend degrades to skipped words.
type Rasterizer interface {
	Rasterize(ctx context.Context, g Glyph) (*Sprite, error)
}

// Validator is implemented by rasterizers that can reject a glyph
// description up front, for example because its font is unknown. The layout
// engine calls it for every word before a run starts.
type Validator interface {
	Validate(g Glyph) error
}

// RasterizerFunc adapts a plain function to the Rasterizer interface.
type RasterizerFunc func(ctx context.Context, g Glyph) (*Sprite, error)

// Rasterize calls f(ctx, g).
func (f RasterizerFunc) Rasterize(ctx context.Context, g Glyph) (*Sprite, error) { return f(ctx, g) }

// Sprite is a packed occupancy mask plus its local bounds.
type Sprite struct {
	// Mask holds Rows() rows of Cols() cells each.
	Mask []uint32 `json:"mask"`

	// Width is the box width in pixels, always a multiple of 32.
	Width int `json:"width"`

	// Height is the untrimmed box height in pixels.
	Height int `json:"height"`

	// Local bounds relative to the anchor. Y0/Y1 reflect row trimming.
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Cols returns the number of 32-bit cells per row.
func (s *Sprite) Cols() int { return s.Width >> 5 }

// Rows returns the number of packed rows.
func (s *Sprite) Rows() int { return s.Y1 - s.Y0 }

// Row returns the packed cells of row j.
func (s *Sprite) Row(j int) []uint32 {
	w := s.Cols()
	return s.Mask[j*w : (j+1)*w]
}

// Bit reports whether the pixel at local offset (px, py) from the box's
// top-left corner is set. py counts from the first packed row.
func (s *Sprite) Bit(px, py int) bool {
	if px < 0 || py < 0 || px >= s.Width || py >= s.Rows() {
		return false
	}
	return s.Mask[py*s.Cols()+px>>5]&(1<<(31-uint(px&31))) != 0
}

// Valid reports whether the mask matches the sprite's geometry: a positive
// width that is a multiple of 32 and exactly Rows()*Cols() cells.
func (s *Sprite) Valid() bool {
	if s.Width <= 0 || s.Width&31 != 0 || s.Y1 < s.Y0 {
		return false
	}
	return len(s.Mask) == s.Rows()*s.Cols()
}

// Empty reports whether the sprite has no set pixel.
func (s *Sprite) Empty() bool {
	for _, c := range s.Mask {
		if c != 0 {
			return false
		}
	}
	return true
}

// Pixels returns the number of set pixels.
func (s *Sprite) Pixels() int {
	n := 0
	for _, c := range s.Mask {
		for ; c != 0; c &= c - 1 {
			n++
		}
	}
	return n
}

// Pack converts a coverage mask into a sprite. The mask's bounds define the
// glyph box; it is widened to a multiple of 32 pixels, centered on the
// anchor, and trimmed of fully empty leading and trailing rows.
// Returns ErrEmpty if no pixel is set.
func Pack(m *image.Alpha) (*Sprite, error) {
	b := m.Bounds()
	w := (b.Dx() + 31) >> 5 << 5
	h := b.Dy()
	if w == 0 || h == 0 {
		return nil, ErrEmpty
	}
	cols := w >> 5

	s := &Sprite{Width: w, Height: h}
	s.X1 = w >> 1
	s.X0 = -s.X1
	s.Y1 = h >> 1
	s.Y0 = -s.Y1

	mask := make([]uint32, 0, cols*h)
	first, last := -1, -1
	for j := 0; j < h; j++ {
		row := make([]uint32, cols)
		seen := false
		for i := 0; i < b.Dx(); i++ {
			if m.AlphaAt(b.Min.X+i, b.Min.Y+j).A == 0 {
				continue
			}
			row[i>>5] |= 1 << (31 - uint(i&31))
			seen = true
		}
		if seen {
			if first < 0 {
				first = j
			}
			last = j
		}
		mask = append(mask, row...)
	}
	if first < 0 {
		return nil, ErrEmpty
	}

	s.Mask = mask[first*cols : (last+1)*cols]
	s.Y0 += first
	s.Y1 = s.Y0 + last - first + 1
	return s, nil
}

// Box returns a fully set sprite of the given pixel size. The width is
// rounded up to a multiple of 32 but only the first w columns are set.
func Box(w, h int) *Sprite {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	s, err := Pack(m)
	if err != nil {
		return nil
	}
	return s
}
