// Package board implements the canvas-wide occupancy bitmap used for
// collision tests during word placement.
//
// The board stores one bit per canvas pixel in rows of packed 32-bit cells,
// using the same most-significant-bit-first convention as package sprite.
// Sprites are anchored at their center and are rarely aligned to a cell
// boundary, so every sprite row is shifted right by the anchor's sub-cell
// offset, with the shifted-out bits carried into the following cell.
//
// A board only grows: bits are set by Commit and never cleared. Callers must
// keep the whole footprint inside the canvas; the board does no clamping.
package board

import (
	"math/bits"

	"github.com/matzehuels/wordcloud/pkg/cloud/sprite"
)

// Board is a packed occupancy bitmap over a width×height canvas.
type Board struct {
	cells  []uint32
	width  int
	height int
	cols   int
}

// New creates an all-zero board. The row stride is ceil(width/32) cells.
func New(width, height int) *Board {
	cols := (width + 31) >> 5
	return &Board{
		cells:  make([]uint32, cols*height),
		width:  width,
		height: height,
		cols:   cols,
	}
}

// Width returns the canvas width in pixels.
func (b *Board) Width() int { return b.width }

// Height returns the canvas height in pixels.
func (b *Board) Height() int { return b.height }

// Collides reports whether s anchored at (x, y) overlaps any committed pixel.
func (b *Board) Collides(s *sprite.Sprite, x, y int) bool {
	collides := false
	b.walk(s, x, y, func(idx int, v uint32) bool {
		if b.cells[idx]&v != 0 {
			collides = true
			return false
		}
		return true
	})
	return collides
}

// Commit marks the pixels of s anchored at (x, y) as occupied.
// It must only follow a Collides check that returned false for the same position.
func (b *Board) Commit(s *sprite.Sprite, x, y int) {
	b.walk(s, x, y, func(idx int, v uint32) bool {
		b.cells[idx] |= v
		return true
	})
}

// walk visits every board cell touched by s at (x, y) with the shifted sprite
// bits that land in it. Cells that would receive no bits are not visited.
func (b *Board) walk(s *sprite.Sprite, x, y int, fn func(idx int, v uint32) bool) {
	w := s.Cols()
	lx := x - w<<4
	sx := uint(lx & 31)
	msx := 32 - sx
	idx := (y+s.Y0)*b.cols + lx>>5

	for j, h := 0, s.Rows(); j < h; j++ {
		row := s.Row(j)
		var last uint32
		for i := 0; i <= w; i++ {
			v := last << msx
			if i < w {
				last = row[i]
				v |= last >> sx
			}
			if v != 0 && !fn(idx+i, v) {
				return
			}
		}
		idx += b.cols
	}
}

// Occupied reports whether the canvas pixel (px, py) is set.
func (b *Board) Occupied(px, py int) bool {
	if px < 0 || py < 0 || px >= b.width || py >= b.height {
		return false
	}
	return b.cells[py*b.cols+px>>5]&(1<<(31-uint(px&31))) != 0
}

// Count returns the number of occupied pixels.
func (b *Board) Count() int {
	n := 0
	for _, c := range b.cells {
		n += bits.OnesCount32(c)
	}
	return n
}

// Empty reports whether no pixel has been committed.
func (b *Board) Empty() bool {
	for _, c := range b.cells {
		if c != 0 {
			return false
		}
	}
	return true
}
