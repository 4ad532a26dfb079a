// Package raster is the default glyph rasterizer for the layout engine.
//
// Glyphs are drawn with golang.org/x/image's OpenType renderer using the
// embedded fonts from package fonts, rotated with imaging, and packed into
// sprites. Geometry follows the classic word-cloud conventions:
//
//   - the face is rendered at size+1 pixels
//   - the unrotated box is (advance+1) wide and 2·size tall, with the
//     baseline on the box's horizontal center line
//   - rotation is clockwise in degrees, about the box center
//   - the rotated box width is rounded up to a multiple of 32
//   - padding dilates the glyph outline by that many pixels
//
// Boxes larger than the rasterization surface are rejected with
// sprite.ErrOverflow.
package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordcloud/pkg/cloud/sprite"
	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// Surface is the default maximum box edge in pixels.
const Surface = 2048

// Name identifies this backend in cache keys.
const Name = "ximage"

const radians = math.Pi / 180

// Rasterizer renders glyphs with golang.org/x/image.
type Rasterizer struct {
	// Surface caps the box width and height. Zero means [Surface].
	Surface int
}

// New returns a rasterizer with the default surface size.
func New() *Rasterizer {
	return &Rasterizer{Surface: Surface}
}

// Rasterize implements sprite.Rasterizer.
func (r *Rasterizer) Rasterize(ctx context.Context, g sprite.Glyph) (*sprite.Sprite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.Text == "" || g.Size <= 0 {
		return nil, sprite.ErrEmpty
	}

	f, err := fonts.Lookup(g.Font, g.Style, g.Weight)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(g.Size + 1),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("raster: new face: %w", err)
	}
	defer face.Close()

	advance := font.MeasureString(face, g.Text)
	if advance <= 0 {
		return nil, sprite.ErrEmpty
	}
	adv := float64(advance) / 64
	textW := adv + 1
	wordH := float64(g.Size << 1)

	boxW, boxH := Box(textW, wordH, g.Rotate)
	limit := r.Surface
	if limit <= 0 {
		limit = Surface
	}
	if boxW > limit || boxH > limit {
		return nil, fmt.Errorf("%w: %q at size %d needs %dx%d", sprite.ErrOverflow, g.Text, g.Size, boxW, boxH)
	}

	glyph := render(face, g.Text, adv, textW, wordH, g.Padding)

	var src image.Image = glyph
	if math.Mod(g.Rotate, 360) != 0 {
		src = imaging.Rotate(glyph, -g.Rotate, color.Transparent)
	}

	dst := image.NewAlpha(image.Rect(0, 0, boxW, boxH))
	sb := src.Bounds()
	ox := (boxW - sb.Dx()) / 2
	oy := (boxH - sb.Dy()) / 2
	draw.Draw(dst, image.Rect(ox, oy, ox+sb.Dx(), oy+sb.Dy()), src, sb.Min, draw.Src)

	return sprite.Pack(dst)
}

// Validate implements sprite.Validator. It rejects unknown fonts, styles
// and weights without rendering anything.
func (r *Rasterizer) Validate(g sprite.Glyph) error {
	_, err := fonts.Lookup(g.Font, g.Style, g.Weight)
	return err
}

// Box returns the sprite box for an unrotated text box of textW×wordH
// rotated by deg degrees. The width is rounded up to a multiple of 32.
func Box(textW, wordH, deg float64) (w, h int) {
	if deg == 0 {
		return int(textW+31) >> 5 << 5, int(wordH)
	}
	sr, cr := math.Sincos(deg * radians)
	wcr, wsr := textW*cr, textW*sr
	hcr, hsr := wordH*cr, wordH*sr
	w = int(math.Max(math.Abs(wcr+hsr), math.Abs(wcr-hsr))+31) >> 5 << 5
	h = int(math.Max(math.Abs(wsr+hcr), math.Abs(wsr-hcr)))
	return w, h
}

// render draws text unrotated with its baseline on the center line and
// applies padding. The image is wide enough to hold the padded outline.
func render(face font.Face, text string, adv, textW, wordH float64, padding int) *image.Alpha {
	pad := max(padding, 0)
	w := int(math.Ceil(textW)) + 2*pad
	h := int(wordH) + 2*pad
	m := image.NewAlpha(image.Rect(0, 0, w, h))

	d := &font.Drawer{
		Dst:  m,
		Src:  image.Opaque,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(w/2 - int(math.Floor(adv/2))),
			Y: fixed.I(h / 2),
		},
	}
	d.DrawString(text)

	return dilate(m, pad)
}

// dilate grows every set pixel into a disc of radius r.
func dilate(m *image.Alpha, r int) *image.Alpha {
	if r <= 0 {
		return m
	}
	b := m.Bounds()
	out := image.NewAlpha(b)
	on := color.Alpha{A: 0xff}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.AlphaAt(x, y).A == 0 {
				continue
			}
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					if dx*dx+dy*dy > r*r {
						continue
					}
					if p := image.Pt(x+dx, y+dy); p.In(b) {
						out.SetAlpha(p.X, p.Y, on)
					}
				}
			}
		}
	}
	return out
}

var (
	_ sprite.Rasterizer = (*Rasterizer)(nil)
	_ sprite.Validator  = (*Rasterizer)(nil)
)
