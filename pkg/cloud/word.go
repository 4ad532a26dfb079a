package cloud

import (
	"image"

	"github.com/matzehuels/wordcloud/pkg/cloud/sprite"
)

// Word is a caller-supplied placement unit. The engine never modifies it.
type Word struct {
	Text  string         `json:"text"`
	Value float64        `json:"value"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// Tag is a word augmented with everything the engine computes for it:
// the resolved accessor values, its sprite and its final position.
type Tag struct {
	// Index is the word's position in the input slice.
	Index int
	Word  Word

	Text    string
	Font    string
	Style   string
	Weight  string
	Size    int
	Rotate  float64
	Padding int

	// Sprite is nil until the word is rasterized, and again after the run stops.
	Sprite  *sprite.Sprite
	HasText bool

	// Glyph box and local bounds relative to the anchor.
	Width, Height  int
	X0, Y0, X1, Y1 int

	// X and Y are the anchor. Valid only when Placed is true.
	X, Y   int
	Placed bool
}

// Glyph returns the rasterization input for the tag.
func (t *Tag) Glyph() sprite.Glyph {
	return sprite.Glyph{
		Text:    t.Text,
		Font:    t.Font,
		Style:   t.Style,
		Weight:  t.Weight,
		Size:    t.Size,
		Rotate:  t.Rotate,
		Padding: t.Padding,
	}
}

// Rect returns the tag's footprint at its current anchor.
func (t *Tag) Rect() image.Rectangle {
	return t.rectAt(t.X, t.Y)
}

func (t *Tag) rectAt(x, y int) image.Rectangle {
	return image.Rect(x+t.X0, y+t.Y0, x+t.X1, y+t.Y1)
}

// setSprite records s and copies its geometry onto the tag.
func (t *Tag) setSprite(s *sprite.Sprite) {
	t.Sprite = s
	t.HasText = true
	t.Width, t.Height = s.Width, s.Height
	t.X0, t.Y0, t.X1, t.Y1 = s.X0, s.Y0, s.X1, s.Y1
}
