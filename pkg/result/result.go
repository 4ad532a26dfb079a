// Package result defines the serialized form of a finished word-cloud layout.
//
// A [Layout] is what the CLI writes to disk, what the pipeline caches and
// what the API server stores and returns. It carries enough of the layout
// options to reproduce the run, every placed word with its center-relative
// position and local bounds, and the texts of words that could not be placed.
//
// The same struct is encoded as JSON (files, cache, HTTP) and BSON (MongoDB).
package result

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/matzehuels/wordcloud/pkg/cloud"
)

// Layout is a serialized layout result.
type Layout struct {
	ID string `json:"id,omitempty" bson:"_id,omitempty"`

	// Canvas and run parameters
	Width  int    `json:"width" bson:"width"`
	Height int    `json:"height" bson:"height"`
	Spiral string `json:"spiral,omitempty" bson:"spiral,omitempty"`
	Seed   uint64 `json:"seed,omitempty" bson:"seed,omitempty"`

	// Bounds encloses all placed words, center-relative. Nil when nothing was placed.
	Bounds *Rect `json:"bounds,omitempty" bson:"bounds,omitempty"`

	Words     []PlacedWord `json:"words" bson:"words"`
	NotPlaced []string     `json:"not_placed,omitempty" bson:"not_placed,omitempty"`
	Skipped   []string     `json:"skipped,omitempty" bson:"skipped,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero" bson:"created_at"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X0 int `json:"x0" bson:"x0"`
	Y0 int `json:"y0" bson:"y0"`
	X1 int `json:"x1" bson:"x1"`
	Y1 int `json:"y1" bson:"y1"`
}

// PlacedWord is one placed word. X and Y are relative to the canvas center;
// X0..Y1 are the glyph's local bounds around that anchor.
type PlacedWord struct {
	Text    string  `json:"text" bson:"text"`
	Value   float64 `json:"value,omitempty" bson:"value,omitempty"`
	Font    string  `json:"font" bson:"font"`
	Style   string  `json:"style,omitempty" bson:"style,omitempty"`
	Weight  string  `json:"weight,omitempty" bson:"weight,omitempty"`
	Size    int     `json:"size" bson:"size"`
	Rotate  float64 `json:"rotate" bson:"rotate"`
	Padding int     `json:"padding,omitempty" bson:"padding,omitempty"`

	X  int `json:"x" bson:"x"`
	Y  int `json:"y" bson:"y"`
	X0 int `json:"x0" bson:"x0"`
	Y0 int `json:"y0" bson:"y0"`
	X1 int `json:"x1" bson:"x1"`
	Y1 int `json:"y1" bson:"y1"`
}

// Rect returns the word's footprint, center-relative.
func (w PlacedWord) Rect() Rect {
	return Rect{X0: w.X + w.X0, Y0: w.Y + w.Y0, X1: w.X + w.X1, Y1: w.Y + w.Y1}
}

// FromResult converts an engine result. Bounds are shifted to the same
// center-relative frame as the word positions.
func FromResult(res cloud.Result) Layout {
	l := Layout{
		Width:  res.Width,
		Height: res.Height,
		Words:  make([]PlacedWord, len(res.Placed)),
	}
	for i, t := range res.Placed {
		l.Words[i] = PlacedWord{
			Text:    t.Text,
			Value:   t.Word.Value,
			Font:    t.Font,
			Style:   t.Style,
			Weight:  t.Weight,
			Size:    t.Size,
			Rotate:  t.Rotate,
			Padding: t.Padding,
			X:       t.X,
			Y:       t.Y,
			X0:      t.X0,
			Y0:      t.Y0,
			X1:      t.X1,
			Y1:      t.Y1,
		}
	}
	if b := res.Bounds; b != nil {
		hw, hh := res.Width>>1, res.Height>>1
		l.Bounds = &Rect{X0: b.Min.X - hw, Y0: b.Min.Y - hh, X1: b.Max.X - hw, Y1: b.Max.Y - hh}
	}
	for _, t := range res.NotPlaced {
		l.NotPlaced = append(l.NotPlaced, t.Text)
	}
	for _, t := range res.Skipped {
		l.Skipped = append(l.Skipped, t.Text)
	}
	return l
}

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout and checks the canvas size.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout has invalid size %dx%d", l.Width, l.Height)
	}
	return l, nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
