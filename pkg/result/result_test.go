package result

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/cloud/sprite"
)

func boxes() sprite.Rasterizer {
	return sprite.RasterizerFunc(func(_ context.Context, g sprite.Glyph) (*sprite.Sprite, error) {
		if g.Text == "" {
			return nil, sprite.ErrEmpty
		}
		return sprite.Box(len(g.Text)*g.Size/2, g.Size), nil
	})
}

func TestFromResult(t *testing.T) {
	l, err := cloud.New(cloud.WithRasterizer(boxes()), cloud.WithSeed(5), cloud.WithRotate(cloud.Const(0.0)))
	if err != nil {
		t.Fatal(err)
	}
	res, err := l.Execute(context.Background(), []cloud.Word{
		{Text: "center", Value: 900},
		{Text: "", Value: 100},
		{Text: "gigantic", Value: 1e6},
	})
	if err != nil {
		t.Fatal(err)
	}

	out := FromResult(res)
	if out.Width != 256 || out.Height != 256 {
		t.Errorf("size = %dx%d", out.Width, out.Height)
	}
	if len(out.Words) != 1 || out.Words[0].Text != "center" {
		t.Fatalf("words = %+v", out.Words)
	}
	w := out.Words[0]
	if w.X != 0 || w.Y != 0 || w.Size != 30 || w.Value != 900 {
		t.Errorf("placed word = %+v", w)
	}
	if out.Bounds == nil || *out.Bounds != w.Rect() {
		t.Errorf("bounds = %+v, want %+v", out.Bounds, w.Rect())
	}
	if len(out.NotPlaced) != 1 || out.NotPlaced[0] != "gigantic" {
		t.Errorf("not placed = %v", out.NotPlaced)
	}
	if len(out.Skipped) != 1 || out.Skipped[0] != "" {
		t.Errorf("skipped = %v", out.Skipped)
	}
}

func TestFileRoundTrip(t *testing.T) {
	in := Layout{
		Width:  300,
		Height: 200,
		Spiral: "rectangular",
		Seed:   7,
		Bounds: &Rect{X0: -10, Y0: -5, X1: 10, Y1: 5},
		Words: []PlacedWord{
			{Text: "go", Font: "serif", Size: 10, X: 0, Y: 0, X0: -16, Y0: -5, X1: 16, Y1: 5},
		},
		NotPlaced: []string{"huge"},
	}
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteFile(in, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if out.Spiral != in.Spiral || out.Seed != in.Seed || *out.Bounds != *in.Bounds {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
	if len(out.Words) != 1 || out.Words[0] != in.Words[0] {
		t.Errorf("words = %+v", out.Words)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed", data: `{"width": `},
		{name: "missing size", data: `{"words": []}`},
		{name: "negative size", data: `{"width": -1, "height": 10}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
