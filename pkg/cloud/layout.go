package cloud

import (
	"cmp"
	"context"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/cloud/board"
	"github.com/matzehuels/wordcloud/pkg/cloud/sprite"
	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Layout holds the engine configuration and at most one active run.
type Layout struct {
	cfg config
	run *Run
}

// New creates a layout. Invalid options fail here, before any run starts.
func New(opts ...Option) (*Layout, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Layout{cfg: cfg}, nil
}

// Size returns the canvas size.
func (l *Layout) Size() (width, height int) { return l.cfg.width, l.cfg.height }

// SpiralName returns the configured spiral's name, or "custom".
func (l *Layout) SpiralName() string { return l.cfg.spiralName }

// Start stops any previous run and begins a new one over words.
// Accessors are resolved and validated for every word up front; an invalid
// value fails the whole start and leaves no run behind. The returned run
// has not placed anything yet.
func (l *Layout) Start(words []Word) (*Run, error) {
	l.Stop()

	rng := l.cfg.source()
	ras := l.cfg.raster()
	tags, err := l.resolve(words, rng, ras)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(tags, func(a, b *Tag) int { return cmp.Compare(b.Size, a.Size) })

	l.run = &Run{
		ID:     uuid.NewString(),
		cfg:    &l.cfg,
		rng:    rng,
		ras:    ras,
		hooks:  l.cfg.notify(),
		tags:   tags,
		board:  board.New(l.cfg.width, l.cfg.height),
		placed: make([]*Tag, 0, len(tags)),
	}
	return l.run, nil
}

// Execute starts a run over words and drives it to completion.
func (l *Layout) Execute(ctx context.Context, words []Word) (Result, error) {
	run, err := l.Start(words)
	if err != nil {
		return Result{}, err
	}
	return run.Execute(ctx)
}

// Stop stops the active run, if any. It is safe to call repeatedly.
func (l *Layout) Stop() {
	if l.run != nil {
		l.run.Stop()
		l.run = nil
	}
}

// Current returns the active run, or nil.
func (l *Layout) Current() *Run { return l.run }

func (l *Layout) resolve(words []Word, rng *rand.Rand, ras sprite.Rasterizer) ([]*Tag, error) {
	validator, _ := ras.(sprite.Validator)
	tags := make([]*Tag, len(words))
	for i, w := range words {
		t := &Tag{
			Index:   i,
			Word:    w,
			Text:    l.cfg.text(w, i),
			Font:    l.cfg.font(w, i),
			Style:   l.cfg.style(w, i),
			Weight:  l.cfg.weight(w, i),
			Padding: l.cfg.padding(w, i),
		}
		if l.cfg.rotate != nil {
			t.Rotate = l.cfg.rotate(w, i)
		} else {
			t.Rotate = RandomRotate(rng)
		}
		size := l.cfg.size(w, i)

		switch {
		case math.IsNaN(size) || math.IsInf(size, 0) || size < 0:
			return nil, errors.New(errors.ErrCodeInvalidWord, "word %d (%q): invalid font size %v", i, t.Text, size)
		case math.IsNaN(t.Rotate) || math.IsInf(t.Rotate, 0):
			return nil, errors.New(errors.ErrCodeInvalidWord, "word %d (%q): invalid rotation %v", i, t.Text, t.Rotate)
		case t.Padding < 0:
			return nil, errors.New(errors.ErrCodeInvalidWord, "word %d (%q): negative padding %d", i, t.Text, t.Padding)
		}
		t.Size = int(size)

		if validator != nil {
			if err := validator.Validate(t.Glyph()); err != nil {
				code := errors.GetCode(err)
				if code == "" {
					code = errors.ErrCodeInvalidWord
				}
				return nil, errors.Wrap(code, err, "word %d (%q)", i, t.Text)
			}
		}
		tags[i] = t
	}
	return tags, nil
}
