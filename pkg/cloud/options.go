package cloud

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/wordcloud/pkg/cloud/raster"
	"github.com/matzehuels/wordcloud/pkg/cloud/spiral"
	"github.com/matzehuels/wordcloud/pkg/cloud/sprite"
	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Defaults applied by New.
const (
	DefaultWidth       = 256
	DefaultHeight      = 256
	DefaultFont        = "serif"
	DefaultStyle       = "normal"
	DefaultWeight      = "normal"
	DefaultPadding     = 1
	DefaultMaxAttempts = 10
)

// Accessor derives a per-word value from the word and its input index.
type Accessor[T any] func(w Word, i int) T

// Const returns an accessor that ignores the word and returns v.
func Const[T any](v T) Accessor[T] {
	return func(Word, int) T { return v }
}

// DefaultText returns the word's text.
func DefaultText(w Word, _ int) string { return w.Text }

// DefaultFontSize returns the square root of the word's value.
func DefaultFontSize(w Word, _ int) float64 { return math.Sqrt(w.Value) }

// RandomRotate returns the classic rotation: a multiple of 30 degrees in
// [-90, 60], drawn from rng.
func RandomRotate(rng *rand.Rand) float64 {
	return float64(int(rng.Float64()*6)-3) * 30
}

// Option configures a Layout.
type Option func(*config)

type config struct {
	width, height int
	spiral        spiral.Factory
	spiralName    string
	interval      time.Duration
	rng           *rand.Rand
	seed          *uint64
	rasterizer    sprite.Rasterizer
	hooks         []Hooks
	maxAttempts   int

	text    Accessor[string]
	font    Accessor[string]
	style   Accessor[string]
	weight  Accessor[string]
	size    Accessor[float64]
	rotate  Accessor[float64] // nil draws RandomRotate from the run's source
	padding Accessor[int]

	err error
}

func defaultConfig() config {
	return config{
		width:       DefaultWidth,
		height:      DefaultHeight,
		spiral:      spiral.NewArchimedean,
		spiralName:  spiral.Archimedean,
		maxAttempts: DefaultMaxAttempts,
		text:        DefaultText,
		font:        Const(DefaultFont),
		style:       Const(DefaultStyle),
		weight:      Const(DefaultWeight),
		size:        DefaultFontSize,
		padding:     Const(DefaultPadding),
	}
}

func (c *config) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *config) validate() error {
	if c.err != nil {
		return c.err
	}
	if c.width <= 0 || c.height <= 0 {
		return errors.New(errors.ErrCodeInvalidSize, "canvas size must be positive, got %dx%d", c.width, c.height)
	}
	if c.interval < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "time interval must not be negative, got %s", c.interval)
	}
	if c.maxAttempts < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max attempts must be at least 1, got %d", c.maxAttempts)
	}
	if c.spiral == nil {
		return errors.New(errors.ErrCodeInvalidSpiral, "no spiral configured")
	}
	return nil
}

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(c *config) { c.width, c.height = width, height }
}

// WithSpiral sets a custom spiral factory.
func WithSpiral(f Factory) Option {
	return func(c *config) {
		if f == nil {
			c.fail(errors.New(errors.ErrCodeInvalidSpiral, "spiral factory is nil"))
			return
		}
		c.spiral, c.spiralName = f, "custom"
	}
}

// Factory is re-exported for callers that only import this package.
type Factory = spiral.Factory

// WithSpiralName selects a registered spiral. Unknown names fail New.
func WithSpiralName(name string) Option {
	return func(c *config) {
		f, err := spiral.Lookup(name)
		if err != nil {
			c.fail(err)
			return
		}
		c.spiral, c.spiralName = f, name
	}
}

// WithTimeInterval bounds the time one Tick may spend placing words.
// Zero means unbounded: a single tick places every word.
func WithTimeInterval(d time.Duration) Option {
	return func(c *config) { c.interval = d }
}

// WithRandom sets a shared random source. Runs draw from it in sequence.
func WithRandom(rng *rand.Rand) Option {
	return func(c *config) { c.rng, c.seed = rng, nil }
}

// WithSeed gives every run a fresh PCG source seeded with seed, so
// repeated runs over the same input are identical.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed, c.rng = &seed, nil }
}

// WithRasterizer replaces the default glyph rasterizer.
func WithRasterizer(r sprite.Rasterizer) Option {
	return func(c *config) {
		if r == nil {
			c.fail(errors.New(errors.ErrCodeInvalidConfig, "rasterizer is nil"))
			return
		}
		c.rasterizer = r
	}
}

// WithHooks adds notification hooks. Multiple hooks run in order.
func WithHooks(h ...Hooks) Option {
	return func(c *config) {
		for _, hh := range h {
			if hh != nil {
				c.hooks = append(c.hooks, hh)
			}
		}
	}
}

// WithMaxAttempts sets how many spiral searches a word gets before it is
// reported as not placed.
func WithMaxAttempts(n int) Option {
	return func(c *config) { c.maxAttempts = n }
}

// WithText sets the text accessor.
func WithText(f Accessor[string]) Option {
	return func(c *config) { c.text = orDefault(c, f, DefaultText, "text") }
}

// WithFont sets the font family accessor.
func WithFont(f Accessor[string]) Option {
	return func(c *config) { c.font = orDefault(c, f, Const(DefaultFont), "font") }
}

// WithFontStyle sets the font style accessor.
func WithFontStyle(f Accessor[string]) Option {
	return func(c *config) { c.style = orDefault(c, f, Const(DefaultStyle), "font style") }
}

// WithFontWeight sets the font weight accessor.
func WithFontWeight(f Accessor[string]) Option {
	return func(c *config) { c.weight = orDefault(c, f, Const(DefaultWeight), "font weight") }
}

// WithFontSize sets the font size accessor. Results are truncated to integers.
func WithFontSize(f Accessor[float64]) Option {
	return func(c *config) { c.size = orDefault(c, f, DefaultFontSize, "font size") }
}

// WithRotate sets the rotation accessor in degrees.
func WithRotate(f Accessor[float64]) Option {
	return func(c *config) { c.rotate = orDefault(c, f, nil, "rotate") }
}

// WithPadding sets the padding accessor in pixels.
func WithPadding(f Accessor[int]) Option {
	return func(c *config) { c.padding = orDefault(c, f, Const(DefaultPadding), "padding") }
}

func orDefault[T any](c *config, f, def Accessor[T], name string) Accessor[T] {
	if f == nil {
		c.fail(errors.New(errors.ErrCodeInvalidConfig, "%s accessor is nil", name))
		return def
	}
	return f
}

// source returns the random source for a new run.
func (c *config) source() *rand.Rand {
	switch {
	case c.seed != nil:
		return rand.New(rand.NewPCG(*c.seed, *c.seed^0xdeadbeef))
	case c.rng != nil:
		return c.rng
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (c *config) raster() sprite.Rasterizer {
	if c.rasterizer != nil {
		return c.rasterizer
	}
	return raster.New()
}

func (c *config) notify() Hooks {
	switch len(c.hooks) {
	case 0:
		return NoopHooks{}
	case 1:
		return c.hooks[0]
	}
	return multiHooks(c.hooks)
}
