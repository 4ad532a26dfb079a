// Package pipeline provides the word-cloud pipeline shared by the CLI and
// the API server.
//
// The pipeline has three stages:
//
//  1. Load: read a word list and trim it to the configured maximum
//  2. Layout: build the placement engine from Options and run it
//  3. Export: convert the engine result into a serializable result.Layout
//
// A [Runner] ties the stages together with two caches: rasterized sprites
// are cached per glyph, and finished layouts are cached per word list and
// option set. Both caches go through the same cache.Cache backend.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Width: 512, Height: 512, Spiral: "rectangular"}
//	layout, hit, err := runner.Layout(ctx, words, opts)
//
// Options carry json and toml tags so the same struct is used for API
// request bodies and for the CLI config file.
package pipeline

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/cloud/spiral"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = cloud.DefaultWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = cloud.DefaultHeight

	// DefaultSpiral is the default search spiral.
	DefaultSpiral = spiral.Archimedean

	// DefaultFont is the default font family.
	DefaultFont = cloud.DefaultFont

	// DefaultPadding is the default glyph padding in pixels.
	DefaultPadding = cloud.DefaultPadding

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultMaxAttempts is the default number of spiral searches per word.
	DefaultMaxAttempts = cloud.DefaultMaxAttempts

	// DefaultScale is the default value-to-size mapping.
	DefaultScale = ScaleSqrt

	// DefaultMinSize and DefaultMaxSize bound the linear and log scales.
	DefaultMinSize = 10
	DefaultMaxSize = 60

	// MaxWordsLimit caps MaxWords for API requests.
	MaxWordsLimit = 5000
)

// Scale names map word values to font sizes.
const (
	ScaleSqrt   = "sqrt"
	ScaleLinear = "linear"
	ScaleLog    = "log"
)

// ValidScales is the set of supported scales.
var ValidScales = map[string]bool{
	ScaleSqrt:   true,
	ScaleLinear: true,
	ScaleLog:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one layout.
// Zero values mean "use the default" except where noted.
type Options struct {
	// Canvas
	Width  int `json:"width,omitempty" toml:"width"`
	Height int `json:"height,omitempty" toml:"height"`

	// Search
	Spiral         string `json:"spiral,omitempty" toml:"spiral"`
	Seed           uint64 `json:"seed,omitempty" toml:"seed"`
	MaxAttempts    int    `json:"max_attempts,omitempty" toml:"max_attempts"`
	TimeIntervalMS int    `json:"time_interval_ms,omitempty" toml:"time_interval_ms"`

	// Glyphs
	Font       string `json:"font,omitempty" toml:"font"`
	FontStyle  string `json:"font_style,omitempty" toml:"font_style"`
	FontWeight string `json:"font_weight,omitempty" toml:"font_weight"`
	// Padding is nil for the default; zero disables padding.
	Padding *int `json:"padding,omitempty" toml:"padding"`
	// Rotations lists the allowed angles in degrees. Empty means the classic
	// random multiples of 30 in [-90, 60].
	Rotations []float64 `json:"rotations,omitempty" toml:"rotations"`

	// Sizing
	Scale    string `json:"scale,omitempty" toml:"scale"`
	MinSize  int    `json:"min_size,omitempty" toml:"min_size"`
	MaxSize  int    `json:"max_size,omitempty" toml:"max_size"`
	MaxWords int    `json:"max_words,omitempty" toml:"max_words"`

	// Runtime options (not serialized)
	Refresh bool        `json:"-" toml:"-"`
	Logger  *log.Logger `json:"-" toml:"-"`
}

// SetDefaults fills in zero-valued fields. It is idempotent.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Spiral == "" {
		o.Spiral = DefaultSpiral
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Font == "" {
		o.Font = DefaultFont
	}
	if o.FontStyle == "" {
		o.FontStyle = cloud.DefaultStyle
	}
	if o.FontWeight == "" {
		o.FontWeight = cloud.DefaultWeight
	}
	if o.Padding == nil {
		p := DefaultPadding
		o.Padding = &p
	}
	if o.Scale == "" {
		o.Scale = DefaultScale
	}
	if o.MinSize == 0 {
		o.MinSize = DefaultMinSize
	}
	if o.MaxSize == 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every field, so configuration
// errors surface before any layout starts.
func (o *Options) Validate() error {
	o.SetDefaults()

	if o.Width <= 0 || o.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidSize, "canvas size must be positive, got %dx%d", o.Width, o.Height)
	}
	if _, err := spiral.Lookup(o.Spiral); err != nil {
		return err
	}
	if o.MaxAttempts < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_attempts must be at least 1, got %d", o.MaxAttempts)
	}
	if o.TimeIntervalMS < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "time_interval_ms must not be negative, got %d", o.TimeIntervalMS)
	}
	if !fonts.Has(o.Font) {
		return errors.New(errors.ErrCodeInvalidFont, "unknown font %q (known: %s)", o.Font, strings.Join(fonts.Families(), ", "))
	}
	if !fonts.ValidStyle(o.FontStyle) {
		return errors.New(errors.ErrCodeInvalidFont, "unknown font style %q", o.FontStyle)
	}
	if !fonts.ValidWeight(o.FontWeight) {
		return errors.New(errors.ErrCodeInvalidFont, "unknown font weight %q", o.FontWeight)
	}
	if *o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "padding must not be negative, got %d", *o.Padding)
	}
	for _, r := range o.Rotations {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid rotation %v", r)
		}
	}
	if !ValidScales[o.Scale] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid scale %q (must be one of: sqrt, linear, log)", o.Scale)
	}
	if o.MinSize < 1 || o.MaxSize < o.MinSize {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid size range [%d, %d]", o.MinSize, o.MaxSize)
	}
	if o.MaxWords < 0 || o.MaxWords > MaxWordsLimit {
		return errors.New(errors.ErrCodeInvalidConfig, "max_words must be between 0 and %d, got %d", MaxWordsLimit, o.MaxWords)
	}
	return nil
}

// LayoutKeyOpts returns cache key options for this option set.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:       o.Width,
		Height:      o.Height,
		Spiral:      o.Spiral,
		Seed:        o.Seed,
		MaxAttempts: o.MaxAttempts,
		OptionsHash: cache.HashJSON(struct {
			Font, Style, Weight string
			Padding             *int
			Rotations           []float64
			Scale               string
			MinSize, MaxSize    int
			MaxWords            int
		}{o.Font, o.FontStyle, o.FontWeight, o.Padding, o.Rotations, o.Scale, o.MinSize, o.MaxSize, o.MaxWords}),
	}
}

// LoadFile reads options from a TOML file. Fields present in the file
// overwrite o; absent fields are left untouched.
func (o *Options) LoadFile(path string) error {
	if _, err := toml.DecodeFile(path, o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	return nil
}

// String summarises the options for log output.
func (o Options) String() string {
	return fmt.Sprintf("%dx%d spiral=%s font=%s scale=%s seed=%d", o.Width, o.Height, o.Spiral, o.Font, o.Scale, o.Seed)
}
