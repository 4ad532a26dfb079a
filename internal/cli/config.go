package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// registerLayoutFlags adds the layout option flags to cmd. Defaults are
// shown in help only; see applyLayoutFlags.
func registerLayoutFlags(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Int("width", pipeline.DefaultWidth, "canvas width in pixels")
	fl.Int("height", pipeline.DefaultHeight, "canvas height in pixels")
	fl.String("spiral", pipeline.DefaultSpiral, "search spiral: archimedean, rectangular")
	fl.String("font", pipeline.DefaultFont, "font family (see 'wordcloud fonts')")
	fl.String("font-style", "normal", "font style: normal, italic, oblique")
	fl.String("font-weight", "normal", "font weight: normal, medium, bold or 100-1000")
	fl.Int("padding", pipeline.DefaultPadding, "padding around each glyph in pixels")
	fl.Float64Slice("rotate", nil, "allowed rotations in degrees (default: random multiples of 30 in [-90, 60])")
	fl.Uint64("seed", pipeline.DefaultSeed, "random seed")
	fl.Int("time-interval", 0, "time slice per tick in milliseconds (0 = unbounded)")
	fl.Int("max-attempts", pipeline.DefaultMaxAttempts, "spiral searches per word")
	fl.String("scale", pipeline.DefaultScale, "value to font size scale: sqrt, linear, log")
	fl.Int("min-size", pipeline.DefaultMinSize, "smallest font size (linear/log scale)")
	fl.Int("max-size", pipeline.DefaultMaxSize, "largest font size (linear/log scale)")
	fl.Int("max-words", 0, "keep only the N highest-valued words (0 = all)")
}

// applyLayoutFlags copies every flag set on the command line into opts, so
// config file values survive unless overridden.
func applyLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) error {
	fl := cmd.Flags()
	ints := map[string]*int{
		"width":         &opts.Width,
		"height":        &opts.Height,
		"time-interval": &opts.TimeIntervalMS,
		"max-attempts":  &opts.MaxAttempts,
		"min-size":      &opts.MinSize,
		"max-size":      &opts.MaxSize,
		"max-words":     &opts.MaxWords,
	}
	for name, dst := range ints {
		if !fl.Changed(name) {
			continue
		}
		v, err := fl.GetInt(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	strs := map[string]*string{
		"spiral":      &opts.Spiral,
		"font":        &opts.Font,
		"font-style":  &opts.FontStyle,
		"font-weight": &opts.FontWeight,
		"scale":       &opts.Scale,
	}
	for name, dst := range strs {
		if !fl.Changed(name) {
			continue
		}
		v, err := fl.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fl.Changed("padding") {
		p, err := fl.GetInt("padding")
		if err != nil {
			return err
		}
		opts.Padding = &p
	}
	if fl.Changed("rotate") {
		r, err := fl.GetFloat64Slice("rotate")
		if err != nil {
			return err
		}
		opts.Rotations = r
	}
	if fl.Changed("seed") {
		seed, err := fl.GetUint64("seed")
		if err != nil {
			return err
		}
		opts.Seed = seed
	}
	return nil
}

// loadConfig reads layout options from the config file. A missing default
// config file yields zero options; a missing --config file is an error.
func (c *CLI) loadConfig() (pipeline.Options, error) {
	var opts pipeline.Options

	path, explicit := c.ConfigPath, c.ConfigPath != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return opts, nil
		}
		path = p
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !explicit {
		return opts, nil
	}
	if err := opts.LoadFile(path); err != nil {
		return pipeline.Options{}, err
	}
	c.Logger.Debug("loaded config", "path", path)
	return opts, nil
}
