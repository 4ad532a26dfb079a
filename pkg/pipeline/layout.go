package pipeline

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/cloud/sprite"
)

// NewLayout builds a placement engine from validated options. words is used
// to compute the value extent for the linear and log scales.
func NewLayout(words []cloud.Word, opts Options, ras sprite.Rasterizer, hooks ...cloud.Hooks) (*cloud.Layout, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cloudOpts := []cloud.Option{
		cloud.WithSize(opts.Width, opts.Height),
		cloud.WithSpiralName(opts.Spiral),
		cloud.WithSeed(opts.Seed),
		cloud.WithMaxAttempts(opts.MaxAttempts),
		cloud.WithTimeInterval(time.Duration(opts.TimeIntervalMS) * time.Millisecond),
		cloud.WithFont(cloud.Const(opts.Font)),
		cloud.WithFontStyle(cloud.Const(opts.FontStyle)),
		cloud.WithFontWeight(cloud.Const(opts.FontWeight)),
		cloud.WithPadding(cloud.Const(*opts.Padding)),
		cloud.WithFontSize(SizeScale(opts, words)),
	}
	if rot := Rotations(opts.Rotations, opts.Seed); rot != nil {
		cloudOpts = append(cloudOpts, cloud.WithRotate(rot))
	}
	if ras != nil {
		cloudOpts = append(cloudOpts, cloud.WithRasterizer(ras))
	}
	if len(hooks) > 0 {
		cloudOpts = append(cloudOpts, cloud.WithHooks(hooks...))
	}
	return cloud.New(cloudOpts...)
}

// Rotations returns the rotate accessor for a set of allowed angles. Nil
// means the engine's default random rotation. With several angles each word
// gets one picked by (seed, index), so reruns with the same seed agree.
func Rotations(angles []float64, seed uint64) cloud.Accessor[float64] {
	switch len(angles) {
	case 0:
		return nil
	case 1:
		return cloud.Const(angles[0])
	}
	return func(_ cloud.Word, i int) float64 {
		r := rand.New(rand.NewPCG(seed, uint64(i)))
		return angles[r.IntN(len(angles))]
	}
}

// SizeScale returns the font size accessor for opts.Scale. The sqrt scale
// is the classic sqrt(value) and ignores MinSize/MaxSize; linear and log map
// the value extent of words onto [MinSize, MaxSize].
func SizeScale(opts Options, words []cloud.Word) cloud.Accessor[float64] {
	if opts.Scale == ScaleSqrt || opts.Scale == "" {
		return cloud.DefaultFontSize
	}

	f := func(v float64) float64 { return v }
	if opts.Scale == ScaleLog {
		f = func(v float64) float64 { return math.Log1p(v) }
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, w := range words {
		v := f(w.Value)
		lo, hi = min(lo, v), max(hi, v)
	}
	minSize, maxSize := float64(opts.MinSize), float64(opts.MaxSize)

	return func(w cloud.Word, _ int) float64 {
		if hi <= lo {
			return maxSize
		}
		return minSize + (f(w.Value)-lo)/(hi-lo)*(maxSize-minSize)
	}
}
