package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/cloud/raster"
	"github.com/matzehuels/wordcloud/pkg/cloud/sprite"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/result"
)

// Runner encapsulates layout execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner holds no per-layout state, so multiple goroutines can share
// one Runner. Each layout gets its own engine and Run.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Rasterizer is the glyph backend. Nil uses raster.New. It is always
	// wrapped in a sprite cache backed by Cache.
	Rasterizer sprite.Rasterizer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Job is a started layout. Drive it with Tick (or Run.Execute) and hand it
// back to Runner.Finish.
type Job struct {
	Run *cloud.Run

	words   []cloud.Word
	opts    Options
	key     string
	started time.Time
}

// Tick advances the job's run by one time slice.
func (j *Job) Tick(ctx context.Context) bool { return j.Run.Tick(ctx) }

// Layout computes (or loads from cache) the layout of words. The bool
// reports a cache hit. If ctx ends first, the partial layout is returned
// together with ctx's error and nothing is cached.
func (r *Runner) Layout(ctx context.Context, words []cloud.Word, opts Options) (result.Layout, bool, error) {
	if err := opts.Validate(); err != nil {
		return result.Layout{}, false, fmt.Errorf("invalid options: %w", err)
	}
	if l, ok := r.Lookup(ctx, words, opts); ok {
		r.logger(opts).Info("layout from cache", "words", len(l.Words))
		return l, true, nil
	}

	job, err := r.Start(ctx, words, opts)
	if err != nil {
		return result.Layout{}, false, err
	}
	_, err = job.Run.Execute(ctx)
	l, err := r.Finish(ctx, job, err)
	return l, false, err
}

// Lookup returns a cached layout for words and opts. Options.Refresh
// bypasses the cache.
func (r *Runner) Lookup(ctx context.Context, words []cloud.Word, opts Options) (result.Layout, bool) {
	opts.SetDefaults()
	if opts.Refresh {
		return result.Layout{}, false
	}
	data, hit, err := r.Cache.Get(ctx, r.layoutKey(words, opts))
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return result.Layout{}, false
	}
	l, err := result.Unmarshal(data)
	if err != nil {
		// Fall through to recompute.
		observability.Cache().OnCacheMiss(ctx, "layout")
		return result.Layout{}, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return l, true
}

// Start validates opts, builds the engine and starts a run over words.
// The run's rasterizer is wrapped in the runner's sprite cache.
func (r *Runner) Start(ctx context.Context, words []cloud.Word, opts Options) (*Job, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	inner := r.Rasterizer
	if inner == nil {
		inner = raster.New()
	}
	ras := raster.NewCached(inner, r.Cache, r.Keyer)

	engine, err := NewLayout(words, opts, ras, &logHooks{ctx: ctx, logger: logger})
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	run, err := engine.Start(words)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	logger.Debug("layout started", "run", run.ID, "words", len(words), "options", opts.String())
	observability.Layout().OnLayoutStart(ctx, run.ID, len(words))

	return &Job{
		Run:     run,
		words:   words,
		opts:    opts,
		key:     r.layoutKey(words, opts),
		started: time.Now(),
	}, nil
}

// Finish exports a job's run and caches the layout if the run completed.
// runErr is the error the caller got while driving the run, if any.
func (r *Runner) Finish(ctx context.Context, job *Job, runErr error) (result.Layout, error) {
	res := job.Run.Result()
	l := Export(res, job.opts)
	dur := time.Since(job.started)

	observability.Layout().OnLayoutComplete(ctx, res.RunID, observability.LayoutStats{
		Words:     len(job.words),
		Placed:    len(res.Placed),
		NotPlaced: len(res.NotPlaced),
		Skipped:   len(res.Skipped),
	}, dur, runErr)

	logger := r.logger(job.opts)
	if runErr != nil {
		logger.Warn("layout interrupted", "placed", len(res.Placed), "error", runErr)
		return l, runErr
	}

	logger.Info("computed layout",
		"placed", len(res.Placed),
		"not_placed", len(res.NotPlaced),
		"skipped", len(res.Skipped),
		"duration", dur)

	if data, err := result.Marshal(l); err == nil {
		if r.Cache.Set(ctx, job.key, data, cache.TTLLayout) == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, nil
}

// Export converts an engine result into a result.Layout carrying the
// options needed to reproduce it.
func Export(res cloud.Result, opts Options) result.Layout {
	l := result.FromResult(res)
	l.Spiral = opts.Spiral
	l.Seed = opts.Seed
	return l
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logger prefers the runner's logger over the one in opts.
func (r *Runner) logger(opts Options) *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	if opts.Logger != nil {
		return opts.Logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}

func (r *Runner) layoutKey(words []cloud.Word, opts Options) string {
	return r.Keyer.LayoutKey(cache.HashJSON(words), opts.LayoutKeyOpts())
}

// =============================================================================
// Logging hooks
// =============================================================================

// logHooks reports engine notifications to the logger and the
// observability registry.
type logHooks struct {
	ctx    context.Context
	logger *log.Logger
}

func (h *logHooks) OnWord(r *cloud.Run, t *cloud.Tag) {
	h.logger.Debug("placed", "word", t.Text, "size", t.Size, "rotate", t.Rotate, "x", t.X, "y", t.Y)
}

func (h *logHooks) OnNotPlaced(r *cloud.Run, t *cloud.Tag, index int) {
	h.logger.Debug("not placed", "word", t.Text, "size", t.Size, "index", index)
	observability.Layout().OnWordNotPlaced(h.ctx, r.ID, t.Text)
}

func (h *logHooks) OnEnd(r *cloud.Run, res cloud.Result) {
	h.logger.Debug("layout finished", "run", r.ID, "placed", len(res.Placed))
}
