package cloud

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/wordcloud/pkg/cloud/board"
	"github.com/matzehuels/wordcloud/pkg/cloud/sprite"
)

// ErrStopped is returned by Execute for a run stopped before completion.
var ErrStopped = errors.New("cloud: run stopped")

// Result is a snapshot of a run's output.
type Result struct {
	RunID  string
	Width  int
	Height int

	// Placed lists placed tags in placement order, center-relative.
	Placed []*Tag

	// Bounds encloses all placed words in canvas coordinates, or is nil.
	Bounds *Bounds

	// NotPlaced lists tags that exhausted their attempts.
	NotPlaced []*Tag

	// Skipped lists tags without a usable sprite.
	Skipped []*Tag
}

// Run is one layout pass over a word list. Create it with Layout.Start.
type Run struct {
	// ID uniquely identifies the run.
	ID string

	cfg   *config
	rng   *rand.Rand
	ras   sprite.Rasterizer
	hooks Hooks

	tags   []*Tag
	next   int
	board  *board.Board
	bounds *Bounds

	placed    []*Tag
	notPlaced []*Tag
	skipped   []*Tag

	stopped bool
	done    bool
}

// Tick places words in size order until the time interval elapses, every
// word has been processed, the run is stopped, or ctx is done. At least one
// word is processed per call unless ctx is already done. Tick reports
// whether the run has ended, either completed or stopped.
func (r *Run) Tick(ctx context.Context) bool {
	if r.stopped || r.done {
		return true
	}
	start := time.Now()

	for r.next < len(r.tags) && !r.stopped {
		if ctx.Err() != nil {
			return false
		}
		t := r.tags[r.next]
		if t.Sprite == nil && !r.rasterize(ctx, t) {
			return false
		}
		idx := r.next
		r.next++
		r.step(t, idx)

		if r.cfg.interval > 0 && time.Since(start) >= r.cfg.interval {
			break
		}
	}

	if r.next >= len(r.tags) && !r.stopped {
		r.stop()
		r.done = true
		r.hooks.OnEnd(r, r.Result())
	}
	return r.stopped || r.done
}

// rasterize fetches t's sprite. It returns false only when ctx ended during
// rasterization; the word is then retried on the next tick.
func (r *Run) rasterize(ctx context.Context, t *Tag) bool {
	s, err := r.ras.Rasterize(ctx, t.Glyph())
	if err != nil && ctx.Err() != nil {
		return false
	}
	if err != nil || s == nil || s.Empty() {
		t.HasText = false
		return true
	}
	t.setSprite(s)
	return true
}

func (r *Run) step(t *Tag, idx int) {
	if !t.HasText {
		r.skipped = append(r.skipped, t)
		return
	}

	t.X, t.Y = r.cfg.width>>1, r.cfg.height>>1
	if !r.place(t) {
		t.X, t.Y = 0, 0
		r.notPlaced = append(r.notPlaced, t)
		r.hooks.OnNotPlaced(r, t, idx)
		return
	}

	t.Placed = true
	r.placed = append(r.placed, t)
	r.hooks.OnWord(r, t)
	if r.bounds == nil {
		r.bounds = newBounds(t.Rect())
	} else {
		r.bounds.expand(t.Rect())
	}
	t.X -= r.cfg.width >> 1
	t.Y -= r.cfg.height >> 1
}

// Execute ticks until the run ends. If ctx is done first the run is stopped
// and ctx's error is returned with the partial result. A run stopped by a
// hook returns ErrStopped.
func (r *Run) Execute(ctx context.Context) (Result, error) {
	for !r.Tick(ctx) {
		if err := ctx.Err(); err != nil {
			r.Stop()
			return r.Result(), err
		}
	}
	if r.stopped && !r.done {
		return r.Result(), ErrStopped
	}
	return r.Result(), nil
}

// Stop halts the run and drops every cached sprite. Stopping a finished or
// already stopped run is a no-op apart from clearing sprites again.
func (r *Run) Stop() {
	if !r.done {
		r.stopped = true
	}
	r.stop()
}

func (r *Run) stop() {
	for _, t := range r.tags {
		t.Sprite = nil
	}
}

// Done reports whether every word was processed.
func (r *Run) Done() bool { return r.done }

// Stopped reports whether the run was stopped before completion.
func (r *Run) Stopped() bool { return r.stopped }

// Progress returns how many words have been processed out of the total.
func (r *Run) Progress() (processed, total int) { return r.next, len(r.tags) }

// Bounds returns a copy of the current bounds, or nil.
func (r *Run) Bounds() *Bounds { return r.bounds.clone() }

// Tags returns all tags in processing order.
func (r *Run) Tags() []*Tag { return r.tags }

// Board returns the occupancy board.
func (r *Run) Board() *board.Board { return r.board }

// Result returns a snapshot of the run's output so far.
func (r *Run) Result() Result {
	return Result{
		RunID:     r.ID,
		Width:     r.cfg.width,
		Height:    r.cfg.height,
		Placed:    r.placed,
		Bounds:    r.bounds.clone(),
		NotPlaced: r.notPlaced,
		Skipped:   r.skipped,
	}
}
