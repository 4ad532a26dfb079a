package cloud

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/cloud/board"
	"github.com/matzehuels/wordcloud/pkg/cloud/spiral"
	"github.com/matzehuels/wordcloud/pkg/cloud/sprite"
	werrors "github.com/matzehuels/wordcloud/pkg/errors"
)

// boxRasterizer draws every word as a solid box size*len/2 wide and size tall.
func boxRasterizer() sprite.Rasterizer {
	return sprite.RasterizerFunc(func(_ context.Context, g sprite.Glyph) (*sprite.Sprite, error) {
		if g.Text == "" || g.Size <= 0 {
			return nil, sprite.ErrEmpty
		}
		return sprite.Box(max(1, len(g.Text)*g.Size/2), g.Size), nil
	})
}

// sized returns words whose default font size equals the given sizes.
func sized(sizes ...int) []Word {
	words := make([]Word, len(sizes))
	for i, s := range sizes {
		words[i] = Word{Text: fmt.Sprintf("w%02d", i), Value: float64(s * s)}
	}
	return words
}

func newTestLayout(t *testing.T, opts ...Option) *Layout {
	t.Helper()
	base := []Option{WithRasterizer(boxRasterizer()), WithSeed(1), WithRotate(Const(0.0))}
	l, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

type placement struct {
	sprite *sprite.Sprite
	x, y   int
	before *Bounds
}

// recorder captures each placed word while it is still in canvas coordinates.
type recorder struct {
	NoopHooks
	placed    []placement
	notPlaced []int
	ends      int
	end       Result
}

func (r *recorder) OnWord(run *Run, t *Tag) {
	r.placed = append(r.placed, placement{sprite: t.Sprite, x: t.X, y: t.Y, before: run.Bounds()})
}

func (r *recorder) OnNotPlaced(_ *Run, _ *Tag, index int) { r.notPlaced = append(r.notPlaced, index) }

func (r *recorder) OnEnd(_ *Run, res Result) {
	r.ends++
	r.end = res
}

func TestPlacedWordsDoNotOverlap(t *testing.T) {
	rec := &recorder{}
	l := newTestLayout(t, WithHooks(rec), WithSize(300, 200))
	res, err := l.Execute(context.Background(), sized(40, 32, 28, 24, 20, 18, 16, 14, 12, 12, 10, 10, 9, 8, 8, 7, 6, 6, 5, 5))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Placed) < 10 {
		t.Fatalf("only %d words placed", len(res.Placed))
	}
	if len(rec.placed) != len(res.Placed) {
		t.Fatalf("OnWord fired %d times for %d placed words", len(rec.placed), len(res.Placed))
	}

	check := board.New(300, 200)
	for i, p := range rec.placed {
		left, top := p.x+p.sprite.X0, p.y+p.sprite.Y0
		right, bottom := p.x+p.sprite.X1, p.y+p.sprite.Y1
		if left < 0 || top < 0 || right > 300 || bottom > 200 {
			t.Errorf("word %d footprint [%d,%d]-[%d,%d] leaves the canvas", i, left, top, right, bottom)
		}
		if check.Collides(p.sprite, p.x, p.y) {
			t.Errorf("word %d overlaps an earlier word", i)
		}
		check.Commit(p.sprite, p.x, p.y)
	}
}

func TestBoundsGrowMonotonically(t *testing.T) {
	rec := &recorder{}
	l := newTestLayout(t, WithHooks(rec))
	res, err := l.Execute(context.Background(), sized(30, 25, 20, 15, 12, 10, 8, 6))
	if err != nil {
		t.Fatal(err)
	}
	if rec.placed[0].before != nil {
		t.Error("bounds should be nil before the first word")
	}
	for i := 1; i < len(rec.placed); i++ {
		if !rec.placed[i].before.Contains(rec.placed[i-1].before) {
			t.Errorf("bounds shrank before word %d: %+v -> %+v", i, rec.placed[i-1].before, rec.placed[i].before)
		}
	}
	if !res.Bounds.Contains(rec.placed[len(rec.placed)-1].before) {
		t.Error("final bounds should contain all earlier bounds")
	}
	for _, tag := range res.Placed {
		r := tag.rectAt(tag.X+128, tag.Y+128)
		if !res.Bounds.Contains(&Bounds{Min: r.Min, Max: r.Max}) {
			t.Errorf("bounds %+v do not contain %q at %v", res.Bounds, tag.Text, r)
		}
	}
}

func TestSeededRunsAreDeterministic(t *testing.T) {
	words := sized(30, 24, 20, 18, 14, 12, 10, 9, 8, 7, 6, 5)
	positions := func(l *Layout) []string {
		res, err := l.Execute(context.Background(), words)
		if err != nil {
			t.Fatal(err)
		}
		out := make([]string, len(res.Placed))
		for i, tag := range res.Placed {
			out[i] = fmt.Sprintf("%s@%d,%d", tag.Text, tag.X, tag.Y)
		}
		return out
	}

	// Default rotation draws from the same source as the search direction.
	opts := []Option{WithRasterizer(boxRasterizer()), WithSeed(99)}
	a, _ := New(opts...)
	b, _ := New(opts...)

	first := positions(a)
	for name, got := range map[string][]string{"other layout": positions(b), "rerun": positions(a)} {
		if fmt.Sprint(got) != fmt.Sprint(first) {
			t.Errorf("%s: %v, want %v", name, got, first)
		}
	}
}

func TestStopIsIdempotent(t *testing.T) {
	l := newTestLayout(t)
	run, err := l.Start(sized(20, 10, 5))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := run.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}

	run.Stop()
	run.Stop()
	l.Stop()

	if !run.Done() || run.Stopped() {
		t.Errorf("finished run: Done=%v Stopped=%v, want true/false", run.Done(), run.Stopped())
	}
	for _, tag := range run.Tags() {
		if tag.Sprite != nil {
			t.Errorf("tag %q still holds a sprite", tag.Text)
		}
	}
}

func TestRetryCap(t *testing.T) {
	// The first 10 spirals only offer offsets far outside the canvas.
	counting := func(calls *int) Factory {
		return func(w, h int) spiral.Spiral {
			*calls++
			if *calls <= DefaultMaxAttempts {
				return func(int) (float64, float64, bool) { return 1e6, 1e6, true }
			}
			return spiral.NewArchimedean(w, h)
		}
	}

	tests := []struct {
		name        string
		maxAttempts int
		wantPlaced  bool
		wantCalls   int
	}{
		{name: "default cap", maxAttempts: DefaultMaxAttempts, wantPlaced: false, wantCalls: 10},
		{name: "one more attempt", maxAttempts: DefaultMaxAttempts + 1, wantPlaced: true, wantCalls: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			rec := &recorder{}
			l := newTestLayout(t, WithSpiral(counting(&calls)), WithMaxAttempts(tt.maxAttempts), WithHooks(rec))
			res, err := l.Execute(context.Background(), sized(10))
			if err != nil {
				t.Fatal(err)
			}
			if calls != tt.wantCalls {
				t.Errorf("spiral searches = %d, want %d", calls, tt.wantCalls)
			}
			if got := len(res.Placed) == 1; got != tt.wantPlaced {
				t.Errorf("placed = %v, want %v", got, tt.wantPlaced)
			}
			if !tt.wantPlaced {
				if len(res.NotPlaced) != 1 || len(rec.notPlaced) != 1 || rec.notPlaced[0] != 0 {
					t.Errorf("not placed = %d, notifications = %v", len(res.NotPlaced), rec.notPlaced)
				}
			}
		})
	}
}

func TestLargeWordNearCenter(t *testing.T) {
	var bigDist, smallDist float64
	for seed := uint64(1); seed <= 20; seed++ {
		l := newTestLayout(t, WithSeed(seed))
		res, err := l.Execute(context.Background(), []Word{
			{Text: "small", Value: 100},
			{Text: "big", Value: 2500},
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Placed) != 2 {
			t.Fatalf("seed %d: placed %d words, want 2", seed, len(res.Placed))
		}
		if res.Placed[0].Text != "big" {
			t.Fatalf("seed %d: first placed %q, want big", seed, res.Placed[0].Text)
		}
		bigDist += math.Hypot(float64(res.Placed[0].X), float64(res.Placed[0].Y))
		smallDist += math.Hypot(float64(res.Placed[1].X), float64(res.Placed[1].Y))
	}
	if bigDist != 0 {
		t.Errorf("big word should sit on the center, total distance %v", bigDist)
	}
	if smallDist <= bigDist {
		t.Errorf("small word distance %v should exceed big word distance %v", smallDist, bigDist)
	}
}

func TestOversizedWordIsNotPlaced(t *testing.T) {
	rec := &recorder{}
	l := newTestLayout(t, WithHooks(rec))
	run, err := l.Start([]Word{{Text: "enormous", Value: 300 * 300}})
	if err != nil {
		t.Fatal(err)
	}
	res, err := run.Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Placed) != 0 || len(res.NotPlaced) != 1 {
		t.Errorf("placed=%d notPlaced=%d, want 0/1", len(res.Placed), len(res.NotPlaced))
	}
	if !run.Board().Empty() {
		t.Error("board should stay empty")
	}
	if res.Bounds != nil {
		t.Errorf("bounds = %+v, want nil", res.Bounds)
	}
	if rec.ends != 1 || rec.end.Bounds != nil {
		t.Errorf("OnEnd fired %d times with bounds %+v", rec.ends, rec.end.Bounds)
	}
}

func TestStopFromHook(t *testing.T) {
	words := 0
	ends := 0
	l := newTestLayout(t, WithHooks(HookFuncs{
		Word: func(r *Run, _ *Tag) {
			words++
			r.Stop()
		},
		End: func(*Run, Result) { ends++ },
	}))
	run, err := l.Start(sized(20, 18, 16, 14, 12, 10))
	if err != nil {
		t.Fatal(err)
	}

	res, err := run.Execute(context.Background())
	if !errors.Is(err, ErrStopped) {
		t.Errorf("Execute error = %v, want ErrStopped", err)
	}
	if words != 1 || ends != 0 {
		t.Errorf("OnWord=%d OnEnd=%d, want 1/0", words, ends)
	}
	if len(res.Placed) != 1 {
		t.Errorf("placed %d words, want 1", len(res.Placed))
	}
	if !run.Tick(context.Background()) {
		t.Error("Tick on a stopped run should report the run as ended")
	}
	if words != 1 {
		t.Error("no word may be placed after Stop")
	}
	for _, tag := range run.Tags() {
		if tag.Sprite != nil {
			t.Errorf("tag %q still holds a sprite", tag.Text)
		}
	}
}

func TestStopOnLastWordSuppressesEnd(t *testing.T) {
	ends := 0
	l := newTestLayout(t, WithHooks(HookFuncs{
		Word: func(r *Run, _ *Tag) { r.Stop() },
		End:  func(*Run, Result) { ends++ },
	}))
	if _, err := l.Execute(context.Background(), sized(10)); !errors.Is(err, ErrStopped) {
		t.Errorf("Execute error = %v, want ErrStopped", err)
	}
	if ends != 0 {
		t.Errorf("OnEnd fired %d times for a stopped run", ends)
	}
}

func TestTimeIntervalTicks(t *testing.T) {
	l := newTestLayout(t, WithTimeInterval(1))
	run, err := l.Start(sized(12, 10, 8, 6))
	if err != nil {
		t.Fatal(err)
	}
	for want := 1; want <= 4; want++ {
		ended := run.Tick(context.Background())
		if got, _ := run.Progress(); got != want {
			t.Fatalf("after tick %d processed %d words", want, got)
		}
		if ended != (want == 4) {
			t.Errorf("tick %d: ended = %v", want, ended)
		}
	}
	if !run.Done() {
		t.Error("run should be done")
	}
}

func TestSkippedWords(t *testing.T) {
	rec := &recorder{}
	l := newTestLayout(t, WithHooks(rec))
	res, err := l.Execute(context.Background(), []Word{
		{Text: "", Value: 400},
		{Text: "ok", Value: 100},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].HasText {
		t.Errorf("skipped = %+v, want the empty word", res.Skipped)
	}
	if len(res.NotPlaced) != 0 || len(rec.notPlaced) != 0 {
		t.Error("skipped words must not be reported as not placed")
	}
	if len(res.Placed) != 1 || res.Placed[0].Text != "ok" {
		t.Errorf("placed = %+v", res.Placed)
	}
}

func TestProcessingOrder(t *testing.T) {
	l := newTestLayout(t)
	words := []Word{
		{Text: "a", Value: 25},
		{Text: "b", Value: 100},
		{Text: "c", Value: 25},
		{Text: "d", Value: 400},
		{Text: "e", Value: 26}, // truncates to 5
	}
	run, err := l.Start(words)
	if err != nil {
		t.Fatal(err)
	}
	var got string
	for _, tag := range run.Tags() {
		got += tag.Text
	}
	if got != "dbace" {
		t.Errorf("processing order = %s, want dbace", got)
	}
}

func TestRestartStopsPreviousRun(t *testing.T) {
	l := newTestLayout(t)
	first, err := l.Start(sized(20, 10))
	if err != nil {
		t.Fatal(err)
	}
	first.Tick(context.Background())

	second, err := l.Start(sized(20, 10))
	if err != nil {
		t.Fatal(err)
	}
	if first == second || l.Current() != second {
		t.Fatal("Start should create a new current run")
	}
	if first.ID == second.ID {
		t.Error("runs should have distinct IDs")
	}
	if !first.Stopped() && !first.Done() {
		t.Error("previous run should be stopped")
	}
	for _, tag := range first.Tags() {
		if tag.Sprite != nil {
			t.Error("previous run kept a sprite")
		}
	}
	if !second.Board().Empty() {
		t.Error("new run should start with an empty board")
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := newTestLayout(t)
	run, err := l.Start(sized(10, 8))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := run.Execute(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Execute error = %v, want context.Canceled", err)
	}
	if !run.Stopped() {
		t.Error("canceled run should be stopped")
	}
}

type rejectingRasterizer struct{ sprite.Rasterizer }

func (rejectingRasterizer) Validate(g sprite.Glyph) error {
	if g.Font != DefaultFont {
		return werrors.New(werrors.ErrCodeInvalidFont, "unknown font %q", g.Font)
	}
	return nil
}

func TestConfigurationErrors(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		words []Word
		code  werrors.Code
	}{
		{name: "unknown spiral", opts: []Option{WithSpiralName("hexagonal")}, code: werrors.ErrCodeInvalidSpiral},
		{name: "zero width", opts: []Option{WithSize(0, 100)}, code: werrors.ErrCodeInvalidSize},
		{name: "negative interval", opts: []Option{WithTimeInterval(-1)}, code: werrors.ErrCodeInvalidConfig},
		{name: "no attempts", opts: []Option{WithMaxAttempts(0)}, code: werrors.ErrCodeInvalidConfig},
		{name: "nil accessor", opts: []Option{WithFont(nil)}, code: werrors.ErrCodeInvalidConfig},
		{name: "nil spiral", opts: []Option{WithSpiral(nil)}, code: werrors.ErrCodeInvalidSpiral},
		{name: "negative value", words: []Word{{Text: "x", Value: -4}}, code: werrors.ErrCodeInvalidWord},
		{name: "negative padding", opts: []Option{WithPadding(Const(-1))}, words: sized(5), code: werrors.ErrCodeInvalidWord},
		{name: "nan rotation", opts: []Option{WithRotate(Const(math.NaN()))}, words: sized(5), code: werrors.ErrCodeInvalidWord},
		{
			name:  "rejected font",
			opts:  []Option{WithRasterizer(rejectingRasterizer{boxRasterizer()}), WithFont(Const("wingdings"))},
			words: sized(5),
			code:  werrors.ErrCodeInvalidFont,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithRasterizer(boxRasterizer())}, tt.opts...)
			l, err := New(opts...)
			if err == nil {
				_, err = l.Start(tt.words)
				if l.Current() != nil {
					t.Error("failed Start should leave no run")
				}
			}
			if !werrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDefaultRotation(t *testing.T) {
	l, err := New(WithRasterizer(boxRasterizer()), WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	words := make([]Word, 200)
	for i := range words {
		words[i] = Word{Text: "x", Value: 1}
	}
	run, err := l.Start(words)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[float64]bool{}
	for _, tag := range run.Tags() {
		seen[tag.Rotate] = true
	}
	for _, want := range []float64{-90, -60, -30, 0, 30, 60} {
		if !seen[want] {
			t.Errorf("rotation %v never drawn", want)
		}
	}
	if len(seen) != 6 {
		t.Errorf("drew %d distinct rotations, want 6: %v", len(seen), seen)
	}
}

func TestEmptyWordList(t *testing.T) {
	rec := &recorder{}
	l := newTestLayout(t, WithHooks(rec))
	res, err := l.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if rec.ends != 1 || len(res.Placed) != 0 || res.Bounds != nil {
		t.Errorf("ends=%d placed=%d bounds=%v", rec.ends, len(res.Placed), res.Bounds)
	}
}
