package cloud

// Hooks receives layout notifications. Callbacks run on the goroutine that
// drives the run and may call Run.Stop.
type Hooks interface {
	// OnWord is called after a word is committed to the board, while its
	// position is still in canvas coordinates.
	OnWord(r *Run, t *Tag)

	// OnNotPlaced is called when a word exhausts its placement attempts.
	// index is the word's position in processing order.
	OnNotPlaced(r *Run, t *Tag, index int)

	// OnEnd is called once after the last word. It is not called for a
	// run that was stopped.
	OnEnd(r *Run, res Result)
}

// NoopHooks ignores every notification.
type NoopHooks struct{}

func (NoopHooks) OnWord(*Run, *Tag)           {}
func (NoopHooks) OnNotPlaced(*Run, *Tag, int) {}
func (NoopHooks) OnEnd(*Run, Result)          {}

// HookFuncs adapts optional functions to Hooks. Nil fields are skipped.
type HookFuncs struct {
	Word      func(r *Run, t *Tag)
	NotPlaced func(r *Run, t *Tag, index int)
	End       func(r *Run, res Result)
}

func (h HookFuncs) OnWord(r *Run, t *Tag) {
	if h.Word != nil {
		h.Word(r, t)
	}
}

func (h HookFuncs) OnNotPlaced(r *Run, t *Tag, index int) {
	if h.NotPlaced != nil {
		h.NotPlaced(r, t, index)
	}
}

func (h HookFuncs) OnEnd(r *Run, res Result) {
	if h.End != nil {
		h.End(r, res)
	}
}

// multiHooks fans notifications out in order.
type multiHooks []Hooks

func (m multiHooks) OnWord(r *Run, t *Tag) {
	for _, h := range m {
		h.OnWord(r, t)
	}
}

func (m multiHooks) OnNotPlaced(r *Run, t *Tag, index int) {
	for _, h := range m {
		h.OnNotPlaced(r, t, index)
	}
}

func (m multiHooks) OnEnd(r *Run, res Result) {
	for _, h := range m {
		h.OnEnd(r, res)
	}
}
