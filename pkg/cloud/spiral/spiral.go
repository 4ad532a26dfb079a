// Package spiral provides the search spirals used to probe candidate
// positions around a word's anchor.
//
// A Spiral maps a signed step counter t to a continuous offset (dx, dy).
// Step 0 always yields the origin, so the anchor itself is probed first.
// The search walks t outward in one direction (1, 2, 3, ... or -1, -2, ...)
// and stops when the offset leaves the canvas or the spiral reports ok=false.
//
// Spirals are built per search by a Factory, which receives the canvas size.
// Stateful spirals such as Rectangular rely on this: each search starts from
// a fresh cursor.
//
// Two variants are registered by default:
//
//   - [Archimedean]: smooth outward spiral scaled by the canvas aspect ratio
//   - [Rectangular]: axis-aligned legs of growing length
//
// Additional variants can be added with [Register] and resolved by name with
// [Lookup].
package spiral

import (
	"math"
	"sort"
	"sync"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Spiral returns the offset for step t. Returning ok=false ends the search.
type Spiral func(t int) (dx, dy float64, ok bool)

// Factory builds a Spiral for a canvas of the given size.
type Factory func(width, height int) Spiral

// Registered spiral names.
const (
	Archimedean = "archimedean"
	Rectangular = "rectangular"
)

// Damping scales t for the archimedean spiral so offsets grow slowly.
const Damping = 0.1

// rectStep is the vertical leg unit of the rectangular spiral.
const rectStep = 4

// NewArchimedean returns dx = e·T·cos T, dy = T·sin T with T = t·Damping
// and e = width/height.
func NewArchimedean(width, height int) Spiral {
	e := float64(width) / float64(height)
	return func(t int) (float64, float64, bool) {
		tt := float64(t) * Damping
		return e * tt * math.Cos(tt), tt * math.Sin(tt), true
	}
}

// NewRectangular returns a rectangular spiral whose legs cycle right, down,
// left, up. Leg lengths grow along triangular numbers. The returned spiral
// accumulates position and must be stepped sequentially from t=0.
func NewRectangular(width, height int) Spiral {
	dy := float64(rectStep)
	dx := dy * float64(width) / float64(height)
	var x, y float64
	return func(t int) (float64, float64, bool) {
		if t == 0 {
			x, y = 0, 0
			return 0, 0, true
		}
		sign := 1
		if t < 0 {
			sign = -1
		}
		// Shift by one step so t=±1 takes the first leg.
		k := t - sign
		switch (int(math.Sqrt(float64(1+4*sign*k))) - sign) & 3 {
		case 0:
			x += dx
		case 1:
			y += dy
		case 2:
			x -= dx
		default:
			y -= dy
		}
		return x, y, true
	}
}

var (
	mu       sync.RWMutex
	registry = map[string]Factory{
		Archimedean: NewArchimedean,
		Rectangular: NewRectangular,
	}
)

// Register adds or replaces a named spiral.
func Register(name string, f Factory) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidSpiral, "spiral name is empty")
	}
	if f == nil {
		return errors.New(errors.ErrCodeInvalidSpiral, "spiral %q has no factory", name)
	}
	mu.Lock()
	defer mu.Unlock()
	registry[name] = f
	return nil
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidSpiral, "unknown spiral %q", name)
	}
	return f, nil
}

// Names returns the registered spiral names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
