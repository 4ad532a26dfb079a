// Package cloud implements the word-cloud placement engine.
//
// Words are laid out one at a time, largest first. Each word is rasterized
// into a sprite (package sprite), then moved along a search spiral (package
// spiral) from the canvas center until its sprite fits on the occupancy
// board (package board) without touching any word placed before it.
//
// # Running a layout
//
// A [Layout] holds the configuration. [Layout.Start] resolves the per-word
// accessors, validates them and returns a [Run]. The run is driven by
// calling [Run.Tick] from any host loop; each tick places words until the
// configured time interval elapses. [Run.Execute] ticks until the run ends:
//
//	l, err := cloud.New(
//	    cloud.WithSize(512, 512),
//	    cloud.WithSpiralName(spiral.Rectangular),
//	    cloud.WithSeed(42),
//	)
//	if err != nil {
//	    return err
//	}
//	run, err := l.Start(words)
//	if err != nil {
//	    return err
//	}
//	res, err := run.Execute(ctx)
//
// # Notifications
//
// [Hooks] receive a callback for every placed word, for every word that
// exhausted its placement attempts, and once when the run completes. A run
// that is stopped never reports completion. Words whose glyph could not be
// rasterized are skipped silently and only show up in [Result.Skipped].
//
// # Coordinates
//
// During a run positions are canvas coordinates with the origin at the top
// left. Once a word is placed, and after its OnWord notification, its
// position is translated so that (0, 0) is the canvas center.
//
// A Run is not safe for concurrent use. To cancel a run from another
// goroutine, cancel the context passed to Tick or Execute.
package cloud
