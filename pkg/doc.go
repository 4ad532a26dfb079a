// Package pkg provides the libraries behind the wordcloud CLI and API.
//
// # Overview
//
// Wordcloud places weighted words on a canvas without overlap, following
// the classic d3-cloud algorithm: words are rasterized to packed bitmasks,
// sorted by size, and each is searched outward from the center along a
// spiral until its mask fits the occupancy board.
//
//  1. [cloud] - Placement engine (board, spirals, sprites, scheduler)
//  2. [cloud/raster] - Glyph rasterization with x/image and imaging
//  3. [fonts] - Embedded Go font families
//  4. [pipeline] - Orchestration (load → layout → export) with caching
//  5. [result] - Serialized layout results
//  6. [cache], [store] - Sprite/layout caching and layout persistence
//  7. [api] - HTTP API
//
// # Architecture
//
// The typical data flow:
//
//	Word list (JSON / text)
//	         ↓
//	    [io] package (read words)
//	         ↓
//	    [cloud] package (resolve accessors, rasterize, place)
//	         ↓
//	    [result] package (center-relative layout)
//	         ↓
//	    JSON file / HTTP response / MongoDB document
//
// # Quick Start
//
//	l, err := cloud.New(cloud.WithSize(512, 512), cloud.WithSpiralName("rectangular"))
//	if err != nil {
//	    return err
//	}
//	res, err := l.Execute(ctx, []cloud.Word{{Text: "go", Value: 400}, {Text: "cloud", Value: 100}})
//	for _, t := range res.Placed {
//	    fmt.Println(t.Text, t.X, t.Y)
//	}
//
// # Error Handling
//
// Configuration errors are returned as [errors.Error] values with a code
// (INVALID_SIZE, INVALID_SPIRAL, INVALID_FONT, ...) before any run starts.
// Words that cannot be placed are data, reported in the result and through
// hooks, never as errors.
package pkg
