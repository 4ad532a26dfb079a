// Package api serves word-cloud layouts over HTTP.
//
// Routes:
//
//	POST   /v1/layouts       compute and store a layout, 201 with the layout
//	GET    /v1/layouts       list recent layouts (?limit=N)
//	GET    /v1/layouts/{id}  fetch a stored layout, 404 if unknown
//	DELETE /v1/layouts/{id}  delete a stored layout, 204
//	GET    /v1/spirals       registered spiral names
//	GET    /v1/fonts         embedded font families
//	GET    /healthz          liveness
//
// A layout request carries the word list and pipeline options:
//
//	{"words": [{"text": "go", "value": 10}], "options": {"width": 512, "spiral": "rectangular"}}
//
// Errors are JSON objects {"code": "...", "message": "..."}. INVALID_* codes
// map to 400, NOT_FOUND to 404, everything else to 500.
//
// The server computes layouts through a [pipeline.Runner], so sprites and
// finished layouts are cached in whatever backend the runner was built
// with (typically Redis when several instances share work), and stores
// results in a [store.Store] (typically MongoDB).
package api
