// Package io reads and writes word lists for the layout engine.
//
// # Formats
//
// JSON: an array of objects with a "text" and an optional numeric "value"
// (defaulting to 1). Any "meta" object is carried through untouched:
//
//	[
//	  {"text": "cloud", "value": 40},
//	  {"text": "spiral", "value": 12, "meta": {"color": "#333"}}
//	]
//
// Text: one word per line, optionally followed by whitespace and a value.
// Blank lines and lines starting with # are ignored. When the last field is
// not a number the whole line is the word:
//
//	# weights
//	cloud 40
//	spiral 12
//	word cloud
//
// # Import
//
// Use [ImportWords] to read a file, picking the format from its extension
// (.json is JSON, anything else is text), or [ReadWords] with an explicit
// [Format] for any io.Reader.
//
// Values must be finite and non-negative; violations are reported as
// INVALID_WORD errors naming the offending entry or line.
//
// # Export
//
// [WriteWords] and [ExportWords] write the JSON form, so a word list can be
// round-tripped through the CLI and the API.
package io
