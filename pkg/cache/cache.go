// Package cache provides the byte-oriented caches used by the layout
// pipeline and the API server.
//
// Two things are cached:
//   - sprites: the packed bitmap of one rasterized glyph, keyed by everything
//     that affects rasterization (text, font, style, weight, size, rotation,
//     padding)
//   - layouts: a finished result, keyed by the word list hash and the layout
//     options
//
// Backends:
//   - [NullCache]: never stores anything
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for API server replicas
//
// Key construction lives in [Keyer] so callers can namespace keys with
// [NewScopedKeyer] without touching the backend.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Default TTLs per cached artifact.
const (
	TTLSprite = 7 * 24 * time.Hour
	TTLLayout = 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SpriteKeyOpts identifies a rasterized glyph.
type SpriteKeyOpts struct {
	Text    string  `json:"text"`
	Font    string  `json:"font"`
	Style   string  `json:"style"`
	Weight  string  `json:"weight"`
	Size    int     `json:"size"`
	Rotate  float64 `json:"rotate"`
	Padding int     `json:"padding"`

	// Backend distinguishes rasterizers that would draw the same glyph differently.
	Backend string `json:"backend,omitempty"`
}

// LayoutKeyOpts identifies the options a layout was computed with.
type LayoutKeyOpts struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Spiral      string `json:"spiral"`
	Seed        uint64 `json:"seed"`
	MaxAttempts int    `json:"max_attempts"`

	// OptionsHash covers the remaining accessor settings (font, rotation, scale).
	OptionsHash string `json:"options_hash,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	SpriteKey(opts SpriteKeyOpts) string
	LayoutKey(wordsHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SpriteKey returns "sprite:<hash>".
func (DefaultKeyer) SpriteKey(opts SpriteKeyOpts) string {
	return hashKey("sprite", opts)
}

// LayoutKey returns "layout:<wordsHash>:<hash>".
func (DefaultKeyer) LayoutKey(wordsHash string, opts LayoutKeyOpts) string {
	return hashKey(fmt.Sprintf("layout:%s", wordsHash), opts)
}

var _ Keyer = DefaultKeyer{}
