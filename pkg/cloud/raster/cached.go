package raster

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud/sprite"
	"github.com/matzehuels/wordcloud/pkg/observability"
)

// Cached wraps a rasterizer with a sprite cache. Sprites are stored as JSON
// under Keyer.SpriteKey. Failed rasterizations are not cached, and cache
// errors fall through to the inner rasterizer.
type Cached struct {
	Inner   sprite.Rasterizer
	Cache   cache.Cache
	Keyer   cache.Keyer
	TTL     time.Duration
	Backend string
}

// NewCached returns a cache-backed rasterizer. A nil cache disables caching
// and a nil keyer uses the default keyer.
func NewCached(inner sprite.Rasterizer, c cache.Cache, k cache.Keyer) *Cached {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	return &Cached{Inner: inner, Cache: c, Keyer: k, TTL: cache.TTLSprite, Backend: Name}
}

// Rasterize implements sprite.Rasterizer. Entries that do not decode to a
// valid sprite count as misses and are overwritten.
func (c *Cached) Rasterize(ctx context.Context, g sprite.Glyph) (*sprite.Sprite, error) {
	key := c.key(g)
	if data, ok, err := c.Cache.Get(ctx, key); err == nil && ok {
		var s sprite.Sprite
		if json.Unmarshal(data, &s) == nil && s.Valid() {
			observability.Cache().OnCacheHit(ctx, "sprite")
			return &s, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "sprite")

	s, err := c.Inner.Rasterize(ctx, g)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(s); err == nil {
		if c.Cache.Set(ctx, key, data, c.TTL) == nil {
			observability.Cache().OnCacheSet(ctx, "sprite", len(data))
		}
	}
	return s, nil
}

func (c *Cached) key(g sprite.Glyph) string {
	return c.Keyer.SpriteKey(cache.SpriteKeyOpts{
		Text:    g.Text,
		Font:    g.Font,
		Style:   g.Style,
		Weight:  g.Weight,
		Size:    g.Size,
		Rotate:  g.Rotate,
		Padding: g.Padding,
		Backend: c.Backend,
	})
}

// Validate forwards to the inner rasterizer when it is a sprite.Validator.
func (c *Cached) Validate(g sprite.Glyph) error {
	if v, ok := c.Inner.(sprite.Validator); ok {
		return v.Validate(g)
	}
	return nil
}

var (
	_ sprite.Rasterizer = (*Cached)(nil)
	_ sprite.Validator  = (*Cached)(nil)
)
