package cache

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	tests := []struct {
		name string
		a, b string
	}{
		{
			name: "sprite rotation",
			a:    k.SpriteKey(SpriteKeyOpts{Text: "go", Font: "serif", Size: 20}),
			b:    k.SpriteKey(SpriteKeyOpts{Text: "go", Font: "serif", Size: 20, Rotate: 90}),
		},
		{
			name: "sprite padding",
			a:    k.SpriteKey(SpriteKeyOpts{Text: "go", Padding: 1}),
			b:    k.SpriteKey(SpriteKeyOpts{Text: "go", Padding: 2}),
		},
		{
			name: "layout seed",
			a:    k.LayoutKey("words", LayoutKeyOpts{Width: 256, Height: 256, Seed: 1}),
			b:    k.LayoutKey("words", LayoutKeyOpts{Width: 256, Height: 256, Seed: 2}),
		},
		{
			name: "layout words",
			a:    k.LayoutKey("a", LayoutKeyOpts{Spiral: "archimedean"}),
			b:    k.LayoutKey("b", LayoutKeyOpts{Spiral: "archimedean"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a == tt.b {
				t.Errorf("keys should differ: %s", tt.a)
			}
		})
	}

	// Same inputs, same key
	o := SpriteKeyOpts{Text: "cloud", Font: "serif", Size: 32}
	if k.SpriteKey(o) != k.SpriteKey(o) {
		t.Error("SpriteKey should be deterministic")
	}
	if !strings.HasPrefix(k.SpriteKey(o), "sprite:") {
		t.Errorf("SpriteKey prefix unexpected: %s", k.SpriteKey(o))
	}
	if !strings.HasPrefix(k.LayoutKey("abc", LayoutKeyOpts{}), "layout:abc:") {
		t.Errorf("LayoutKey prefix unexpected: %s", k.LayoutKey("abc", LayoutKeyOpts{}))
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "api:")

	o := SpriteKeyOpts{Text: "cloud"}
	if got, want := scoped.SpriteKey(o), "api:"+inner.SpriteKey(o); got != want {
		t.Errorf("SpriteKey = %s, want %s", got, want)
	}
	lo := LayoutKeyOpts{Width: 100}
	if got, want := scoped.LayoutKey("h", lo), "api:"+inner.LayoutKey("h", lo); got != want {
		t.Errorf("LayoutKey = %s, want %s", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.LayoutKey("h", LayoutKeyOpts{})
	if !strings.HasPrefix(key, "prefix:layout:h:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v; want v, true, nil", data, hit, err)
	}

	// Expired entries are misses
	if err := c.Set(ctx, "old", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should be a miss")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry should be a miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestClearDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	n, err := ClearDir(dir)
	if err != nil {
		t.Fatalf("ClearDir: %v", err)
	}
	if n != 3 {
		t.Errorf("ClearDir removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry should be gone after ClearDir")
	}

	n, err = ClearDir(filepath.Join(dir, "nope"))
	if err != nil || n != 0 {
		t.Errorf("ClearDir(missing) = %d, %v; want 0, nil", n, err)
	}
}

var errPermanent = errors.New("permanent failure")

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errPermanent) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errPermanent
	})
	if err != errPermanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
