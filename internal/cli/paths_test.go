package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name string
		xdg  string
		want func(home string) string
	}{
		{"default", "", func(home string) string { return filepath.Join(home, ".config", appName, configFile) }},
		{"xdg", "/tmp/custom-config", func(string) string { return filepath.Join("/tmp/custom-config", appName, configFile) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdg)
			got, err := configPath()
			if err != nil {
				t.Fatalf("configPath() error: %v", err)
			}
			home, _ := os.UserHomeDir()
			if want := tt.want(home); got != want {
				t.Errorf("configPath() = %q, want %q", got, want)
			}
			if !strings.HasSuffix(got, ".toml") {
				t.Errorf("configPath() = %q, should be a .toml file", got)
			}
		})
	}
}
