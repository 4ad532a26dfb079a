package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, appName, configFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	writeConfig(t, dir, "width = 800\nspiral = \"rectangular\"\n")

	c := New(&bytes.Buffer{}, LogInfo)
	opts, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if opts.Width != 800 || opts.Spiral != "rectangular" {
		t.Errorf("opts = %s", opts)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(&bytes.Buffer{}, LogInfo)
	opts, err := c.loadConfig()
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if opts.Width != 0 {
		t.Errorf("opts.Width = %d, want zero", opts.Width)
	}

	c.ConfigPath = filepath.Join(t.TempDir(), "nope.toml")
	if _, err := c.loadConfig(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("missing --config file: err = %v", err)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "width = 800\nheight = 600\npadding = 3\n")

	c := New(&bytes.Buffer{}, LogInfo)
	c.ConfigPath = path
	cmd := c.layoutCommand()
	if err := cmd.ParseFlags([]string{"--width", "300", "--rotate", "0,90"}); err != nil {
		t.Fatal(err)
	}

	opts, err := c.layoutOptions(cmd)
	if err != nil {
		t.Fatalf("layoutOptions: %v", err)
	}
	if opts.Width != 300 {
		t.Errorf("Width = %d, flag should win", opts.Width)
	}
	if opts.Height != 600 {
		t.Errorf("Height = %d, config value should survive", opts.Height)
	}
	if opts.Padding == nil || *opts.Padding != 3 {
		t.Errorf("Padding = %v, want 3 from config", opts.Padding)
	}
	if len(opts.Rotations) != 2 || opts.Rotations[1] != 90 {
		t.Errorf("Rotations = %v", opts.Rotations)
	}
}
