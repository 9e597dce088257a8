package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/zscene/pkg/cache"
	"github.com/matzehuels/zscene/pkg/config"
)

// isolate points the config and cache directories at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

// execute runs the CLI with args and returns what commands wrote through
// cobra's output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func countEntries(t *testing.T, dir string) int {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "*", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	return len(files)
}

func TestCachePathCommand(t *testing.T) {
	dir := isolate(t)
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if want := filepath.Join(dir, "cache", appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := isolate(t)
	cacheRoot := filepath.Join(dir, "cache", appName)

	// Clearing a missing cache is fine.
	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear on empty: %v", err)
	}

	out := filepath.Join(dir, "out", "box.svg")
	if _, err := execute(t, "render", "box", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if n := countEntries(t, cacheRoot); n != 1 {
		t.Fatalf("cache has %d entries after render, want 1", n)
	}

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n := countEntries(t, cacheRoot); n != 0 {
		t.Errorf("cache has %d entries after clear, want 0", n)
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c, err := newCache(ctx, config.CacheConfig{Backend: config.BackendFile, Dir: dir}, false)
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	if fc, ok := c.(*cache.FileCache); !ok || fc.Dir() != dir {
		t.Errorf("file backend = %T", c)
	}

	c, err = newCache(ctx, config.CacheConfig{Backend: config.BackendNone}, false)
	if err != nil {
		t.Fatalf("none backend: %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("none backend = %T", c)
	}

	c, err = newCache(ctx, config.CacheConfig{Backend: config.BackendFile, Dir: dir}, true)
	if err != nil {
		t.Fatalf("no-cache: %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("--no-cache = %T", c)
	}
}

func TestConfigFlag(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9999\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, `addr = ":9999"`) {
		t.Errorf("config show output:\n%s", out)
	}

	out, err = execute(t, "--config", path, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}

	if _, err := execute(t, "--config", filepath.Join(dir, "missing.toml"), "config", "show"); err == nil {
		t.Error("missing --config file should fail")
	}
}
