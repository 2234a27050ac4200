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
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	p, err := configPath()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(p, filepath.Join(".config", appName, "config.toml")) {
		t.Errorf("configPath() = %q", p)
	}

	custom := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", custom)
	p, _ = configPath()
	if p != filepath.Join(custom, appName, "config.toml") {
		t.Errorf("configPath() with XDG_CONFIG_HOME = %q", p)
	}
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range cacheSubdirs {
		p := filepath.Join(dir, sub, "ab", "entry.json")
		os.MkdirAll(filepath.Dir(p), 0o755)
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	n, err := clearCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(cacheSubdirs) {
		t.Errorf("clearCache() = %d, want %d", n, len(cacheSubdirs))
	}

	n, err = clearCache(dir)
	if err != nil || n != 0 {
		t.Errorf("second clearCache() = %d, %v; want 0, nil", n, err)
	}
}
