package cache

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "artifact"); hit {
		t.Error("empty cache should miss")
	}
	if err := c.Set(ctx, "artifact", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "artifact")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "artifact"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "artifact"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "artifact"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestFileCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero TTL should never expire")
	}
}

func TestFileCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	c.Set(ctx, "key", []byte("x"), 0)

	if err := os.WriteFile(c.path("key"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v; want clean miss", hit, err)
	}
}

func TestFileCache_Clear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	for _, k := range []string{"a", "b", "c"} {
		c.Set(ctx, k, []byte(k), 0)
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear() removed %d entries, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d entries left after Clear()", len(entries))
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := ArtifactKeyOpts{Format: "svg", X: "poverty", Y: "healthcare"}

	key := k.ArtifactKey("ds1", base)
	if !strings.HasPrefix(key, "artifact:svg:") {
		t.Errorf("ArtifactKey unexpected: %s", key)
	}
	if key != k.ArtifactKey("ds1", base) {
		t.Error("ArtifactKey should be deterministic")
	}

	variants := []ArtifactKeyOpts{
		{Format: "png", X: "poverty", Y: "healthcare"},
		{Format: "svg", X: "age", Y: "healthcare"},
		{Format: "svg", X: "poverty", Y: "healthcare", Interactive: true},
		{Format: "svg", X: "poverty", Y: "healthcare", Style: "dark"},
	}
	for _, v := range variants {
		if k.ArtifactKey("ds1", v) == key {
			t.Errorf("options %+v should change the key", v)
		}
	}
	if k.ArtifactKey("ds2", base) == key {
		t.Error("dataset ID should change the key")
	}
}

func TestScopedKeyer(t *testing.T) {
	opts := ArtifactKeyOpts{Format: "svg"}
	scoped := NewScopedKeyer(nil, RedisKeyPrefix)
	key := scoped.ArtifactKey("ds", opts)
	if key != RedisKeyPrefix+NewDefaultKeyer().ArtifactKey("ds", opts) {
		t.Errorf("ScopedKeyer key unexpected: %s", key)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, addr)
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	defer c.Close()

	key := RedisKeyPrefix + "test:" + t.Name()
	defer c.Delete(ctx, key)

	if err := c.Set(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}
	c.Delete(ctx, key)
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("deleted key should miss")
	}
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if _, err := NewRedisCache(ctx, "127.0.0.1:1"); err == nil {
		t.Error("expected an error for an unreachable server")
	}
}
