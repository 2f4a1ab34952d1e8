package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("query", 10)
	k2 := Key("query", 10)
	k3 := Key("query", 5)
	k4 := Key("other", 10)

	if k1 != k2 {
		t.Error("same inputs must produce the same key")
	}
	if k1 == k3 {
		t.Error("different limits must produce different keys")
	}
	if k1 == k4 {
		t.Error("different queries must produce different keys")
	}
	if !strings.HasPrefix(k1, "veristat:v1:") {
		t.Errorf("key = %q, want veristat:v1: prefix", k1)
	}
	if !strings.HasSuffix(k1, ":10") {
		t.Errorf("key = %q, want :10 suffix", k1)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("missing key should not be found")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("get = %q/%v, want v/true", val, found)
	}

	_ = c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("deleted key should not be found")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expired entry should not be found")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	if err := c.Set(Key("query", 10), []byte(`[{"title":"t"}]`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A second instance over the same directory sees the entry
	c2 := NewDiskCache(dir, time.Minute)
	val, found := c2.Get(Key("query", 10))
	if !found || string(val) != `[{"title":"t"}]` {
		t.Errorf("get = %q/%v", val, found)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	_ = c.Set("k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expired entry should not be found")
	}
}

func TestDiskCache_Clear(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	_ = c.Set("a", []byte("1"), time.Minute)
	_ = c.Set("b", []byte("2"), time.Minute)
	if err := c.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if _, found := c.Get("a"); found {
		t.Error("cleared entry should not be found")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed only the disk layer
	disk := NewDiskCache(dir, time.Minute)
	_ = disk.Set("k", []byte("v"), time.Minute)

	layered := NewLayeredCache(time.Minute, dir, time.Minute)

	val, found := layered.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("get = %q/%v", val, found)
	}

	// After promotion the memory layer serves the key directly
	if val, found := layered.memory.Get("k"); !found || string(val) != "v" {
		t.Error("disk hit was not promoted to memory")
	}
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := layered.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, found := layered.memory.Get("k"); !found {
		t.Error("memory layer missing entry")
	}
	if _, found := NewDiskCache(dir, time.Minute).Get("k"); !found {
		t.Error("disk layer missing entry")
	}
}
