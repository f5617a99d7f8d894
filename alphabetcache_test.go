package img2ascii

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAlphabetCacheRoundTrip(t *testing.T) {
	t.Parallel()
	cache := AlphabetCache{Dir: filepath.Join(t.TempDir(), "glyphs")}
	a := mustAlphabet(t, " .#|")
	key := CacheKey(a.Font(), a.Chars(), 42)

	if _, ok, err := cache.Load(key); ok || err != nil {
		t.Fatalf("empty cache should miss cleanly, got %v, %v", ok, err)
	}
	if err := cache.Store(key, a); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	loaded, ok, err := cache.Load(key)
	if err != nil || !ok {
		t.Fatalf("Load failed: %v, %v", ok, err)
	}
	if loaded.Chars() != a.Chars() || loaded.CellSize() != a.CellSize() || loaded.Font() != a.Font() {
		t.Errorf("loaded alphabet differs: %q %v %+v", loaded.Chars(), loaded.CellSize(), loaded.Font())
	}
	for i, g := range loaded.Glyphs() {
		want := a.Glyphs()[i].Stats
		if g.Stats.Brightness != want.Brightness || g.Stats.Histogram != want.Histogram {
			t.Errorf("glyph %q statistics should be recomputed identically", g.Char)
		}
	}
}

func TestAlphabetCacheCorrupt(t *testing.T) {
	t.Parallel()
	cache := AlphabetCache{Dir: t.TempDir()}
	key := "corrupt"
	if err := os.WriteFile(cache.path(key), []byte("not zstd"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Load(key); err == nil || ok {
		t.Errorf("corrupt entry should fail, got %v, %v", ok, err)
	}

	a, err := cache.LoadOrBuild("#", blockSource(), []byte("font"))
	if err != nil || a.Len() != 1 {
		t.Fatalf("LoadOrBuild should build on a miss: %v", err)
	}
}

func TestAlphabetCacheLoadOrBuild(t *testing.T) {
	t.Parallel()
	cache := AlphabetCache{Dir: t.TempDir()}
	src := blockSource()

	first, err := cache.LoadOrBuild(" #", src, []byte("font data"))
	if err != nil {
		t.Fatal(err)
	}
	files, _ := filepath.Glob(filepath.Join(cache.Dir, "*.glyphs.zst"))
	if len(files) != 1 {
		t.Fatalf("expected one cache file, got %v", files)
	}

	// A source that cannot measure anything proves the second call is
	// served from disk.
	empty := &patternSource{desc: src.desc}
	second, err := cache.LoadOrBuild(" #", empty, []byte("font data"))
	if err != nil {
		t.Fatalf("second LoadOrBuild should hit the cache: %v", err)
	}
	if second.Chars() != first.Chars() {
		t.Errorf("expected %q, got %q", first.Chars(), second.Chars())
	}
}

func TestCacheKey(t *testing.T) {
	desc := FontDescriptor{Family: "Go Mono", Size: 12}
	base := CacheKey(desc, "abc", 1)
	if base != CacheKey(desc, "abc", 1) {
		t.Error("keys should be deterministic")
	}

	bigger := desc
	bigger.Size = 13
	bold := desc
	bold.Bold = true
	for name, k := range map[string]string{
		"chars": CacheKey(desc, "abd", 1),
		"size":  CacheKey(bigger, "abc", 1),
		"bold":  CacheKey(bold, "abc", 1),
		"font":  CacheKey(desc, "abc", 2),
	} {
		if k == base {
			t.Errorf("changing %s should change the key", name)
		}
	}
}
