package img2ascii

import (
	"encoding/gob"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

const alphabetCacheVersion = 1

// AlphabetCache keeps rendered glyph cells on disk so an alphabet only
// has to be rasterised once per font, size and character set. Files are
// zstd-compressed gob streams. Statistics are recomputed on load.
type AlphabetCache struct {
	Dir string
}

// alphabetRecord is the on-disk form of an Alphabet.
type alphabetRecord struct {
	Version int
	Font    FontDescriptor
	Cell    image.Point
	Chars   []rune
	Bitmaps [][]byte
}

// CacheKey derives a file-safe key from everything that affects glyph
// rendering. fontHash identifies the font data itself.
func CacheKey(desc FontDescriptor, chars string, fontHash uint64) string {
	d := xxhash.New()
	fmt.Fprintf(d, "v%d|%s|%g|%t|%t|%016x|", alphabetCacheVersion,
		desc.Family, desc.Size, desc.Italic, desc.Bold, fontHash)
	d.WriteString(chars)
	return strconv.FormatUint(d.Sum64(), 16)
}

func (c AlphabetCache) path(key string) string {
	return filepath.Join(c.Dir, key+".glyphs.zst")
}

// Load reads the alphabet stored under key. A missing entry returns
// (nil, false, nil).
func (c AlphabetCache) Load(key string) (*Alphabet, bool, error) {
	f, err := os.Open(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to open alphabet cache: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	var rec alphabetRecord
	if err := gob.NewDecoder(zr).Decode(&rec); err != nil {
		return nil, false, fmt.Errorf("failed to decode alphabet cache: %w", err)
	}
	if rec.Version != alphabetCacheVersion {
		return nil, false, nil
	}

	a, err := newAlphabetFromBitmaps(rec.Font, rec.Cell, rec.Chars, rec.Bitmaps)
	if err != nil {
		return nil, false, fmt.Errorf("invalid alphabet cache: %w", err)
	}
	return a, true, nil
}

// Store writes a under key, replacing any previous entry atomically.
func (c AlphabetCache) Store(key string, a *Alphabet) error {
	rec := alphabetRecord{
		Version: alphabetCacheVersion,
		Font:    a.Font(),
		Cell:    a.CellSize(),
	}
	a.glyphs.Iterate(func(r rune, g Glyph) {
		rec.Chars = append(rec.Chars, r)
		rec.Bitmaps = append(rec.Bitmaps, g.Stats.Pix)
	})

	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.Dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	zw, err := zstd.NewWriter(tmp)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if err := gob.NewEncoder(zw).Encode(&rec); err != nil {
		zw.Close()
		tmp.Close()
		return fmt.Errorf("failed to encode alphabet: %w", err)
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush alphabet cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	return os.Rename(tmp.Name(), c.path(key))
}

// LoadOrBuild returns the cached alphabet for chars rendered by src, or
// builds and stores it. fontBytes is the raw font data; it is only
// hashed. Unreadable entries are rebuilt and overwritten.
func (c AlphabetCache) LoadOrBuild(chars string, src GlyphSource, fontBytes []byte) (*Alphabet, error) {
	key := CacheKey(src.Descriptor(), chars, xxhash.Sum64(fontBytes))
	if a, ok, err := c.Load(key); err == nil && ok {
		return a, nil
	}

	a, err := NewAlphabet(chars, src)
	if err != nil {
		return nil, err
	}
	if err := c.Store(key, a); err != nil {
		return nil, err
	}
	return a, nil
}
