package tts

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"lukechampine.com/blake3"
)

// audioCache stores synthesized clips keyed by a blake3 hash of everything
// that determines the output, so unchanged notes are never re-synthesized
// across runs.
type audioCache struct {
	dir string
}

func newAudioCache(dir string) *audioCache {
	return &audioCache{dir: dir}
}

func (c *audioCache) key(provider, voice string, tempo float64, text string) string {
	h := blake3.New(32, nil)
	fmt.Fprintf(h, "%s|%s|%g|%s", provider, voice, tempo, text)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *audioCache) path(key, ext string) string {
	return filepath.Join(c.dir, key+ext)
}

func (c *audioCache) lookup(key, ext string) (string, bool) {
	p := c.path(key, ext)
	if info, err := os.Stat(p); err == nil && !info.IsDir() && info.Size() > 0 {
		return p, true
	}
	return "", false
}

// store publishes the entry with a write-to-temp-then-rename, so a concurrent
// lookup never observes a partially written clip.
func (c *audioCache) store(key, ext, src string) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read cache source: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, key+"-*")
	if err != nil {
		return fmt.Errorf("create cache temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cache temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close cache temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.path(key, ext)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publish cache entry: %w", err)
	}
	return nil
}
