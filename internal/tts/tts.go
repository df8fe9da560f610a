package tts

import (
	"context"
	"fmt"
	"os"

	"slidecast/internal/media"
)

// Synthesize resolves the voice, serves the clip from the audio cache when an
// identical request was synthesized before, and otherwise calls the provider.
// Narration tempo scaling, when configured, is applied before the clip enters
// the cache so cached entries are already scaled.
func (s *implSynthesizer) Synthesize(ctx context.Context, text, voice, outPath string) (float64, error) {
	resolved := s.backend.ResolveVoice(ctx, voice)

	key := s.cache.key(s.backend.Name(), resolved, s.tempo, text)
	if cached, ok := s.cache.lookup(key, s.backend.Ext()); ok {
		s.logger.Debug(ctx, "Narration cache hit: %s", cached)
		if err := copyFile(cached, outPath); err != nil {
			return 0, fmt.Errorf("copy cached narration: %w", err)
		}
		return media.Duration(ctx, s.exec, outPath)
	}

	duration, err := s.backend.Synthesize(ctx, text, resolved, outPath)
	if err != nil {
		return 0, err
	}

	if s.tempo != 1.0 {
		duration, err = s.scaleTempo(ctx, outPath, duration)
		if err != nil {
			return 0, err
		}
	}

	if err := s.cache.store(key, s.backend.Ext(), outPath); err != nil {
		s.logger.Warn(ctx, "Failed to cache narration clip: %v", err)
	}

	return duration, nil
}

func (s *implSynthesizer) FileExt() string {
	return s.backend.Ext()
}

// scaleTempo re-encodes the narration clip through ffmpeg's atempo filter.
// Independent of the global video speed pass; the converter warns when both
// are active.
func (s *implSynthesizer) scaleTempo(ctx context.Context, path string, duration float64) (float64, error) {
	scaled := path + ".tempo" + s.backend.Ext()

	args := []string{
		"-y",
		"-i", path,
		"-filter:a", fmt.Sprintf("atempo=%g", s.tempo),
		scaled,
	}
	if _, err := s.exec.Execute(ctx, "ffmpeg", args...); err != nil {
		return 0, fmt.Errorf("scale narration tempo: %w", err)
	}

	if err := os.Rename(scaled, path); err != nil {
		return 0, fmt.Errorf("replace narration clip: %w", err)
	}

	return duration / s.tempo, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return nil
}
